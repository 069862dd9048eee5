package geometry

// Default limits for Group.Optimize
const (
	DefaultLeafThreshold = 4
	DefaultMaxDepth      = 32
)

// Optimize turns a flat group into a bounding volume hierarchy. Groups with
// more than threshold children are split at the midpoint of their longest
// axis into two subgroups, recursively, until maxDepth levels have been
// built. Every original child remains reachable exactly once. Call it after
// the scene is assembled and before rendering.
func (g *Group) Optimize(threshold, maxDepth int) {
	if len(g.children) > threshold && maxDepth > 0 {
		low, rest := g.Partition()
		if len(low) > 0 && len(rest) > 0 {
			g.children = nil
			g.MakeSubgroup(low...)
			g.MakeSubgroup(rest...)
		}
	}

	for _, c := range g.children {
		if sub, ok := c.(*Group); ok {
			sub.Optimize(threshold, maxDepth-1)
		}
	}
}

// Partition divides the children at the midpoint of the longest axis of the
// group's bounds: those mostly in the low half and the rest. The group
// itself is not modified.
func (g *Group) Partition() (low, rest []Shape) {
	axis := g.bounds.LongestAxis()
	lowBox, _ := g.bounds.Split()
	split := lowBox.Max.Component(axis)
	for _, c := range g.children {
		if parentSpaceBounds(c).MostlyBelow(axis, split) {
			low = append(low, c)
		} else {
			rest = append(rest, c)
		}
	}
	return low, rest
}

// MakeSubgroup wraps shapes in a new group and adds it as a child
func (g *Group) MakeSubgroup(shapes ...Shape) *Group {
	sub := NewGroup()
	sub.AddChild(shapes...)
	g.AddChild(sub)
	return sub
}

// GroupStats describes the shape of a group hierarchy
type GroupStats struct {
	Groups     int     // Groups in the tree, including the root
	Primitives int     // Leaf shapes (primitives and CSG nodes)
	MaxDepth   int     // Deepest group nesting
	AvgDepth   float64 // Mean depth of leaf shapes
}

// Stats walks the hierarchy and collects statistics about it
func (g *Group) Stats() GroupStats {
	stats := GroupStats{}
	g.collectStats(0, &stats)
	if stats.Primitives > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.Primitives)
	}
	return stats
}

func (g *Group) collectStats(depth int, stats *GroupStats) {
	stats.Groups++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	for _, c := range g.children {
		if sub, ok := c.(*Group); ok {
			sub.collectStats(depth+1, stats)
			continue
		}
		stats.Primitives++
		stats.AvgDepth += float64(depth + 1)
	}
}
