package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// sphereRow builds a group of n unit spheres spaced 3 apart along x
func sphereRow(n int) (*Group, []Shape) {
	g := NewGroup()
	shapes := make([]Shape, n)
	for i := range n {
		s := NewSphere()
		s.SetTransform(core.Translation(float64(3*i), 0, 0))
		shapes[i] = s
	}
	g.AddChild(shapes...)
	return g, shapes
}

// collectLeaves counts how many times each non-group shape appears
func collectLeaves(g *Group, seen map[Shape]int) {
	for _, c := range g.Children() {
		if sub, ok := c.(*Group); ok {
			collectLeaves(sub, seen)
			continue
		}
		seen[c]++
	}
}

// checkBoundsContainChildren verifies every group box covers its children
func checkBoundsContainChildren(t *testing.T, g *Group) {
	t.Helper()
	for _, c := range g.Children() {
		if !g.Bounds().ContainsBox(parentSpaceBounds(c)) {
			t.Errorf("Group bounds %v - %v do not contain child bounds", g.Bounds().Min, g.Bounds().Max)
		}
		if sub, ok := c.(*Group); ok {
			checkBoundsContainChildren(t, sub)
		}
	}
}

func TestGroup_Partition(t *testing.T) {
	g, shapes := sphereRow(4)
	low, rest := g.Partition()

	if len(low) != 2 || len(rest) != 2 {
		t.Fatalf("Expected a 2/2 split, got %d/%d", len(low), len(rest))
	}
	if low[0] != shapes[0] || low[1] != shapes[1] {
		t.Error("Expected the two leftmost spheres in the low half")
	}
	if len(g.Children()) != 4 {
		t.Error("Partition should not modify the group")
	}
}

func TestGroup_MakeSubgroup(t *testing.T) {
	g := NewGroup()
	s1, s2 := NewSphere(), NewSphere()
	sub := g.MakeSubgroup(s1, s2)

	if len(g.Children()) != 1 || g.Children()[0] != Shape(sub) {
		t.Fatal("Expected the subgroup to be the only child")
	}
	if len(sub.Children()) != 2 || s1.Parent() != Shape(sub) {
		t.Error("Expected the shapes to move into the subgroup")
	}
}

func TestGroup_Optimize(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		threshold int
	}{
		{"below threshold", 3, 4},
		{"small", 10, 4},
		{"large", 100, 4},
		{"single leaf groups", 33, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, shapes := sphereRow(tt.count)
			before := g.Bounds()
			g.Optimize(tt.threshold, DefaultMaxDepth)

			seen := map[Shape]int{}
			collectLeaves(g, seen)
			if len(seen) != len(shapes) {
				t.Fatalf("Expected %d leaves, found %d", len(shapes), len(seen))
			}
			for _, s := range shapes {
				if seen[s] != 1 {
					t.Errorf("Shape reachable %d times, expected once", seen[s])
				}
			}

			checkBoundsContainChildren(t, g)
			if !g.Bounds().Min.Equal(before.Min) || !g.Bounds().Max.Equal(before.Max) {
				t.Error("Optimize changed the root bounds")
			}
			if tt.count > tt.threshold && len(g.Children()) != 2 {
				t.Errorf("Expected the root to hold two subgroups, got %d children", len(g.Children()))
			}
		})
	}
}

func TestGroup_OptimizePreservesHits(t *testing.T) {
	g, _ := sphereRow(50)
	rays := []core.Ray{
		core.NewRay(core.Point(-5, 0, 0), core.Vector(1, 0, 0)),
		core.NewRay(core.Point(30, 0, -5), core.Vector(0, 0, 1)),
		core.NewRay(core.Point(61, 10, -5), core.Vector(0, -1, 0.5).Normalize()),
		core.NewRay(core.Point(0, 5, 0), core.Vector(0, 0, 1)),
	}

	before := make([][]float64, len(rays))
	for i, r := range rays {
		before[i] = hitTimes(g, r.Origin, r.Direction)
	}

	g.Optimize(DefaultLeafThreshold, DefaultMaxDepth)
	for i, r := range rays {
		checkTimes(t, hitTimes(g, r.Origin, r.Direction), before[i])
	}
}

func TestGroup_OptimizeRespectsMaxDepth(t *testing.T) {
	g, _ := sphereRow(64)
	g.Optimize(1, 2)
	if depth := g.Stats().MaxDepth; depth > 2 {
		t.Errorf("Expected depth at most 2, got %d", depth)
	}
}

func TestGroup_OptimizeIdenticalChildren(t *testing.T) {
	g := NewGroup()
	for range 10 {
		g.AddChild(NewSphere())
	}
	g.Optimize(2, DefaultMaxDepth)
	if len(g.Children()) != 10 {
		t.Errorf("Children that cannot be separated should stay put, got %d children", len(g.Children()))
	}
}

func TestGroup_OptimizeNested(t *testing.T) {
	outer := NewGroup()
	inner, _ := sphereRow(20)
	outer.AddChild(inner, NewPlane())
	outer.Optimize(4, DefaultMaxDepth)

	if len(inner.Children()) != 2 {
		t.Errorf("Expected the nested group to be optimized too, got %d children", len(inner.Children()))
	}
	if hits := hitTimes(outer, core.Point(0, 5, 0), core.Vector(0, -1, 0)); len(hits) != 3 {
		t.Errorf("Expected plane and sphere hits, got %v", hits)
	}
}

func TestGroup_Stats(t *testing.T) {
	g, _ := sphereRow(8)
	flat := g.Stats()
	if flat.Groups != 1 || flat.Primitives != 8 || flat.MaxDepth != 0 || flat.AvgDepth != 1 {
		t.Errorf("Unexpected flat stats %+v", flat)
	}

	g.Optimize(2, DefaultMaxDepth)
	stats := g.Stats()
	if stats.Primitives != 8 || stats.Groups < 3 || math.IsNaN(stats.AvgDepth) {
		t.Errorf("Unexpected optimized stats %+v", stats)
	}
}
