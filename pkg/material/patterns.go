package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ColorAtObject evaluates a pattern at a world-space point on obj. The point
// is moved into object space through the shape's parent chain and then into
// pattern space through the pattern's own transform.
func ColorAtObject(p Pattern, obj ObjectSpace, worldPoint core.Tuple) core.Color {
	return sample(p, obj.WorldToObject(worldPoint))
}

// sample evaluates p at a point given in the space of whatever contains it
func sample(p Pattern, point core.Tuple) core.Color {
	return p.PatternAt(p.Transform().Inverse().MulTuple(point))
}

// patternBase holds the transform shared by all patterns
type patternBase struct {
	transform core.Transform
}

func newPatternBase() patternBase {
	return patternBase{transform: core.IdentityTransform()}
}

// Transform returns the pattern transform
func (b *patternBase) Transform() core.Transform { return b.transform }

// SetTransform sets the pattern transform. A singular matrix panics.
func (b *patternBase) SetTransform(m core.Matrix) { b.transform = core.NewTransform(m) }

// Solid is a uniform color. It lets patterns nest colors and other patterns
// interchangeably.
type Solid struct {
	patternBase
	Color core.Color
}

// NewSolid creates a uniform color pattern
func NewSolid(c core.Color) *Solid {
	return &Solid{patternBase: newPatternBase(), Color: c}
}

// PatternAt returns the color regardless of position
func (s *Solid) PatternAt(core.Tuple) core.Color { return s.Color }

// Stripes alternates between A and B along x
type Stripes struct {
	patternBase
	A, B Pattern
}

// NewStripes creates a stripe pattern
func NewStripes(a, b Pattern) *Stripes {
	return &Stripes{patternBase: newPatternBase(), A: a, B: b}
}

// PatternAt returns A on even unit intervals of x and B on odd ones
func (s *Stripes) PatternAt(p core.Tuple) core.Color {
	if isEven(math.Floor(p.X + core.Epsilon)) {
		return sample(s.A, p)
	}
	return sample(s.B, p)
}

// Gradient blends linearly from A at x=-1 to B at x=1
type Gradient struct {
	patternBase
	A, B core.Color
}

// NewGradient creates a gradient pattern
func NewGradient(a, b core.Color) *Gradient {
	return &Gradient{patternBase: newPatternBase(), A: a, B: b}
}

// PatternAt interpolates between A and B by x
func (g *Gradient) PatternAt(p core.Tuple) core.Color {
	fraction := (p.X + 1) / 2
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// Rings alternates between A and B in concentric rings around the y axis
type Rings struct {
	patternBase
	A, B Pattern
}

// NewRings creates a ring pattern
func NewRings(a, b Pattern) *Rings {
	return &Rings{patternBase: newPatternBase(), A: a, B: b}
}

// PatternAt picks A or B by the distance from the y axis
func (r *Rings) PatternAt(p core.Tuple) core.Color {
	if isEven(math.Floor(math.Hypot(p.X, p.Z))) {
		return sample(r.A, p)
	}
	return sample(r.B, p)
}

// Checkers alternates between A and B in unit cubes
type Checkers struct {
	patternBase
	A, B Pattern
}

// NewCheckers creates a 3D checker pattern
func NewCheckers(a, b Pattern) *Checkers {
	return &Checkers{patternBase: newPatternBase(), A: a, B: b}
}

// PatternAt picks A or B by the parity of the cell containing p. The
// small offset keeps surfaces lying on cell boundaries from speckling.
func (c *Checkers) PatternAt(p core.Tuple) core.Color {
	sum := math.Floor(p.X+core.Epsilon) + math.Floor(p.Y+core.Epsilon) + math.Floor(p.Z+core.Epsilon)
	if isEven(sum) {
		return sample(c.A, p)
	}
	return sample(c.B, p)
}

// Blend mixes two patterns, weighting B by Bias
type Blend struct {
	patternBase
	A, B Pattern
	Bias float64
}

// NewBlend creates a blend pattern. Bias is clamped to [0, 1].
func NewBlend(a, b Pattern, bias float64) *Blend {
	return &Blend{patternBase: newPatternBase(), A: a, B: b, Bias: max(0, min(1, bias))}
}

// PatternAt returns A*(1-Bias) + B*Bias
func (b *Blend) PatternAt(p core.Tuple) core.Color {
	return sample(b.A, p).Multiply(1 - b.Bias).Add(sample(b.B, p).Multiply(b.Bias))
}

// Position maps the pattern-space coordinates straight to a color. It is
// handy for checking transforms.
type Position struct {
	patternBase
}

// NewPosition creates a position pattern
func NewPosition() *Position {
	return &Position{patternBase: newPatternBase()}
}

// PatternAt returns Color(x, y, z)
func (*Position) PatternAt(p core.Tuple) core.Color {
	return core.NewColor(p.X, p.Y, p.Z)
}

func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}
