package material

import (
	"github.com/aquilax/go-perlin"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Perlin generator parameters: weight of successive octaves, frequency
// multiplier and octave count
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// Noise mixes two patterns by a smooth 3D Perlin noise value, giving a
// marbled transition between them
type Noise struct {
	patternBase
	A, B  Pattern
	noise *perlin.Perlin
}

// NewNoise creates a noise pattern. The same seed always yields the same
// surface, so renders are reproducible.
func NewNoise(a, b Pattern, seed int64) *Noise {
	return &Noise{
		patternBase: newPatternBase(),
		A:           a,
		B:           b,
		noise:       perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// PatternAt weights B by the noise value at p mapped into [0, 1]
func (n *Noise) PatternAt(p core.Tuple) core.Color {
	w := max(0, min(1, (n.noise.Noise3D(p.X, p.Y, p.Z)+1)/2))
	return sample(n.A, p).Multiply(1 - w).Add(sample(n.B, p).Multiply(w))
}
