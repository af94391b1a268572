package renderer

import "github.com/jmseaton/pathtracer/pkg/core"

// Tonemapper maps linear radiance to a displayable [0, 1] value using an
// exposure scale followed by gamma correction. Out-of-range radiance is
// clamped; no value can leave the displayable range.
type Tonemapper struct {
	Exposure float64 // Linear scale applied before gamma (1.0 = neutral)
	Gamma    float64 // Display gamma (2.0 matches the usual quick approximation)
}

// DefaultTonemapper returns neutral exposure with gamma 2.0
func DefaultTonemapper() Tonemapper {
	return Tonemapper{Exposure: 1.0, Gamma: 2.0}
}

// Map converts one linear radiance value to a displayable color
func (t Tonemapper) Map(c core.Vec3) core.Vec3 {
	c = c.Multiply(t.Exposure)
	// Negative radiance is a defect upstream, but never let it reach Pow
	c = c.Clamp(0.0, 1.0)
	if t.Gamma > 0 && t.Gamma != 1.0 {
		c = c.GammaCorrect(t.Gamma)
	}
	return c.Clamp(0.0, 1.0)
}
