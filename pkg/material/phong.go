package material

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Phong represents a glossy material with a normalized Phong lobe. Higher
// exponents give tighter highlights; the (n+2)/2π factor keeps the BRDF
// energy-conserving for any exponent.
type Phong struct {
	Albedo   core.Vec3
	Exponent float64
}

// NewPhong creates a new normalized Phong material
func NewPhong(albedo core.Vec3, exponent float64) *Phong {
	if exponent < 1.0 {
		exponent = 1.0
	}
	return &Phong{Albedo: albedo.Clamp(0, 1), Exponent: exponent}
}

// Scatter importance-samples the cosⁿ lobe around the ideal reflection.
// Lobe samples that land below the surface are absorbed.
func (p *Phong) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	direction := core.SamplePowerCosine(reflected, p.Exponent, sampler.Get2D())

	if direction.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	cosAlpha := math.Max(0, direction.Dot(reflected))
	pdf := (p.Exponent + 1.0) / (2.0 * math.Pi) * math.Pow(cosAlpha, p.Exponent)
	if pdf <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: p.EvaluateBRDF(rayIn.Direction, direction, hit.Normal),
		PDF:         pdf,
	}, true
}

// EvaluateBRDF returns albedo·(n+2)/(2π)·cosⁿα, where α is the angle between
// the outgoing direction and the ideal reflection
func (p *Phong) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	if outgoingDir.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	reflected := incomingDir.Normalize().Reflect(normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	return p.Albedo.Multiply((p.Exponent + 2.0) / (2.0 * math.Pi) * math.Pow(cosAlpha, p.Exponent))
}

// PDF returns the lobe density (n+1)/(2π)·cosⁿα for the outgoing direction
func (p *Phong) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	if outgoingDir.Dot(normal) <= 0 {
		return 0.0, false
	}
	reflected := incomingDir.Normalize().Reflect(normal)
	cosAlpha := math.Max(0, outgoingDir.Dot(reflected))
	return (p.Exponent + 1.0) / (2.0 * math.Pi) * math.Pow(cosAlpha, p.Exponent), false
}
