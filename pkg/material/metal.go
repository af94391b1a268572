package material

import (
	"github.com/jmseaton/pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection.
// Fuzzness 0 is a perfect mirror.
type Metal struct {
	Albedo   core.Vec3
	Fuzzness float64
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// NewMirror creates a perfect mirror
func NewMirror(albedo core.Vec3) *Metal {
	return NewMetal(albedo, 0.0)
}

// Scatter reflects the incoming ray about the normal, with optional fuzz
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	if m.Fuzzness > 0 {
		perturbation := randomInUnitSphere(sampler).Multiply(m.Fuzzness)
		reflected = reflected.Add(perturbation)
	}
	reflected = reflected.Normalize()

	scattered := core.NewRay(hit.Point, reflected)

	// Fuzzed reflections that end up below the surface are absorbed
	scatters := reflected.Dot(hit.Normal) > 0

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
		PDF:         0, // Specular: deterministic, no density
	}, scatters
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions.
// A mirror is a delta function; any direction other than the exact
// reflection contributes nothing.
func (m *Metal) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	reflected := incomingDir.Normalize().Reflect(normal)
	if outgoingDir.Subtract(reflected).Length() < 1e-3 {
		return m.Albedo
	}
	return core.Vec3{}
}

// PDF returns 0 with isDelta set: delta distributions are handled specially
// by the integrator
func (m *Metal) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, true
}

// randomInUnitSphere generates a random point inside a unit sphere
func randomInUnitSphere(sampler core.Sampler) core.Vec3 {
	for {
		s := sampler.Get3D()
		p := core.NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}
