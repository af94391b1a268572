package material

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo.Clamp(0, 1)}
}

// Scatter samples a cosine-weighted direction in the hemisphere around the
// normal. With BRDF = albedo/π and pdf = cos(θ)/π the estimator's
// attenuation·cos/pdf collapses to the albedo; the integrator relies on
// that cancellation, so no extra cosine is folded in here.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.NewRay(hit.Point, scatterDirection)

	cosTheta := scatterDirection.Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi),
		PDF:         cosTheta / math.Pi,
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (l *Lambertian) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	if outgoingDir.Dot(normal) <= 0 {
		return core.Vec3{} // Below surface
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// PDF returns the cosine-weighted hemisphere density for the outgoing direction
func (l *Lambertian) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	cosTheta := outgoingDir.Dot(normal)
	if cosTheta <= 0 {
		return 0.0, false
	}
	return cosTheta / math.Pi, false
}
