package material

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both
// reflect and refract.
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter chooses between reflection and refraction using the Fresnel
// reflectance (Schlick's approximation) as the selection probability.
// Rays leaving a denser medium beyond the critical angle always reflect
// (total internal reflection).
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // entering the material
	} else {
		refractionRatio = d.RefractiveIndex // exiting the material
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, refractionRatio)
	}

	scattered := core.NewRay(hit.Point, direction.Normalize())

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
		PDF:         0, // Specular
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions.
// Both lobes are delta functions, so directional queries contribute nothing.
func (d *Dielectric) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF returns 0 with isDelta set
func (d *Dielectric) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
