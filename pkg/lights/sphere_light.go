package lights

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
)

// SphereLight represents a spherical area light. It embeds a sphere so BRDF
// sampled paths can hit it directly.
type SphereLight struct {
	*geometry.Sphere
}

// NewSphereLight creates a new spherical light
func NewSphereLight(center core.Vec3, radius float64, material core.Material) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius, material)}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// Sample importance-samples the sphere as seen from the shading point: the
// cone of directions subtending the sphere, or the whole sphere when the
// point is inside it.
func (sl *SphereLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return sl.sampleUniform(point, sample)
	}
	return sl.sampleCone(point, sample)
}

// sampleUniform samples uniformly on the entire sphere surface, for shading
// points inside the sphere
func (sl *SphereLight) sampleUniform(point core.Vec3, sample core.Vec2) LightSample {
	localDir := core.SampleOnUnitSphere(sample)
	samplePoint := sl.Center.Add(localDir.Multiply(sl.Radius))

	toSample := samplePoint.Subtract(point)
	distance := toSample.Length()
	direction := toSample.Normalize()

	pdf := 1.0 / (4.0 * math.Pi * sl.Radius * sl.Radius)

	var emission core.Vec3
	if emitter, ok := sl.Material.(core.Emitter); ok {
		emission = emitter.Emit(core.NewRay(point, direction))
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    localDir,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       pdf,
	}
}

// sampleCone samples the cone of directions toward the visible part of the
// sphere as seen from outside it
func (sl *SphereLight) sampleCone(point core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()
	w := toCenter.Normalize()

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	if cosThetaMax >= 1.0 {
		// Sphere too distant to subtend a measurable cone
		return LightSample{}
	}

	direction := core.SampleCone(w, cosThetaMax, sample)

	// Find the actual surface point in the sampled direction
	ray := core.NewRay(point, direction)
	hit, ok := sl.Sphere.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		// Grazing numeric miss at the cone edge; fall back to uniform
		return sl.sampleUniform(point, sample)
	}

	pdf := 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))

	var emission core.Vec3
	if emitter, ok := sl.Material.(core.Emitter); ok {
		emission = emitter.Emit(ray)
	}

	return LightSample{
		Point:     hit.Point,
		Normal:    hit.Normal,
		Direction: direction,
		Distance:  hit.T,
		Emission:  emission,
		PDF:       pdf,
	}
}

// PDF returns the solid-angle density of sampling the given direction
func (sl *SphereLight) PDF(point, normal, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	if _, ok := sl.Sphere.Hit(ray, 1e-4, math.Inf(1)); !ok {
		return 0.0
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return 1.0 / (4.0 * math.Pi * sl.Radius * sl.Radius)
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	if cosThetaMax >= 1.0 {
		return 0.0
	}

	return 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
}

// Emit returns zero: a sphere light's emission is collected when paths hit
// its surface
func (sl *SphereLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
