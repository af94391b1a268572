package lights

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
)

// QuadLight represents a rectangular area light. It embeds a quad so BRDF
// sampled paths can hit it directly.
type QuadLight struct {
	*geometry.Quad
}

// NewQuadLight creates a new quad area light. The material is expected to
// be emissive; hits on the quad pick up its emission.
func NewQuadLight(corner, u, v core.Vec3, material core.Material) *QuadLight {
	return &QuadLight{Quad: geometry.NewQuad(corner, u, v, material)}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Sample picks a uniform point on the quad and converts the area density to
// a solid-angle density at the shading point.
func (ql *QuadLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	samplePoint := ql.Corner.
		Add(ql.U.Multiply(sample.X)).
		Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	distance := math.Sqrt(distanceSquared)
	if distance < 1e-9 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	// Cosine at the light surface; the light only emits from its front side
	cosLight := ql.Normal.Dot(direction.Negate())
	if cosLight <= 0 {
		return LightSample{Direction: direction, Distance: distance}
	}

	// Solid-angle pdf: dist² / (cosθ_light * area)
	pdf := distanceSquared / (cosLight * ql.Area())

	var emission core.Vec3
	if emitter, ok := ql.Material.(core.Emitter); ok {
		emission = emitter.Emit(core.NewRay(point, direction))
	}

	return LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  emission,
		PDF:       pdf,
	}
}

// PDF returns the solid-angle density of sampling the given direction
func (ql *QuadLight) PDF(point, normal, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hit, ok := ql.Quad.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return 0.0
	}

	cosLight := ql.Normal.Dot(direction.Negate())
	if cosLight <= 0 {
		return 0.0
	}

	distanceSquared := hit.T * hit.T
	return distanceSquared / (cosLight * ql.Area())
}

// Emit returns zero: a quad light's emission is collected when paths hit
// its surface
func (ql *QuadLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
