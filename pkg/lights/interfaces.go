package lights

import "github.com/jmseaton/pathtracer/pkg/core"

type LightType string

const (
	LightTypeArea     LightType = "area"
	LightTypeInfinite LightType = "infinite"
)

// Light interface for sources that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample samples the light toward a shading point for direct lighting.
	// The returned direction points FROM the shading point TO the light,
	// and the PDF is with respect to solid angle at the shading point.
	Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample

	// PDF returns the solid-angle probability density of sampling the given
	// direction toward this light from the shading point
	PDF(point core.Vec3, normal core.Vec3, direction core.Vec3) float64

	// Emit evaluates emission along the given ray. Finite lights return
	// zero (their emission is picked up by surface hits); infinite lights
	// return the environment radiance for the ray direction.
	Emit(ray core.Ray) core.Vec3
}

// WorldBoundsSetter is implemented by lights whose sampling depends on the
// extent of the finite scene. Scene preprocessing pushes the bounds in once
// the acceleration structure is built.
type WorldBoundsSetter interface {
	SetWorldBounds(center core.Vec3, radius float64)
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Normal    core.Vec3 // Normal at the light sample point
	Direction core.Vec3 // Direction from shading point to light
	Distance  float64   // Distance to the light sample
	Emission  core.Vec3 // Emitted radiance
	PDF       float64   // Solid-angle probability density of this sample
}

// LightSampler selects which light to sample for a shading point
type LightSampler interface {
	// SampleLight selects a light and returns it with its selection
	// probability and index
	SampleLight(point core.Vec3, normal core.Vec3, u float64) (Light, float64, int)

	// GetLightProbability returns the selection probability for a specific light
	GetLightProbability(lightIndex int, point core.Vec3, normal core.Vec3) float64

	// GetLightCount returns the number of lights in this sampler
	GetLightCount() int
}
