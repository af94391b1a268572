package lights

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Fallback scene radius for infinite lights sampled before Preprocess
const defaultWorldRadius = 100.0

// UniformInfiniteLight is an environment light with constant emission in
// all directions.
type UniformInfiniteLight struct {
	emission    core.Vec3
	worldCenter core.Vec3
	worldRadius float64
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{emission: emission, worldRadius: defaultWorldRadius}
}

func (uil *UniformInfiniteLight) Type() LightType {
	return LightTypeInfinite
}

// SetWorldBounds records the finite scene extent so sample points can be
// placed just outside it
func (uil *UniformInfiniteLight) SetWorldBounds(center core.Vec3, radius float64) {
	uil.worldCenter = center
	uil.worldRadius = radius
}

// Sample draws a cosine-weighted direction in the visible hemisphere. For a
// uniform environment this is exact importance sampling: the cosine terms
// cancel in the estimator.
func (uil *UniformInfiniteLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	direction := core.SampleCosineHemisphere(normal, sample)
	cosTheta := direction.Dot(normal)

	return LightSample{
		Point:     point.Add(direction.Multiply(2.0 * uil.worldRadius)),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  uil.emission,
		PDF:       cosTheta / math.Pi,
	}
}

// PDF returns the cosine-weighted hemisphere density
func (uil *UniformInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0.0
	}
	return cosTheta / math.Pi
}

// Emit returns the environment radiance for rays that leave the scene
func (uil *UniformInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	return uil.emission
}

// GradientInfiniteLight is a sky-like environment light blending between a
// bottom and top color by ray elevation.
type GradientInfiniteLight struct {
	topColor    core.Vec3
	bottomColor core.Vec3
	worldCenter core.Vec3
	worldRadius float64
}

// NewGradientInfiniteLight creates a new gradient sky light
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) *GradientInfiniteLight {
	return &GradientInfiniteLight{
		topColor:    topColor,
		bottomColor: bottomColor,
		worldRadius: defaultWorldRadius,
	}
}

func (gil *GradientInfiniteLight) Type() LightType {
	return LightTypeInfinite
}

// SetWorldBounds records the finite scene extent so sample points can be
// placed just outside it
func (gil *GradientInfiniteLight) SetWorldBounds(center core.Vec3, radius float64) {
	gil.worldCenter = center
	gil.worldRadius = radius
}

// Sample draws a cosine-weighted direction in the visible hemisphere
func (gil *GradientInfiniteLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) LightSample {
	direction := core.SampleCosineHemisphere(normal, sample)
	cosTheta := direction.Dot(normal)

	return LightSample{
		Point:     point.Add(direction.Multiply(2.0 * gil.worldRadius)),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  gil.Emit(core.NewRay(point, direction)),
		PDF:       cosTheta / math.Pi,
	}
}

// PDF returns the cosine-weighted hemisphere density
func (gil *GradientInfiniteLight) PDF(point, normal, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0.0
	}
	return cosTheta / math.Pi
}

// Emit interpolates between the bottom and top color by ray elevation
func (gil *GradientInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return gil.bottomColor.Multiply(1.0 - t).Add(gil.topColor.Multiply(t))
}
