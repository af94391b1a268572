package lights

import "github.com/jmseaton/pathtracer/pkg/core"

// UniformLightSampler selects among lights with equal probability
type UniformLightSampler struct {
	lights []Light
}

// NewUniformLightSampler creates a sampler over the given lights
func NewUniformLightSampler(lights []Light) *UniformLightSampler {
	return &UniformLightSampler{lights: lights}
}

// SampleLight picks a light uniformly at random
func (s *UniformLightSampler) SampleLight(point core.Vec3, normal core.Vec3, u float64) (Light, float64, int) {
	n := len(s.lights)
	if n == 0 {
		return nil, 0, -1
	}
	index := int(u * float64(n))
	if index >= n {
		index = n - 1
	}
	return s.lights[index], 1.0 / float64(n), index
}

// GetLightProbability returns the uniform selection probability
func (s *UniformLightSampler) GetLightProbability(lightIndex int, point core.Vec3, normal core.Vec3) float64 {
	if len(s.lights) == 0 || lightIndex < 0 || lightIndex >= len(s.lights) {
		return 0
	}
	return 1.0 / float64(len(s.lights))
}

// GetLightCount returns the number of lights
func (s *UniformLightSampler) GetLightCount() int {
	return len(s.lights)
}
