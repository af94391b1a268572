package integrator

import (
	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns a Monte Carlo estimate of the radiance arriving
	// along the given ray
	RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3
}
