package scene

import (
	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
	"github.com/jmseaton/pathtracer/pkg/lights"
	"github.com/jmseaton/pathtracer/pkg/material"
)

// NewDefaultScene creates a small showcase scene: a diffuse ground quad,
// one sphere of each material kind, and a gradient sky.
func NewDefaultScene(width int) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.2, 3.5),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.0,
	}

	config := core.DefaultSamplingConfig()
	s := NewScene(geometry.NewCamera(cameraConfig), config)

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	matte := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	glass := material.NewDielectric(1.5)
	glossy := material.NewPhong(core.NewVec3(0.9, 0.7, 0.3), 50)

	// Large ground quad centered under the spheres
	groundSize := 50.0
	s.AddShape(geometry.NewQuad(
		core.NewVec3(-groundSize/2, 0, -groundSize/2),
		core.NewVec3(groundSize, 0, 0),
		core.NewVec3(0, 0, groundSize),
		ground,
	))

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, matte))
	s.AddShape(geometry.NewSphere(core.NewVec3(-1.1, 0.5, 0), 0.5, mirror))
	s.AddShape(geometry.NewSphere(core.NewVec3(1.1, 0.5, 0), 0.5, glass))
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.35, 1.2), 0.35, glossy))

	s.AddLight(lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0), // sky blue
		core.NewVec3(1.0, 1.0, 1.0), // white horizon
	))

	return s
}
