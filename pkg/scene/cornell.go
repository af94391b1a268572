package scene

import (
	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
	"github.com/jmseaton/pathtracer/pkg/lights"
	"github.com/jmseaton/pathtracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box with quad walls, two
// spheres, and a quad area light in the ceiling.
func NewCornellScene(width int) *Scene {
	boxSize := 555.0

	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: 1.0,
		VFov:        40.0,
		Aperture:    0.0,
	}

	config := core.DefaultSamplingConfig()
	config.RussianRouletteMinBounces = 4

	s := NewScene(geometry.NewCamera(cameraConfig), config)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Floor
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))
	// Ceiling
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))
	// Back wall
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	))
	// Left wall (red)
	s.AddShape(geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	))
	// Right wall (green)
	s.AddShape(geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	))

	// A mirror sphere and a glass sphere inside the box
	s.AddShape(geometry.NewSphere(core.NewVec3(185, 90, 350), 90, material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))))
	s.AddShape(geometry.NewSphere(core.NewVec3(380, 90, 170), 90, material.NewDielectric(1.5)))

	// Ceiling light: emissive quad slightly below the ceiling, facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	emissive := material.NewEmissive(core.NewVec3(15, 15, 15))
	s.AddLight(lights.NewQuadLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize), // u × v points down into the box
		emissive,
	))

	return s
}
