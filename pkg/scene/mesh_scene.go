package scene

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
	"github.com/jmseaton/pathtracer/pkg/lights"
	"github.com/jmseaton/pathtracer/pkg/material"
)

// NewMeshScene frames an arbitrary shape (typically a loaded triangle mesh)
// with a ground plane and gradient sky. The camera is positioned from the
// shape's bounding box so models of any scale render sensibly.
func NewMeshScene(width int, mesh core.Shape) *Scene {
	bounds := mesh.BoundingBox()
	center := bounds.Center()
	size := bounds.Size()

	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent <= 0 {
		extent = 1.0
	}

	cameraConfig := geometry.CameraConfig{
		Center:      center.Add(core.NewVec3(0, extent*0.5, extent*2.0)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		Width:       width,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
		Aperture:    0.0,
	}

	config := core.DefaultSamplingConfig()
	s := NewScene(geometry.NewCamera(cameraConfig), config)

	s.AddShape(mesh)

	// Ground quad just under the model, wide enough to catch its shadow
	groundSize := extent * 10
	groundY := bounds.Min.Y - extent*0.001
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddShape(geometry.NewQuad(
		core.NewVec3(center.X-groundSize/2, groundY, center.Z-groundSize/2),
		core.NewVec3(groundSize, 0, 0),
		core.NewVec3(0, 0, groundSize),
		ground,
	))

	s.AddLight(lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0),
		core.NewVec3(1.0, 1.0, 1.0),
	))

	return s
}
