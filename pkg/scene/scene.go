package scene

import (
	"fmt"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
	"github.com/jmseaton/pathtracer/pkg/lights"
)

// Scene contains all the elements needed for rendering. Once Preprocess has
// run it is immutable and safe for unsynchronized concurrent reads.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []core.Shape
	Lights         []lights.Light
	LightSampler   lights.LightSampler
	SamplingConfig core.SamplingConfig
	BVH            *geometry.BVH

	preprocessed bool
}

// NewScene creates an empty scene with the given camera and sampling config
func NewScene(camera *geometry.Camera, config core.SamplingConfig) *Scene {
	return &Scene{
		Camera:         camera,
		Shapes:         make([]core.Shape, 0),
		Lights:         make([]lights.Light, 0),
		SamplingConfig: config,
	}
}

// AddShape adds a shape to the scene
func (s *Scene) AddShape(shape core.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddLight adds a light to the scene. Area lights that are also shapes are
// added to the shape list so BRDF-sampled paths can hit them.
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
	if shape, ok := light.(core.Shape); ok {
		s.Shapes = append(s.Shapes, shape)
	}
}

// Preprocess validates the scene, builds the BVH, and sets up light
// sampling. It must be called before rendering; an invalid scene fails here
// rather than mid-render.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}

	for i, shape := range s.Shapes {
		if validator, ok := shape.(core.Validator); ok {
			if err := validator.Validate(); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}

	s.BVH = geometry.NewBVH(s.Shapes)

	// Infinite lights place their sample points relative to the finite
	// scene extent
	for _, light := range s.Lights {
		if setter, ok := light.(lights.WorldBoundsSetter); ok {
			setter.SetWorldBounds(s.BVH.Center, s.BVH.Radius)
		}
	}

	if s.LightSampler == nil {
		s.LightSampler = lights.NewUniformLightSampler(s.Lights)
	}

	s.preprocessed = true
	return nil
}

// Preprocessed reports whether Preprocess has completed
func (s *Scene) Preprocessed() bool {
	return s.preprocessed
}

// PrimitiveCount returns the number of shapes in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}
