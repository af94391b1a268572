package geometry

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// CameraConfig describes a thin-lens perspective camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens aperture diameter (0 = pinhole)
	FocusDistance float64   // Focus distance (0 = distance to LookAt)
}

// Camera generates primary rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // Camera basis vectors for lens sampling
	lensRadius      float64
	width, height   int
}

// NewCamera creates a camera from a config
func NewCamera(config CameraConfig) *Camera {
	height := int(float64(config.Width) / config.AspectRatio)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}
	if focusDistance <= 0 {
		focusDistance = 1.0
	}

	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		width:           config.Width,
		height:          height,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// GetRay generates a ray through pixel (i, j) with sub-pixel jitter for
// antialiasing and, when the aperture is non-zero, a lens offset for
// depth of field.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.width)
	t := 1.0 - (float64(j)+jitter.Y)/float64(c.height) // image y grows downward

	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin).
		Normalize()

	return core.NewRay(origin, direction)
}
