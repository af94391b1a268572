package renderer

import (
	"image"
	"image/color"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Raster is a dense width×height buffer of linear radiance values. It is
// the renderer's output, handed to an encoder (or the tonemapper) for
// display.
type Raster struct {
	Width  int
	Height int
	Pix    []core.Vec3 // row-major, Pix[y*Width+x]
}

// NewRaster creates a zeroed raster
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// At returns the linear radiance at (x, y)
func (r *Raster) At(x, y int) core.Vec3 {
	return r.Pix[y*r.Width+x]
}

// Set stores the linear radiance at (x, y)
func (r *Raster) Set(x, y int, c core.Vec3) {
	r.Pix[y*r.Width+x] = c
}

// ToImage tonemaps the raster into an 8-bit RGBA image
func (r *Raster) ToImage(tm Tonemapper) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			mapped := tm.Map(r.At(x, y))
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255*mapped.X + 0.5),
				G: uint8(255*mapped.Y + 0.5),
				B: uint8(255*mapped.Z + 0.5),
				A: 255,
			})
		}
	}
	return img
}
