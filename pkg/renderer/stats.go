package renderer

import (
	"time"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Number of pixels rendered
	TotalSamples   int           // Total samples taken across all pixels
	AverageSamples float64       // Average samples per pixel
	RenderTime     time.Duration // Wall-clock render duration
}

// PixelStats tracks sampling statistics for a single pixel. Each pixel is
// owned by exactly one worker at a time, so no synchronization is needed.
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for the final result
	LuminanceAccum   float64   // Luminance accumulator for convergence metrics
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new radiance sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// Color returns the current average radiance for this pixel
func (ps *PixelStats) Color() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the sample variance of the pixel's luminance
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := meanSq - mean*mean
	if variance < 0 {
		return 0
	}
	return variance
}
