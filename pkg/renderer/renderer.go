package renderer

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/integrator"
	"github.com/jmseaton/pathtracer/pkg/scene"
)

// Config controls the rendering driver
type Config struct {
	Seed       int64      // Base seed for per-pixel generators
	NumWorkers int        // Worker goroutines (0 = GOMAXPROCS)
	TileSize   int        // Square tile edge in pixels
	Tonemap    Tonemapper // Output mapping for ToImage
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Seed:     42,
		TileSize: 32,
		Tonemap:  DefaultTonemapper(),
	}
}

// Renderer drives the render: it partitions the image into tiles, feeds
// them to a worker pool, and collects per-pixel accumulators into a linear
// radiance raster.
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
}

// NewRenderer creates a renderer for a preprocessed scene
func NewRenderer(s *scene.Scene, integ integrator.Integrator, config Config) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = 32
	}
	return &Renderer{
		scene:      s,
		integrator: integ,
		config:     config,
	}
}

// Render runs the full sample loop for every pixel and returns the linear
// radiance raster. Pixels are independent: workers share only read-only
// scene data, and each pixel's sampler is seeded from the render seed and
// the pixel index, so the result does not depend on worker count.
func (r *Renderer) Render() (*Raster, RenderStats, error) {
	if !r.scene.Preprocessed() {
		return nil, RenderStats{}, fmt.Errorf("scene must be preprocessed before rendering")
	}

	camera := r.scene.Camera
	width, height := camera.Width(), camera.Height()
	samplesPerPixel := r.scene.SamplingConfig.SamplesPerPixel
	if samplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("samples per pixel must be positive, got %d", samplesPerPixel)
	}

	pixelStats := make([][]PixelStats, height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, width)
	}

	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()

	tiles := splitTiles(width, height, r.config.TileSize)
	taskQueue := make(chan image.Rectangle, len(tiles))
	for _, tile := range tiles {
		taskQueue <- tile
	}
	close(taskQueue)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range taskQueue {
				// Tiles never overlap, so writing this tile's rows of the
				// shared stats grid is safe without locks
				r.renderTile(tile, samplesPerPixel, pixelStats)
			}
		}()
	}
	wg.Wait()

	raster := NewRaster(width, height)
	totalSamples := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ps := &pixelStats[y][x]
			raster.Set(x, y, ps.Color())
			totalSamples += ps.SampleCount
		}
	}

	stats := RenderStats{
		TotalPixels:    width * height,
		TotalSamples:   totalSamples,
		AverageSamples: float64(totalSamples) / float64(width*height),
		RenderTime:     time.Since(start),
	}

	return raster, stats, nil
}

// RenderImage renders and tonemaps in one call
func (r *Renderer) RenderImage() (*image.RGBA, RenderStats, error) {
	raster, stats, err := r.Render()
	if err != nil {
		return nil, stats, err
	}
	return raster.ToImage(r.config.Tonemap), stats, nil
}

// renderTile runs the sample loop for every pixel in the tile bounds
func (r *Renderer) renderTile(bounds image.Rectangle, samplesPerPixel int, pixelStats [][]PixelStats) {
	camera := r.scene.Camera
	width := camera.Width()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			sampler := core.NewSeededSampler(r.config.Seed, j*width+i)
			ps := &pixelStats[j][i]
			for sample := 0; sample < samplesPerPixel; sample++ {
				ray := camera.GetRay(i, j, sampler)
				ps.AddSample(r.integrator.RayColor(ray, r.scene, sampler))
			}
		}
	}
}

// splitTiles partitions the image into non-overlapping tiles
func splitTiles(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			tiles = append(tiles, image.Rect(
				x, y,
				min(x+tileSize, width),
				min(y+tileSize, height),
			))
		}
	}
	return tiles
}
