package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/integrator"
	"github.com/jmseaton/pathtracer/pkg/loaders"
	"github.com/jmseaton/pathtracer/pkg/material"
	"github.com/jmseaton/pathtracer/pkg/renderer"
	"github.com/jmseaton/pathtracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene type: 'default', 'cornell' or 'gltf'")
	gltfPath := flag.String("gltf", "", "Path to a glTF/GLB model (used with -scene gltf)")
	width := flag.Int("width", 400, "Image width in pixels")
	samples := flag.Int("samples", 0, "Samples per pixel (0 uses the scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum path depth (0 uses the scene default)")
	seed := flag.Int64("seed", 42, "Render seed")
	workers := flag.Int("workers", 0, "Number of render workers (0 uses all CPUs)")
	lightSampling := flag.Bool("light-sampling", true, "Sample lights directly at each bounce")
	exposure := flag.Float64("exposure", 1.0, "Tonemap exposure multiplier")
	gamma := flag.Float64("gamma", 2.0, "Tonemap gamma")
	output := flag.String("o", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Default scene with spheres and plane ground")
		fmt.Println("  cornell - Cornell box scene with quad walls and area lighting")
		fmt.Println("  gltf    - Model loaded from -gltf, framed with ground and sky")
		return
	}

	fmt.Println("Starting path tracer...")

	selectedScene, err := createScene(*sceneType, *gltfPath, *width)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	// Apply sampling overrides before preprocessing
	if *samples > 0 {
		selectedScene.SamplingConfig.SamplesPerPixel = *samples
	}
	if *maxDepth > 0 {
		selectedScene.SamplingConfig.MaxDepth = *maxDepth
	}
	selectedScene.SamplingConfig.LightSampling = *lightSampling

	if err := selectedScene.Preprocess(); err != nil {
		fmt.Printf("Error preprocessing scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scene ready: %d primitives, %d lights\n",
		selectedScene.PrimitiveCount(), selectedScene.LightSampler.GetLightCount())

	config := renderer.Config{
		Seed:       *seed,
		NumWorkers: *workers,
		Tonemap:    renderer.Tonemapper{Exposure: *exposure, Gamma: *gamma},
	}
	integ := integrator.NewPathTracingIntegrator(selectedScene.SamplingConfig)
	r := renderer.NewRenderer(selectedScene, integ, config)

	img, stats, err := r.RenderImage()
	if err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v\n", stats.RenderTime)
	fmt.Printf("Samples per pixel: %.1f (%d total)\n", stats.AverageSamples, stats.TotalSamples)

	filename := *output
	if filename == "" {
		outputDir := filepath.Join("output", *sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Printf("Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene builds the scene selected on the command line
func createScene(sceneType, gltfPath string, width int) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(width), nil
	case "cornell":
		return scene.NewCornellScene(width), nil
	case "gltf":
		if gltfPath == "" {
			return nil, fmt.Errorf("scene 'gltf' requires -gltf <path>")
		}
		mat := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
		mesh, err := loaders.LoadGLTF(gltfPath, mat)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return scene.NewMeshScene(width, mesh), nil
	default:
		return nil, fmt.Errorf("unknown scene type: %s", sceneType)
	}
}
