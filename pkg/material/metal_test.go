package material

import (
	"math/rand"
	"testing"

	"github.com/jmseaton/pathtracer/pkg/core"
)

func TestMirrorReflection(t *testing.T) {
	mirror := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 1, 0)
	hit := testHit(normal)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize())

	result, scatters := mirror.Scatter(rayIn, hit, sampler)
	if !scatters {
		t.Fatal("Mirror must scatter for above-surface reflections")
	}
	if !result.IsSpecular() {
		t.Fatal("Mirror scatter must be specular")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Reflected direction = %v, want %v", result.Scattered.Direction, expected)
	}
	if result.Attenuation.Subtract(core.NewVec3(0.9, 0.9, 0.9)).Length() > 1e-9 {
		t.Errorf("Attenuation = %v, want albedo", result.Attenuation)
	}
}

func TestMetalFuzz(t *testing.T) {
	fuzzy := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 1, 0)
	hit := testHit(normal)
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	ideal := core.NewVec3(1, 1, 0).Normalize()

	spread := false
	for i := 0; i < 100; i++ {
		result, scatters := fuzzy.Scatter(rayIn, hit, sampler)
		if !scatters {
			continue // absorbed below-surface perturbation
		}
		deviation := result.Scattered.Direction.Subtract(ideal).Length()
		if deviation > 1e-9 {
			spread = true
		}
		// Fuzz radius bounds the deviation from the ideal reflection
		if deviation > 2*0.3+1e-9 {
			t.Fatalf("Deviation %v exceeds fuzz bound", deviation)
		}
	}
	if !spread {
		t.Error("Expected fuzz to perturb reflections")
	}
}

func TestMetalAbsorbsGrazingFuzz(t *testing.T) {
	// Maximum fuzz at grazing incidence pushes some reflections below the
	// surface; those must be absorbed, never scattered downward
	fuzzy := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 1, 0)
	hit := testHit(normal)
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0).Normalize())

	absorbed := 0
	for i := 0; i < 200; i++ {
		result, scatters := fuzzy.Scatter(rayIn, hit, sampler)
		if !scatters {
			absorbed++
			continue
		}
		if result.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatal("Scattered ray below the surface")
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing reflections to be absorbed")
	}
}

func TestMetalFuzzClamped(t *testing.T) {
	if m := NewMetal(core.NewVec3(1, 1, 1), 2.0); m.Fuzzness != 1.0 {
		t.Errorf("Fuzzness = %v, want clamp to 1", m.Fuzzness)
	}
	if m := NewMetal(core.NewVec3(1, 1, 1), -1.0); m.Fuzzness != 0.0 {
		t.Errorf("Fuzzness = %v, want clamp to 0", m.Fuzzness)
	}
}

func TestMetalPDFIsDelta(t *testing.T) {
	mirror := NewMirror(core.NewVec3(1, 1, 1))
	pdf, isDelta := mirror.PDF(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	if pdf != 0 || !isDelta {
		t.Errorf("PDF = (%v, %v), want (0, true)", pdf, isDelta)
	}
}

func TestMetalEvaluateBRDF(t *testing.T) {
	mirror := NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(1, -1, 0).Normalize()
	reflection := core.NewVec3(1, 1, 0).Normalize()

	if got := mirror.EvaluateBRDF(incoming, reflection, normal); got.Subtract(core.NewVec3(0.9, 0.9, 0.9)).Length() > 1e-9 {
		t.Errorf("BRDF along the exact reflection = %v, want albedo", got)
	}
	if got := mirror.EvaluateBRDF(incoming, core.NewVec3(0, 1, 0), normal); got.Length() != 0 {
		t.Errorf("Expected zero BRDF off the reflection, got %v", got)
	}
}
