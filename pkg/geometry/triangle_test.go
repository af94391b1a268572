package geometry

import (
	"math"
	"testing"

	"github.com/jmseaton/pathtracer/pkg/core"
)

func unitTriangle() *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)
}

func TestTriangleHit(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
		wantT   float64
	}{
		{
			name:    "interior hit",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			wantHit: true,
			wantT:   1.0,
		},
		{
			name:    "outside the triangle",
			ray:     core.NewRay(core.NewVec3(0.9, 0.9, 1), core.NewVec3(0, 0, -1)),
			wantHit: false,
		},
		{
			name:    "parallel to the plane",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			wantHit: false,
		},
		{
			name:    "behind the origin",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, -1)),
			wantHit: false,
		},
		{
			name:    "back face hit",
			ray:     core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			wantHit: true,
			wantT:   1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tri.Hit(tt.ray, 0.001, math.Inf(1))
			if isHit != tt.wantHit {
				t.Fatalf("Hit = %v, want %v", isHit, tt.wantHit)
			}
			if isHit && math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("t = %v, want %v", hit.T, tt.wantT)
			}
		})
	}
}

func TestTriangleNormalOrientation(t *testing.T) {
	tri := unitTriangle()

	// Hit from +z: geometric normal (0,0,1) faces the ray
	front := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(front, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if !hit.FrontFace || !vec3Near(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Front hit: FrontFace=%v, Normal=%v", hit.FrontFace, hit.Normal)
	}

	// Hit from -z: normal flips to oppose the ray
	back := core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1))
	hit, isHit = tri.Hit(back, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected back hit")
	}
	if hit.FrontFace || !vec3Near(hit.Normal, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Back hit: FrontFace=%v, Normal=%v", hit.FrontFace, hit.Normal)
	}
}

func TestTriangleEdgeHit(t *testing.T) {
	tri := unitTriangle()

	// Rays just inside the edges should hit
	inside := core.NewRay(core.NewVec3(0.5, 1e-7, 1), core.NewVec3(0, 0, -1))
	if _, isHit := tri.Hit(inside, 0.001, math.Inf(1)); !isHit {
		t.Error("Expected hit just inside the edge")
	}

	outside := core.NewRay(core.NewVec3(0.5, -1e-7, 1), core.NewVec3(0, 0, -1))
	if _, isHit := tri.Hit(outside, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss just outside the edge")
	}
}

func TestTriangleArea(t *testing.T) {
	if got := unitTriangle().Area(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Area = %v, want 0.5", got)
	}
}

func TestTriangleDegenerate(t *testing.T) {
	// Collinear vertices: must fail validation and never report a hit
	degenerate := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(2, 0, 0),
		testMaterial(),
	)

	if err := degenerate.Validate(); err == nil {
		t.Error("Expected validation error for collinear vertices")
	}

	ray := core.NewRay(core.NewVec3(1, 0, 1), core.NewVec3(0, 0, -1))
	if _, isHit := degenerate.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Degenerate triangle must never hit")
	}
}

func TestTriangleValidate(t *testing.T) {
	if err := unitTriangle().Validate(); err != nil {
		t.Errorf("Valid triangle failed validation: %v", err)
	}

	nan := NewTriangle(
		core.NewVec3(math.NaN(), 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)
	if err := nan.Validate(); err == nil {
		t.Error("Expected validation error for NaN vertex")
	}
}
