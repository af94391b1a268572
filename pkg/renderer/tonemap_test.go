package renderer

import (
	"math"
	"testing"

	"github.com/jmseaton/pathtracer/pkg/core"
)

func TestTonemapperMap(t *testing.T) {
	tm := DefaultTonemapper()

	tests := []struct {
		name string
		in   core.Vec3
		want core.Vec3
	}{
		{"black stays black", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)},
		{"white stays white", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)},
		{"over-range clamps", core.NewVec3(10, 10, 10), core.NewVec3(1, 1, 1)},
		{"negative clamps to black", core.NewVec3(-1, -1, -1), core.NewVec3(0, 0, 0)},
		{"midtone gamma 2 is sqrt", core.NewVec3(0.25, 0.25, 0.25), core.NewVec3(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tm.Map(tt.in)
			if got.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTonemapperExposure(t *testing.T) {
	tm := Tonemapper{Exposure: 2.0, Gamma: 1.0}

	got := tm.Map(core.NewVec3(0.25, 0.25, 0.25))
	if got.Subtract(core.NewVec3(0.5, 0.5, 0.5)).Length() > 1e-9 {
		t.Errorf("Exposure 2 doubled 0.25 to %v, want 0.5", got)
	}

	// Exposure pushing over range still clamps
	got = tm.Map(core.NewVec3(0.8, 0.8, 0.8))
	if got.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-9 {
		t.Errorf("Over-exposed value = %v, want clamp to 1", got)
	}
}

func TestTonemapperAlwaysInRange(t *testing.T) {
	tm := Tonemapper{Exposure: 3.7, Gamma: 2.2}
	inputs := []core.Vec3{
		core.NewVec3(1e6, 1e6, 1e6),
		core.NewVec3(-5, 0.5, 7),
		core.NewVec3(0.001, 0.01, 0.1),
	}
	for _, in := range inputs {
		got := tm.Map(in)
		for _, v := range []float64{got.X, got.Y, got.Z} {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Errorf("Map(%v) = %v leaves [0,1]", in, got)
			}
		}
	}
}

func TestRasterRoundTrip(t *testing.T) {
	raster := NewRaster(3, 2)
	raster.Set(2, 1, core.NewVec3(0.1, 0.2, 0.3))

	got := raster.At(2, 1)
	if got.Subtract(core.NewVec3(0.1, 0.2, 0.3)).Length() > 1e-9 {
		t.Errorf("At(2,1) = %v", got)
	}
	if raster.At(0, 0) != (core.Vec3{}) {
		t.Error("Unset pixels must be black")
	}
}

func TestRasterToImage(t *testing.T) {
	raster := NewRaster(2, 1)
	raster.Set(0, 0, core.NewVec3(0, 0, 0))
	raster.Set(1, 0, core.NewVec3(1, 1, 1))

	img := raster.ToImage(Tonemapper{Exposure: 1.0, Gamma: 1.0})

	black := img.RGBAAt(0, 0)
	if black.R != 0 || black.G != 0 || black.B != 0 || black.A != 255 {
		t.Errorf("Black pixel = %v", black)
	}
	white := img.RGBAAt(1, 0)
	if white.R != 255 || white.G != 255 || white.B != 255 {
		t.Errorf("White pixel = %v", white)
	}
}
