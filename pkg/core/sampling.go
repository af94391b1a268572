package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates an independent sampler for a pixel.
// Every pixel gets its own deterministic stream so renders are reproducible
// regardless of how pixels are distributed across workers.
func NewSeededSampler(seed int64, pixelIndex int) *RandomSampler {
	// Mix the pixel index with a large odd constant so neighboring
	// pixels start from well-separated states.
	mixed := uint64(seed) ^ (uint64(pixelIndex)+1)*0x9E3779B97F4A7C15
	return &RandomSampler{random: rand.New(rand.NewSource(int64(mixed)))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// orthonormalBasis builds a tangent/bitangent pair around a unit normal
func orthonormalBasis(normal Vec3) (tangent, bitangent Vec3) {
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent = nt.Cross(normal).Normalize()
	bitangent = normal.Cross(tangent)
	return tangent, bitangent
}

// SampleCosineHemisphere generates a cosine-weighted random direction in the
// hemisphere around normal. The pdf of the returned direction is cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	// Sample a disk, then project up to the hemisphere
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := orthonormalBasis(normal)
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleCone samples a direction uniformly within a cone around direction.
// cosTotalWidth is the cosine of the cone's half angle.
func SampleCone(direction Vec3, cosTotalWidth float64, sample Vec2) Vec3 {
	u, v := orthonormalBasis(direction)

	cosTheta := 1.0 - sample.X*(1.0-cosTotalWidth)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	x := sinTheta * math.Cos(phi)
	y := sinTheta * math.Sin(phi)

	return u.Multiply(x).Add(v.Multiply(y)).Add(direction.Multiply(cosTheta))
}

// SamplePowerCosine samples a direction from a cosⁿ lobe around axis.
// The pdf of the returned direction is (n+1)/(2π)·cosⁿθ.
func SamplePowerCosine(axis Vec3, exponent float64, sample Vec2) Vec3 {
	phi := 2.0 * math.Pi * sample.X
	cosTheta := math.Pow(sample.Y, 1.0/(exponent+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	tangent, bitangent := orthonormalBasis(axis)
	return tangent.Multiply(sinTheta * math.Cos(phi)).
		Add(bitangent.Multiply(sinTheta * math.Sin(phi))).
		Add(axis.Multiply(cosTheta))
}

// SamplePointInUnitDisk generates a random point in a unit disk using
// concentric mapping, which avoids rejection sampling.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	uOffset := NewVec2(2*sample.X-1, 2*sample.Y-1)
	if uOffset.X == 0 && uOffset.Y == 0 {
		return Vec3{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}

	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}

// PowerHeuristic computes the power heuristic (β=2) weight for multiple
// importance sampling: (nf·f)² / ((nf·f)² + (ng·g)²)
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	denom := f*f + g*g
	if denom == 0 {
		return 0
	}
	return f * f / denom
}
