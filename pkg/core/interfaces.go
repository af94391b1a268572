package core

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection within the half-open interval
// [tMin, tMax); a ray with tMin == tMax can never report a hit.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// Validator is implemented by shapes that can detect degenerate geometry.
// Scene construction rejects invalid shapes before rendering starts.
type Validator interface {
	Validate() error
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter samples a continuation direction for a path arriving at hit.
	// Returns false when the path is absorbed.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
	EvaluateBRDF(incomingDir, outgoingDir, normal Vec3) Vec3

	// PDF returns the sampling probability density for an outgoing direction,
	// and whether the material is a delta function (perfectly specular)
	PDF(incomingDir, outgoingDir, normal Vec3) (pdf float64, isDelta bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn Ray) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray     // The scattered ray (unit direction)
	Attenuation Vec3    // BRDF value for the sampled direction
	PDF         float64 // Sampling probability density (0 for specular materials)
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, facing the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// SamplingConfig controls the Monte Carlo estimator
type SamplingConfig struct {
	SamplesPerPixel           int  // Number of rays per pixel
	MaxDepth                  int  // Hard cap on path length
	RussianRouletteMinBounces int  // Bounces before Russian roulette may terminate a path
	LightSampling             bool // Enable next-event estimation with MIS
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:           100,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 5,
		LightSampling:             true,
	}
}
