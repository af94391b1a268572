package material

import (
	"github.com/jmseaton/pathtracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter absorbs the path; emissive materials only emit
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit returns the emitted radiance for this material
func (e *Emissive) Emit(rayIn core.Ray) core.Vec3 {
	return e.Emission
}

// EvaluateBRDF returns zero; lights emit rather than reflect
func (e *Emissive) EvaluateBRDF(incomingDir, outgoingDir, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF returns zero; emissive materials never scatter
func (e *Emissive) PDF(incomingDir, outgoingDir, normal core.Vec3) (float64, bool) {
	return 0.0, false
}
