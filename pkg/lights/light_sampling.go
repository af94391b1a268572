package lights

import (
	"github.com/jmseaton/pathtracer/pkg/core"
)

// SampleLight selects and samples a light for direct lighting. The returned
// sample's PDF already includes the light selection probability, so it can
// be used directly in MIS weights.
func SampleLight(lights []Light, lightSampler LightSampler, point core.Vec3, normal core.Vec3, sampler core.Sampler) (LightSample, bool) {
	if len(lights) == 0 {
		return LightSample{}, false
	}
	selectedLight, selectionPDF, _ := lightSampler.SampleLight(point, normal, sampler.Get1D())
	if selectedLight == nil || selectionPDF <= 0 {
		return LightSample{}, false
	}

	sample := selectedLight.Sample(point, normal, sampler.Get2D())
	sample.PDF *= selectionPDF

	return sample, true
}

// CalculateLightPDF returns the combined solid-angle density of sampling the
// given direction via light sampling, summed over all lights weighted by
// their selection probability. This is the light-strategy density the
// integrator needs when weighting a BRDF-sampled hit against light sampling.
func CalculateLightPDF(lights []Light, lightSampler LightSampler, point, normal, direction core.Vec3) float64 {
	if len(lights) == 0 {
		return 0.0
	}

	totalPDF := 0.0
	for i, light := range lights {
		lightPDF := light.PDF(point, normal, direction)
		selectionPDF := lightSampler.GetLightProbability(i, point, normal)
		totalPDF += lightPDF * selectionPDF
	}

	return totalPDF
}
