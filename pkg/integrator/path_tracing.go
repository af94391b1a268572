package integrator

import (
	"math"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/lights"
	"github.com/jmseaton/pathtracer/pkg/scene"
)

// Intersection epsilon: secondary rays start slightly off the surface to
// avoid self-intersection.
const shadowEpsilon = 1e-3

// Throughput below this contributes nothing measurable; the path stops early
const minThroughput = 1e-6

// PathTracingIntegrator implements unidirectional path tracing with
// optional next-event estimation. The estimator loop is iterative with an
// explicit path state, so stack depth stays constant and Russian roulette
// termination is a plain loop exit.
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// pathState carries everything a path needs between bounces
type pathState struct {
	ray        core.Ray
	throughput core.Vec3
	specular   bool      // previous bounce was specular (or the camera)
	bsdfPDF    float64   // pdf of the bounce that produced ray
	prevPoint  core.Vec3 // surface point of the previous bounce
	prevNormal core.Vec3 // surface normal of the previous bounce
}

// RayColor estimates the radiance arriving along ray. The estimate is
// unbiased: emission picked up by BRDF-sampled hits and by next-event
// estimation is combined with the power heuristic so neither is counted
// twice, and Russian roulette compensates surviving paths by its survival
// probability.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	state := pathState{
		ray:        ray,
		throughput: core.NewVec3(1, 1, 1),
		specular:   true,
	}

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := s.BVH.Hit(state.ray, shadowEpsilon, math.Inf(1))
		if !isHit {
			radiance = radiance.Add(pt.environmentRadiance(s, &state))
			break
		}

		// Emission from the hit surface. One-sided lights emit from the
		// front face only.
		if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive && hit.FrontFace {
			weight := pt.emissionWeight(s, &state)
			emitted := emitter.Emit(state.ray)
			radiance = radiance.Add(state.throughput.MultiplyVec(emitted).Multiply(weight))
		}

		scatter, didScatter := hit.Material.Scatter(state.ray, *hit, sampler)
		if !didScatter {
			break
		}

		// Next-event estimation at non-specular hits
		if pt.config.LightSampling && !scatter.IsSpecular() {
			direct := pt.sampleDirectLighting(s, state.ray, hit, sampler)
			radiance = radiance.Add(state.throughput.MultiplyVec(direct))
		}

		if scatter.IsSpecular() {
			state.throughput = state.throughput.MultiplyVec(scatter.Attenuation)
			state.specular = true
			state.bsdfPDF = 0
		} else {
			direction := scatter.Scattered.Direction.Normalize()
			cosine := direction.Dot(hit.Normal)
			if cosine <= 0 || scatter.PDF <= 0 {
				break
			}
			// attenuation·cos/pdf; for Lambertian this reduces to the albedo
			state.throughput = state.throughput.
				MultiplyVec(scatter.Attenuation).
				Multiply(cosine / scatter.PDF)
			state.specular = false
			state.bsdfPDF = scatter.PDF
		}

		if state.throughput.MaxComponent() < minThroughput {
			break
		}

		// Russian roulette once the path is deep enough. Survival
		// probability is clamped away from zero so the compensation factor
		// stays bounded.
		if depth+1 >= pt.config.RussianRouletteMinBounces {
			survivalProb := math.Min(0.95, math.Max(0.5, state.throughput.Luminance()))
			if sampler.Get1D() > survivalProb {
				break
			}
			state.throughput = state.throughput.Multiply(1.0 / survivalProb)
		}

		state.prevPoint = hit.Point
		state.prevNormal = hit.Normal
		state.ray = core.NewRay(hit.Point, scatter.Scattered.Direction.Normalize())
	}

	return radiance
}

// environmentRadiance accumulates emission from infinite lights for a ray
// that left the scene, MIS-weighted against light sampling when the
// previous bounce could have sampled those lights directly.
func (pt *PathTracingIntegrator) environmentRadiance(s *scene.Scene, state *pathState) core.Vec3 {
	total := core.Vec3{}
	for _, light := range s.Lights {
		if light.Type() != lights.LightTypeInfinite {
			continue
		}
		emitted := light.Emit(state.ray)
		total = total.Add(emitted)
	}
	if total == (core.Vec3{}) {
		return total
	}

	weight := pt.emissionWeight(s, state)
	return state.throughput.MultiplyVec(total).Multiply(weight)
}

// emissionWeight returns the MIS weight for emission reached by a
// BRDF-sampled ray. Specular bounces and camera rays cannot be reached by
// light sampling, so they take the full contribution.
func (pt *PathTracingIntegrator) emissionWeight(s *scene.Scene, state *pathState) float64 {
	if !pt.config.LightSampling || state.specular {
		return 1.0
	}
	lightPDF := lights.CalculateLightPDF(s.Lights, s.LightSampler, state.prevPoint, state.prevNormal, state.ray.Direction)
	return core.PowerHeuristic(1, state.bsdfPDF, 1, lightPDF)
}

// sampleDirectLighting samples one light, traces a shadow ray, and returns
// the MIS-weighted direct contribution (already divided by the light pdf,
// not yet multiplied by path throughput).
func (pt *PathTracingIntegrator) sampleDirectLighting(s *scene.Scene, rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) core.Vec3 {
	lightSample, ok := lights.SampleLight(s.Lights, s.LightSampler, hit.Point, hit.Normal, sampler)
	if !ok || lightSample.PDF <= 0 {
		return core.Vec3{}
	}

	cosine := lightSample.Direction.Dot(hit.Normal)
	if cosine <= 0 {
		return core.Vec3{}
	}

	// Shadow ray, clipped just short of the light sample
	shadowRay := core.NewRay(hit.Point, lightSample.Direction)
	shadowTMax := lightSample.Distance - shadowEpsilon
	if math.IsInf(lightSample.Distance, 1) {
		shadowTMax = math.Inf(1)
	}
	if _, blocked := s.BVH.Hit(shadowRay, shadowEpsilon, shadowTMax); blocked {
		return core.Vec3{}
	}

	brdf := hit.Material.EvaluateBRDF(rayIn.Direction, lightSample.Direction, hit.Normal)
	materialPDF, isDelta := hit.Material.PDF(rayIn.Direction, lightSample.Direction, hit.Normal)
	if isDelta {
		return core.Vec3{}
	}

	misWeight := core.PowerHeuristic(1, lightSample.PDF, 1, materialPDF)

	return brdf.
		MultiplyVec(lightSample.Emission).
		Multiply(cosine * misWeight / lightSample.PDF)
}
