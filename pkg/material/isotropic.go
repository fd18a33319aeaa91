package material

import (
	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in every direction.
type Isotropic struct {
	Albedo ColorSource
}

// NewIsotropic creates an isotropic material with the given albedo texture
func NewIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a random (unnormalized) direction and always scatters
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.RandomInUnitSphere(sampler)),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
