package material

import (
	"math"

	"github.com/df07/go-batch-pathtracer/pkg/core"
)

// Dielectric represents clear glass-like material that both reflects and refracts
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter chooses between reflection and refraction. It never absorbs and
// never tints.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	direction := rayIn.Direction

	var outwardNormal core.Vec3
	var refractionRatio, cosine float64
	if direction.Dot(hit.Normal) > 0 {
		// Exiting the medium
		outwardNormal = hit.Normal.Negate()
		refractionRatio = d.RefractiveIndex
		cosine = d.RefractiveIndex * direction.Dot(hit.Normal) / direction.Length()
	} else {
		// Entering the medium
		outwardNormal = hit.Normal
		refractionRatio = 1.0 / d.RefractiveIndex
		cosine = -direction.Dot(hit.Normal) / direction.Length()
	}

	reflectProbability := 1.0
	refracted, canRefract := Refract(direction, outwardNormal, refractionRatio)
	if canRefract {
		reflectProbability = Schlick(cosine, d.RefractiveIndex)
	}

	var scattered core.Ray
	if sampler.Get1D() < reflectProbability {
		scattered = core.NewRay(hit.Point, Reflect(direction, hit.Normal))
	} else {
		scattered = core.NewRay(hit.Point, refracted)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with normal n using Snell's law.
// It reports false when the refraction discriminant is not positive (total
// internal reflection).
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1.0-dt*dt)
	if !(discriminant > 0) {
		return core.Vec3{}, false
	}

	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).
		Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Schlick approximates Fresnel reflectance for the given incidence cosine
func Schlick(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
