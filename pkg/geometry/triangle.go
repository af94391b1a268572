package geometry

import (
	"fmt"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   core.Material // Material of the triangle
	normal     core.Vec3     // Cached geometric normal
	bbox       core.AABB     // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// NewTriangleWithNormal creates a new triangle with a custom shading normal
func NewTriangleWithNormal(v0, v1, v2 core.Vec3, normal core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   normal.Normalize(),
	}
	t.computeBoundingBox()
	return t
}

func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return 0.5 * edge1.Cross(edge2).Length()
}

// Validate rejects zero-area triangles at scene construction time
func (t *Triangle) Validate() error {
	if t.Material == nil {
		return fmt.Errorf("triangle at %v has no material", t.V0)
	}
	if t.Area() < degenerateTriangleArea {
		return fmt.Errorf("degenerate triangle with vertices %v, %v, %v", t.V0, t.V1, t.V2)
	}
	if !t.V0.IsFinite() || !t.V1.IsFinite() || !t.V2.IsFinite() {
		return fmt.Errorf("triangle has non-finite vertex")
	}
	return nil
}

// degenerateTriangleArea is the area below which a triangle is treated as
// degenerate; such triangles cannot produce a stable normal.
const degenerateTriangleArea = 1e-12

// Hit tests if a ray intersects the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-9

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Determinant near zero: ray is parallel to the triangle plane
	// (or the triangle is degenerate, which then always misses)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam >= tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
