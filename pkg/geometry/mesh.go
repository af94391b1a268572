package geometry

import (
	"fmt"

	"github.com/jmseaton/pathtracer/pkg/core"
)

// TriangleMesh represents a collection of triangles with an internal BVH
// for fast ray intersection.
type TriangleMesh struct {
	triangles []core.Shape
	bvh       *BVH
	bbox      core.AABB
	material  core.Material
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3     // Optional custom normals, one per triangle
	Materials []core.Material // Optional per-triangle materials
}

// NewTriangleMesh creates a triangle mesh from vertices and face indices.
// Each consecutive group of 3 indices forms one triangle. Zero-area faces
// are skipped so they can never reach the intersection code.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil {
		if options.Normals != nil && len(options.Normals) != numTriangles {
			return nil, fmt.Errorf("got %d normals for %d triangles", len(options.Normals), numTriangles)
		}
		if options.Materials != nil && len(options.Materials) != numTriangles {
			return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
		}
	}

	triangles := make([]core.Shape, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			return nil, fmt.Errorf("face %d references vertex out of range", i)
		}

		triangleMaterial := material
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		var triangle *Triangle
		if options != nil && options.Normals != nil {
			triangle = NewTriangleWithNormal(vertices[i0], vertices[i1], vertices[i2], options.Normals[i], triangleMaterial)
		} else {
			triangle = NewTriangle(vertices[i0], vertices[i1], vertices[i2], triangleMaterial)
		}

		// Degenerate faces are dropped rather than rejected; meshes from
		// loaders routinely contain a few
		if triangle.Area() < degenerateTriangleArea {
			continue
		}
		triangles = append(triangles, triangle)
	}

	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh has no non-degenerate triangles")
	}

	mesh := &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
		material:  material,
	}
	mesh.bbox = mesh.bvh.BoundingBox()

	return mesh, nil
}

// Validate checks that the mesh is renderable
func (m *TriangleMesh) Validate() error {
	if len(m.triangles) == 0 {
		return fmt.Errorf("mesh has no triangles")
	}
	for _, t := range m.triangles {
		if v, ok := t.(core.Validator); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}

// Hit tests if a ray intersects any triangle in the mesh
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the whole mesh
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bbox
}
