package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/jmseaton/pathtracer/pkg/core"
	"github.com/jmseaton/pathtracer/pkg/geometry"
)

// LoadGLTF loads the triangle geometry of a glTF or GLB file into a mesh
// with the given material. Only triangle primitives are considered; lines
// and points are skipped.
func LoadGLTF(path string, material core.Material) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return MeshFromDocument(doc, material)
}

// MeshFromDocument builds a triangle mesh from an already parsed glTF
// document
func MeshFromDocument(doc *gltf.Document, material core.Material) (*geometry.TriangleMesh, error) {
	var vertices []core.Vec3
	var faces []int

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			positions, err := readVec3Accessor(doc, int(posIdx))
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			baseVertex := len(vertices)
			vertices = append(vertices, positions...)

			if prim.Indices != nil {
				indices, err := readIndices(doc, int(*prim.Indices))
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					faces = append(faces,
						baseVertex+indices[i],
						baseVertex+indices[i+1],
						baseVertex+indices[i+2],
					)
				}
			} else {
				// No index buffer: positions are sequential triangles
				for i := 0; i+2 < len(positions); i += 3 {
					faces = append(faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
				}
			}
		}
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("document contains no triangle geometry")
	}

	return geometry.NewTriangleMesh(vertices, faces, material, nil)
}

// readVec3Accessor reads Vec3 data from a glTF accessor
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < int(accessor.Count); i++ {
		offset := start + i*stride
		result[i] = core.NewVec3(
			float64(readFloat32(bufData[offset:])),
			float64(readFloat32(bufData[offset+4:])),
			float64(readFloat32(bufData[offset+8:])),
		)
	}

	return result, nil
}

// readIndices reads a scalar index accessor as ints
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var componentSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := 0; i < int(accessor.Count); i++ {
		offset := start + i*stride
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result[i] = int(bufData[offset])
		case gltf.ComponentUshort:
			result[i] = int(uint16(bufData[offset]) | uint16(bufData[offset+1])<<8)
		case gltf.ComponentUint:
			result[i] = int(uint32(bufData[offset]) |
				uint32(bufData[offset+1])<<8 |
				uint32(bufData[offset+2])<<16 |
				uint32(bufData[offset+3])<<24)
		}
	}

	return result, nil
}

// accessorBytes resolves an accessor to its backing bytes, start offset,
// and element stride. Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers are not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start := int(bufferView.ByteOffset) + int(accessor.ByteOffset)
	stride := int(bufferView.ByteStride)
	if stride == 0 {
		stride = elementSize
	}

	end := start + (int(accessor.Count)-1)*stride + elementSize
	if end > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor overruns buffer: need %d bytes, have %d", end, len(buffer.Data))
	}

	return buffer.Data, start, stride, nil
}

// readFloat32 reads a little-endian float32
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
