//go:build manifold

package manifold

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/chazu/drawerbox/pkg/kernel"
)

var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Solid = (*solid)(nil)

// Available reports whether the binding was compiled in.
const Available = true

// solid owns a ManifoldManifold; the finalizer frees it.
type solid struct {
	ptr *C.ManifoldManifold
}

func (s *solid) BoundingBox() (min, max [3]float64) {
	bbox := C.manifold_bounding_box(C.manifold_alloc_box(), s.ptr)
	defer C.manifold_delete_box(bbox)

	min = [3]float64{
		float64(C.manifold_box_min_x(bbox)),
		float64(C.manifold_box_min_y(bbox)),
		float64(C.manifold_box_min_z(bbox)),
	}
	max = [3]float64{
		float64(C.manifold_box_max_x(bbox)),
		float64(C.manifold_box_max_y(bbox)),
		float64(C.manifold_box_max_z(bbox)),
	}
	return min, max
}

func wrap(ptr *C.ManifoldManifold) *solid {
	s := &solid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *solid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

func unwrap(s kernel.Solid) *solid {
	return s.(*solid)
}

// Kernel implements kernel.Kernel on manifoldc.
type Kernel struct{}

// New returns a Manifold kernel.
func New() (kernel.Kernel, error) {
	return &Kernel{}, nil
}

// Box returns a box with its minimum corner at the origin.
func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	return wrap(C.manifold_cube(C.manifold_alloc_manifold(),
		C.double(x), C.double(y), C.double(z),
		C.int(0), // center=false
	))
}

// Cylinder returns a cylinder along Z centered on the origin.
func (k *Kernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	return wrap(C.manifold_cylinder(C.manifold_alloc_manifold(),
		C.double(height),
		C.double(radius), C.double(radius),
		C.int(segments),
		C.int(1), // center=true
	))
}

func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(C.manifold_union(C.manifold_alloc_manifold(), unwrap(a).ptr, unwrap(b).ptr))
}

func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(C.manifold_difference(C.manifold_alloc_manifold(), unwrap(a).ptr, unwrap(b).ptr))
}

func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(C.manifold_intersection(C.manifold_alloc_manifold(), unwrap(a).ptr, unwrap(b).ptr))
}

// Compound unions the solids. Panels of an assembly touch at their joints,
// so the result is one manifold.
func (k *Kernel) Compound(solids ...kernel.Solid) kernel.Solid {
	if len(solids) == 0 {
		return nil
	}
	out := solids[0]
	for _, s := range solids[1:] {
		out = k.Union(out, s)
	}
	return out
}

func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(C.manifold_translate(C.manifold_alloc_manifold(), unwrap(s).ptr,
		C.double(x), C.double(y), C.double(z),
	))
}

// Rotate applies Euler angles in degrees, X then Y then Z.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(C.manifold_rotate(C.manifold_alloc_manifold(), unwrap(s).ptr,
		C.double(x), C.double(y), C.double(z),
	))
}

// ToMesh reads the solid back as MeshGL. Positions are the first three
// vertex properties and normals, when present, the next three.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	if s == nil {
		return nil, errors.New("manifold: nil solid")
	}

	meshGL := C.manifold_get_meshgl(C.manifold_alloc_meshgl(), unwrap(s).ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return nil, errors.New("manifold: solid produced no triangles")
	}
	numProp := int(C.manifold_meshgl_num_prop(meshGL))

	props := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties((*C.float)(unsafe.Pointer(&props[0])), meshGL)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts((*C.uint32_t)(unsafe.Pointer(&indices[0])), meshGL)

	vertices := make([]float32, numVert*3)
	var normals []float32
	if numProp >= 6 {
		normals = make([]float32, numVert*3)
	}
	for i := 0; i < numVert; i++ {
		base := i * numProp
		copy(vertices[i*3:i*3+3], props[base:base+3])
		if normals != nil {
			copy(normals[i*3:i*3+3], props[base+3:base+6])
		}
	}
	if normals == nil {
		normals = flatNormals(vertices, indices)
	}

	m := &kernel.Mesh{Vertices: vertices, Normals: normals, Indices: indices}
	if m.VertexCount() != numVert {
		return nil, fmt.Errorf("manifold: vertex count mismatch: got %d, expected %d", m.VertexCount(), numVert)
	}
	return m, nil
}
