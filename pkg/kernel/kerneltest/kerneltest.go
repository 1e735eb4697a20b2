// Package kerneltest provides a recording kernel.Kernel for tests.
package kerneltest

import (
	"fmt"
	"sync"

	"github.com/chazu/drawerbox/pkg/kernel"
)

var _ kernel.Kernel = (*Recorder)(nil)

// Solid is an axis-aligned box standing in for a real solid. Booleans keep
// the bounds of their first operand; Compound takes the union of bounds.
type Solid struct {
	Min, Max [3]float64
}

func (s *Solid) BoundingBox() (min, max [3]float64) {
	return s.Min, s.Max
}

// Call is one recorded kernel operation.
type Call struct {
	Op   string
	Args []float64
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Recorder records every call it receives. It is safe for concurrent use.
// ToMesh returns a two-triangle mesh spanning the solid's bounds, or MeshErr
// when set.
type Recorder struct {
	MeshErr error

	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(op string, args ...float64) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Args: args})
	r.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Box(x, y, z float64) kernel.Solid {
	r.record("box", x, y, z)
	return &Solid{Max: [3]float64{x, y, z}}
}

func (r *Recorder) Cylinder(height, radius float64, segments int) kernel.Solid {
	r.record("cylinder", height, radius, float64(segments))
	return &Solid{
		Min: [3]float64{-radius, -radius, -height / 2},
		Max: [3]float64{radius, radius, height / 2},
	}
}

func (r *Recorder) Union(a, _ kernel.Solid) kernel.Solid {
	r.record("union")
	return a
}

func (r *Recorder) Difference(a, _ kernel.Solid) kernel.Solid {
	r.record("difference")
	return a
}

func (r *Recorder) Intersection(a, _ kernel.Solid) kernel.Solid {
	r.record("intersection")
	return a
}

func (r *Recorder) Compound(solids ...kernel.Solid) kernel.Solid {
	r.record("compound", float64(len(solids)))
	if len(solids) == 0 {
		return nil
	}
	out := &Solid{}
	out.Min, out.Max = solids[0].BoundingBox()
	for _, s := range solids[1:] {
		lo, hi := s.BoundingBox()
		for i := range 3 {
			out.Min[i] = min(out.Min[i], lo[i])
			out.Max[i] = max(out.Max[i], hi[i])
		}
	}
	return out
}

func (r *Recorder) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	r.record("translate", x, y, z)
	lo, hi := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := range 3 {
		lo[i] += d[i]
		hi[i] += d[i]
	}
	return &Solid{Min: lo, Max: hi}
}

func (r *Recorder) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	r.record("rotate", x, y, z)
	return s
}

func (r *Recorder) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	r.record("mesh")
	if r.MeshErr != nil {
		return nil, r.MeshErr
	}
	lo, hi := s.BoundingBox()
	v := func(a [3]float64) []float32 {
		return []float32{float32(a[0]), float32(a[1]), float32(a[2])}
	}
	verts := append(v(lo), v(hi)...)
	verts = append(verts, v([3]float64{hi[0], lo[1], lo[2]})...)
	verts = append(verts, v([3]float64{lo[0], hi[1], hi[2]})...)
	return &kernel.Mesh{
		Vertices: verts,
		Normals:  make([]float32, len(verts)),
		Indices:  []uint32{0, 1, 2, 0, 3, 1},
	}, nil
}
