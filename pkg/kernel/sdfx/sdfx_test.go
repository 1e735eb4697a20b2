package sdfx

import (
	"math"
	"testing"
)

// Small cell counts keep these tests fast; they only check shape, not
// surface quality.
func newTestKernel() *Kernel {
	return New(WithMeshCells(40))
}

func checkBounds(t *testing.T, gotMin, gotMax, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(gotMin[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, want ~%f", i, gotMin[i], wantMin[i])
		}
		if math.Abs(gotMax[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, want ~%f", i, gotMax[i], wantMax[i])
		}
	}
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{"default", nil, DefaultMeshCells},
		{"custom", []Option{WithMeshCells(64)}, 64},
		{"ignored", []Option{WithMeshCells(0)}, DefaultMeshCells},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts...).MeshCells(); got != tt.want {
				t.Errorf("MeshCells() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBoxMinCorner(t *testing.T) {
	k := newTestKernel()
	min, max := k.Box(100, 50, 25).BoundingBox()
	checkBounds(t, min, max, [3]float64{0, 0, 0}, [3]float64{100, 50, 25}, 0.01)
}

func TestBoxMesh(t *testing.T) {
	k := newTestKernel()
	mesh, err := k.ToMesh(k.Box(10, 0.6, 7))
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices %d != normals %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices %d != 3 * triangles %d", len(mesh.Indices), mesh.TriangleCount())
	}
	lo, hi := mesh.Bounds()
	if lo[0] < -0.5 || hi[0] > 10.5 {
		t.Errorf("mesh x range [%g, %g] outside the box", lo[0], hi[0])
	}
}

func TestCylinderCentered(t *testing.T) {
	k := newTestKernel()
	min, max := k.Cylinder(4, 2, 32).BoundingBox()
	checkBounds(t, min, max, [3]float64{-2, -2, -2}, [3]float64{2, 2, 2}, 0.01)
}

func TestDifferenceAddsTriangles(t *testing.T) {
	k := newTestKernel()
	box := k.Box(20, 20, 20)
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box): %v", err)
	}
	hole := k.Translate(k.Cylinder(30, 4, 32), 10, 10, 10)
	diffMesh, err := k.ToMesh(k.Difference(box, hole))
	if err != nil {
		t.Fatalf("ToMesh(diff): %v", err)
	}
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Errorf("difference has %d triangles, box has %d", diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestTranslate(t *testing.T) {
	k := newTestKernel()
	min, max := k.Translate(k.Box(10, 10, 10), 100, 200, 300).BoundingBox()
	checkBounds(t, min, max, [3]float64{100, 200, 300}, [3]float64{110, 210, 310}, 0.01)
}

func TestRotate(t *testing.T) {
	k := newTestKernel()
	min, max := k.Rotate(k.Box(100, 10, 10), 0, 0, 90).BoundingBox()
	if x := max[0] - min[0]; math.Abs(x-10) > 1 {
		t.Errorf("rotated X extent = %f, want ~10", x)
	}
	if y := max[1] - min[1]; math.Abs(y-100) > 1 {
		t.Errorf("rotated Y extent = %f, want ~100", y)
	}
}

func TestUnionAndIntersection(t *testing.T) {
	k := newTestKernel()
	a := k.Box(50, 50, 50)
	b := k.Translate(k.Box(50, 50, 50), 30, 0, 0)

	min, max := k.Union(a, b).BoundingBox()
	checkBounds(t, min, max, [3]float64{0, 0, 0}, [3]float64{80, 50, 50}, 0.01)

	mesh, err := k.ToMesh(k.Intersection(a, b))
	if err != nil {
		t.Fatalf("ToMesh(intersection): %v", err)
	}
	lo, hi := mesh.Bounds()
	if lo[0] < 27 || hi[0] > 53 {
		t.Errorf("intersection x range [%g, %g], want ~[30, 50]", lo[0], hi[0])
	}
}

func TestCompound(t *testing.T) {
	k := newTestKernel()
	if k.Compound() != nil {
		t.Error("empty compound should be nil")
	}
	one := k.Box(1, 1, 1)
	if k.Compound(one) != one {
		t.Error("single compound should return its solid")
	}
	c := k.Compound(
		k.Box(0.6, 30, 7),
		k.Translate(k.Box(0.6, 30, 7), 19.4, 0, 0),
		k.Translate(k.Box(20, 0.6, 7), 0, 0, 0),
	)
	min, max := c.BoundingBox()
	checkBounds(t, min, max, [3]float64{0, 0, 0}, [3]float64{20, 30, 7}, 0.01)
}

func TestToMeshNil(t *testing.T) {
	if _, err := newTestKernel().ToMesh(nil); err == nil {
		t.Error("ToMesh(nil) should fail")
	}
}
