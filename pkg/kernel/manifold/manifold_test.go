//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/drawerbox/pkg/kernel"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func assertBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol || math.Abs(max[i]-wantMax[i]) > tol {
			t.Fatalf("bounds = %v..%v, want %v..%v", min, max, wantMin, wantMax)
		}
	}
}

func TestBoxMinCorner(t *testing.T) {
	k := mustNew(t)
	assertBounds(t, k.Box(10, 20, 30), [3]float64{0, 0, 0}, [3]float64{10, 20, 30}, 1e-6)
}

func TestCylinderCentered(t *testing.T) {
	k := mustNew(t)
	min, max := k.Cylinder(20, 5, 32).BoundingBox()
	if math.Abs(min[2]+10) > 0.01 || math.Abs(max[2]-10) > 0.01 {
		t.Errorf("Z bounds = %f..%f, want -10..10", min[2], max[2])
	}
	for i := 0; i < 2; i++ {
		if min[i] > -4.5 || max[i] < 4.5 {
			t.Errorf("axis %d bounds = %f..%f, want about -5..5", i, min[i], max[i])
		}
	}
}

func TestDifferenceKeepsOuterBounds(t *testing.T) {
	k := mustNew(t)
	hole := k.Translate(k.Cylinder(20, 3, 32), 5, 5, 5)
	assertBounds(t, k.Difference(k.Box(10, 10, 10), hole), [3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1e-6)
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	moved := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	assertBounds(t, moved, [3]float64{100, 200, 300}, [3]float64{110, 210, 310}, 1e-6)
}

func TestRotate(t *testing.T) {
	k := mustNew(t)
	// A quarter turn about Z maps +X onto +Y.
	assertBounds(t, k.Rotate(k.Box(10, 2, 2), 0, 0, 90), [3]float64{-2, 0, 0}, [3]float64{0, 10, 2}, 1e-6)
}

func TestCompound(t *testing.T) {
	k := mustNew(t)
	if k.Compound() != nil {
		t.Error("empty compound should be nil")
	}
	a := k.Box(1, 1, 1)
	b := k.Translate(k.Box(1, 1, 1), 4, 0, 0)
	assertBounds(t, k.Compound(a, b), [3]float64{0, 0, 0}, [3]float64{5, 1, 1}, 1e-6)
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	mesh, err := k.ToMesh(k.Box(10, 10, 10))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh.TriangleCount() < 12 || mesh.VertexCount() < 8 {
		t.Errorf("mesh has %d vertices, %d triangles; want at least 8, 12",
			mesh.VertexCount(), mesh.TriangleCount())
	}
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("normals length = %d, vertices length = %d", len(mesh.Normals), len(mesh.Vertices))
	}
	if _, err := k.ToMesh(nil); err == nil {
		t.Error("ToMesh(nil) should fail")
	}
}
