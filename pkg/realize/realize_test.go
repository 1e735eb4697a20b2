package realize_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/chazu/drawerbox/pkg/compose"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/kernel/kerneltest"
	"github.com/chazu/drawerbox/pkg/kernel/sdfx"
	"github.com/chazu/drawerbox/pkg/plan"
	"github.com/chazu/drawerbox/pkg/realize"
)

func cutterCount(p plan.Panel) (boxes, cylinders int) {
	for _, f := range p.Features {
		for _, c := range f.Cutters() {
			if c.Shape == plan.CutCylinder {
				cylinders++
			} else {
				boxes++
			}
		}
	}
	return boxes, cylinders
}

func TestPanelSubtractsEveryCutter(t *testing.T) {
	front, err := joinery.Build(joinery.DefaultParams(), joinery.EndSpec{Name: "front", Width: 20, Height: 7.1, Front: true})
	if err != nil {
		t.Fatal(err)
	}
	boxes, cyls := cutterCount(front)

	k := &kerneltest.Recorder{}
	s := realize.Panel(k, front)

	if got := k.Count("box"); got != boxes+1 {
		t.Errorf("box calls = %d, want %d", got, boxes+1)
	}
	if got := k.Count("cylinder"); got != cyls || cyls != 1 {
		t.Errorf("cylinder calls = %d, want %d (one pull)", got, cyls)
	}
	if got := k.Count("difference"); got != boxes+cyls {
		t.Errorf("difference calls = %d, want %d", got, boxes+cyls)
	}
	// The pull cylinder runs through the thickness: one X rotation.
	if got := k.Count("rotate"); got != 1 {
		t.Errorf("rotate calls = %d, want 1", got)
	}
	lo, hi := s.BoundingBox()
	if lo != [3]float64{} || hi != [3]float64{20, 0.6, 7.1} {
		t.Errorf("panel at origin has bounds %v %v", lo, hi)
	}
}

func TestPanelPlacement(t *testing.T) {
	rot := plan.Vec3{Z: 90}
	p := plan.Panel{
		Name: "p",
		Size: plan.Vec3{X: 1, Y: 2, Z: 3},
		Placement: plan.Placement{
			Translation: plan.Vec3{X: 5},
			Rotation:    &rot,
		},
	}
	k := &kerneltest.Recorder{}
	realize.Panel(k, p)

	calls := k.Calls()
	if len(calls) != 3 {
		t.Fatalf("calls = %v, want box, rotate, translate", calls)
	}
	for i, op := range []string{"box", "rotate", "translate"} {
		if calls[i].Op != op {
			t.Errorf("call %d = %s, want %s", i, calls[i], op)
		}
	}
}

func TestPanelSkipsIdentityPlacement(t *testing.T) {
	k := &kerneltest.Recorder{}
	realize.Panel(k, plan.Panel{Name: "p", Size: plan.Vec3{X: 1, Y: 1, Z: 1}})
	if got := len(k.Calls()); got != 1 {
		t.Errorf("calls = %v, want a single box", k.Calls())
	}
}

func TestCompound(t *testing.T) {
	a, err := compose.Drawer(joinery.DefaultParams(), 20, 30, 7.1, compose.DefaultDrawer)
	if err != nil {
		t.Fatal(err)
	}
	k := &kerneltest.Recorder{}
	s := realize.Compound(k, a)

	calls := k.Calls()
	last := calls[len(calls)-1]
	if last.Op != "compound" || last.Args[0] != 4 {
		t.Errorf("last call = %s, want compound of 4", last)
	}
	_, hi := s.BoundingBox()
	if math.Abs(hi[0]-20) > 1e-9 || math.Abs(hi[1]-30) > 1e-9 || math.Abs(hi[2]-7.1) > 1e-9 {
		t.Errorf("compound max = %v, want [20 30 7.1]", hi)
	}

	if realize.Compound(k, plan.New("empty")) != nil {
		t.Error("empty plan should compound to nil")
	}
}

func TestTessellateOrder(t *testing.T) {
	a, err := compose.Box(joinery.DefaultParams(), 40, 30, 20, []float64{10})
	if err != nil {
		t.Fatal(err)
	}
	k := &kerneltest.Recorder{}
	meshes, err := realize.Tessellate(context.Background(), k, a, realize.Options{Concurrency: 3})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(meshes) != a.Len() {
		t.Fatalf("meshes = %d, want %d", len(meshes), a.Len())
	}
	for i, m := range meshes {
		if m.PanelName != a.Panels[i].Name {
			t.Errorf("mesh %d named %q, want %q", i, m.PanelName, a.Panels[i].Name)
		}
	}
	if got := k.Count("mesh"); got != a.Len() {
		t.Errorf("mesh calls = %d, want %d", got, a.Len())
	}
}

func TestTessellateError(t *testing.T) {
	a, err := compose.Drawer(joinery.DefaultParams(), 20, 30, 7.1, compose.TrayDrawer)
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	k := &kerneltest.Recorder{MeshErr: boom}
	if _, err := realize.Tessellate(context.Background(), k, a, realize.Options{}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestTessellateCancelled(t *testing.T) {
	a, err := compose.Drawer(joinery.DefaultParams(), 20, 30, 7.1, compose.TrayDrawer)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := realize.Tessellate(ctx, &kerneltest.Recorder{}, a, realize.Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTessellateSdfx(t *testing.T) {
	if testing.Short() {
		t.Skip("meshes with sdfx")
	}
	a, err := compose.Drawer(joinery.DefaultParams(), 12, 10, 5, compose.TrayDrawer)
	if err != nil {
		t.Fatal(err)
	}
	meshes, err := realize.Tessellate(context.Background(), sdfx.New(sdfx.WithMeshCells(48)), a, realize.Options{})
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Errorf("mesh %s is empty", m.PanelName)
		}
		_, hi := m.Bounds()
		if m.PanelName == "side-right" && hi[0] < 11 {
			t.Errorf("right side ends at x=%g, want ~12", hi[0])
		}
	}
}
