package plan

import "testing"

func board(name string, kind PanelKind, x, y, z float64) Panel {
	return Panel{Name: name, Kind: kind, Size: Vec3{X: x, Y: y, Z: z}}
}

func TestMergePrefixesAndTranslates(t *testing.T) {
	sub := New("drawer")
	side := board("side-left", PanelSide, 0.6, 30, 8)
	side.Features = []Feature{FingerSlot{Offset: 1, Width: 0.8, Depth: 0.6}}
	sub.Add(side)

	a := New("set")
	a.Merge(sub, "level0/drawer0", Vec3{X: 1, Y: 2, Z: 3})
	a.Merge(sub, "", Vec3{Z: 10})

	if a.Len() != 2 {
		t.Fatalf("expected 2 panels, got %d", a.Len())
	}
	p, ok := a.Find("level0/drawer0/side-left")
	if !ok {
		t.Fatal("merged panel not found under prefix")
	}
	if p.Placement.Translation != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("translation = %v, want (1 2 3)", p.Placement.Translation)
	}
	if _, ok := a.Find("side-left"); !ok {
		t.Error("empty prefix should keep the original name")
	}

	// The sub-plan must not observe changes made through the merged copy.
	a.Panels[0].Features[0] = Clearance{Length: 1}
	if _, ok := sub.Panels[0].Features[0].(FingerSlot); !ok {
		t.Error("merge shared the feature slice with the sub-plan")
	}
	if !sub.Panels[0].Placement.Translation.IsZero() {
		t.Error("merge moved the sub-plan's panel")
	}
}

func TestMergeNil(t *testing.T) {
	a := New("empty")
	a.Merge(nil, "x", Vec3{X: 1})
	if a.Len() != 0 {
		t.Errorf("expected empty plan, got %d panels", a.Len())
	}
}

func TestPlacementTranslatedCopiesRotation(t *testing.T) {
	rot := Vec3{Z: 90}
	p := Placement{Rotation: &rot}
	q := p.Translated(Vec3{X: 5})
	if q.Rotation == p.Rotation {
		t.Fatal("rotation pointer shared")
	}
	if *q.Rotation != rot || q.Translation.X != 5 {
		t.Errorf("unexpected placement %+v", q)
	}
}

func TestCountAndPrefix(t *testing.T) {
	a := New("box")
	a.Add(
		board("box/side-left", PanelSide, 1, 1, 1),
		board("box/side-right", PanelSide, 1, 1, 1),
		board("box/top", PanelTop, 1, 1, 1),
		board("drawer/front", PanelEnd, 1, 1, 1),
	)
	if got := a.Count(PanelSide); got != 2 {
		t.Errorf("Count(side) = %d, want 2", got)
	}
	if got := len(a.WithPrefix("box")); got != 3 {
		t.Errorf("WithPrefix(box) = %d panels, want 3", got)
	}
}

func TestBounds(t *testing.T) {
	a := New("b")
	p1 := board("a", PanelSide, 1, 2, 3)
	p2 := board("b", PanelSide, 1, 1, 1)
	p2.Placement.Translation = Vec3{X: 4, Y: -1, Z: 0}
	a.Add(p1, p2)

	b := a.Bounds()
	if b.Min != (Vec3{X: 0, Y: -1, Z: 0}) {
		t.Errorf("min = %v", b.Min)
	}
	if b.Max() != (Vec3{X: 5, Y: 2, Z: 3}) {
		t.Errorf("max = %v", b.Max())
	}
}

func TestCutterBounds(t *testing.T) {
	c := Cutter{Shape: CutCylinder, Center: Vec3{X: 10, Y: 0, Z: 1}, Radius: 2, Height: 4, Axis: AxisY}
	b := c.Bounds()
	if b.Min != (Vec3{X: 8, Y: -2, Z: -1}) || b.Size != (Vec3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("cylinder bounds = %+v", b)
	}
}

func TestKindStrings(t *testing.T) {
	for _, k := range PanelKinds {
		if k.String() == "unknown" {
			t.Errorf("panel kind %d has no name", int(k))
		}
	}
	if PanelKind(99).String() != "unknown" {
		t.Error("out of range panel kind should be unknown")
	}
	if FeaturePullCutout.String() != "pull-cutout" {
		t.Errorf("FeaturePullCutout = %q", FeaturePullCutout.String())
	}
}
