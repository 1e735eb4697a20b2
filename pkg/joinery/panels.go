package joinery

import (
	"fmt"

	"github.com/chazu/drawerbox/pkg/plan"
)

// ---------------------------------------------------------------------------
// Panel specs
// ---------------------------------------------------------------------------

// PanelSpec describes one panel to build. Implementations are the *Spec
// types in this package; Build dispatches on them.
type PanelSpec interface {
	Kind() plan.PanelKind
	panelSpec() // marker method restricting implementations to this package
}

// SideStyle selects which edges of a side panel carry the finger joints.
type SideStyle int

const (
	// StyleDrawer joints the front and back edges; fingers run up from the
	// bottom and a bottom insert channel runs along the bottom.
	StyleDrawer SideStyle = iota
	// StyleCarcase joints the top and bottom edges; fingers run forward from
	// the back and a back insert channel runs up the back.
	StyleCarcase
)

func (s SideStyle) String() string {
	switch s {
	case StyleDrawer:
		return "drawer"
	case StyleCarcase:
		return "carcase"
	default:
		return "unknown"
	}
}

// SideSpec is a side wall of depth × height. The left panel of a pair takes
// the inset on its notches so the pair's channels face each other.
type SideSpec struct {
	Name       string
	Depth      float64
	Height     float64
	Left       bool
	Style      SideStyle
	Separators []float64 // carcase only: separator tops above the outer bottom
}

// EndSpec is a drawer front or back of width × height.
type EndSpec struct {
	Name   string
	Width  float64
	Height float64
	Front  bool
}

// TopBottomSpec is a carcase top or bottom of width × depth.
type TopBottomSpec struct {
	Name  string
	Width float64
	Depth float64
	Top   bool
}

// BackSpec is the carcase back insert for a carcase of outer width × height.
type BackSpec struct {
	Name   string
	Width  float64
	Height float64
}

// SeparatorSpec is a horizontal divider for a carcase of outer width ×
// depth whose top sits Offset above the outer bottom.
type SeparatorSpec struct {
	Name   string
	Width  float64
	Depth  float64
	Offset float64
}

// InsertSpec is the bottom insert of a drawer of outer width × depth.
type InsertSpec struct {
	Name  string
	Width float64
	Depth float64
}

func (SideSpec) panelSpec()      {}
func (EndSpec) panelSpec()       {}
func (TopBottomSpec) panelSpec() {}
func (BackSpec) panelSpec()      {}
func (SeparatorSpec) panelSpec() {}
func (InsertSpec) panelSpec()    {}

func (SideSpec) Kind() plan.PanelKind      { return plan.PanelSide }
func (EndSpec) Kind() plan.PanelKind       { return plan.PanelEnd }
func (BackSpec) Kind() plan.PanelKind      { return plan.PanelBack }
func (SeparatorSpec) Kind() plan.PanelKind { return plan.PanelSeparator }
func (InsertSpec) Kind() plan.PanelKind    { return plan.PanelInsert }
func (s TopBottomSpec) Kind() plan.PanelKind {
	if s.Top {
		return plan.PanelTop
	}
	return plan.PanelBottom
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

// Build plans a single panel. The returned panel sits at the origin; the
// composers place it.
func Build(p Params, spec PanelSpec) (plan.Panel, error) {
	if err := p.Validate(); err != nil {
		return plan.Panel{}, err
	}
	switch s := spec.(type) {
	case SideSpec:
		return buildSide(p, s)
	case EndSpec:
		return buildEnd(p, s)
	case TopBottomSpec:
		return buildTopBottom(p, s)
	case BackSpec:
		return buildBack(p, s)
	case SeparatorSpec:
		return buildSeparator(p, s)
	case InsertSpec:
		return buildInsert(p, s)
	default:
		return plan.Panel{}, fmt.Errorf("joinery: unsupported panel spec %T", spec)
	}
}

// atLeast fails with ErrInvalidDimension unless v > limit.
func atLeast(name string, v, limit float64) error {
	if !(v > limit) {
		return fmt.Errorf("%w: %s %g must exceed %g", ErrInvalidDimension, name, v, limit)
	}
	return Finite(name, v)
}

// inset returns the notch offset for one panel of a mating pair: the
// first panel is inset by d, the second is not.
func inset(first bool, d float64) float64 {
	if first {
		return d
	}
	return 0
}

func buildSide(p Params, s SideSpec) (plan.Panel, error) {
	t := p.ThicknessStructural
	if err := atLeast(s.Name+" depth", s.Depth, 2*t); err != nil {
		return plan.Panel{}, err
	}
	if err := atLeast(s.Name+" height", s.Height, 2*t); err != nil {
		return plan.Panel{}, err
	}
	panel := plan.Panel{
		Name: s.Name,
		Kind: plan.PanelSide,
		Size: plan.Vec3{X: t, Y: s.Depth, Z: s.Height},
	}

	var edges []jointEdge
	switch s.Style {
	case StyleDrawer:
		if len(s.Separators) > 0 {
			return plan.Panel{}, fmt.Errorf("%w: drawer side %s cannot carry separators", ErrInvalidDimension, s.Name)
		}
		strip := plan.Vec3{X: t, Y: t}
		edges = []jointEdge{
			{index: 0, axis: plan.AxisZ, length: s.Height, strip: plan.Box3{Size: strip}},
			{index: 1, axis: plan.AxisZ, length: s.Height, strip: plan.Box3{Min: plan.Vec3{Y: s.Depth - t}, Size: strip}},
		}
	case StyleCarcase:
		strip := plan.Vec3{X: t, Z: t}
		edges = []jointEdge{
			{index: 0, axis: plan.AxisY, length: s.Depth, reverse: true, strip: plan.Box3{Size: strip}},
			{index: 1, axis: plan.AxisY, length: s.Depth, reverse: true, strip: plan.Box3{Min: plan.Vec3{Z: s.Height - t}, Size: strip}},
		}
	default:
		return plan.Panel{}, fmt.Errorf("joinery: unknown side style %v", s.Style)
	}
	for _, e := range edges {
		fs, err := e.features(p, clearancePhase)
		if err != nil {
			return plan.Panel{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		panel.Features = append(panel.Features, fs...)
	}

	nd := p.InsertionNotchDepth
	if s.Style == StyleDrawer {
		x := inset(s.Left, nd)
		panel.Features = append(panel.Features, plan.InsertionNotch{
			Offset:   x,
			Position: p.InsertInset,
			Depth:    nd,
			Length:   s.Depth,
			Extent:   p.ThicknessInsert,
			Cut: plan.Box3{
				Min:  plan.Vec3{X: x, Z: p.InsertInset},
				Size: plan.Vec3{X: nd, Y: s.Depth, Z: p.ThicknessInsert},
			},
		})
		return panel, nil
	}

	for _, off := range s.Separators {
		relief, err := sawRelief(p, s, off)
		if err != nil {
			return plan.Panel{}, err
		}
		panel.Features = append(panel.Features, relief)
	}

	x := inset(s.Left, t-nd)
	panel.Features = append(panel.Features, plan.InsertionNotch{
		Offset:   x,
		Position: p.InsertInset,
		Depth:    nd,
		Length:   s.Height,
		Extent:   p.ThicknessInsert,
		Cut: plan.Box3{
			Min:  plan.Vec3{X: x, Y: s.Depth - p.InsertInset - p.ThicknessInsert},
			Size: plan.Vec3{X: nd, Y: p.ThicknessInsert, Z: s.Height},
		},
	})
	return panel, nil
}

// sawRelief plans the separator notch for a carcase side: a straight run
// from the front that stops one saw chord short of the back channel, then
// the blade's circular runout.
func sawRelief(p Params, s SideSpec, offset float64) (plan.SawRelief, error) {
	t := p.ThicknessStructural
	d := p.SeparatorNotchDepth
	r := p.SawReliefRadius
	// The separator spans [offset-T, offset] and must clear the bottom and
	// top panels.
	if !(offset >= 2*t && offset <= s.Height-t) {
		return plan.SawRelief{}, fmt.Errorf("%w: %s separator offset %g outside [%g, %g]",
			ErrInvalidDimension, s.Name, offset, 2*t, s.Height-t)
	}
	chord := p.SawChord()
	run := s.Depth - p.InsertInset - p.ThicknessInsert - chord
	if err := atLeast(s.Name+" separator run", run, 0); err != nil {
		return plan.SawRelief{}, err
	}

	x, cx := 0.0, d-r
	if s.Left {
		x, cx = t-d, t+r-d
	}
	return plan.SawRelief{
		Offset:      offset,
		ChordHeight: chord,
		Radius:      r,
		Notch: plan.Box3{
			Min:  plan.Vec3{X: x, Z: offset - t},
			Size: plan.Vec3{X: d, Y: run, Z: t},
		},
		Center: plan.Vec3{X: cx, Y: run, Z: offset - t/2},
		Height: t,
	}, nil
}

func buildEnd(p Params, s EndSpec) (plan.Panel, error) {
	t := p.ThicknessStructural
	if err := atLeast(s.Name+" width", s.Width, 2*t); err != nil {
		return plan.Panel{}, err
	}
	if err := atLeast(s.Name+" height", s.Height, p.InsertInset+p.ThicknessInsert); err != nil {
		return plan.Panel{}, err
	}
	panel := plan.Panel{
		Name: s.Name,
		Kind: plan.PanelEnd,
		Size: plan.Vec3{X: s.Width, Y: t, Z: s.Height},
	}
	strip := plan.Vec3{X: t, Y: t}
	edges := []jointEdge{
		{index: 0, axis: plan.AxisZ, length: s.Height, strip: plan.Box3{Size: strip}},
		{index: 1, axis: plan.AxisZ, length: s.Height, strip: plan.Box3{Min: plan.Vec3{X: s.Width - t}, Size: strip}},
	}
	for _, e := range edges {
		fs, err := e.features(p, slotPhase)
		if err != nil {
			return plan.Panel{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		panel.Features = append(panel.Features, fs...)
	}

	nd := p.InsertionNotchDepth
	y := inset(s.Front, nd)
	panel.Features = append(panel.Features, plan.InsertionNotch{
		Offset:   y,
		Position: p.InsertInset,
		Depth:    nd,
		Length:   s.Width,
		Extent:   p.ThicknessInsert,
		Cut: plan.Box3{
			Min:  plan.Vec3{Y: y, Z: p.InsertInset},
			Size: plan.Vec3{X: s.Width, Y: nd, Z: p.ThicknessInsert},
		},
	})

	if s.Front {
		pull, err := pullCutout(p, s)
		if err != nil {
			return plan.Panel{}, err
		}
		panel.Features = append(panel.Features, pull)
	}
	return panel, nil
}

// pullCutout centers a finger pull on the top edge of a drawer front.
func pullCutout(p Params, s EndSpec) (plan.PullCutout, error) {
	t := p.ThicknessStructural
	w, h := p.PullWidth, p.PullHeight
	r := w / 2
	if err := atLeast(s.Name+" width for pull", s.Width-2*t, w); err != nil {
		return plan.PullCutout{}, err
	}
	if err := atLeast(s.Name+" height for pull", s.Height-p.InsertInset-p.ThicknessInsert, h); err != nil {
		return plan.PullCutout{}, err
	}
	bottom := s.Height - h + r // center of the half-round
	return plan.PullCutout{
		Width:  w,
		Height: h,
		Slot: plan.Box3{
			Min:  plan.Vec3{X: s.Width/2 - r, Z: bottom},
			Size: plan.Vec3{X: w, Y: t, Z: h - r},
		},
		Center:    plan.Vec3{X: s.Width / 2, Y: t / 2, Z: bottom},
		Thickness: t,
	}, nil
}

func buildTopBottom(p Params, s TopBottomSpec) (plan.Panel, error) {
	t := p.ThicknessStructural
	if err := atLeast(s.Name+" width", s.Width, 2*t); err != nil {
		return plan.Panel{}, err
	}
	if err := atLeast(s.Name+" depth", s.Depth, p.InsertInset+p.ThicknessInsert); err != nil {
		return plan.Panel{}, err
	}
	panel := plan.Panel{
		Name: s.Name,
		Kind: s.Kind(),
		Size: plan.Vec3{X: s.Width, Y: s.Depth, Z: t},
	}
	strip := plan.Vec3{X: t, Z: t}
	edges := []jointEdge{
		{index: 0, axis: plan.AxisY, length: s.Depth, reverse: true, strip: plan.Box3{Size: strip}},
		{index: 1, axis: plan.AxisY, length: s.Depth, reverse: true, strip: plan.Box3{Min: plan.Vec3{X: s.Width - t}, Size: strip}},
	}
	for _, e := range edges {
		fs, err := e.features(p, slotPhase)
		if err != nil {
			return plan.Panel{}, fmt.Errorf("%s: %w", s.Name, err)
		}
		panel.Features = append(panel.Features, fs...)
	}

	nd := p.InsertionNotchDepth
	z := inset(!s.Top, t-nd)
	panel.Features = append(panel.Features, plan.InsertionNotch{
		Offset:   z,
		Position: p.InsertInset,
		Depth:    nd,
		Length:   s.Width,
		Extent:   p.ThicknessInsert,
		Cut: plan.Box3{
			Min:  plan.Vec3{Y: s.Depth - p.InsertInset - p.ThicknessInsert, Z: z},
			Size: plan.Vec3{X: s.Width, Y: p.ThicknessInsert, Z: nd},
		},
	})
	return panel, nil
}

// insertPanel is a plain board seated in notches on all four sides.
func insertPanel(name string, kind plan.PanelKind, size plan.Vec3) (plan.Panel, error) {
	for _, ax := range []plan.Axis{plan.AxisX, plan.AxisY, plan.AxisZ} {
		if err := atLeast(fmt.Sprintf("%s size %s", name, ax), size.Get(ax), 0); err != nil {
			return plan.Panel{}, err
		}
	}
	return plan.Panel{Name: name, Kind: kind, Size: size}, nil
}

func buildBack(p Params, s BackSpec) (plan.Panel, error) {
	t, nd := p.ThicknessStructural, p.InsertionNotchDepth
	return insertPanel(s.Name, plan.PanelBack, plan.Vec3{
		X: s.Width - 2*t + 2*nd,
		Y: p.ThicknessInsert,
		Z: s.Height - 2*t + 2*nd,
	})
}

func buildInsert(p Params, s InsertSpec) (plan.Panel, error) {
	t, nd := p.ThicknessStructural, p.InsertionNotchDepth
	return insertPanel(s.Name, plan.PanelInsert, plan.Vec3{
		X: s.Width - 2*t + 2*nd,
		Y: s.Depth - 2*t + 2*nd,
		Z: p.ThicknessInsert,
	})
}

func buildSeparator(p Params, s SeparatorSpec) (plan.Panel, error) {
	t, d := p.ThicknessStructural, p.SeparatorNotchDepth
	return insertPanel(s.Name, plan.PanelSeparator, plan.Vec3{
		X: s.Width - 2*t + 2*d,
		Y: s.Depth - p.InsertInset - p.ThicknessInsert - p.SawChord(),
		Z: t,
	})
}
