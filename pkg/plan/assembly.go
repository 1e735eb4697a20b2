package plan

import "strings"

// AssemblyPlan is an ordered set of placed panels forming one compound
// object: a drawer, a carcase, or a full drawer set.
type AssemblyPlan struct {
	Name   string  `json:"name"`
	Panels []Panel `json:"panels"`
}

// New creates an empty plan with the given name.
func New(name string) *AssemblyPlan {
	return &AssemblyPlan{Name: name}
}

// Add appends panels to the plan. Panels are copied.
func (a *AssemblyPlan) Add(panels ...Panel) {
	for _, p := range panels {
		a.Panels = append(a.Panels, p.clone())
	}
}

// Merge appends every panel of sub, translated by at. Merged panel names are
// prefixed with prefix and a slash when prefix is non-empty. sub is left
// untouched.
func (a *AssemblyPlan) Merge(sub *AssemblyPlan, prefix string, at Vec3) {
	if sub == nil {
		return
	}
	for _, p := range sub.Panels {
		c := p.clone()
		c.Placement = c.Placement.Translated(at)
		if prefix != "" {
			c.Name = prefix + "/" + c.Name
		}
		a.Panels = append(a.Panels, c)
	}
}

// Len returns the number of panels.
func (a *AssemblyPlan) Len() int {
	return len(a.Panels)
}

// Count returns the number of panels of the given kind.
func (a *AssemblyPlan) Count(k PanelKind) int {
	n := 0
	for _, p := range a.Panels {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Find returns the panel with the given name.
func (a *AssemblyPlan) Find(name string) (Panel, bool) {
	for _, p := range a.Panels {
		if p.Name == name {
			return p, true
		}
	}
	return Panel{}, false
}

// WithPrefix returns the panels whose names start with prefix + "/".
func (a *AssemblyPlan) WithPrefix(prefix string) []Panel {
	var out []Panel
	for _, p := range a.Panels {
		if strings.HasPrefix(p.Name, prefix+"/") {
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the axis-aligned bounds of all panels in assembly
// coordinates. An empty plan has zero bounds.
func (a *AssemblyPlan) Bounds() Box3 {
	if len(a.Panels) == 0 {
		return Box3{}
	}
	lo := a.Panels[0].WorldBounds().Min
	hi := a.Panels[0].WorldBounds().Max()
	for _, p := range a.Panels[1:] {
		b := p.WorldBounds()
		for _, ax := range []Axis{AxisX, AxisY, AxisZ} {
			lo = lo.With(ax, min(lo.Get(ax), b.Min.Get(ax)))
			hi = hi.With(ax, max(hi.Get(ax), b.Max().Get(ax)))
		}
	}
	return Box3{Min: lo, Size: Vec3{X: hi.X - lo.X, Y: hi.Y - lo.Y, Z: hi.Z - lo.Z}}
}
