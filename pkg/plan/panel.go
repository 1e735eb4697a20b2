package plan

// PanelKind enumerates the boards a drawer box is made from.
type PanelKind int

const (
	PanelSide      PanelKind = iota // carcase or drawer side wall
	PanelEnd                        // drawer front or back
	PanelTop                        // carcase top
	PanelBottom                     // carcase bottom
	PanelBack                       // carcase back insert
	PanelSeparator                  // horizontal divider between levels
	PanelInsert                     // drawer bottom insert
)

// PanelKinds lists every panel kind in declaration order.
var PanelKinds = []PanelKind{
	PanelSide, PanelEnd, PanelTop, PanelBottom, PanelBack, PanelSeparator, PanelInsert,
}

func (k PanelKind) String() string {
	switch k {
	case PanelSide:
		return "side"
	case PanelEnd:
		return "end"
	case PanelTop:
		return "top"
	case PanelBottom:
		return "bottom"
	case PanelBack:
		return "back"
	case PanelSeparator:
		return "separator"
	case PanelInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Placement is a rigid transform. Rotation (Euler degrees about X, Y, Z) is
// applied before Translation.
type Placement struct {
	Translation Vec3  `json:"translation"`
	Rotation    *Vec3 `json:"rotation,omitempty"`
}

// Translated returns p moved by v.
func (p Placement) Translated(v Vec3) Placement {
	out := Placement{Translation: p.Translation.Add(v)}
	if p.Rotation != nil {
		r := *p.Rotation
		out.Rotation = &r
	}
	return out
}

// Panel is a single board: a base box with its min corner at the panel
// origin, the features cut from it, and where it sits in the assembly.
type Panel struct {
	Name      string    `json:"name"`
	Kind      PanelKind `json:"kind"`
	Size      Vec3      `json:"size"`
	Features  []Feature `json:"features"`
	Placement Placement `json:"placement"`
}

// Thickness returns the smallest extent of the panel's base box.
func (p Panel) Thickness() float64 {
	return min(p.Size.X, p.Size.Y, p.Size.Z)
}

// Count returns the number of features of the given kind.
func (p Panel) Count(k FeatureKind) int {
	n := 0
	for _, f := range p.Features {
		if f.Kind() == k {
			n++
		}
	}
	return n
}

// Notches returns the panel's insertion notches in feature order.
func (p Panel) Notches() []InsertionNotch {
	var out []InsertionNotch
	for _, f := range p.Features {
		if n, ok := f.(InsertionNotch); ok {
			out = append(out, n)
		}
	}
	return out
}

// Slots returns the finger slots on the given joint edge in feature order.
func (p Panel) Slots(edge int) []FingerSlot {
	var out []FingerSlot
	for _, f := range p.Features {
		if s, ok := f.(FingerSlot); ok && s.Edge == edge {
			out = append(out, s)
		}
	}
	return out
}

// WorldBounds returns the panel's base box in assembly coordinates. It
// ignores rotation; panels built by the composers are never rotated.
func (p Panel) WorldBounds() Box3 {
	return Box3{Min: p.Placement.Translation, Size: p.Size}
}

// clone copies the panel so the copy shares no slices with p. Features are
// values, so a shallow copy of the slice is enough.
func (p Panel) clone() Panel {
	out := p
	out.Features = append([]Feature(nil), p.Features...)
	out.Placement = p.Placement.Translated(Vec3{})
	return out
}
