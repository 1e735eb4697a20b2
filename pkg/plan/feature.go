package plan

// ---------------------------------------------------------------------------
// Cutters
// ---------------------------------------------------------------------------

// CutterShape distinguishes the primitive solids a feature removes.
type CutterShape int

const (
	CutBox      CutterShape = iota // axis-aligned box, Box.Min at its min corner
	CutCylinder                    // cylinder centered on Center along Axis
)

// Cutter is one primitive solid subtracted from a panel, in panel-local
// coordinates.
type Cutter struct {
	Shape  CutterShape `json:"shape"`
	Box    Box3        `json:"box,omitempty"`
	Center Vec3        `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Height float64     `json:"height,omitempty"`
	Axis   Axis        `json:"axis,omitempty"`
}

func boxCutter(b Box3) Cutter {
	return Cutter{Shape: CutBox, Box: b}
}

// Bounds returns the axis-aligned bounds of the cutter.
func (c Cutter) Bounds() Box3 {
	if c.Shape == CutBox {
		return c.Box
	}
	half := Vec3{X: c.Radius, Y: c.Radius, Z: c.Radius}.With(c.Axis, c.Height/2)
	return Box3{
		Min:  Vec3{X: c.Center.X - half.X, Y: c.Center.Y - half.Y, Z: c.Center.Z - half.Z},
		Size: Vec3{X: 2 * half.X, Y: 2 * half.Y, Z: 2 * half.Z},
	}
}

// ---------------------------------------------------------------------------
// Features
// ---------------------------------------------------------------------------

// FeatureKind enumerates the cut features a panel can carry.
type FeatureKind int

const (
	FeatureFingerSlot FeatureKind = iota
	FeatureClearance
	FeatureInsertionNotch
	FeatureSawRelief
	FeaturePullCutout
)

func (k FeatureKind) String() string {
	switch k {
	case FeatureFingerSlot:
		return "finger-slot"
	case FeatureClearance:
		return "clearance"
	case FeatureInsertionNotch:
		return "insertion-notch"
	case FeatureSawRelief:
		return "saw-relief"
	case FeaturePullCutout:
		return "pull-cutout"
	default:
		return "unknown"
	}
}

// Feature is a declarative cut instruction owned by a panel.
type Feature interface {
	Kind() FeatureKind
	// Cutters returns the primitive solids to subtract from the panel.
	Cutters() []Cutter
	feature() // marker method restricting implementations to this package
}

// FingerSlot is one slot of a finger joint. Offset is measured from the
// reference end of the joint edge; Width always equals the finger width.
type FingerSlot struct {
	Edge   int     `json:"edge"` // which of the panel's two joint edges
	Offset float64 `json:"offset"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Cut    Box3    `json:"cut"`
}

func (FingerSlot) feature()            {}
func (FingerSlot) Kind() FeatureKind   { return FeatureFingerSlot }
func (f FingerSlot) Cutters() []Cutter { return []Cutter{boxCutter(f.Cut)} }

// Clearance is the leading gap on a clearance-phase joint edge. It leaves
// room for the mating panel's solid margin.
type Clearance struct {
	Edge   int     `json:"edge"`
	Length float64 `json:"length"`
	Depth  float64 `json:"depth"`
	Cut    Box3    `json:"cut"`
}

func (Clearance) feature()            {}
func (Clearance) Kind() FeatureKind   { return FeatureClearance }
func (c Clearance) Cutters() []Cutter { return []Cutter{boxCutter(c.Cut)} }

// InsertionNotch is a channel that seats a thin insert panel (a drawer
// bottom or a carcase back). Offset is the inset across the panel thickness;
// Position is the distance of the channel from its edge.
type InsertionNotch struct {
	Offset   float64 `json:"offset"`
	Position float64 `json:"position"`
	Depth    float64 `json:"depth"`
	Length   float64 `json:"length"`
	Extent   float64 `json:"extent"`
	Cut      Box3    `json:"cut"`
}

func (InsertionNotch) feature()            {}
func (InsertionNotch) Kind() FeatureKind   { return FeatureInsertionNotch }
func (n InsertionNotch) Cutters() []Cutter { return []Cutter{boxCutter(n.Cut)} }

// SawRelief is a separator notch: a straight run followed by the circular
// runout a saw blade of the given radius leaves. ChordHeight is the
// half-chord of the blade at the notch depth.
type SawRelief struct {
	Offset      float64 `json:"offset"` // separator top, measured from the panel bottom
	ChordHeight float64 `json:"chord_height"`
	Radius      float64 `json:"radius"`
	Notch       Box3    `json:"notch"`
	Center      Vec3    `json:"center"`
	Height      float64 `json:"height"`
}

func (SawRelief) feature()          {}
func (SawRelief) Kind() FeatureKind { return FeatureSawRelief }
func (s SawRelief) Cutters() []Cutter {
	return []Cutter{
		boxCutter(s.Notch),
		{Shape: CutCylinder, Center: s.Center, Radius: s.Radius, Height: s.Height, Axis: AxisZ},
	}
}

// PullCutout is a finger pull: a rectangular slot from the top edge ending
// in a half-round of radius Width/2.
type PullCutout struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Slot      Box3    `json:"slot"`
	Center    Vec3    `json:"center"`
	Thickness float64 `json:"thickness"`
}

func (PullCutout) feature()          {}
func (PullCutout) Kind() FeatureKind { return FeaturePullCutout }
func (p PullCutout) Cutters() []Cutter {
	return []Cutter{
		boxCutter(p.Slot),
		{Shape: CutCylinder, Center: p.Center, Radius: p.Width / 2, Height: p.Thickness, Axis: AxisY},
	}
}
