package joinery

import "github.com/chazu/drawerbox/pkg/plan"

// phase selects how a joint edge starts.
type phase int

const (
	slotPhase      phase = iota // first slot at the margin
	clearancePhase              // margin cleared, first slot one finger later
)

// jointEdge is the strip of a panel that mates with a neighbouring panel.
// Offsets are measured from the reference end of the edge: the panel's low
// end along axis, or its high end when reverse is set.
type jointEdge struct {
	index   int
	axis    plan.Axis // fingers progress along this axis
	length  float64   // panel extent along axis
	reverse bool
	strip   plan.Box3 // strip bounds; the axis component is replaced per cut
}

// cut returns the box covering [offset, offset+width) of the strip.
func (e jointEdge) cut(offset, width float64) plan.Box3 {
	start := offset
	if e.reverse {
		start = e.length - offset - width
	}
	return plan.Box3{
		Min:  e.strip.Min.With(e.axis, start),
		Size: e.strip.Size.With(e.axis, width),
	}
}

// features returns the cuts of the edge in the given phase.
func (e jointEdge) features(p Params, ph phase) ([]plan.Feature, error) {
	var (
		offsets []float64
		err     error
		out     []plan.Feature
	)
	depth := p.ThicknessStructural
	switch ph {
	case clearancePhase:
		offsets, err = PartitionClearance(e.length, p.Margin, p.FingerWidth)
		if err != nil {
			return nil, err
		}
		out = append(out, plan.Clearance{
			Edge:   e.index,
			Length: p.Margin,
			Depth:  depth,
			Cut:    e.cut(0, p.Margin),
		})
	default:
		offsets, err = Partition(e.length, p.Margin, p.FingerWidth)
		if err != nil {
			return nil, err
		}
	}
	for _, off := range offsets {
		out = append(out, plan.FingerSlot{
			Edge:   e.index,
			Offset: off,
			Width:  p.FingerWidth,
			Depth:  depth,
			Cut:    e.cut(off, p.FingerWidth),
		})
	}
	return out, nil
}
