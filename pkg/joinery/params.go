package joinery

import (
	"fmt"
	"math"
)

// notchTolerance bounds the allowed drift between the insertion notch depth
// and half the structural thickness.
const notchTolerance = 1e-9

// Params holds the joinery constants shared by every panel of a design.
// Lengths use one unit system throughout, the same as the box dimensions.
type Params struct {
	ThicknessStructural float64 `koanf:"thickness_structural" json:"thickness_structural"`
	ThicknessInsert     float64 `koanf:"thickness_insert" json:"thickness_insert"`
	FingerWidth         float64 `koanf:"finger_width" json:"finger_width"`
	Margin              float64 `koanf:"margin" json:"margin"`             // solid run before the first slot
	InsertInset         float64 `koanf:"insert_inset" json:"insert_inset"` // bottom/back channel distance from its edge
	InsertionNotchDepth float64 `koanf:"insertion_notch_depth" json:"insertion_notch_depth"`
	SeparatorNotchDepth float64 `koanf:"separator_notch_depth" json:"separator_notch_depth"`
	SawReliefRadius     float64 `koanf:"saw_relief_radius" json:"saw_relief_radius"`
	AirGap              float64 `koanf:"air_gap" json:"air_gap"`
	PullWidth           float64 `koanf:"pull_width" json:"pull_width"`
	PullHeight          float64 `koanf:"pull_height" json:"pull_height"`
}

// Default joinery constants.
const (
	DefaultThicknessStructural = 0.6
	DefaultThicknessInsert     = 0.3
	DefaultFingerWidth         = 0.8
	DefaultMargin              = 1.0
	DefaultInsertInset         = 0.3
	DefaultSeparatorNotchDepth = 0.2
	DefaultSawReliefRadius     = 8.0
	DefaultAirGap              = 0.05
	DefaultPullWidth           = 2.5
	DefaultPullHeight          = 1.5
)

// DefaultParams returns the stock joinery constants.
func DefaultParams() Params {
	return Params{
		ThicknessStructural: DefaultThicknessStructural,
		ThicknessInsert:     DefaultThicknessInsert,
		FingerWidth:         DefaultFingerWidth,
		Margin:              DefaultMargin,
		InsertInset:         DefaultInsertInset,
		InsertionNotchDepth: DefaultThicknessStructural / 2,
		SeparatorNotchDepth: DefaultSeparatorNotchDepth,
		SawReliefRadius:     DefaultSawReliefRadius,
		AirGap:              DefaultAirGap,
		PullWidth:           DefaultPullWidth,
		PullHeight:          DefaultPullHeight,
	}
}

// Pitch returns the distance between consecutive slots on one edge.
func (p Params) Pitch() float64 {
	return 2 * p.FingerWidth
}

// SawChord returns the half-chord a saw blade of SawReliefRadius leaves at
// SeparatorNotchDepth: sqrt(2Rd - d²).
func (p Params) SawChord() float64 {
	r, d := p.SawReliefRadius, p.SeparatorNotchDepth
	return math.Sqrt(2*r*d - d*d)
}

// Validate checks that the constants are consistent.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"thickness_structural", p.ThicknessStructural},
		{"thickness_insert", p.ThicknessInsert},
		{"finger_width", p.FingerWidth},
		{"margin", p.Margin},
		{"insert_inset", p.InsertInset},
		{"insertion_notch_depth", p.InsertionNotchDepth},
		{"separator_notch_depth", p.SeparatorNotchDepth},
		{"saw_relief_radius", p.SawReliefRadius},
		{"pull_width", p.PullWidth},
		{"pull_height", p.PullHeight},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %g, must be positive and finite", ErrInvalidConfiguration, f.name, f.v)
		}
	}
	if !(p.AirGap >= 0) || math.IsInf(p.AirGap, 0) {
		return fmt.Errorf("%w: air_gap is %g, must not be negative", ErrInvalidConfiguration, p.AirGap)
	}
	if p.Margin >= p.Pitch() {
		return fmt.Errorf("%w: margin %g must be less than the finger pitch %g",
			ErrInvalidConfiguration, p.Margin, p.Pitch())
	}
	if math.Abs(p.InsertionNotchDepth-p.ThicknessStructural/2) > notchTolerance {
		return fmt.Errorf("%w: insertion_notch_depth %g must be half of thickness_structural %g",
			ErrInvalidConfiguration, p.InsertionNotchDepth, p.ThicknessStructural)
	}
	if p.ThicknessInsert >= p.ThicknessStructural {
		return fmt.Errorf("%w: thickness_insert %g must be less than thickness_structural %g",
			ErrInvalidConfiguration, p.ThicknessInsert, p.ThicknessStructural)
	}
	if p.SeparatorNotchDepth >= p.ThicknessStructural {
		return fmt.Errorf("%w: separator_notch_depth %g must be less than thickness_structural %g",
			ErrInvalidConfiguration, p.SeparatorNotchDepth, p.ThicknessStructural)
	}
	if p.SeparatorNotchDepth > 2*p.SawReliefRadius {
		return fmt.Errorf("%w: separator_notch_depth %g exceeds the saw diameter %g",
			ErrInvalidConfiguration, p.SeparatorNotchDepth, 2*p.SawReliefRadius)
	}
	if p.PullHeight <= p.PullWidth/2 {
		return fmt.Errorf("%w: pull_height %g must exceed the pull radius %g",
			ErrInvalidConfiguration, p.PullHeight, p.PullWidth/2)
	}
	return nil
}
