package joinery

import (
	"fmt"
	"math"
)

// Partition returns the slot offsets of a slot-phase edge of the given
// length: margin, margin + 2w, margin + 4w, ... for every offset below
// length. The last slot may be short (offset + w > length); it is kept as is
// rather than clamped or dropped.
func Partition(length, margin, fingerWidth float64) ([]float64, error) {
	if err := checkEdge(length, margin, fingerWidth); err != nil {
		return nil, err
	}
	return progression(length, margin, 2*fingerWidth), nil
}

// PartitionClearance returns the slot offsets of a clearance-phase edge:
// the first margin of the edge is cleared by a single cut, and slots follow
// at margin + w, margin + 3w, ... The result is empty when the edge is too
// short for any slot after the clearance.
func PartitionClearance(length, margin, fingerWidth float64) ([]float64, error) {
	if err := checkEdge(length, margin, fingerWidth); err != nil {
		return nil, err
	}
	return progression(length, margin+fingerWidth, 2*fingerWidth), nil
}

// MaxSlots bounds the slots of one joint edge.
const MaxSlots = 10000

func checkEdge(length, margin, fingerWidth float64) error {
	if !(fingerWidth > 0) || math.IsInf(fingerWidth, 0) {
		return fmt.Errorf("%w: finger width %g must be positive and finite", ErrInvalidConfiguration, fingerWidth)
	}
	if !(margin >= 0) || math.IsInf(margin, 0) {
		return fmt.Errorf("%w: margin %g must be non-negative and finite", ErrInvalidConfiguration, margin)
	}
	if err := Finite("edge length", length); err != nil {
		return err
	}
	if !(length > margin) {
		return fmt.Errorf("%w: edge length %g does not exceed margin %g", ErrInvalidDimension, length, margin)
	}
	if (length-margin)/(2*fingerWidth) > MaxSlots {
		return fmt.Errorf("%w: edge length %g needs more than %d slots", ErrInvalidDimension, length, MaxSlots)
	}
	return nil
}

// progression returns start + k*pitch for k = 0, 1, ... while below length.
// The count is computed up front; rounding moves it by at most one.
func progression(length, start, pitch float64) []float64 {
	if start >= length {
		return nil
	}
	n := int(math.Ceil((length - start) / pitch))
	if n < 1 {
		n = 1
	}
	if n > 1 && start+float64(n-1)*pitch >= length {
		n--
	}
	if start+float64(n)*pitch < length {
		n++
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = start + float64(k)*pitch
	}
	return out
}
