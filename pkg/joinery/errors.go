package joinery

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds returned by the planner. They are always wrapped with context;
// test with errors.Is.
var (
	// ErrInvalidDimension means a panel or edge is too small to host its
	// margin or at least one joint feature.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidArrangement means an arrangement is empty, has a
	// non-positive drawer count, or leaves no height for its levels.
	ErrInvalidArrangement = errors.New("invalid arrangement")

	// ErrInvalidConfiguration means the joinery constants are inconsistent.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Finite fails with ErrInvalidDimension if any of vs is NaN or infinite.
func Finite(name string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s %g is not finite", ErrInvalidDimension, name, v)
		}
	}
	return nil
}
