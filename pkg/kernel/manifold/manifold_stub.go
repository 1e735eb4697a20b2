//go:build !manifold

package manifold

import "github.com/chazu/drawerbox/pkg/kernel"

// Available reports whether the binding was compiled in.
const Available = false

// New always fails with ErrUnavailable.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}
