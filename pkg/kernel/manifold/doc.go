// Package manifold is a kernel.Kernel backed by the Manifold C library
// (https://github.com/elalish/manifold), which guarantees manifold output
// from boolean operations.
//
// The binding needs manifoldc and is compiled only with the "manifold"
// build tag:
//
//	go build -tags=manifold ./cmd/drawerbox
//
// Without the tag New returns ErrUnavailable.
package manifold

import "errors"

// ErrUnavailable is returned by New when the binary was built without the
// manifold tag.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")
