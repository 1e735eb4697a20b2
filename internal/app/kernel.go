package app

import (
	"fmt"

	"github.com/chazu/drawerbox/pkg/kernel"
	"github.com/chazu/drawerbox/pkg/kernel/manifold"
	"github.com/chazu/drawerbox/pkg/kernel/sdfx"
)

// Kernel backend names.
const (
	BackendSDFX     = "sdfx"
	BackendManifold = "manifold"
)

// NewKernel returns the named backend. meshCells applies to sdfx only.
func NewKernel(name string, meshCells int) (kernel.Kernel, error) {
	switch name {
	case "", BackendSDFX:
		return sdfx.New(sdfx.WithMeshCells(meshCells)), nil
	case BackendManifold:
		return manifold.New()
	default:
		return nil, fmt.Errorf("unknown kernel %q (want %s or %s)", name, BackendSDFX, BackendManifold)
	}
}
