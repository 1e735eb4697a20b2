// Package app runs the drawerbox pipeline: a script or a layout request
// becomes an assembly plan, is validated, and is optionally meshed.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chazu/drawerbox/pkg/engine"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/kernel"
	"github.com/chazu/drawerbox/pkg/kernel/sdfx"
	"github.com/chazu/drawerbox/pkg/layout"
	"github.com/chazu/drawerbox/pkg/plan"
	"github.com/chazu/drawerbox/pkg/realize"
)

// colorPalette assigns distinct colors to panels, cycling by index.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Options configures an App.
type Options struct {
	Params  joinery.Params
	Kernel  kernel.Kernel // nil selects sdfx with MeshCells
	Realize realize.Options
	// MeshCells is the sdfx marching cubes resolution when Kernel is nil.
	MeshCells int
	// Timeout bounds script evaluation. Zero keeps engine.EvalTimeout.
	Timeout time.Duration
	// Layout overrides layout.DefaultOptions.
	Layout *layout.Options
}

// App ties the engine, the layout engine, and a kernel together.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	logger *log.Logger
	opts   Options
}

// New creates an App. A nil logger logs to log.Default; zero Params
// select joinery.DefaultParams.
func New(logger *log.Logger, opts Options) *App {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Params == (joinery.Params{}) {
		opts.Params = joinery.DefaultParams()
	}
	k := opts.Kernel
	if k == nil {
		k = sdfx.New(sdfx.WithMeshCells(opts.MeshCells))
	}
	return &App{
		engine: engine.NewEngine(engine.WithParams(opts.Params), engine.WithTimeout(opts.Timeout)),
		kernel: k,
		logger: logger,
		opts:   opts,
	}
}

// MeshData is one panel's mesh with its display color.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	PanelName string    `json:"panelName"`
	Color     string    `json:"color"`
}

// Message is an error or warning reported to the user.
type Message struct {
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Panel   string `json:"panel,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of one request. Slices are never nil so the JSON
// form always carries arrays.
type Result struct {
	Plan     *plan.AssemblyPlan `json:"-"`
	Layout   *layout.Result     `json:"layout,omitempty"`
	Meshes   []MeshData         `json:"meshes"`
	Errors   []Message          `json:"errors"`
	Warnings []Message          `json:"warnings"`
}

func newResult() Result {
	return Result{Meshes: []MeshData{}, Errors: []Message{}, Warnings: []Message{}}
}

// OK reports whether the request produced a plan without errors.
func (r Result) OK() bool {
	return r.Plan != nil && len(r.Errors) == 0
}

// Evaluate runs a drawerbox script. When mesh is set, every panel of the
// resulting plan is tessellated.
func (a *App) Evaluate(ctx context.Context, source string, mesh bool) Result {
	res := newResult()

	p, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.logger.Error("evaluate failed", "err", err)
		res.Errors = append(res.Errors, Message{Message: err.Error()})
		return res
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			res.Errors = append(res.Errors, Message{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return res
	}
	a.logger.Debug("evaluated script", "panels", p.Len())
	return a.finish(ctx, res, p, mesh)
}

// Layout arranges a drawer box of outer width × depth × height.
func (a *App) Layout(ctx context.Context, width, depth, height float64, arr layout.Arrangement, mesh bool) Result {
	res := newResult()

	opts := layout.DefaultOptions()
	if a.opts.Layout != nil {
		opts = *a.opts.Layout
	}
	lr, err := layout.ArrangeWith(a.engine.Params(), width, depth, height, arr, opts)
	if err != nil {
		res.Errors = append(res.Errors, Message{Message: err.Error()})
		return res
	}
	a.logger.Debug("arranged", "levels", len(lr.Levels), "panels", lr.Plan.Len(),
		"level_height", lr.LevelHeight)
	res.Layout = lr
	return a.finish(ctx, res, lr.Plan, mesh)
}

// finish validates p and, when asked and valid, meshes it.
func (a *App) finish(ctx context.Context, res Result, p *plan.AssemblyPlan, mesh bool) Result {
	res.Plan = p

	v := plan.Validate(p)
	for _, w := range v.Warnings {
		res.Warnings = append(res.Warnings, Message{Panel: w.Panel, Message: w.Message})
	}
	for _, e := range v.Errors {
		res.Errors = append(res.Errors, Message{Panel: e.Panel, Message: e.Message})
	}
	if !v.OK() || !mesh {
		return res
	}

	start := time.Now()
	meshes, err := realize.Tessellate(ctx, a.kernel, p, a.opts.Realize)
	if err != nil {
		a.logger.Error("tessellate failed", "err", err)
		res.Errors = append(res.Errors, Message{Message: "tessellation failed: " + err.Error()})
		return res
	}
	a.logger.Debug("tessellated", "panels", len(meshes), "elapsed", time.Since(start).Round(time.Millisecond))

	for i, m := range meshes {
		res.Meshes = append(res.Meshes, MeshData{
			Vertices:  m.Vertices,
			Normals:   m.Normals,
			Indices:   m.Indices,
			PanelName: m.PanelName,
			Color:     colorPalette[i%len(colorPalette)],
		})
	}
	return res
}
