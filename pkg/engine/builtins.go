package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/drawerbox/pkg/compose"
	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/layout"
	"github.com/chazu/drawerbox/pkg/plan"
)

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

type sexpParams struct {
	p joinery.Params
}

func (s *sexpParams) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(joinery :finger-width %g :margin %g)", s.p.FingerWidth, s.p.Margin)
}
func (s *sexpParams) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec plan.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpPlan is a planned object: a drawer, a carcase, a layout, or a
// finished assembly.
type sexpPlan struct {
	plan     *plan.AssemblyPlan
	assembly bool
}

func (s *sexpPlan) SexpString(ps *zygo.PrintState) string {
	kind := "plan"
	if s.assembly {
		kind = "assembly"
	}
	return fmt.Sprintf("(%s %q :panels %d)", kind, s.plan.Name, s.plan.Len())
}
func (s *sexpPlan) Type() *zygo.RegisteredType { return nil }

// sexpPlaced is a plan with a position and an optional name inside an
// assembly.
type sexpPlaced struct {
	plan *sexpPlan
	at   plan.Vec3
	as   string
}

func (s *sexpPlaced) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(place %s :at %s)", s.plan.SexpString(ps), (&sexpVec3{vec: s.at}).SexpString(ps))
}
func (s *sexpPlaced) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword arguments
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args into keyword and positional arguments. A trailing
// keyword with no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	out := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			out.positional = append(out.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			out.kw[name] = args[i+1]
			i++
		} else {
			out.kw[name] = zygo.SexpNull
		}
	}
	return out
}

// number reads a required numeric keyword.
func (a kwArgs) number(fn, key string) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return 0, fmt.Errorf("%s: missing :%s", fn, key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return f, nil
}

// dims reads the :width, :depth and :height keywords.
func (a kwArgs) dims(fn string) (w, d, h float64, err error) {
	if w, err = a.number(fn, "width"); err != nil {
		return
	}
	if d, err = a.number(fn, "depth"); err != nil {
		return
	}
	h, err = a.number(fn, "height")
	return
}

// flag reads an optional boolean keyword.
func (a kwArgs) flag(fn, key string, def bool) (bool, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(*zygo.SexpBool)
	if !ok {
		return false, fmt.Errorf("%s: %s: expected true or false, got %s", fn, key, v.SexpString(nil))
	}
	return b.Val, nil
}

// params returns the :params keyword, or base when absent.
func (a kwArgs) params(fn string, base joinery.Params) (joinery.Params, error) {
	v, ok := a.kw["params"]
	if !ok {
		return base, nil
	}
	sp, ok := v.(*sexpParams)
	if !ok {
		return joinery.Params{}, fmt.Errorf("%s: params: expected (joinery ...), got %s", fn, v.SexpString(nil))
	}
	return sp.p, nil
}

// ---------------------------------------------------------------------------
// Value extraction
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (plan.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return plan.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func toFloats(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, it := range items {
		if out[i], err = toFloat64(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return out, nil
}

// paramKeys maps joinery keywords to the Params fields they set.
func paramKeys(p *joinery.Params) map[string]*float64 {
	return map[string]*float64{
		"thickness-structural":  &p.ThicknessStructural,
		"thickness-insert":      &p.ThicknessInsert,
		"finger-width":          &p.FingerWidth,
		"margin":                &p.Margin,
		"insert-inset":          &p.InsertInset,
		"insertion-notch-depth": &p.InsertionNotchDepth,
		"separator-notch-depth": &p.SeparatorNotchDepth,
		"saw-relief-radius":     &p.SawReliefRadius,
		"air-gap":               &p.AirGap,
		"pull-width":            &p.PullWidth,
		"pull-height":           &p.PullHeight,
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the drawerbox builtins into env. Every
// (assembly ...) call merges its children into out. Source must go through
// preprocessSource first so keywords and kebab-case names resolve.
func registerBuiltins(env *zygo.Zlisp, base joinery.Params, out *plan.AssemblyPlan) {

	// -----------------------------------------------------------------------
	// (joinery :finger-width 1.0 :margin 1.2)
	// -----------------------------------------------------------------------
	env.AddFunction("joinery", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := base
		if len(pa.positional) > 0 {
			sp, ok := pa.positional[0].(*sexpParams)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("joinery: expected (joinery ...) to extend, got %s", pa.positional[0].SexpString(nil))
			}
			p = sp.p
		}
		fields := paramKeys(&p)
		for key, v := range pa.kw {
			dst, ok := fields[key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("joinery: unknown parameter :%s", key)
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("joinery: %s: %w", key, err)
			}
			*dst = f
		}
		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("joinery: %w", err)
		}
		return &sexpParams{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %c: %w", "xyz"[i], err)
			}
			xyz[i] = f
		}
		return &sexpVec3{vec: plan.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (drawer :width 30 :depth 40 :height 7 :ends true :bottom false)
	// (drawer :width 30 :depth 40 :height 7 :style :tray)
	// -----------------------------------------------------------------------
	env.AddFunction("drawer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p, err := pa.params("drawer", base)
		if err != nil {
			return zygo.SexpNull, err
		}
		w, d, h, err := pa.dims("drawer")
		if err != nil {
			return zygo.SexpNull, err
		}
		opts := compose.DefaultDrawer
		if v, ok := pa.kw["style"]; ok {
			style, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("drawer: style: %w", err)
			}
			switch style {
			case "tray":
				opts = compose.TrayDrawer
			case "full":
				opts = compose.FullDrawer
			case "default":
			default:
				return zygo.SexpNull, fmt.Errorf("drawer: style %q, expected tray, full or default", style)
			}
		}
		if opts.Ends, err = pa.flag("drawer", "ends", opts.Ends); err != nil {
			return zygo.SexpNull, err
		}
		if opts.Bottom, err = pa.flag("drawer", "bottom", opts.Bottom); err != nil {
			return zygo.SexpNull, err
		}
		a, err := compose.Drawer(p, w, d, h, opts)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPlan{plan: a}, nil
	})

	// -----------------------------------------------------------------------
	// (drawer-box :width 100 :depth 60 :height 24 :separators (list 8.4 16.2))
	// -----------------------------------------------------------------------
	env.AddFunction("drawer_box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p, err := pa.params("drawer-box", base)
		if err != nil {
			return zygo.SexpNull, err
		}
		w, d, h, err := pa.dims("drawer-box")
		if err != nil {
			return zygo.SexpNull, err
		}
		var offsets []float64
		if v, ok := pa.kw["separators"]; ok {
			if offsets, err = toFloats(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("drawer-box: separators: %w", err)
			}
		}
		a, err := compose.Box(p, w, d, h, offsets)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPlan{plan: a}, nil
	})

	// -----------------------------------------------------------------------
	// (drawers :width 100 :depth 60 :height 24 :levels (list 3 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("drawers", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p, err := pa.params("drawers", base)
		if err != nil {
			return zygo.SexpNull, err
		}
		w, d, h, err := pa.dims("drawers")
		if err != nil {
			return zygo.SexpNull, err
		}
		v, ok := pa.kw["levels"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("drawers: missing :levels")
		}
		counts, err := toFloats(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drawers: levels: %w", err)
		}
		arr := make(layout.Arrangement, len(counts))
		for i, c := range counts {
			if c != float64(int(c)) {
				return zygo.SexpNull, fmt.Errorf("drawers: levels: item %d is not a whole number", i)
			}
			arr[i] = int(c)
		}
		opts := layout.DefaultOptions()
		if opts.Drawer.Bottom, err = pa.flag("drawers", "bottom", opts.Drawer.Bottom); err != nil {
			return zygo.SexpNull, err
		}
		res, err := layout.ArrangeWith(p, w, d, h, arr, opts)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPlan{plan: res.Plan}, nil
	})

	// -----------------------------------------------------------------------
	// (place (drawer ...) :at (vec3 0 0 10) :as "top-drawer")
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a plan as first argument")
		}
		sp, ok := pa.positional[0].(*sexpPlan)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("place: expected a plan, got %s", pa.positional[0].SexpString(nil))
		}
		placed := &sexpPlaced{plan: sp}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			placed.at = vec
		}
		if v, ok := pa.kw["as"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: as: %w", err)
			}
			placed.as = s
		}
		return placed, nil
	})

	// -----------------------------------------------------------------------
	// (assembly "name" (place ...) (drawer ...) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("assembly", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("assembly requires a name argument")
		}
		asmName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("assembly: name: %w", err)
		}

		a := plan.New(asmName)
		for i, arg := range args[1:] {
			var placed *sexpPlaced
			switch v := arg.(type) {
			case *sexpPlaced:
				placed = v
			case *sexpPlan:
				placed = &sexpPlaced{plan: v}
			default:
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: expected a plan or (place ...), got %s",
					i+1, arg.SexpString(nil))
			}
			if placed.plan.assembly {
				return zygo.SexpNull, fmt.Errorf("assembly: child %d: assembly %q cannot be nested",
					i+1, placed.plan.plan.Name)
			}
			prefix := placed.as
			if prefix == "" {
				prefix = fmt.Sprintf("%s%d", placed.plan.plan.Name, i+1)
			}
			a.Merge(placed.plan.plan, prefix, placed.at)
		}

		out.Merge(a, asmName, plan.Vec3{})
		return &sexpPlan{plan: a, assembly: true}, nil
	})
}
