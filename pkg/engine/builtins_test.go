package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// ---------------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------------

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"simple keyword", `(drawer :width 20)`, `(drawer "__kw_width" 20)`},
		{"keyword value", `:style :tray`, `"__kw_style" "__kw_tray"`},
		{"keyword in string preserved", `"thing with :keyword inside"`, `"thing with :keyword inside"`},
		{"keyword in backticks preserved", "`raw :kw`", "`raw :kw`"},
		{"escaped quote", `"a \" :b" :c`, `"a \" :b" "__kw_c"`},
		{"assignment operator preserved", `(def x := 10)`, `(def x := 10)`},
		{"kebab-case identifier", `(drawer-box :air-gap 1)`, `(drawer_box "__kw_air-gap" 1)`},
		{"minus operator preserved", `(- 10 5)`, `(- 10 5)`},
		{"negative number preserved", `(vec3 -1 0 x-1)`, `(vec3 -1 0 x-1)`},
		{"double semicolon comment", `;; comment with :keyword`, `// comment with :keyword`},
		{"single semicolon comment", "; simple\n(+ 1 2)", "// simple\n(+ 1 2)"},
		{"unterminated string", `"open :kw`, `"open :kw`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.input); got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

func mustEval(t *testing.T, source string) *plan.AssemblyPlan {
	t.Helper()
	a, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return a
}

func TestDrawerStyles(t *testing.T) {
	tests := []struct {
		name   string
		source string
		panels int
	}{
		{"default", `(assembly "a" (drawer :width 20 :depth 30 :height 7))`, 4},
		{"tray", `(assembly "a" (drawer :width 20 :depth 30 :height 7 :style :tray))`, 2},
		{"full", `(assembly "a" (drawer :width 20 :depth 30 :height 7 :style :full))`, 5},
		{"bottom flag", `(assembly "a" (drawer :width 20 :depth 30 :height 7 :bottom true))`, 5},
		{"no ends", `(assembly "a" (drawer :width 20 :depth 30 :height 7 :ends false))`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustEval(t, tt.source).Len(); got != tt.panels {
				t.Errorf("panels = %d, want %d", got, tt.panels)
			}
		})
	}
}

func TestAssemblyWithPlacement(t *testing.T) {
	source := `
(def d (drawer :width 20 :depth 30 :height 7))
(assembly "pair"
  (place d :as "left")
  (place d :at (vec3 21 0 0) :as "right"))
`
	a := mustEval(t, source)
	if a.Len() != 8 {
		t.Fatalf("panels = %d, want 8", a.Len())
	}
	p, ok := a.Find("pair/right/side-left")
	if !ok {
		t.Fatal("expected panel pair/right/side-left")
	}
	if p.Placement.Translation.X != 21 {
		t.Errorf("right drawer at x=%g, want 21", p.Placement.Translation.X)
	}
	if _, ok := a.Find("pair/left/front"); !ok {
		t.Error("expected panel pair/left/front")
	}
}

func TestAssemblyDefaultNames(t *testing.T) {
	a := mustEval(t, `(assembly "a" (drawer-box :width 40 :depth 30 :height 20) (drawer :width 20 :depth 28 :height 7))`)
	if _, ok := a.Find("a/box1/top"); !ok {
		t.Error("expected a/box1/top")
	}
	if _, ok := a.Find("a/drawer2/back"); !ok {
		t.Error("expected a/drawer2/back")
	}
}

func TestDrawerBoxSeparators(t *testing.T) {
	a := mustEval(t, `(assembly "c" (drawer-box :width 100 :depth 60 :height 24 :separators (list 8.4 16.2)))`)
	if got := a.Count(plan.PanelSeparator); got != 2 {
		t.Errorf("separators = %d, want 2", got)
	}
}

func TestDrawersLayout(t *testing.T) {
	a := mustEval(t, `(assembly "chest" (drawers :width 100 :depth 60 :height 24 :levels (list 3 1 1)))`)
	if got := a.Count(plan.PanelSide); got != 2+2*5 {
		t.Errorf("sides = %d, want 12", got)
	}
	if _, ok := a.Find("chest/drawer-box1/level0/drawer2/front"); !ok {
		t.Error("expected chest/drawer-box1/level0/drawer2/front")
	}
}

func TestJoineryParams(t *testing.T) {
	source := `
(def p (joinery :finger-width 1.0 :margin 1.5))
(assembly "a" (drawer :width 20 :depth 30 :height 7 :params p))
`
	a := mustEval(t, source)
	side, ok := a.Find("a/drawer1/side-left")
	if !ok {
		t.Fatal("missing side")
	}
	slots := side.Slots(0)
	if len(slots) == 0 || slots[0].Width != 1.0 {
		t.Fatalf("slots = %+v, want width 1.0", slots)
	}
	if math.Abs(slots[0].Offset-2.5) > 1e-9 {
		t.Errorf("first slot at %g, want margin + finger = 2.5", slots[0].Offset)
	}
}

func TestEngineParams(t *testing.T) {
	p := joinery.DefaultParams()
	p.FingerWidth = 1.2
	a, evalErrs, err := NewEngine(WithParams(p)).Evaluate(`(assembly "a" (drawer :width 20 :depth 30 :height 7))`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", err, evalErrs)
	}
	side, _ := a.Find("a/drawer1/side-left")
	if w := side.Slots(0)[0].Width; w != 1.2 {
		t.Errorf("slot width = %g, want 1.2", w)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing dimension", `(drawer :width 20 :depth 30)`, "height"},
		{"too small", `(drawer :width 1 :depth 30 :height 7)`, "invalid dimension"},
		{"bad style", `(drawer :width 20 :depth 30 :height 7 :style :round)`, "style"},
		{"bad params", `(joinery :margin 5)`, "invalid configuration"},
		{"unknown param", `(joinery :glue 1)`, "glue"},
		{"bad arrangement", `(drawers :width 100 :depth 60 :height 24 :levels (list 0))`, "invalid arrangement"},
		{"fractional level", `(drawers :width 100 :depth 60 :height 24 :levels (list 1.5))`, "whole number"},
		{"place needs plan", `(place 3)`, "plan"},
		{"vec3 arity", `(vec3 1 2)`, "exactly 3"},
		{"nested assembly", `(assembly "outer" (assembly "inner" (drawer :width 20 :depth 30 :height 7)))`, "nested"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if a != nil {
				t.Error("expected nil plan")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			var msgs []string
			for _, e := range evalErrs {
				msgs = append(msgs, e.Message)
			}
			if joined := strings.Join(msgs, "\n"); !strings.Contains(joined, tt.want) {
				t.Errorf("errors %q do not mention %q", joined, tt.want)
			}
		})
	}
}
