// Package engine evaluates drawerbox scripts: a small Lisp, run in a
// zygomys sandbox, whose builtins plan drawers, carcases, and full drawer
// boxes and arrange them into one assembly plan.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/drawerbox/pkg/joinery"
	"github.com/chazu/drawerbox/pkg/plan"
)

// EvalError is a non-fatal error in user code: a parse error, a runtime
// error, or a builtin rejecting its arguments.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scripts. It is safe for concurrent use; every call to
// Evaluate runs in a fresh sandbox, and only the newest call's result is
// returned.
type Engine struct {
	params  joinery.Params
	timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams sets the joinery constants scripts start from.
func WithParams(p joinery.Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEngine creates an Engine using joinery.DefaultParams.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{params: joinery.DefaultParams(), timeout: EvalTimeout}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Params returns the joinery constants scripts start from.
func (e *Engine) Params() joinery.Params { return e.params }

// Evaluate runs source and returns the plan built by its assembly calls.
//
//   - On success: plan, nil, nil.
//   - On an error in the script: nil, eval errors, nil.
//   - On timeout, panic, or a newer call superseding this one: nil, nil, err.
func (e *Engine) Evaluate(source string) (*plan.AssemblyPlan, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		a, evalErrs := e.evaluate(source)
		ch <- evalResult{plan: a, errors: evalErrs}
	}()

	return e.await(ch, gen)
}

func (e *Engine) evaluate(source string) (*plan.AssemblyPlan, []EvalError) {
	out := plan.New("script")
	if strings.TrimSpace(source) == "" {
		return out, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, e.params, out)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err)
	}
	return out, nil
}

var (
	// "Error on line N: ..." as produced by the zygomys parser.
	linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	// "line N: ..."
	linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// parseZygomysError extracts a line number from a zygomys error message
// when it carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
