package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/chazu/drawerbox/pkg/plan"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	ErrTimeout    = errors.New("evaluation timed out")
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

type evalResult struct {
	plan   *plan.AssemblyPlan
	errors []EvalError
	err    error
}

// latest reports whether gen is still the newest evaluation.
func (e *Engine) latest(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await returns the result of evaluation gen. A timed-out sandbox is
// abandoned; ch is buffered so it never blocks.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*plan.AssemblyPlan, []EvalError, error) {
	select {
	case res := <-ch:
		if !e.latest(gen) {
			return nil, nil, ErrSuperseded
		}
		return res.plan, res.errors, res.err
	case <-time.After(e.timeout):
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
	}
}
