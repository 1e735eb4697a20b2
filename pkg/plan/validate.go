package plan

import "fmt"

// boundsTolerance absorbs floating-point drift in cut positions.
const boundsTolerance = 1e-9

// ValidationSeverity indicates whether a validation finding rejects a plan
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // plan must not be realized
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Panel    string             // panel name, empty for plan-level findings
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Panel == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] panel %s: %s", e.Severity, e.Panel, e.Message)
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the plan has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the structural and geometric checks over a plan. It never
// mutates the plan.
func Validate(a *AssemblyPlan) ValidationResult {
	var all []ValidationError
	all = append(all, validateNames(a)...)
	all = append(all, validateSizes(a)...)
	all = append(all, validateCutBounds(a)...)

	var result ValidationResult
	for _, e := range all {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, e)
		} else {
			result.Errors = append(result.Errors, e)
		}
	}
	return result
}

// validateNames checks that every panel is named and that names are unique.
func validateNames(a *AssemblyPlan) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int)
	var order []string
	for i, p := range a.Panels {
		if p.Name == "" {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("panel %d (%s) has no name", i, p.Kind),
				Severity: SeverityError,
			})
			continue
		}
		if seen[p.Name] == 0 {
			order = append(order, p.Name)
		}
		seen[p.Name]++
	}
	for _, name := range order {
		if n := seen[name]; n > 1 {
			errs = append(errs, ValidationError{
				Panel:    name,
				Message:  fmt.Sprintf("duplicate name used by %d panels", n),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateSizes checks that every panel base box has positive extent.
func validateSizes(a *AssemblyPlan) []ValidationError {
	var errs []ValidationError
	for _, p := range a.Panels {
		for _, ax := range []Axis{AxisX, AxisY, AxisZ} {
			if v := p.Size.Get(ax); v <= 0 {
				errs = append(errs, ValidationError{
					Panel:    p.Name,
					Message:  fmt.Sprintf("size %s is %.4f, must be positive", ax, v),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateCutBounds warns about box cutters that reach outside their panel.
// The common case is the short final slot of a finger joint whose edge
// length is not a whole number of pitches; it is kept on purpose.
func validateCutBounds(a *AssemblyPlan) []ValidationError {
	var warnings []ValidationError
	for _, p := range a.Panels {
		for _, f := range p.Features {
			if s, ok := f.(FingerSlot); ok {
				if !s.Cut.Within(p.Size, boundsTolerance) {
					warnings = append(warnings, ValidationError{
						Panel: p.Name,
						Message: fmt.Sprintf("finger slot at offset %.3f on edge %d is short: it overruns the panel (short final slot)",
							s.Offset, s.Edge),
						Severity: SeverityWarning,
					})
				}
				continue
			}
			for _, c := range f.Cutters() {
				if c.Shape != CutBox {
					continue
				}
				if !c.Box.Within(p.Size, boundsTolerance) {
					warnings = append(warnings, ValidationError{
						Panel:    p.Name,
						Message:  fmt.Sprintf("%s cut reaches outside the panel", f.Kind()),
						Severity: SeverityWarning,
					})
				}
			}
		}
	}
	return warnings
}
