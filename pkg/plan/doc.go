// Package plan defines the assembly plan produced by the joinery engine.
// A plan is an ordered list of panels, each a base board with declarative
// cut features and a rigid placement. Plans are values: composing two plans
// copies panels, it never shares them.
package plan
