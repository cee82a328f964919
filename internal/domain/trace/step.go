// Package trace implements the hierarchical step trace the engine
// attaches to every analysis: a heterogeneous nested list of leaf
// strings and grouped sub-steps.
package trace

// Step is a tagged variant: either a leaf Text or a Group of child Steps.
type Step struct {
	text     string
	children []Step
	isGroup  bool
}

// Text builds a leaf step.
func Text(s string) Step {
	return Step{text: s}
}

// Group builds a grouped step out of child steps, representing one
// stage of rewriting (e.g. one pass of the simplify driver, or one
// strategy's application in the factorization engine).
func Group(label string, children ...Step) Step {
	return Step{text: label, children: children, isGroup: true}
}

// IsGroup reports whether this Step is a Group rather than a leaf Text.
func (s Step) IsGroup() bool { return s.isGroup }

// Label returns the leaf text, or the group's label.
func (s Step) Label() string { return s.text }

// Children returns the group's sub-steps (nil for a leaf).
func (s Step) Children() []Step { return s.children }

// Tree is an ordered sequence of top-level Steps, the trace produced by
// one call to Analyze.
type Tree []Step

// Append returns a new Tree with step appended (the tree is treated as
// immutable value data, consistent with the AST's no-mutation policy).
func (t Tree) Append(s Step) Tree {
	out := make(Tree, len(t), len(t)+1)
	copy(out, t)
	return append(out, s)
}

// Flatten renders the tree into a nested-list shape: a hierarchical
// list where each element is a string or a nested list. The outer
// []interface{} mirrors that heterogeneous shape for JSON-friendly
// output adapters.
func (t Tree) Flatten() []interface{} {
	out := make([]interface{}, 0, len(t))
	for _, s := range t {
		out = append(out, flattenStep(s))
	}
	return out
}

func flattenStep(s Step) interface{} {
	if !s.isGroup {
		return s.text
	}
	nested := make([]interface{}, 0, len(s.children)+1)
	nested = append(nested, s.text)
	for _, c := range s.children {
		nested = append(nested, flattenStep(c))
	}
	return nested
}
