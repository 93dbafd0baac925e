// Package resolver implements lazy node resolution: a NodeResolver wraps one
// partial node and one Definition, and on first access merges the node with
// its defaults, expands images, applies the definition's resolve hook and
// strips empty fields. The result is cached for the lifetime of the
// resolver.
package resolver

import (
	"github.com/zero-day-ai/schemaorg/config"
	"github.com/zero-day-ai/schemaorg/node"
)

// Definition describes how a node type is resolved.
type Definition struct {
	// Defaults supplies static fallback field values.
	Defaults node.Node

	// DefaultsFunc computes fallback values from the active client. Its
	// result is merged over Defaults when both are set. It runs under the
	// same lock as Resolve.
	DefaultsFunc func(c *Client) node.Node

	// Required lists fields a resolved node is expected to carry. The
	// resolver does not enforce them; see Validator.
	Required []string

	// Rules are CEL expressions over the variable `node` that must evaluate
	// to true for a resolved node to be valid; see Validator.
	Rules []Rule

	// Resolve lets the node type normalize the merged node. A non-nil return
	// value replaces the merged node; a nil one keeps it. Errors are
	// returned to the caller of NodeResolver.Resolve as is.
	//
	// The hook runs while the resolver holds its lock. It may resolve other
	// resolvers, but resolving its own resolver, directly or through a cycle
	// of hooks, deadlocks.
	Resolve func(n node.Node, c *Client) (node.Node, error)

	// MergeRelations runs after the whole graph is resolved so the node can
	// point at its siblings. The graph assembler decides when and in which
	// order it is called.
	MergeRelations func(n node.Node, c *Client, nodes NodeFinder) error
}

// Rule is a named CEL validation expression.
type Rule struct {
	Name string
	Expr string
}

// NodeFinder looks up resolved nodes by id.
type NodeFinder interface {
	FindNode(id string) (node.Node, bool)
}

// Strategy controls how a graph assembler treats a resolver whose node id is
// already present in the graph.
type Strategy string

const (
	// StrategyReplace makes the later node replace the earlier one.
	StrategyReplace Strategy = config.StrategyReplace

	// StrategyPatch deep-merges the later node over the earlier one.
	StrategyPatch Strategy = config.StrategyPatch
)

// Option configures a NodeResolver.
type Option func(*NodeResolver)

// WithStrategy sets the duplicate-id strategy.
func WithStrategy(s Strategy) Option {
	return func(r *NodeResolver) {
		r.strategy = s
	}
}
