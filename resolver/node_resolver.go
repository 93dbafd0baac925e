package resolver

import (
	"context"
	"sync"

	"github.com/zero-day-ai/schemaorg/image"
	"github.com/zero-day-ai/schemaorg/node"
)

// imageOptions is how node images are expanded: a single primary image,
// kept as root graph nodes.
var imageOptions = image.Options{
	ResolvePrimaryImage: true,
	AsRootNodes:         true,
}

// NodeResolver is the memoized unit of work that turns one partial node and
// one Definition into one resolved node.
//
// Resolve computes the node at most once successfully; every later call
// returns the identical cached node. A failed attempt caches nothing, so
// the next call starts over. NodeResolver is safe for concurrent use: the
// first caller resolves while others wait for its result.
type NodeResolver struct {
	partial    node.Node
	definition Definition
	strategy   Strategy

	mu       sync.Mutex
	resolved node.Node
}

// New creates a resolver for partial using def. The partial node is not
// modified by resolution.
func New(partial node.Node, def Definition, opts ...Option) *NodeResolver {
	r := &NodeResolver{
		partial:    partial,
		definition: def,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CallAsPartial invokes a node constructor with data (or an empty node when
// data is nil) and the patch strategy, for inputs meant to amend a node
// declared elsewhere.
func CallAsPartial(fn func(input node.Node, opts ...Option) *NodeResolver, data node.Node) *NodeResolver {
	if data == nil {
		data = node.Node{}
	}
	return fn(data, WithStrategy(StrategyPatch))
}

// Partial returns the caller's input node.
func (r *NodeResolver) Partial() node.Node {
	return r.partial
}

// Definition returns the resolver's definition.
func (r *NodeResolver) Definition() Definition {
	return r.definition
}

// Strategy returns the duplicate-id strategy, empty when the assembler's
// default applies.
func (r *NodeResolver) Strategy() Strategy {
	return r.strategy
}

// IsResolved reports whether a resolved node is cached.
func (r *NodeResolver) IsResolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved != nil
}

// Resolve returns the resolved node, computing it on first use:
//
//  1. Defaults are taken from the definition, calling DefaultsFunc with the
//     active client when set.
//  2. The partial node is deep-merged over the defaults; partial wins.
//  3. An image field is expanded through the client's image resolver.
//  4. The definition's Resolve hook, if any, normalizes the node.
//  5. Empty fields are removed and the node is cached.
//
// The client is looked up in ctx only when a step needs it; a missing
// client is reported as a missing context error. The resolver's lock is held
// for the whole computation, so hooks must not resolve it again.
func (r *NodeResolver) Resolve(ctx context.Context) (node.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved != nil {
		return r.resolved, nil
	}

	var client *Client
	active := func() (*Client, error) {
		if client != nil {
			return client, nil
		}
		c, err := clientFrom(ctx, "NodeResolver.Resolve")
		if err != nil {
			return nil, err
		}
		client = c
		return c, nil
	}

	defaults := r.definition.Defaults
	if r.definition.DefaultsFunc != nil {
		c, err := active()
		if err != nil {
			return nil, err
		}
		defaults = node.Merge(r.definition.DefaultsFunc(c), defaults)
	}

	merged := node.Merge(r.partial, defaults)

	if img, ok := merged["image"]; ok && img != nil && img != "" {
		c, err := active()
		if err != nil {
			return nil, err
		}
		merged["image"] = c.Images().ResolveImages(img, imageOptions).Value()
	}

	result := merged
	if r.definition.Resolve != nil {
		c, err := active()
		if err != nil {
			return nil, err
		}
		out, err := r.definition.Resolve(merged, c)
		if err != nil {
			return nil, err
		}
		if out != nil {
			result = out
		}
	}

	r.resolved = node.Clean(result)
	if client != nil {
		client.Logger().Debug("resolved node",
			"id", r.resolved.ID(),
			"type", r.resolved.Types())
	}
	return r.resolved, nil
}

// ResolveID resolves the node if needed and returns its "@id".
func (r *NodeResolver) ResolveID(ctx context.Context) (string, error) {
	n, err := r.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return n.ID(), nil
}
