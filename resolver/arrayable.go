package resolver

import (
	"context"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/node"
)

// ArrayOptions controls the shape of ResolveArrayable results.
type ArrayOptions struct {
	// Array forces a list result even for a single value.
	Array bool
}

// ResolveArrayable applies fn to every value of input using the active
// client from ctx. Id references are passed through without calling fn.
//
// Unless opts.Array is set, a result holding exactly one value is returned
// as a single value rather than a one-element list.
func ResolveArrayable[T any](ctx context.Context, input node.Arrayable[T], fn func(v T, c *Client) (T, error), opts ArrayOptions) (node.Arrayable[T], error) {
	c, err := clientFrom(ctx, "resolver.ResolveArrayable")
	if err != nil {
		return node.Arrayable[T]{}, err
	}
	return ResolveArrayableWith(c, input, fn, opts)
}

// ResolveArrayableWith is ResolveArrayable with an explicit client, for use
// inside resolve hooks that already hold one.
func ResolveArrayableWith[T any](c *Client, input node.Arrayable[T], fn func(v T, c *Client) (T, error), opts ArrayOptions) (node.Arrayable[T], error) {
	if c == nil {
		return node.Arrayable[T]{}, schemaorg.NewMissingContextError("resolver.ResolveArrayableWith")
	}

	items := input.Items()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if node.IsReference(item) {
			out = append(out, item)
			continue
		}
		v, err := fn(item, c)
		if err != nil {
			return node.Arrayable[T]{}, err
		}
		out = append(out, v)
	}

	if !opts.Array && len(out) == 1 {
		return node.Single(out[0]), nil
	}
	return node.List(out...), nil
}
