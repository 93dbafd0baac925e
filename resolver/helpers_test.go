package resolver_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/schemaorg/config"
	"github.com/zero-day-ai/schemaorg/image"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
)

const testConfig = `
site:
  canonical_host: https://example.com
  name: Example
  default_language: en-US
`

func newTestClient(t *testing.T, opts ...resolver.ClientOption) *resolver.Client {
	t.Helper()

	cfg, err := config.Parse([]byte(testConfig))
	require.NoError(t, err)

	c, err := resolver.NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func testContext(t *testing.T, opts ...resolver.ClientOption) context.Context {
	t.Helper()
	return resolver.WithClient(context.Background(), newTestClient(t, opts...))
}

// sameMap reports whether two nodes share the same underlying map.
func sameMap(a, b node.Node) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// fakeImages turns every image value into a single root-level ImageObject
// and records the options it was called with.
type fakeImages struct {
	mu    sync.Mutex
	calls []image.Options
}

func (f *fakeImages) ResolveImages(input any, opts image.Options) node.Arrayable[any] {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	f.mu.Unlock()

	url, _ := input.(string)
	return node.Single(any(node.Node{
		"@id":   "https://example.com#primaryimage",
		"@type": "ImageObject",
		"url":   url,
	}))
}
