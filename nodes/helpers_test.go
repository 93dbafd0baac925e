package nodes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zero-day-ai/schemaorg/config"
	"github.com/zero-day-ai/schemaorg/resolver"
)

const siteConfig = `
site:
  canonical_host: https://example.com/
  name: Example
  default_language: en-US
identity:
  type: Organization
  name: Acme
  logo: /logo.png
  same_as:
    - https://github.com/acme
`

func newClient(t *testing.T, yaml string, opts ...resolver.ClientOption) *resolver.Client {
	t.Helper()

	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)

	c, err := resolver.NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func pageContext(t *testing.T, opts ...resolver.ClientOption) (context.Context, *resolver.Client) {
	t.Helper()
	c := newClient(t, siteConfig, opts...)
	return resolver.WithClient(context.Background(), c), c
}
