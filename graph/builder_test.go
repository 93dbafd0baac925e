package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/config"
	"github.com/zero-day-ai/schemaorg/graph"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/nodes"
	"github.com/zero-day-ai/schemaorg/resolver"
)

const testConfig = `
site:
  canonical_host: https://example.com
  name: Example
`

func newClient(t *testing.T, yaml string, opts ...resolver.ClientOption) *resolver.Client {
	t.Helper()

	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	c, err := resolver.NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func thing(input node.Node, opts ...resolver.Option) *resolver.NodeResolver {
	return resolver.New(input, resolver.Definition{
		Defaults: node.Node{"@type": "Thing"},
		Required: []string{"name"},
	}, opts...)
}

func TestBuild_Document(t *testing.T) {
	c := newClient(t, testConfig)

	g, err := graph.NewBuilder(c).Add(
		thing(node.Node{"@id": "https://example.com#a", "name": "A"}),
		thing(node.Node{"@id": "https://example.com#b", "name": "B", "empty": ""}),
	).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, node.Node{
		"@context": "https://schema.org",
		"@graph": []any{
			node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A"},
			node.Node{"@id": "https://example.com#b", "@type": "Thing", "name": "B"},
		},
	}, g.Document())
}

func TestBuild_DuplicateStrategies(t *testing.T) {
	first := node.Node{"@id": "https://example.com#a", "name": "A", "description": "first"}
	second := node.Node{"@id": "https://example.com#a", "name": "A2"}

	tests := []struct {
		name   string
		yaml   string
		second *resolver.NodeResolver
		want   node.Node
	}{
		{
			name:   "replace by default",
			yaml:   testConfig,
			second: thing(second),
			want:   node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A2"},
		},
		{
			name:   "patch from resolver option",
			yaml:   testConfig,
			second: thing(second, resolver.WithStrategy(resolver.StrategyPatch)),
			want:   node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A2", "description": "first"},
		},
		{
			name:   "patch from call as partial",
			yaml:   testConfig,
			second: resolver.CallAsPartial(thing, node.Node{"@id": "https://example.com#a", "keywords": "x"}),
			want:   node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A", "description": "first", "keywords": "x"},
		},
		{
			name:   "patch from config",
			yaml:   testConfig + "graph:\n  strategy: patch\n",
			second: thing(second),
			want:   node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A2", "description": "first"},
		},
		{
			name:   "resolver option overrides config",
			yaml:   testConfig + "graph:\n  strategy: patch\n",
			second: thing(second, resolver.WithStrategy(resolver.StrategyReplace)),
			want:   node.Node{"@id": "https://example.com#a", "@type": "Thing", "name": "A2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.yaml)

			g, err := graph.NewBuilder(c).Add(thing(first), tt.second).Build(context.Background())
			require.NoError(t, err)

			require.Equal(t, 1, g.Len())
			assert.Equal(t, tt.want, g.Nodes()[0])
		})
	}
}

func TestBuild_ResolveErrorAborts(t *testing.T) {
	hookErr := errors.New("boom")
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	c := newClient(t, testConfig)

	failing := resolver.New(nil, resolver.Definition{
		Resolve: func(n node.Node, c *resolver.Client) (node.Node, error) {
			return nil, hookErr
		},
	})

	g, err := graph.NewBuilder(c, graph.WithTracer(tp.Tracer("test"))).
		Add(thing(node.Node{"name": "ok"}), failing).
		Build(context.Background())

	assert.Nil(t, g)
	assert.ErrorIs(t, err, hookErr)
	assert.Contains(t, err.Error(), "resolve node 1")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "schemaorg.graph.build", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestBuild_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	c := newClient(t, testConfig)

	_, err := graph.NewBuilder(c,
		graph.WithTracer(tp.Tracer("test")),
		graph.WithMeterProvider(metricnoop.NewMeterProvider()),
	).Add(thing(node.Node{"name": "A"})).Build(context.Background())
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(1), attrs["schemaorg.resolvers"])
	assert.Equal(t, int64(1), attrs["schemaorg.nodes"])
	assert.Equal(t, false, attrs["schemaorg.strict"])
}

func TestBuild_StrictRequired(t *testing.T) {
	strictConfig := testConfig + "graph:\n  strict_required: true\n"

	tests := []struct {
		name    string
		yaml    string
		opts    []graph.Option
		wantErr bool
	}{
		{name: "lenient by default", yaml: testConfig},
		{name: "option", yaml: testConfig, opts: []graph.Option{graph.WithStrictRequired(true)}, wantErr: true},
		{name: "config", yaml: strictConfig, wantErr: true},
		{name: "option overrides config", yaml: strictConfig, opts: []graph.Option{graph.WithStrictRequired(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, tt.yaml)

			_, err := graph.NewBuilder(c, tt.opts...).Add(thing(node.Node{"@id": "#nameless"})).Build(context.Background())
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, schemaorg.ErrMissingRequired)
			assert.ErrorIs(t, err, &schemaorg.Error{Kind: schemaorg.KindValidation})
		})
	}
}

func TestBuild_StrictRules(t *testing.T) {
	c := newClient(t, testConfig)
	r := resolver.New(node.Node{"name": "A"}, resolver.Definition{
		Rules: []resolver.Rule{{Name: "typed", Expr: `"@type" in node`}},
	})

	_, err := graph.NewBuilder(c, graph.WithStrictRequired(true)).Add(r).Build(context.Background())
	assert.ErrorIs(t, err, schemaorg.ErrRuleFailed)
}

func TestBuild_RelationsDoNotTouchResolvers(t *testing.T) {
	c := newClient(t, testConfig)

	target := thing(node.Node{"@id": "https://example.com#target", "name": "T"})
	linker := resolver.New(node.Node{"@id": "https://example.com#linker", "name": "L"}, resolver.Definition{
		MergeRelations: func(n node.Node, c *resolver.Client, nodes resolver.NodeFinder) error {
			found, ok := nodes.FindNode("#target")
			if !ok {
				return errors.New("target not found")
			}
			n["about"] = found.Ref()
			found["subjectOf"] = n.Ref()
			n["empty"] = ""
			return nil
		},
	})

	g, err := graph.NewBuilder(c).Add(target, linker).Build(context.Background())
	require.NoError(t, err)

	l, ok := g.FindNode("https://example.com#linker")
	require.True(t, ok)
	assert.Equal(t, node.RefTo("https://example.com#target"), l["about"])
	assert.NotContains(t, l, "empty")

	tn, _ := g.FindNode("https://example.com#target")
	assert.Equal(t, node.RefTo("https://example.com#linker"), tn["subjectOf"])

	cachedTarget, err := target.Resolve(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, cachedTarget, "subjectOf")
	cachedLinker, err := linker.Resolve(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, cachedLinker, "about")
}

func TestBuild_RelationError(t *testing.T) {
	relErr := errors.New("no sibling")
	c := newClient(t, testConfig)
	r := resolver.New(node.Node{"@id": "https://example.com#x"}, resolver.Definition{
		MergeRelations: func(n node.Node, c *resolver.Client, nodes resolver.NodeFinder) error {
			return relErr
		},
	})

	_, err := graph.NewBuilder(c).Add(r).Build(context.Background())
	assert.ErrorIs(t, err, relErr)
	assert.Contains(t, err.Error(), "https://example.com#x")
}

func TestBuild_ImageRoots(t *testing.T) {
	c := newClient(t, testConfig)
	r := thing(node.Node{"@id": "https://example.com#a", "name": "A", "image": []any{"/one.png", "/two.png"}})

	g, err := graph.NewBuilder(c).Add(r).Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, g.Len())
	a, _ := g.FindNode("https://example.com#a")
	images, ok := a["image"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)
	assert.Equal(t, node.RefTo("https://example.com#primaryimage"), images[0])

	primary, ok := g.FindNode("#primaryimage")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/one.png", primary["url"])

	second, ok := g.FindNode(images[1].(node.Node).ID())
	require.True(t, ok)
	assert.Equal(t, "https://example.com/two.png", second["url"])
}

func TestBuild_NodesWithoutID(t *testing.T) {
	c := newClient(t, testConfig)

	g, err := graph.NewBuilder(c).Add(
		thing(node.Node{"name": "A"}),
		thing(node.Node{"name": "B"}),
		nil,
	).Build(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, g.Len())
	assert.Equal(t, "A", g.Nodes()[0]["name"])
	assert.Equal(t, "B", g.Nodes()[1]["name"])
}

func TestBuild_NilClient(t *testing.T) {
	_, err := graph.NewBuilder(nil).Build(context.Background())
	assert.ErrorIs(t, err, schemaorg.ErrMissingContext)
}

func TestFindNode(t *testing.T) {
	c := newClient(t, testConfig)
	g, err := graph.NewBuilder(c).Add(
		thing(node.Node{"@id": "https://example.com/blog#webpage", "name": "Page"}),
		thing(node.Node{"@id": "https://example.com#website", "name": "Site"}),
	).Build(context.Background())
	require.NoError(t, err)

	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{id: "https://example.com#website", want: "Site", wantOK: true},
		{id: "#webpage", want: "Page", wantOK: true},
		{id: "#website", want: "Site", wantOK: true},
		{id: "webpage"},
		{id: "#missing"},
		{id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := g.FindNode(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, n["name"])
			}
		})
	}
}

func TestBuild_DistinctImagesStayDistinct(t *testing.T) {
	c := newClient(t, testConfig, resolver.WithCanonicalURL("/blog/hello"))

	g, err := graph.NewBuilder(c).Add(
		nodes.WebPage(nil),
		nodes.Article(node.Node{"headline": "Hello", "image": "/cover.jpg"}),
		nodes.Person(node.Node{"name": "Jane", "image": "/jane.jpg"}),
	).Build(context.Background())
	require.NoError(t, err)

	primaryRef := node.RefTo("https://example.com#primaryimage")

	article, ok := g.FindNode("#article")
	require.True(t, ok)
	assert.Equal(t, primaryRef, article["image"])

	page, ok := g.FindNode("#webpage")
	require.True(t, ok)
	assert.Equal(t, primaryRef, page["primaryImageOfPage"])

	primary, ok := g.FindNode("https://example.com#primaryimage")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/cover.jpg", primary["url"])

	var person node.Node
	for _, n := range g.Nodes() {
		if node.IncludesType(n, nodes.TypePerson) {
			person = n
		}
	}
	require.NotNil(t, person)
	photoRef, ok := person["image"].(node.Node)
	require.True(t, ok)
	require.NotEqual(t, primaryRef, photoRef)

	photo, ok := g.FindNode(photoRef.ID())
	require.True(t, ok)
	assert.Equal(t, "https://example.com/jane.jpg", photo["url"])

	var images int
	for _, n := range g.Nodes() {
		if node.IncludesType(n, nodes.TypeImageObject) {
			images++
		}
	}
	assert.Equal(t, 2, images)
}
