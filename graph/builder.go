package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/schemaorg"
	"github.com/zero-day-ai/schemaorg/image"
	"github.com/zero-day-ai/schemaorg/node"
	"github.com/zero-day-ai/schemaorg/resolver"
)

const instrumentationName = "github.com/zero-day-ai/schemaorg/graph"

// Builder assembles a Graph from node resolvers. Resolvers are processed in
// the order they were added. A Builder is safe for concurrent use, but a
// graph should be built once per client.
type Builder struct {
	client *resolver.Client
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	strict *bool

	metrics *buildMetrics

	mu        sync.Mutex
	resolvers []*resolver.NodeResolver
}

// Option configures a Builder.
type Option func(*Builder)

// WithTracer sets the tracer used for build spans.
// If not provided, a no-op tracer is used.
func WithTracer(t trace.Tracer) Option {
	return func(b *Builder) {
		b.tracer = t
	}
}

// WithMeterProvider sets the meter provider used for build metrics.
// If not provided, a no-op meter is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(b *Builder) {
		if mp != nil {
			b.meter = mp.Meter(instrumentationName)
		}
	}
}

// WithLogger sets a custom logger.
// If not provided, the client's logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithStrictRequired makes Build validate every resolved node against its
// definition's required fields and rules. Overrides graph.strict_required
// from the configuration.
func WithStrictRequired(strict bool) Option {
	return func(b *Builder) {
		b.strict = &strict
	}
}

// NewBuilder creates a Builder resolving nodes against client.
func NewBuilder(client *resolver.Client, opts ...Option) *Builder {
	b := &Builder{client: client}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		if client != nil {
			b.logger = client.Logger()
		} else {
			b.logger = slog.Default()
		}
	}
	if b.tracer == nil {
		b.tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	if b.meter == nil {
		b.meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}

	metrics, err := newBuildMetrics(b.meter)
	if err != nil {
		b.logger.Warn("graph metrics disabled", "error", err)
	}
	b.metrics = metrics
	return b
}

// Add appends resolvers to the graph. Nil resolvers are ignored.
func (b *Builder) Add(resolvers ...*resolver.NodeResolver) *Builder {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range resolvers {
		if r != nil {
			b.resolvers = append(b.resolvers, r)
		}
	}
	return b
}

// Build resolves every added resolver and assembles the graph:
//
//  1. Each resolver is resolved with the builder's client attached to ctx.
//     The first failure aborts the build.
//  2. In strict mode each node is validated against its definition.
//  3. Nodes sharing an @id are merged per the resolver's strategy, falling
//     back to graph.strategy from the configuration.
//  4. Image nodes collected by the client's image resolver are added.
//  5. Every definition's MergeRelations hook runs in insertion order.
//  6. All nodes are cleaned once more.
//
// Graph nodes are copies; the resolvers' cached nodes are never modified.
func (b *Builder) Build(ctx context.Context) (*Graph, error) {
	if b.client == nil {
		return nil, schemaorg.NewMissingContextError("Builder.Build")
	}

	b.mu.Lock()
	resolvers := make([]*resolver.NodeResolver, len(b.resolvers))
	copy(resolvers, b.resolvers)
	b.mu.Unlock()

	start := time.Now()
	strict := b.strictRequired()

	ctx = resolver.WithClient(ctx, b.client)
	ctx, span := b.tracer.Start(ctx, "schemaorg.graph.build")
	defer span.End()
	span.SetAttributes(
		attribute.Int("schemaorg.resolvers", len(resolvers)),
		attribute.Bool("schemaorg.strict", strict),
	)

	g, err := b.assemble(ctx, resolvers, strict)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("schemaorg.nodes", g.Len()))
	span.SetStatus(codes.Ok, "")
	b.metrics.record(ctx, len(resolvers), time.Since(start), strict)

	b.logger.Debug("graph built",
		"resolvers", len(resolvers),
		"nodes", g.Len(),
		"duration", time.Since(start))
	return g, nil
}

type placement struct {
	resolver *resolver.NodeResolver
	pos      int
}

func (b *Builder) assemble(ctx context.Context, resolvers []*resolver.NodeResolver, strict bool) (*Graph, error) {
	var validator *resolver.Validator
	if strict {
		v, err := resolver.NewValidator()
		if err != nil {
			return nil, schemaorg.NewInternalError("Builder.Build", err)
		}
		validator = v
	}

	g := newGraph()
	placements := make([]placement, 0, len(resolvers))

	for i, r := range resolvers {
		n, err := r.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve node %d: %w", i, err)
		}
		if validator != nil {
			if err := validator.Validate(r.Definition(), n); err != nil {
				return nil, fmt.Errorf("validate node %d: %w", i, err)
			}
		}

		strategy := b.strategyFor(r)
		pos, dup := g.put(n.Clone(), strategy == resolver.StrategyPatch)
		if dup {
			b.logger.Warn("duplicate node id",
				"id", n.ID(),
				"strategy", string(strategy))
		}
		placements = append(placements, placement{resolver: r, pos: pos})
	}

	if collector, ok := b.client.Images().(image.Collector); ok {
		for _, img := range collector.RootNodes() {
			g.put(img.Clone(), true)
		}
	}

	for _, p := range placements {
		hook := p.resolver.Definition().MergeRelations
		if hook == nil {
			continue
		}
		n := g.nodes[p.pos]
		if err := hook(n, b.client, g); err != nil {
			return nil, fmt.Errorf("merge relations of %q: %w", n.ID(), err)
		}
	}

	for _, n := range g.nodes {
		node.Clean(n)
	}
	return g, nil
}

func (b *Builder) strategyFor(r *resolver.NodeResolver) resolver.Strategy {
	if s := r.Strategy(); s != "" {
		return s
	}
	return resolver.Strategy(b.client.Config().Strategy())
}

func (b *Builder) strictRequired() bool {
	if b.strict != nil {
		return *b.strict
	}
	return b.client.Config().StrictRequired()
}
