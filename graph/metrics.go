package graph

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// buildMetrics holds the instruments recorded once per graph build.
type buildMetrics struct {
	// nodesResolved counts resolvers processed by successful builds
	nodesResolved metric.Int64Counter

	// buildDuration records build duration in milliseconds
	buildDuration metric.Float64Histogram
}

func newBuildMetrics(meter metric.Meter) (*buildMetrics, error) {
	m := &buildMetrics{}
	var err error

	m.nodesResolved, err = meter.Int64Counter(
		"schemaorg.nodes.resolved",
		metric.WithDescription("Number of nodes resolved into a graph"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create nodes counter: %w", err)
	}

	m.buildDuration, err = meter.Float64Histogram(
		"schemaorg.graph.build.duration",
		metric.WithDescription("Graph build duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create build duration histogram: %w", err)
	}

	return m, nil
}

// record is a no-op on a nil receiver so builds never fail on metrics.
func (m *buildMetrics) record(ctx context.Context, resolved int, d time.Duration, strict bool) {
	if m == nil {
		return
	}
	opts := metric.WithAttributes(attribute.Bool("strict", strict))
	m.nodesResolved.Add(ctx, int64(resolved), opts)
	m.buildDuration.Record(ctx, float64(d.Microseconds())/1000, opts)
}
