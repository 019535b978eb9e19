package format

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter  = otel.Meter("paradigm/format")
	tracer = otel.Tracer("paradigm/format")
)

// InitMeter registers the formatter metrics with the global meter provider.
func (f *Formatter) InitMeter() error {
	gauges := []struct {
		name, desc string
		value      func(Stats) int64
	}{
		{"paradigm.cache.size", "The current number of cached messages", func(s Stats) int64 { return int64(s.Size) }},
		{"paradigm.cache.hits", "The total number of messages served from the cache", func(s Stats) int64 { return int64(s.Hits) }},
		{"paradigm.cache.misses", "The total number of messages missing in the cache", func(s Stats) int64 { return int64(s.Misses) }},
		{"paradigm.parses", "The total number of parsed messages", func(s Stats) int64 { return int64(s.Parses) }},
	}
	for _, g := range gauges {
		_, err := meter.Int64ObservableGauge(
			g.name,
			metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
				o.Observe(g.value(f.Stats()))
				return nil
			}),
			metric.WithDescription(g.desc),
			metric.WithUnit("1"),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
