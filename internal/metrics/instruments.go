package metrics

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

type instrumentSpec struct {
	name        string
	description string
	unit        string
}

// instruments pairs a counter with a latency histogram recorded under the same
// label set.
type instruments struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(meter metric.Meter, counter, duration instrumentSpec) (*instruments, error) {
	c, err := meter.Int64Counter(counter.name,
		metric.WithDescription(counter.description),
		metric.WithUnit(counter.unit),
	)
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", counter.name, err)
	}

	h, err := meter.Float64Histogram(duration.name,
		metric.WithDescription(duration.description),
		metric.WithUnit(duration.unit),
	)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", duration.name, err)
	}

	return &instruments{counter: c, duration: h}, nil
}
