package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/c2h5oh/datasize"
	"github.com/prometheus/client_golang/prometheus"
)

// EventLog is the Prometheus-based implementation of the [eventlog.Metrics]
// interface.
type EventLog struct {
	itemsTotal    prometheus.Counter
	itemSize      prometheus.Histogram
	writeDuration prometheus.Histogram
}

// NewEventLog registers the filtering-log metrics in reg and returns a
// properly initialized *EventLog.
func NewEventLog(namespace string, reg prometheus.Registerer) (m *EventLog, err error) {
	const (
		itemsTotal    = "items_total"
		itemSize      = "items_size_bytes"
		writeDuration = "write_duration_seconds"
	)

	m = &EventLog{
		itemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:      itemsTotal,
			Subsystem: subsystemEventLog,
			Namespace: namespace,
			Help:      "The total number of filtering log entries written.",
		}),
		itemSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:      itemSize,
			Subsystem: subsystemEventLog,
			Namespace: namespace,
			Help:      "A histogram with the filtering log entry size.",
			// Entries are measured in bytes.  Most of the space is taken by
			// request URLs and filtering rules which might in theory be
			// pretty long, therefore buckets are up to 2000 bytes.
			Buckets: []float64{50, 100, 200, 300, 400, 600, 800, 1000, 2000},
		}),
		writeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:      writeDuration,
			Subsystem: subsystemEventLog,
			Namespace: namespace,
			Help:      "A histogram with the duration of writing an entry.",
			// We chose buckets considering that writing to a file is a fast
			// operation.  If for some reason it takes over 1ms, something
			// went terribly wrong.
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}

	var errs []error
	collectors := container.KeyValues[string, prometheus.Collector]{{
		Key:   itemsTotal,
		Value: m.itemsTotal,
	}, {
		Key:   itemSize,
		Value: m.itemSize,
	}, {
		Key:   writeDuration,
		Value: m.writeDuration,
	}}

	for _, c := range collectors {
		err = reg.Register(c.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("registering metrics %q: %w", c.Key, err))
		}
	}

	if err = errors.Join(errs...); err != nil {
		return nil, err
	}

	return m, nil
}

// type check
var _ eventlog.Metrics = (*EventLog)(nil)

// IncrementItemsCount implements the [eventlog.Metrics] interface for
// *EventLog.
func (m *EventLog) IncrementItemsCount(_ context.Context) {
	m.itemsTotal.Inc()
}

// ObserveItemSize implements the [eventlog.Metrics] interface for *EventLog.
func (m *EventLog) ObserveItemSize(_ context.Context, size datasize.ByteSize) {
	m.itemSize.Observe(float64(size))
}

// ObserveWriteDuration implements the [eventlog.Metrics] interface for
// *EventLog.
func (m *EventLog) ObserveWriteDuration(_ context.Context, dur time.Duration) {
	m.writeDuration.Observe(dur.Seconds())
}
