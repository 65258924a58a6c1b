package metrics

import (
	"context"
	"fmt"

	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// FilterMeta is the Prometheus-based implementation of the
// [filtermeta.Metrics] interface.
type FilterMeta struct {
	filtersCount  prometheus.Gauge
	refreshStatus prometheus.Gauge
}

// NewFilterMeta registers the filter metadata storage metrics in reg and
// returns a properly initialized *FilterMeta.
func NewFilterMeta(namespace string, reg prometheus.Registerer) (m *FilterMeta, err error) {
	const (
		filtersCount  = "filters_count"
		refreshStatus = "refresh_status"
	)

	m = &FilterMeta{
		filtersCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:      filtersCount,
			Subsystem: subsystemFilterMeta,
			Namespace: namespace,
			Help:      "The total number of known filter names.",
		}),
		refreshStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:      refreshStatus,
			Subsystem: subsystemFilterMeta,
			Namespace: namespace,
			Help:      "Status of the last filter index refresh.",
		}),
	}

	var errs []error
	collectors := container.KeyValues[string, prometheus.Collector]{{
		Key:   filtersCount,
		Value: m.filtersCount,
	}, {
		Key:   refreshStatus,
		Value: m.refreshStatus,
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
var _ filtermeta.Metrics = (*FilterMeta)(nil)

// SetFiltersCount implements the [filtermeta.Metrics] interface for
// *FilterMeta.
func (m *FilterMeta) SetFiltersCount(_ context.Context, count uint) {
	m.filtersCount.Set(float64(count))
}

// SetRefreshStatus implements the [filtermeta.Metrics] interface for
// *FilterMeta.
func (m *FilterMeta) SetRefreshStatus(_ context.Context, err error) {
	if err == nil {
		m.refreshStatus.Set(1)
	} else {
		m.refreshStatus.Set(0)
	}
}
