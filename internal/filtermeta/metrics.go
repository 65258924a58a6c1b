package filtermeta

import (
	"context"
)

// Metrics is an interface that is used for the collection of the filter
// metadata storage statistics.
type Metrics interface {
	// SetFiltersCount sets the total number of known filter names.
	SetFiltersCount(ctx context.Context, count uint)

	// SetRefreshStatus sets the status of the last index refresh.
	SetRefreshStatus(ctx context.Context, err error)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// SetFiltersCount implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) SetFiltersCount(_ context.Context, _ uint) {}

// SetRefreshStatus implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) SetRefreshStatus(_ context.Context, _ error) {}
