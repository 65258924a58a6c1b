// Package eventlog defines the filtering-log storage interfaces and provides
// implementations of the log.
package eventlog

import (
	"context"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/errors"
)

// ErrNotFound is returned by [Finder.Find] when there is no event with the
// given ID.
const ErrNotFound errors.Error = "event not found"

// Interface is the filtering log interface.  All methods must be safe for
// concurrent use.
type Interface interface {
	// Write writes the event into the filtering log.  e must not be nil.
	Write(ctx context.Context, e *extlog.FilteringEvent) (err error)
}

// Finder is the interface of filtering logs that support lookup by event ID.
// All methods must be safe for concurrent use.
type Finder interface {
	// Find returns the event with the given ID.  err is [ErrNotFound] if
	// there is no such event.
	Find(ctx context.Context, id extlog.EventID) (e *extlog.FilteringEvent, err error)
}

// Empty is a filtering log that does nothing and returns nil values.
type Empty struct{}

// type check
var _ Interface = Empty{}

// Write implements the [Interface] interface for Empty.  It does nothing and
// returns nil.
func (Empty) Write(_ context.Context, _ *extlog.FilteringEvent) (err error) {
	return nil
}

// type check
var _ Finder = Empty{}

// Find implements the [Finder] interface for Empty.  It always returns
// [ErrNotFound].
func (Empty) Find(_ context.Context, _ extlog.EventID) (e *extlog.FilteringEvent, err error) {
	return nil, ErrNotFound
}

// Multi is an [Interface] implementation that writes to multiple underlying
// logs.
type Multi struct {
	logs []Interface
}

// NewMulti returns a new *Multi writing to logs in order.
func NewMulti(logs ...Interface) (l *Multi) {
	return &Multi{
		logs: logs,
	}
}

// type check
var _ Interface = (*Multi)(nil)

// Write implements the [Interface] interface for *Multi.  All underlying
// logs are written to even if some of them fail.
func (l *Multi) Write(ctx context.Context, e *extlog.FilteringEvent) (err error) {
	var errs []error
	for _, log := range l.logs {
		errs = append(errs, log.Write(ctx, e))
	}

	return errors.Join(errs...)
}
