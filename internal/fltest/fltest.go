// Package fltest contains simple mocks for common interfaces and other test
// utilities.
package fltest

import (
	"context"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/FilteringLog/internal/remotekv"
	"github.com/AdguardTeam/golibs/service"
)

// Timeout is the common timeout for tests and contexts.
const Timeout = 1 * time.Second

// type check
var _ errcoll.Interface = (*ErrorCollector)(nil)

// ErrorCollector is an [errcoll.Interface] for tests.
type ErrorCollector struct {
	OnCollect func(ctx context.Context, err error)
}

// Collect implements the [errcoll.Interface] interface for *ErrorCollector.
func (c *ErrorCollector) Collect(ctx context.Context, err error) {
	c.OnCollect(ctx, err)
}

// type check
var _ remotekv.Interface = (*RemoteKV)(nil)

// RemoteKV is a [remotekv.Interface] for tests.
type RemoteKV struct {
	OnGet func(ctx context.Context, key string) (val []byte, ok bool, err error)
	OnSet func(ctx context.Context, key string, val []byte) (err error)
}

// Get implements the [remotekv.Interface] interface for *RemoteKV.
func (kv *RemoteKV) Get(ctx context.Context, key string) (val []byte, ok bool, err error) {
	return kv.OnGet(ctx, key)
}

// Set implements the [remotekv.Interface] interface for *RemoteKV.
func (kv *RemoteKV) Set(ctx context.Context, key string, val []byte) (err error) {
	return kv.OnSet(ctx, key, val)
}

// type check
var _ filtermeta.Finder = (*FilterNameFinder)(nil)

// FilterNameFinder is a [filtermeta.Finder] for tests.
type FilterNameFinder struct {
	OnFindName func(id extlog.FilterID) (name string, ok bool)
}

// FindName implements the [filtermeta.Finder] interface for
// *FilterNameFinder.
func (f *FilterNameFinder) FindName(id extlog.FilterID) (name string, ok bool) {
	return f.OnFindName(id)
}

// type check
var _ eventlog.Interface = (*EventLog)(nil)

// type check
var _ eventlog.Finder = (*EventLog)(nil)

// EventLog is an [eventlog.Interface] and [eventlog.Finder] for tests.
type EventLog struct {
	OnWrite func(ctx context.Context, e *extlog.FilteringEvent) (err error)
	OnFind  func(ctx context.Context, id extlog.EventID) (e *extlog.FilteringEvent, err error)
}

// Write implements the [eventlog.Interface] interface for *EventLog.
func (l *EventLog) Write(ctx context.Context, e *extlog.FilteringEvent) (err error) {
	return l.OnWrite(ctx, e)
}

// Find implements the [eventlog.Finder] interface for *EventLog.
func (l *EventLog) Find(ctx context.Context, id extlog.EventID) (e *extlog.FilteringEvent, err error) {
	return l.OnFind(ctx, id)
}

// type check
var _ service.Refresher = (*Refresher)(nil)

// Refresher is a [service.Refresher] for tests.
type Refresher struct {
	OnRefresh func(ctx context.Context) (err error)
}

// Refresh implements the [service.Refresher] interface for *Refresher.
func (r *Refresher) Refresh(ctx context.Context) (err error) {
	return r.OnRefresh(ctx)
}
