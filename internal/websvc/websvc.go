// Package websvc contains the HTTP API of the filtering log service.
package websvc

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/service"
)

// Config is the filtering log web service configuration structure.
type Config struct {
	// Logger is used for logging the operation of the web service.  It must
	// not be nil.
	Logger *slog.Logger

	// ErrColl is used to collect HTTP API errors.  It must not be nil.
	ErrColl errcoll.Interface

	// Metrics collects the web service request statistics.  It must not be
	// nil.
	Metrics Metrics

	// EventLog is the log into which incoming events are written.  It must
	// not be nil.
	EventLog eventlog.Interface

	// EventFinder is used to look events up by their IDs.  It must not be
	// nil.
	EventFinder eventlog.Finder

	// FilterMeta is used to resolve filter-list display names.  It must not
	// be nil.
	FilterMeta filtermeta.Finder

	// UserRules is the storage of the rules added by the user.  It must not
	// be nil.
	UserRules *userrules.Storage

	// Addr is the address to listen on.  It must not be empty.
	Addr string

	// Timeout is the timeout for all server operations.  It must be
	// positive.
	Timeout time.Duration
}

// Service is the filtering log web service.
type Service struct {
	logger      *slog.Logger
	errColl     errcoll.Interface
	metrics     Metrics
	eventLog    eventlog.Interface
	eventFinder eventlog.Finder
	filterMeta  filtermeta.Finder
	userRules   *userrules.Storage
	srv         *http.Server
}

// New returns a new properly initialized *Service.  c must not be nil and
// must be valid.
func New(c *Config) (svc *Service) {
	svc = &Service{
		logger:      c.Logger,
		errColl:     c.ErrColl,
		metrics:     c.Metrics,
		eventLog:    c.EventLog,
		eventFinder: c.EventFinder,
		filterMeta:  c.FilterMeta,
		userRules:   c.UserRules,
	}

	svc.srv = &http.Server{
		Addr:         c.Addr,
		Handler:      svc.routes(),
		ErrorLog:     slog.NewLogLogger(c.Logger.Handler(), slog.LevelDebug),
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	}

	return svc
}

// type check
var _ service.Interface = (*Service)(nil)

// Start implements the [service.Interface] interface for *Service.  It
// starts serving the HTTP API but does not wait for the listener to actually
// go online.  err is always nil.
func (svc *Service) Start(ctx context.Context) (err error) {
	go func() {
		svc.logger.InfoContext(ctx, "listening", "addr", svc.srv.Addr)

		srvErr := svc.srv.ListenAndServe()
		if !errors.Is(srvErr, http.ErrServerClosed) {
			svc.logger.ErrorContext(ctx, "serving failed", slogutil.KeyError, srvErr)
		}
	}()

	return nil
}

// Shutdown implements the [service.Interface] interface for *Service.  It
// stops serving the HTTP API.
func (svc *Service) Shutdown(ctx context.Context) (err error) {
	err = svc.srv.Shutdown(ctx)
	if err != nil {
		return errors.Annotate(err, "websvc shutdown: %w")
	}

	svc.logger.InfoContext(ctx, "server is shutdown")

	return nil
}
