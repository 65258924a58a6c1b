package cmd

import (
	"log/slog"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/FilteringLog/internal/websvc"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/AdguardTeam/golibs/validate"
)

// Web service configuration

// webConfig is the configuration for the HTTP API of the filtering log.
type webConfig struct {
	// Timeout is the timeout for all server operations.
	Timeout timeutil.Duration `yaml:"timeout"`
}

// type check
var _ validate.Interface = (*webConfig)(nil)

// Validate implements the [validate.Interface] interface for *webConfig.
func (c *webConfig) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	return validate.Positive("timeout", time.Duration(c.Timeout))
}

// toInternal converts c to the web service configuration.  c is assumed to be
// valid.  All arguments must not be nil.
func (c *webConfig) toInternal(
	envs *environment,
	baseLogger *slog.Logger,
	errColl errcoll.Interface,
	mtrc websvc.Metrics,
	eventLog eventlog.Interface,
	eventFinder eventlog.Finder,
	filterMeta filtermeta.Finder,
	userRules *userrules.Storage,
) (conf *websvc.Config) {
	return &websvc.Config{
		Logger:      baseLogger.With(slogutil.KeyPrefix, "websvc"),
		ErrColl:     errColl,
		Metrics:     mtrc,
		EventLog:    eventLog,
		EventFinder: eventFinder,
		FilterMeta:  filterMeta,
		UserRules:   userRules,
		Addr:        netutil.JoinHostPort(envs.ListenAddr.String(), envs.ListenPort),
		Timeout:     time.Duration(c.Timeout),
	}
}
