package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/debugsvc"
	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/FilteringLog/internal/flcache"
	"github.com/AdguardTeam/FilteringLog/internal/metrics"
	"github.com/AdguardTeam/FilteringLog/internal/remotekv"
	"github.com/AdguardTeam/FilteringLog/internal/remotekv/rediskv"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/FilteringLog/internal/websvc"
	"github.com/AdguardTeam/golibs/contextutil"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/osutil"
	"github.com/AdguardTeam/golibs/redisutil"
	"github.com/AdguardTeam/golibs/service"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/prometheus/client_golang/prometheus"
)

// Constants that define debug identifiers for the debug HTTP service.
const (
	debugIDFilterMeta = "filter_meta"
)

// shutdownTimeout is the default shutdown timeout for all services.
const shutdownTimeout = 5 * time.Second

// keyNamespaceSep is the separator between the key prefix and the keys of the
// remote key-value storage.
const keyNamespaceSep = ":"

// Default Redis connection pool parameters.
const (
	redisMaxConnLifetime = 1 * time.Minute
	redisIdleTimeout     = 30 * time.Second

	redisMaxActive = 10
	redisMaxIdle   = 3
)

// defaultFilterNames contains the names of the dynamic filter lists that are
// never present in the filter index.
var defaultFilterNames = filtermeta.Static{
	extlog.FilterIDUserFilter: "User filter",
	extlog.FilterIDAllowlist:  "Allowlist",
}

// builderConfig contains the initial configuration for the builder.
type builderConfig struct {
	// envs contains the environment variables.  It must be valid and must not
	// be nil.
	envs *environment

	// conf contains the configuration from the configuration file.  It must
	// be valid and must not be nil.
	conf *configuration

	// baseLogger is used to create loggers for other entities.  It must not
	// be nil.
	baseLogger *slog.Logger

	// errColl is used to collect errors in the entities.  It must not be nil.
	errColl errcoll.Interface
}

// builder contains the logic of configuring and combining together the
// filtering-log service entities.
//
// NOTE:  Keep method definitions in the rough order in which they are
// intended to be called.
type builder struct {
	// The fields below are initialized immediately on construction.  Keep
	// them sorted.

	baseLogger     *slog.Logger
	conf           *configuration
	debugRefrs     debugsvc.Refreshers
	env            *environment
	errColl        errcoll.Interface
	logger         *slog.Logger
	mtrcNamespace  string
	promRegisterer prometheus.Registerer
	sigHdlr        *service.SignalHandler

	// The fields below are initialized later by calling the builder's
	// methods.  Keep them sorted.

	eventFinder eventlog.Finder
	eventLog    eventlog.Interface
	filterMeta  *filtermeta.Storage
	userRules   *userrules.Storage
	webSvc      *websvc.Service
}

// newBuilder returns a new properly initialized *builder.  c must not be nil.
func newBuilder(c *builderConfig) (b *builder) {
	return &builder{
		baseLogger:     c.baseLogger,
		conf:           c.conf,
		debugRefrs:     debugsvc.Refreshers{},
		env:            c.envs,
		errColl:        c.errColl,
		logger:         c.baseLogger.With(slogutil.KeyPrefix, "builder"),
		mtrcNamespace:  metrics.Namespace(),
		promRegisterer: prometheus.DefaultRegisterer,
		sigHdlr: service.NewSignalHandler(&service.SignalHandlerConfig{
			Logger:          c.baseLogger.With(slogutil.KeyPrefix, service.SignalHandlerPrefix),
			ShutdownTimeout: shutdownTimeout,
		}),
	}
}

// initEventLog initializes the event log and the event finder.
func (b *builder) initEventLog(ctx context.Context) (err error) {
	kv, err := b.newRemoteKV()
	if err != nil {
		return fmt.Errorf("initializing remote kv: %w", err)
	}

	kvLog := eventlog.NewKV(&eventlog.KVConfig{
		KV: remotekv.NewKeyNamespace(&remotekv.KeyNamespaceConfig{
			KV:     kv,
			Prefix: b.env.RedisKeyPrefix + keyNamespaceSep,
		}),
	})

	b.eventFinder = kvLog

	logs := []eventlog.Interface{kvLog}
	if b.conf.EventLog.File.Enabled {
		mtrc, mtrcErr := metrics.NewEventLog(b.mtrcNamespace, b.promRegisterer)
		if mtrcErr != nil {
			return fmt.Errorf("registering eventlog metrics: %w", mtrcErr)
		}

		logs = append(logs, eventlog.NewFileSystem(&eventlog.FileSystemConfig{
			Logger:  b.baseLogger.With(slogutil.KeyPrefix, "eventlog"),
			Metrics: mtrc,
			Path:    b.env.EventLogPath,
		}))

		b.logger.DebugContext(ctx, "initialized file-based event log")
	}

	b.eventLog = eventlog.NewMulti(logs...)

	b.logger.DebugContext(ctx, "initialized event log")

	return nil
}

// newRemoteKV returns the remote key-value storage in which the events are
// kept between requests.
func (b *builder) newRemoteKV() (kv remotekv.Interface, err error) {
	if !b.env.RedisEnabled {
		return remotekv.NewCache(&remotekv.CacheConfig{
			Cache: flcache.NewLRU[string, []byte](&flcache.LRUConfig{
				Size: b.conf.EventLog.CacheSize,
			}),
		}), nil
	}

	mtrc, err := metrics.NewRedisKV(b.mtrcNamespace, b.promRegisterer)
	if err != nil {
		return nil, fmt.Errorf("registering redis kv metrics: %w", err)
	}

	dialer, err := redisutil.NewDefaultDialer(&redisutil.DefaultDialerConfig{
		Addr: &netutil.HostPort{
			Host: b.env.RedisHost,
			Port: b.env.RedisPort,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("initializing dialer: %w", err)
	}

	pool, err := redisutil.NewDefaultPool(&redisutil.DefaultPoolConfig{
		Logger:          b.baseLogger.With(slogutil.KeyPrefix, "redis_pool"),
		Dialer:          dialer,
		Metrics:         mtrc,
		MaxConnLifetime: redisMaxConnLifetime,
		IdleTimeout:     redisIdleTimeout,
		MaxActive:       redisMaxActive,
		MaxIdle:         redisMaxIdle,
		Wait:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing pool: %w", err)
	}

	return rediskv.NewRedisKV(&rediskv.RedisKVConfig{
		Pool: pool,
		TTL:  time.Duration(b.env.RedisKVTTL),
	}), nil
}

// initFilterMeta initializes the filter-list metadata storage as well as
// starts and registers its refresher in the signal handler.  It also adds the
// refresher with ID [debugIDFilterMeta] to the debug refreshers.
func (b *builder) initFilterMeta(ctx context.Context) (err error) {
	mtrc, err := metrics.NewFilterMeta(b.mtrcNamespace, b.promRegisterer)
	if err != nil {
		return fmt.Errorf("registering filtermeta metrics: %w", err)
	}

	c := b.conf.FilterMeta
	strg := filtermeta.NewStorage(&filtermeta.StorageConfig{
		Logger:   b.baseLogger.With(slogutil.KeyPrefix, "filtermeta"),
		IndexURL: &b.env.FilterIndexURL.URL,
		Defaults: defaultFilterNames,
		Metrics:  mtrc,
		Timeout:  time.Duration(c.Timeout),
	})

	err = strg.Refresh(ctx)
	if err != nil {
		b.logger.WarnContext(ctx, "initial filtermeta refresh", slogutil.KeyError, err)
	}

	b.filterMeta = strg

	refr := service.NewRefreshWorker(&service.RefreshWorkerConfig{
		ContextConstructor: contextutil.NewTimeoutConstructor(time.Duration(c.Timeout)),
		ErrorHandler:       newSlogErrorHandler(b.baseLogger, "filtermeta_refresh"),
		Refresher:          strg,
		Schedule:           timeutil.NewConstSchedule(time.Duration(c.RefreshIvl)),
		RefreshOnShutdown:  false,
	})
	err = refr.Start(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("starting filtermeta refresher: %w", err)
	}

	b.sigHdlr.AddService(refr)

	b.debugRefrs[debugIDFilterMeta] = strg

	b.logger.DebugContext(ctx, "initialized filtermeta")

	return nil
}

// newSlogErrorHandler is a convenient wrapper around
// [service.NewSlogErrorHandler].
func newSlogErrorHandler(baseLogger *slog.Logger, prefix string) (h *service.SlogErrorHandler) {
	return service.NewSlogErrorHandler(
		baseLogger.With(slogutil.KeyPrefix, prefix),
		slog.LevelError,
		"refreshing",
	)
}

// initUserRules initializes the storage of the rules added by the user.
func (b *builder) initUserRules(ctx context.Context) (err error) {
	b.userRules, err = userrules.New(&userrules.Config{
		Logger:        b.baseLogger.With(slogutil.KeyPrefix, "userrules"),
		RulesPath:     b.env.UserRulesPath,
		AllowlistPath: b.env.AllowlistPath,
		SessionTTL:    time.Duration(b.conf.UserRules.SessionTTL),
	})
	if err != nil {
		return fmt.Errorf("initializing user rules: %w", err)
	}

	b.logger.DebugContext(ctx, "initialized user rules")

	return nil
}

// initWeb initializes the web service of the filtering log.
//
// The following methods must be called before this one:
//   - [builder.initEventLog]
//   - [builder.initFilterMeta]
//   - [builder.initUserRules]
func (b *builder) initWeb(ctx context.Context) (err error) {
	webSvcMtrc, err := metrics.NewWebSvc(b.mtrcNamespace, b.promRegisterer)
	if err != nil {
		return fmt.Errorf("registering websvc metrics: %w", err)
	}

	webConf := b.conf.Web.toInternal(
		b.env,
		b.baseLogger,
		b.errColl,
		webSvcMtrc,
		b.eventLog,
		b.eventFinder,
		b.filterMeta,
		b.userRules,
	)

	b.webSvc = websvc.New(webConf)

	// The web service is considered critical, so its Start method panics
	// instead of returning an error.
	_ = b.webSvc.Start(context.WithoutCancel(ctx))

	b.sigHdlr.AddService(b.webSvc)

	b.logger.DebugContext(ctx, "initialized web")

	return nil
}

// mustInitDebugSvc initializes and starts the debug HTTP service.  It panics
// on error, since the debug service is critical for the server.
func (b *builder) mustInitDebugSvc(ctx context.Context) {
	debugSvcConf := b.env.debugConf(b.baseLogger)
	debugSvcConf.Refreshers = b.debugRefrs
	debugSvc := debugsvc.New(debugSvcConf)

	// The debug HTTP service is considered critical, so its Start method
	// panics instead of returning an error.
	_ = debugSvc.Start(context.WithoutCancel(ctx))

	b.sigHdlr.AddService(debugSvc)

	b.logger.DebugContext(
		ctx,
		"initialized debug",
		"refr_ids", slices.Collect(maps.Keys(b.debugRefrs)),
	)
}

// handleSignals blocks and processes signals from the OS.  status is
// [osutil.ExitCodeSuccess] on success and [osutil.ExitCodeFailure] on error.
//
// handleSignals must not be called concurrently with any other methods.
func (b *builder) handleSignals(ctx context.Context) (code osutil.ExitCode) {
	return b.sigHdlr.Handle(ctx)
}
