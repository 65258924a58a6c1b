package cmd

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/debugsvc"
	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/remotekv/rediskv"
	"github.com/AdguardTeam/FilteringLog/internal/version"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/caarlos0/env/v7"
	"github.com/getsentry/sentry-go"
)

// environment represents the configuration that is kept in the environment.
type environment struct {
	FilterIndexURL *urlutil.URL `env:"FILTER_INDEX_URL,notEmpty"`

	AllowlistPath  string `env:"ALLOWLIST_PATH" envDefault:"./allowlist.txt"`
	ConfPath       string `env:"CONFIG_PATH" envDefault:"./config.yaml"`
	EventLogPath   string `env:"EVENTLOG_PATH" envDefault:"./eventlog.jsonl"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	RedisHost      string `env:"REDIS_HOST"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"flog"`
	SentryDSN      string `env:"SENTRY_DSN" envDefault:"stderr"`
	UserRulesPath  string `env:"USER_RULES_PATH" envDefault:"./user_rules.txt"`

	DebugListenAddr net.IP `env:"DEBUG_LISTEN_ADDR" envDefault:"127.0.0.1"`
	ListenAddr      net.IP `env:"LISTEN_ADDR" envDefault:"127.0.0.1"`

	RedisKVTTL timeutil.Duration `env:"REDIS_KV_TTL" envDefault:"24h"`

	DebugListenPort uint16 `env:"DEBUG_LISTEN_PORT" envDefault:"8081"`
	ListenPort      uint16 `env:"LISTEN_PORT" envDefault:"8181"`
	RedisPort       uint16 `env:"REDIS_PORT" envDefault:"6379"`

	Verbosity uint8 `env:"VERBOSE" envDefault:"0"`

	LogTimestamp strictBool `env:"LOG_TIMESTAMP" envDefault:"1"`
	RedisEnabled strictBool `env:"REDIS_ENABLED" envDefault:"0"`
}

// parseEnvironment reads the configuration.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environments: %w", err)
	}

	return envs, nil
}

// type check
var _ validate.Interface = (*environment)(nil)

// Validate implements the [validate.Interface] interface for *environment.
func (envs *environment) Validate() (err error) {
	errs := []error{
		validate.NotEmpty("ALLOWLIST_PATH", envs.AllowlistPath),
		validate.NotEmpty("EVENTLOG_PATH", envs.EventLogPath),
		validate.NotEmpty("USER_RULES_PATH", envs.UserRulesPath),
	}

	if s := envs.FilterIndexURL.Scheme; !strings.EqualFold(s, urlutil.SchemeFile) &&
		!urlutil.IsValidHTTPURLScheme(s) {
		errs = append(errs, fmt.Errorf(
			"%s: not a valid http(s) url or file uri",
			"FILTER_INDEX_URL",
		))
	}

	_, err = slogutil.NewFormat(envs.LogFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	_, err = slogutil.VerbosityToLevel(envs.Verbosity)
	if err != nil {
		errs = append(errs, fmt.Errorf("VERBOSE: %w", err))
	}

	errs = envs.validateRedis(errs)

	return errors.Join(errs...)
}

// validateRedis appends validation errors to errs if the environment
// variables for the Redis event storage contain errors.
func (envs *environment) validateRedis(errs []error) (res []error) {
	res = errs

	if !envs.RedisEnabled {
		return res
	}

	return append(res,
		validate.NotEmpty("env REDIS_HOST", envs.RedisHost),
		validate.NoLessThan("env REDIS_KV_TTL", time.Duration(envs.RedisKVTTL), rediskv.MinTTL),
	)
}

// buildErrColl builds and returns an error collector from environment.
func (envs *environment) buildErrColl() (errColl errcoll.Interface, err error) {
	dsn := envs.SentryDSN
	if dsn == "stderr" {
		return errcoll.NewWriterErrorCollector(os.Stderr), nil
	}

	cli, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Release:          version.Version(),
	})
	if err != nil {
		return nil, err
	}

	return errcoll.NewSentryErrorCollector(cli), nil
}

// debugConf returns a debug HTTP service configuration from environment.
func (envs *environment) debugConf(logger *slog.Logger) (conf *debugsvc.Config) {
	addr := netutil.JoinHostPort(envs.DebugListenAddr.String(), envs.DebugListenPort)

	return &debugsvc.Config{
		Logger:         logger.With(slogutil.KeyPrefix, "debugsvc"),
		APIAddr:        addr,
		PprofAddr:      addr,
		PrometheusAddr: addr,
	}
}

// strictBool is a type for booleans that are parsed from the environment more
// strictly than the usual bool.  It only accepts "0" and "1" as valid values.
type strictBool bool

// UnmarshalText implements the encoding.TextUnmarshaler interface for
// *strictBool.
func (sb *strictBool) UnmarshalText(b []byte) (err error) {
	if len(b) == 1 {
		switch b[0] {
		case '0':
			*sb = false

			return nil
		case '1':
			*sb = true

			return nil
		default:
			// Go on and return an error.
		}
	}

	return fmt.Errorf("invalid value %q, supported: %q, %q", b, "0", "1")
}
