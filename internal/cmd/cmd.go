// Package cmd is the filtering-log service entry point.  It contains the
// on-disk configuration file utilities, signal processing logic, and so on.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/AdguardTeam/FilteringLog/internal/metrics"
	"github.com/AdguardTeam/FilteringLog/internal/version"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/sentryutil"
	"golang.org/x/sys/unix"
)

// Main is the entry point of application.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)

	envs := errors.Must(parseEnvironment())
	errors.Check(envs.Validate())

	lvl := errors.Must(slogutil.VerbosityToLevel(envs.Verbosity))
	baseLogger := slogutil.New(&slogutil.Config{
		// Don't use [slogutil.NewFormat] here, because the value is validated.
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: bool(envs.LogTimestamp),
		Level:        lvl,
	})

	sentryutil.SetDefaultLogger(baseLogger, "")

	mainLogger := baseLogger.With(slogutil.KeyPrefix, "main")

	// Signal service startup now that we have the logs set up.
	branch := version.Branch()
	commitTime := version.CommitTime()
	buildVersion := version.Version()
	revision := version.Revision()
	mainLogger.InfoContext(
		ctx,
		"flog starting",
		"version", buildVersion,
		"revision", revision,
		"branch", branch,
		"commit_time", commitTime,
	)

	errColl := errors.Must(envs.buildErrColl())

	defer reportPanics(ctx, errColl, mainLogger)

	c := errors.Must(parseConfig(envs.ConfPath))

	errors.Check(c.Validate())

	// Building and running the server

	b := newBuilder(&builderConfig{
		envs:       envs,
		conf:       c,
		baseLogger: baseLogger,
		errColl:    errColl,
	})

	errors.Check(b.initEventLog(ctx))

	errors.Check(b.initFilterMeta(ctx))

	errors.Check(b.initUserRules(ctx))

	errors.Check(b.initWeb(ctx))

	b.mustInitDebugSvc(ctx)

	// Signal that the server is started.
	errors.Check(metrics.SetUpGauge(
		b.promRegisterer,
		buildVersion,
		branch,
		commitTime,
		revision,
		runtime.Version(),
	))

	// Unregister the signal behavior for ctx.
	stop()
	ctx = context.WithoutCancel(ctx)

	os.Exit(b.handleSignals(ctx))
}
