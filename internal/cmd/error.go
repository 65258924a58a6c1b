package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/osutil"
)

// reportPanics reports all panics in Main.  It should be called in a defer.
// All arguments must not be nil.
func reportPanics(ctx context.Context, errColl errcoll.Interface, l *slog.Logger) {
	v := recover()
	if v == nil {
		return
	}

	err := errors.FromRecovered(v)
	l.ErrorContext(ctx, "recovered from panic", slogutil.KeyError, err)
	slogutil.PrintStack(ctx, l, slog.LevelError)

	errColl.Collect(ctx, err)
	if fc, ok := errColl.(errcoll.ErrorFlushCollector); ok {
		fc.Flush()
	}

	os.Exit(osutil.ExitCodeFailure)
}
