package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/syncutil"
	"github.com/c2h5oh/datasize"
)

// FileSystemConfig is the configuration of the file system filtering log.
// All fields must not be empty.
type FileSystemConfig struct {
	// Logger is used for debug logging.
	Logger *slog.Logger

	// Metrics is used for the collection of the log statistics.
	Metrics Metrics

	// Path is the path to the log file.
	Path string
}

// NewFileSystem creates a new file system filtering log.  The log is safe
// for concurrent use.  c must not be nil.
func NewFileSystem(c *FileSystemConfig) (l *FileSystem) {
	return &FileSystem{
		logger:  c.Logger,
		metrics: c.Metrics,
		bufferPool: syncutil.NewPool(func() (v *entryBuffer) {
			return &entryBuffer{
				ent: &jsonlEntry{},
				buf: &bytes.Buffer{},
			}
		}),
		path: c.Path,
	}
}

// entryBuffer is a struct with two fields for caching the entry that is being
// written.  Using this struct allows us to remove allocations on every write.
type entryBuffer struct {
	ent *jsonlEntry
	buf *bytes.Buffer
}

// FileSystem is the file system implementation of the filtering log.  It only
// supports writing; lookups are served by [KV].
type FileSystem struct {
	logger     *slog.Logger
	metrics    Metrics
	bufferPool *syncutil.Pool[entryBuffer]
	path       string
}

// type check
var _ Interface = (*FileSystem)(nil)

// Write implements the [Interface] interface for *FileSystem.
func (l *FileSystem) Write(ctx context.Context, e *extlog.FilteringEvent) (err error) {
	l.logger.DebugContext(ctx, "writing file log", "event_id", e.ID)
	defer func() {
		l.logger.DebugContext(
			ctx,
			"writing file log finished",
			"event_id", e.ID,
			slogutil.KeyError, err,
		)
	}()

	startTime := time.Now()
	defer func() {
		l.metrics.ObserveWriteDuration(ctx, time.Since(startTime))
		l.metrics.IncrementItemsCount(ctx)
	}()

	entBuf := l.bufferPool.Get()
	defer l.bufferPool.Put(entBuf)
	entBuf.buf.Reset()

	*entBuf.ent = *newJSONLEntry(e)

	var f *os.File
	f, err = os.OpenFile(l.path, extlog.DefaultWOFlags, extlog.DefaultPerm)
	if err != nil {
		return fmt.Errorf("opening filtering log file: %w", err)
	}
	defer func() { err = errors.WithDeferred(err, f.Close()) }()

	// Serialize the log entry to the buffer as JSON.  Do not write an
	// additional line feed, because Encode already does that.
	err = json.NewEncoder(entBuf.buf).Encode(entBuf.ent)
	if err != nil {
		return fmt.Errorf("writing log: %w", err)
	}

	var written int64
	written, err = entBuf.buf.WriteTo(f)
	if err != nil {
		return fmt.Errorf("writing log: %w", err)
	}

	l.metrics.ObserveItemSize(ctx, datasize.ByteSize(written))

	return nil
}
