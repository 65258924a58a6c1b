package errcoll

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

// WriterErrorCollector is an [Interface] implementation that writes errors to
// an io.Writer.  It is mostly useful in development.
type WriterErrorCollector struct {
	w io.Writer
}

// NewWriterErrorCollector returns a new WriterErrorCollector.
func NewWriterErrorCollector(w io.Writer) (c *WriterErrorCollector) {
	return &WriterErrorCollector{
		w: w,
	}
}

// type check
var _ Interface = (*WriterErrorCollector)(nil)

// Collect implements the [Interface] interface for *WriterErrorCollector.
func (c *WriterErrorCollector) Collect(ctx context.Context, err error) {
	_, _ = fmt.Fprintf(c.w, "%s: %s: caught error: %s\n", time.Now(), caller(2), err)
}

// caller returns the caller position at the given depth skipping the frames
// of this package.  The position is trimmed to the package directory and the
// file name.
func caller(depth int) (callerPos string) {
	_, callerFile, callerLine, ok := runtime.Caller(depth)
	if !ok {
		return "<position unknown>"
	}

	parts := strings.Split(callerFile, "/")
	if l := len(parts); l > 2 {
		callerFile = strings.Join(parts[l-2:], "/")
	}

	return fmt.Sprintf("%s:%d", callerFile, callerLine)
}
