package websvc

import (
	"log/slog"
	"net/http"

	"github.com/AdguardTeam/FilteringLog/internal/flhttp"
	"github.com/AdguardTeam/golibs/httphdr"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

// middleware is the base middleware of the HTTP API that adds the common
// headers and logs the queries starting and finishing at the given level.
func (svc *Service) middleware(h http.Handler, lvl slog.Level) (wrapped http.Handler) {
	f := func(w http.ResponseWriter, r *http.Request) {
		respHdr := w.Header()
		respHdr.Add(httphdr.Server, flhttp.UserAgent())

		l := svc.logger.With(
			"raddr", r.RemoteAddr,
			"method", r.Method,
			"request_uri", r.RequestURI,
		)

		ctx := slogutil.ContextWithLogger(r.Context(), l)
		r = r.WithContext(ctx)

		rw := &codeRecorderResponseWriter{
			ResponseWriter: w,
		}

		l.Log(ctx, lvl, "started")
		defer func() { l.Log(ctx, lvl, "finished", "code", rw.code) }()

		h.ServeHTTP(rw, r)
	}

	return http.HandlerFunc(f)
}

// codeRecorderResponseWriter wraps an [http.ResponseWriter] allowing to save
// the response code.
type codeRecorderResponseWriter struct {
	http.ResponseWriter

	code int
}

// type check
var _ http.ResponseWriter = (*codeRecorderResponseWriter)(nil)

// WriteHeader implements [http.ResponseWriter] for
// *codeRecorderResponseWriter.
func (w *codeRecorderResponseWriter) WriteHeader(code int) {
	w.code = code

	w.ResponseWriter.WriteHeader(code)
}
