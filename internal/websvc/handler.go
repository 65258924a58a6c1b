package websvc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AdguardTeam/FilteringLog/internal/errcoll"
	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/flhttp"
	"github.com/AdguardTeam/FilteringLog/internal/iconstate"
	"github.com/AdguardTeam/FilteringLog/internal/ruleinfo"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/httphdr"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

// routes returns the multiplexer with all handlers of the HTTP API attached.
func (svc *Service) routes() (mux *http.ServeMux) {
	mux = http.NewServeMux()

	mux.Handle("GET /health-check", svc.middleware(
		http.HandlerFunc(svc.serveHealthCheck),
		slog.LevelDebug,
	))
	mux.Handle("GET /robots.txt", svc.middleware(
		http.HandlerFunc(svc.serveRobotsTxt),
		slog.LevelDebug,
	))
	mux.Handle("POST /v1/events", svc.middleware(
		http.HandlerFunc(svc.serveEventWrite),
		slog.LevelDebug,
	))
	mux.Handle("GET /v1/events/{id}/info", svc.middleware(
		http.HandlerFunc(svc.serveEventInfo),
		slog.LevelDebug,
	))
	mux.Handle("POST /v1/events/{id}/action", svc.middleware(
		http.HandlerFunc(svc.serveEventAction),
		slog.LevelInfo,
	))
	mux.Handle("GET /v1/icon", svc.middleware(
		http.HandlerFunc(svc.serveIcon),
		slog.LevelDebug,
	))
	mux.Handle("/", svc.middleware(
		http.HandlerFunc(svc.serveNotFound),
		slog.LevelDebug,
	))

	return mux
}

// serveHealthCheck handles the GET /health-check endpoint.
func (svc *Service) serveHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeHealthCheck)

	w.Header().Set(httphdr.ContentType, flhttp.HdrValTextPlain)
	w.WriteHeader(http.StatusOK)

	_, err := io.WriteString(w, "OK\n")
	if err != nil {
		l := slogutil.MustLoggerFromContext(ctx)
		l.DebugContext(ctx, "writing health-check response", slogutil.KeyError, err)
	}
}

// serveRobotsTxt handles the GET /robots.txt endpoint.
func (svc *Service) serveRobotsTxt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeRobotsTxt)

	w.Header().Set(httphdr.ContentType, flhttp.HdrValTextPlain)
	w.WriteHeader(http.StatusOK)

	_, err := io.WriteString(w, flhttp.RobotsDisallowAll)
	if err != nil {
		l := slogutil.MustLoggerFromContext(ctx)
		l.DebugContext(ctx, "writing robots response", slogutil.KeyError, err)
	}
}

// serveNotFound handles requests to unknown paths.
func (svc *Service) serveNotFound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeError404)

	flhttp.WriteJSONError(w, http.StatusNotFound, errors.Error("not found"))
}

// serveEventWrite handles the POST /v1/events endpoint.
func (svc *Service) serveEventWrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeEventWrite)

	req := &eventReq{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return
	}

	e, err := req.toInternal()
	if err != nil {
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return
	}

	err = svc.eventLog.Write(ctx, e)
	if err != nil {
		svc.serveInternalError(ctx, w, "writing event", err)

		return
	}

	_ = flhttp.WriteJSONResponse(w, http.StatusCreated, &eventWriteResp{
		ID: e.ID,
	})
}

// serveEventInfo handles the GET /v1/events/{id}/info endpoint.
func (svc *Service) serveEventInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeEventInfo)

	e, ok := svc.findEvent(ctx, w, r)
	if !ok {
		return
	}

	texts := ruleinfo.ExtractRuleTexts(e, svc.filterMeta)
	btns := ruleinfo.ResolveButtons(e, svc.userRules.AddedRuleState(e.ID))

	_ = flhttp.WriteJSONResponse(w, http.StatusOK, &eventInfoResp{
		Status: e.Status().String(),
		RuleTexts: ruleTextsData{
			Applied:  texts.Applied,
			Original: texts.Original,
		},
		Buttons:        btns,
		StealthActions: e.StealthActions.Names(),
	})
}

// serveEventAction handles the POST /v1/events/{id}/action endpoint.
func (svc *Service) serveEventAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeEventAction)

	e, ok := svc.findEvent(ctx, w, r)
	if !ok {
		return
	}

	req := &eventActionReq{}
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return
	}

	err = svc.applyAction(ctx, e, req)
	switch {
	case err == nil:
		// Go on.
	case errors.Is(err, userrules.ErrNotFound):
		flhttp.WriteJSONError(w, http.StatusNotFound, err)

		return
	default:
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return
	}

	_ = flhttp.WriteJSONResponse(w, http.StatusOK, &eventActionResp{
		Buttons: ruleinfo.ResolveButtons(e, svc.userRules.AddedRuleState(e.ID)),
	})
}

// errBadAction is returned by [Service.applyAction] when the requested action
// is not known.
const errBadAction errors.Error = "unknown action"

// actionAcknowledge is the additional action that clears the added-rule
// record of an event without changing the rule lists.  It is sent when the
// entry leaves the view.
const actionAcknowledge = "acknowledge"

// applyAction applies the requested action to the user-rules storage.
func (svc *Service) applyAction(
	ctx context.Context,
	e *extlog.FilteringEvent,
	req *eventActionReq,
) (err error) {
	if req.Action == actionAcknowledge {
		svc.userRules.Acknowledge(e.ID)

		return nil
	}

	switch kind := ruleinfo.ButtonKind(req.Action); kind {
	case ruleinfo.ButtonBlock, ruleinfo.ButtonUnblock:
		var text extlog.RuleText
		text, err = extlog.NewRuleText(req.RuleText)
		if err != nil {
			return err
		}

		if kind == ruleinfo.ButtonBlock {
			return svc.userRules.AddBlock(ctx, e.ID, text)
		}

		return svc.userRules.AddUnblock(ctx, e.ID, text)
	case
		ruleinfo.ButtonRemoveUserFilter,
		ruleinfo.ButtonRemoveAddedBlock,
		ruleinfo.ButtonRemoveAddedUnblock:
		var text extlog.RuleText
		text, err = extlog.NewRuleText(req.RuleText)
		if err != nil {
			return err
		}

		return svc.userRules.RemoveUserRule(ctx, e.ID, text)
	case ruleinfo.ButtonRemoveAllowlist:
		return svc.userRules.RemoveAllowlist(ctx, e.RequestDomain)
	case ruleinfo.ButtonPreview:
		// Previews are rendered by the client.  Acknowledge the action
		// without changing anything.
		return nil
	default:
		return errBadAction
	}
}

// serveIcon handles the GET /v1/icon endpoint.  The frame state is passed in
// the query parameters.
func (svc *Service) serveIcon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc.metrics.IncrementReqCount(ctx, RequestTypeIconState)

	fs, err := frameStateFromQuery(r.URL.Query())
	if err != nil {
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return
	}

	ic := iconstate.Resolve(fs)

	_ = flhttp.WriteJSONResponse(w, http.StatusOK, &iconResp{
		Variant:   ic.Variant.String(),
		BadgeText: ic.BadgeText,
	})
}

// frameStateFromQuery parses the filtering state of a frame from the query
// parameters of an icon-state request.
func frameStateFromQuery(q url.Values) (fs *iconstate.FrameState, err error) {
	defer func() { err = errors.Annotate(err, "parsing frame state: %w") }()

	fs = &iconstate.FrameState{}

	fs.FilteringEnabled, err = strconv.ParseBool(q.Get("filteringEnabled"))
	if err != nil {
		return nil, fmt.Errorf("filteringEnabled: %w", err)
	}

	if v := q.Get("documentAllowlisted"); v != "" {
		fs.DocumentAllowlisted, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("documentAllowlisted: %w", err)
		}
	}

	if v := q.Get("blockedCount"); v != "" {
		fs.BlockedCount, err = strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("blockedCount: %w", err)
		}
	}

	return fs, nil
}

// findEvent parses the event ID from the request path and looks the event up
// in the log.  If the ID is malformed or the event is not found, it writes
// an error response and returns false.
func (svc *Service) findEvent(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
) (e *extlog.FilteringEvent, ok bool) {
	id, err := extlog.NewEventID(r.PathValue("id"))
	if err != nil {
		flhttp.WriteJSONError(w, http.StatusBadRequest, err)

		return nil, false
	}

	e, err = svc.eventFinder.Find(ctx, id)
	switch {
	case err == nil:
		return e, true
	case errors.Is(err, eventlog.ErrNotFound):
		flhttp.WriteJSONError(w, http.StatusNotFound, err)

		return nil, false
	default:
		svc.serveInternalError(ctx, w, "finding event", err)

		return nil, false
	}
}

// serveInternalError reports err to the error collector and responds with an
// HTTP 500 error.
func (svc *Service) serveInternalError(
	ctx context.Context,
	w http.ResponseWriter,
	msg string,
	err error,
) {
	svc.metrics.IncrementReqCount(ctx, RequestTypeError500)
	errcoll.Collect(ctx, svc.errColl, svc.logger, msg, err)

	flhttp.WriteJSONError(w, http.StatusInternalServerError, err)
}
