package websvc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/eventlog"
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/fltest"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEventID is the common event ID for tests.
const testEventID extlog.EventID = "event-1234"

// newTestService is a helper that returns a service with an in-memory event
// log and a user-rules storage persisting into a temporary directory.
func newTestService(tb testing.TB) (svc *Service, rules *userrules.Storage) {
	tb.Helper()

	events := map[extlog.EventID]*extlog.FilteringEvent{}
	evLog := &fltest.EventLog{
		OnWrite: func(_ context.Context, e *extlog.FilteringEvent) (err error) {
			events[e.ID] = e

			return nil
		},
		OnFind: func(_ context.Context, id extlog.EventID) (e *extlog.FilteringEvent, err error) {
			e, ok := events[id]
			if !ok {
				return nil, eventlog.ErrNotFound
			}

			return e, nil
		},
	}

	dir := tb.TempDir()
	rules, err := userrules.New(&userrules.Config{
		Logger:        slogutil.NewDiscardLogger(),
		RulesPath:     filepath.Join(dir, "user_rules.txt"),
		AllowlistPath: filepath.Join(dir, "allowlist.txt"),
		SessionTTL:    1 * time.Minute,
	})
	require.NoError(tb, err)

	svc = New(&Config{
		Logger:  slogutil.NewDiscardLogger(),
		ErrColl: &fltest.ErrorCollector{OnCollect: func(_ context.Context, _ error) {}},
		Metrics: EmptyMetrics{},
		EventLog: eventlog.NewMulti(
			evLog,
		),
		EventFinder: evLog,
		FilterMeta: &fltest.FilterNameFinder{
			OnFindName: func(_ extlog.FilterID) (name string, ok bool) { return "", false },
		},
		UserRules: rules,
		Addr:      "127.0.0.1:0",
		Timeout:   fltest.Timeout,
	})

	return svc, rules
}

func TestService_serveHealthCheck(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health-check")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Server"))
}

func TestService_serveEventWrite(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	const reqBody = `{
		"eventId": "event-1234",
		"requestUrl": "https://example.com/banner.png",
		"frameDomain": "example.com",
		"timestamp": 123000,
		"requestType": "image",
		"requestRule": {
			"appliedRuleText": "||example.com^",
			"filterId": 2
		}
	}`

	resp, err := http.Post(srv.URL+"/v1/events", "application/json", strings.NewReader(reqBody))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	infoResp, err := http.Get(srv.URL + "/v1/events/event-1234/info")
	require.NoError(t, err)
	t.Cleanup(func() { _ = infoResp.Body.Close() })

	assert.Equal(t, http.StatusOK, infoResp.StatusCode)

	body := readBody(t, infoResp)
	assert.JSONEq(t, `{
		"status": "blocked",
		"ruleTexts": {"applied": ["||example.com^"]},
		"buttons": ["unblock"]
	}`, body)
}

func TestService_serveEventInfo_notFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/v1/events/event-5678/info")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestService_serveEventAction(t *testing.T) {
	t.Parallel()

	svc, rules := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	err := svc.eventLog.Write(ctx, &extlog.FilteringEvent{
		Time:          time.Unix(123, 0),
		ID:            testEventID,
		URL:           "https://example.com/banner.png",
		RequestDomain: "example.com",
		RequestType:   extlog.RequestTypeImage,
	})
	require.NoError(t, err)

	const reqBody = `{"action": "block", "ruleText": "||example.com^"}`
	resp, err := http.Post(
		srv.URL+"/v1/events/event-1234/action",
		"application/json",
		strings.NewReader(reqBody),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.JSONEq(t, `{"buttons": ["remove_added_block"]}`, body)

	assert.Equal(t, []extlog.RuleText{"||example.com^"}, rules.Rules())
	assert.Equal(t, extlog.AddedRuleBlock, rules.AddedRuleState(testEventID))
}

func TestService_serveEventAction_acknowledge(t *testing.T) {
	t.Parallel()

	svc, rules := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	err := svc.eventLog.Write(ctx, &extlog.FilteringEvent{
		Time:          time.Unix(123, 0),
		ID:            testEventID,
		URL:           "https://example.com/banner.png",
		RequestDomain: "example.com",
		RequestType:   extlog.RequestTypeImage,
	})
	require.NoError(t, err)

	err = rules.AddBlock(ctx, testEventID, "||example.com^")
	require.NoError(t, err)
	require.Equal(t, extlog.AddedRuleBlock, rules.AddedRuleState(testEventID))

	resp, err := http.Post(
		srv.URL+"/v1/events/event-1234/action",
		"application/json",
		strings.NewReader(`{"action": "acknowledge"}`),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The added rule survives, only the per-event record is cleared.
	assert.Equal(t, extlog.AddedRuleNone, rules.AddedRuleState(testEventID))
	assert.Equal(t, []extlog.RuleText{"||example.com^"}, rules.Rules())
}

func TestService_serveEventAction_badAction(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	err := svc.eventLog.Write(ctx, &extlog.FilteringEvent{
		Time:        time.Unix(123, 0),
		ID:          testEventID,
		RequestType: extlog.RequestTypeImage,
	})
	require.NoError(t, err)

	resp, err := http.Post(
		srv.URL+"/v1/events/event-1234/action",
		"application/json",
		strings.NewReader(`{"action": "explode"}`),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestService_serveIcon(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	testCases := []struct {
		name  string
		query string
		want  string
	}{{
		name:  "enabled_badge",
		query: "filteringEnabled=true&blockedCount=7",
		want:  `{"variant":"enabled","badgeText":"7"}`,
	}, {
		name:  "enabled_overflow",
		query: "filteringEnabled=true&blockedCount=1000",
		want:  `{"variant":"enabled","badgeText":"99+"}`,
	}, {
		name:  "allowlisted",
		query: "filteringEnabled=true&documentAllowlisted=true&blockedCount=7",
		want:  `{"variant":"disabled"}`,
	}, {
		name:  "paused",
		query: "filteringEnabled=false",
		want:  `{"variant":"disabled"}`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/v1/icon?" + tc.query)
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })

			require.Equal(t, http.StatusOK, resp.StatusCode)

			assert.JSONEq(t, tc.want, readBody(t, resp))
		})
	}
}

func TestService_serveIcon_badQuery(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	srv := httptest.NewServer(svc.routes())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/v1/icon?filteringEnabled=maybe")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// readBody is a helper that reads the whole response body as a string.
func readBody(tb testing.TB, resp *http.Response) (body string) {
	tb.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(tb, err)

	return string(b)
}
