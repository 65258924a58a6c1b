package debugsvc_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/debugsvc"
	"github.com/AdguardTeam/FilteringLog/internal/fltest"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Start(t *testing.T) {
	const addr = "127.0.0.1:8083"

	refreshed := false
	c := &debugsvc.Config{
		Logger: slogutil.NewDiscardLogger(),
		Refreshers: debugsvc.Refreshers{
			"test": &fltest.Refresher{
				OnRefresh: func(_ context.Context) (err error) {
					refreshed = true

					return nil
				},
			},
		},
		APIAddr:        addr,
		PprofAddr:      addr,
		PrometheusAddr: addr,
	}

	svc := debugsvc.New(c)
	require.NotNil(t, svc)

	var err error
	require.NotPanics(t, func() {
		err = svc.Start(testutil.ContextWithTimeout(t, fltest.Timeout))
	})
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, func() (err error) {
		return svc.Shutdown(testutil.ContextWithTimeout(t, fltest.Timeout))
	})

	client := http.Client{
		Timeout: 2 * time.Second,
	}

	var resp *http.Response

	// The service could not be ready yet, so check for it periodically.
	require.Eventually(t, func() bool {
		resp, err = client.Get(fmt.Sprintf("http://%s/health-check", addr))
		return err == nil
	}, 1*time.Second, 100*time.Millisecond)

	body := readRespBody(t, resp)
	assert.Equal(t, []byte("OK\n"), body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(fmt.Sprintf("http://%s/debug/pprof/", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.True(t, len(body) > 0)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.True(t, len(body) > 0)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	reqBody := strings.NewReader(`{"ids":["test"]}`)
	urlStr := fmt.Sprintf("http://%s/debug/api/refresh", addr)
	resp, err = client.Post(urlStr, "application/json", reqBody)
	require.NoError(t, err)

	assert.True(t, refreshed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body = readRespBody(t, resp)
	assert.Equal(t, []byte(`{"results":{"test":"ok"}}`+"\n"), body)
}

// readRespBody is a helper function that reads and returns body from
// response.
func readRespBody(t testing.TB, resp *http.Response) (body []byte) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return body
}
