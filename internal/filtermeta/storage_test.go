package filtermeta_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTimeout is the common timeout for tests.
const testTimeout = 1 * time.Second

func TestStatic_FindName(t *testing.T) {
	t.Parallel()

	s := filtermeta.Static{
		1: "AdGuard Base filter",
	}

	name, ok := s.FindName(1)
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Base filter", name)

	_, ok = s.FindName(42)
	assert.False(t, ok)
}

func TestStorage_Refresh(t *testing.T) {
	t.Parallel()

	const indexResp = `{
		"filters": [
			{"filterId": 1, "name": "AdGuard Base filter"},
			{"filterId": 2, "name": "AdGuard Tracking Protection filter"},
			{"filterId": 3, "name": ""}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, writeErr := w.Write([]byte(indexResp))
		require.NoError(testutil.PanicT{}, writeErr)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	s := filtermeta.NewStorage(&filtermeta.StorageConfig{
		Logger:   slogutil.NewDiscardLogger(),
		IndexURL: u,
		Defaults: filtermeta.Static{
			4: "AdGuard Social Media filter",
		},
		Metrics: filtermeta.EmptyMetrics{},
		Timeout: testTimeout,
	})

	// Before the refresh only the default is known.
	name, ok := s.FindName(4)
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Social Media filter", name)

	_, ok = s.FindName(1)
	assert.False(t, ok)

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	err = s.Refresh(ctx)
	require.NoError(t, err)

	name, ok = s.FindName(1)
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Base filter", name)

	name, ok = s.FindName(2)
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Tracking Protection filter", name)

	// The empty name must have been skipped.
	_, ok = s.FindName(3)
	assert.False(t, ok)

	// The default survives the refresh.
	name, ok = s.FindName(extlog.FilterID(4))
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Social Media filter", name)
}

func TestStorage_Refresh_fileURL(t *testing.T) {
	t.Parallel()

	const indexResp = `{
		"filters": [
			{"filterId": 1, "name": "AdGuard Base filter"}
		]
	}`

	indexPath := filepath.Join(t.TempDir(), "index.json")
	err := os.WriteFile(indexPath, []byte(indexResp), 0o600)
	require.NoError(t, err)

	s := filtermeta.NewStorage(&filtermeta.StorageConfig{
		Logger: slogutil.NewDiscardLogger(),
		IndexURL: &url.URL{
			Scheme: urlutil.SchemeFile,
			Path:   indexPath,
		},
		Defaults: nil,
		Metrics:  filtermeta.EmptyMetrics{},
		Timeout:  testTimeout,
	})

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	err = s.Refresh(ctx)
	require.NoError(t, err)

	name, ok := s.FindName(1)
	assert.True(t, ok)
	assert.Equal(t, "AdGuard Base filter", name)
}

func TestStorage_Refresh_badStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try again later", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	s := filtermeta.NewStorage(&filtermeta.StorageConfig{
		Logger:   slogutil.NewDiscardLogger(),
		IndexURL: u,
		Defaults: nil,
		Metrics:  filtermeta.EmptyMetrics{},
		Timeout:  testTimeout,
	})

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	err = s.Refresh(ctx)
	assert.Error(t, err)
}
