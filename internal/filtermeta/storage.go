package filtermeta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/flhttp"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/AdguardTeam/golibs/service"
)

// StorageConfig is the configuration for the filter metadata storage.  All
// fields must not be empty.
type StorageConfig struct {
	// Logger is used for logging the refreshes of the storage.
	Logger *slog.Logger

	// IndexURL is the URL of the filter index API from which the metadata is
	// loaded.
	IndexURL *url.URL

	// Defaults are the names known before the first successful refresh, if
	// any.  They are also used as a fallback for IDs absent from the index.
	Defaults Static

	// Metrics collects the statistics of the storage.
	Metrics Metrics

	// Timeout is the timeout for index requests.
	Timeout time.Duration
}

// Storage is the filter metadata storage that periodically loads the actual
// filter names from the filter index.  It is safe for concurrent use.
type Storage struct {
	logger   *slog.Logger
	http     *flhttp.Client
	indexURL *url.URL
	metrics  Metrics

	// mu protects names.
	mu    *sync.RWMutex
	names map[extlog.FilterID]string
}

// NewStorage returns a new *Storage that is ready to use but contains only
// the default names until the first successful [Storage.Refresh] call.  c
// must not be nil.
func NewStorage(c *StorageConfig) (s *Storage) {
	names := make(map[extlog.FilterID]string, len(c.Defaults))
	for id, name := range c.Defaults {
		names[id] = name
	}

	return &Storage{
		logger: c.Logger,
		http: flhttp.NewClient(&flhttp.ClientConfig{
			Timeout: c.Timeout,
		}),
		indexURL: c.IndexURL,
		metrics:  c.Metrics,
		mu:       &sync.RWMutex{},
		names:    names,
	}
}

// type check
var _ Finder = (*Storage)(nil)

// FindName implements the [Finder] interface for *Storage.
func (s *Storage) FindName(id extlog.FilterID) (name string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok = s.names[id]

	return name, ok
}

// type check
var _ service.Refresher = (*Storage)(nil)

// Refresh implements the [service.Refresher] interface for *Storage.  It
// loads the filter index and replaces the name mapping.  Previously known
// names are kept for IDs absent from the index, so a partial index response
// does not degrade annotation.
func (s *Storage) Refresh(ctx context.Context) (err error) {
	defer func() { err = errors.Annotate(err, "refreshing filter metadata: %w") }()
	defer func() { s.metrics.SetRefreshStatus(ctx, err) }()

	body, err := s.openIndex(ctx)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return err
	}
	defer func() { err = errors.WithDeferred(err, body.Close()) }()

	indexResp := &filterIndexResp{}
	err = json.NewDecoder(body).Decode(indexResp)
	if err != nil {
		return fmt.Errorf("decoding index: %w", err)
	}

	names := indexResp.toInternal(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, name := range s.names {
		if _, ok := names[id]; !ok {
			names[id] = name
		}
	}

	s.names = names

	s.metrics.SetFiltersCount(ctx, uint(len(names)))
	s.logger.InfoContext(ctx, "refresh finished", "num_filters", len(names))

	return nil
}

// openIndex opens the filter index for reading.  The index URL is either an
// HTTP(S) URL or a file URI.  The caller must close the returned reader.
func (s *Storage) openIndex(ctx context.Context) (body io.ReadCloser, err error) {
	if strings.EqualFold(s.indexURL.Scheme, urlutil.SchemeFile) {
		filePath := s.indexURL.Path
		s.logger.InfoContext(ctx, "using index from file", "path", filePath)

		// #nosec G304 -- Trust the file URI that is given from the
		// environment.
		body, err = os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening index file: %w", err)
		}

		return body, nil
	}

	resp, err := s.http.Get(ctx, s.indexURL)
	if err != nil {
		return nil, fmt.Errorf("requesting index: %w", err)
	}

	err = flhttp.CheckStatus(resp, http.StatusOK)
	if err != nil {
		err = errors.WithDeferred(err, resp.Body.Close())

		// Don't wrap the error, because it's informative enough as is.
		return nil, err
	}

	return resp.Body, nil
}
