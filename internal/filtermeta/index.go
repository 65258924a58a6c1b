package filtermeta

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
)

// filterIndexResp is the struct for the JSON response from a filter index
// API.
type filterIndexResp struct {
	Filters []*filterIndexRespFilter `json:"filters"`
}

// filterIndexRespFilter is the struct for a single filter list from the JSON
// response from a filter index API.
type filterIndexRespFilter struct {
	Name     string `json:"name"`
	FilterID int32  `json:"filterId"`
}

// toInternal converts the filter data from the index into the name mapping.
// Entries with an empty name are skipped, since they cannot be used for
// annotation anyway.
func (r *filterIndexResp) toInternal(
	ctx context.Context,
	logger *slog.Logger,
) (names map[extlog.FilterID]string) {
	names = make(map[extlog.FilterID]string, len(r.Filters))
	for i, rf := range r.Filters {
		if rf.Name == "" {
			logger.WarnContext(ctx, "index response", slogutil.KeyError, fmt.Errorf(
				"filter at index %d: empty name",
				i,
			))

			continue
		}

		names[extlog.FilterID(rf.FilterID)] = rf.Name
	}

	return names
}
