// Package flhttp contains common constants, functions, and types for working
// with HTTP in the filtering-log service.
package flhttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AdguardTeam/FilteringLog/internal/version"
	"github.com/AdguardTeam/golibs/httphdr"
)

// HTTP header value constants.
const (
	HdrValApplicationJSON = "application/json"
	HdrValTextHTML        = "text/html"
	HdrValTextPlain       = "text/plain"
)

// RobotsDisallowAll is a predefined robots disallow all content.
const RobotsDisallowAll = "User-agent: *\nDisallow: /\n"

// userAgent is the cached User-Agent string for the service.
var userAgent = version.Name() + "/" + version.Version()

// UserAgent returns the ID of the service as a User-Agent string.  It can
// also be used as the value of the Server HTTP header.
func UserAgent() (ua string) {
	return userAgent
}

// WriteJSONResponse writes v to w as JSON with the appropriate Content-Type
// header and the given status code.
func WriteJSONResponse(w http.ResponseWriter, code int, v any) (err error) {
	w.Header().Set(httphdr.ContentType, HdrValApplicationJSON)
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(v)
	if err != nil {
		return fmt.Errorf("writing json response: %w", err)
	}

	return nil
}

// errorResp is the JSON structure of an error response body.
type errorResp struct {
	Error string `json:"error"`
}

// WriteJSONError writes err to w as a JSON error object with the given status
// code.  Any serialization failures are ignored, since there is nothing more
// to report to the client at that point.
func WriteJSONError(w http.ResponseWriter, code int, err error) {
	_ = WriteJSONResponse(w, code, &errorResp{
		Error: err.Error(),
	})
}
