package extlog

import (
	"encoding"
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
)

// RequestType is the content category of the resource a filtering event is
// about.
type RequestType uint8

// RequestType values.
//
// NOTE:  DO NOT change the numerical values or use iota, because other parts
// of the system may depend on the numerical values.  These numerical values
// are a part of the API.
const (
	RequestTypeOther       RequestType = 0
	RequestTypeDocument    RequestType = 1
	RequestTypeSubdocument RequestType = 2
	RequestTypeScript      RequestType = 3
	RequestTypeImage       RequestType = 4
	RequestTypeStylesheet  RequestType = 5
)

// type check
var _ fmt.Stringer = RequestTypeOther

// String implements the [fmt.Stringer] interface for RequestType.
func (t RequestType) String() (s string) {
	switch t {
	case RequestTypeOther:
		return "other"
	case RequestTypeDocument:
		return "document"
	case RequestTypeSubdocument:
		return "subdocument"
	case RequestTypeScript:
		return "script"
	case RequestTypeImage:
		return "image"
	case RequestTypeStylesheet:
		return "stylesheet"
	default:
		return fmt.Sprintf("!bad_request_type_%d", t)
	}
}

// type check
var _ encoding.TextMarshaler = RequestTypeOther

// MarshalText implements the [encoding.TextMarshaler] interface for
// RequestType.
func (t RequestType) MarshalText() (b []byte, err error) {
	return []byte(t.String()), nil
}

// type check
var _ encoding.TextUnmarshaler = (*RequestType)(nil)

// UnmarshalText implements the [encoding.TextUnmarshaler] interface for
// *RequestType.
func (t *RequestType) UnmarshalText(b []byte) (err error) {
	switch s := string(b); s {
	case "other":
		*t = RequestTypeOther
	case "document":
		*t = RequestTypeDocument
	case "subdocument":
		*t = RequestTypeSubdocument
	case "script":
		*t = RequestTypeScript
	case "image":
		*t = RequestTypeImage
	case "stylesheet":
		*t = RequestTypeStylesheet
	default:
		return fmt.Errorf("request type: %w: %q", errors.ErrBadEnumValue, s)
	}

	return nil
}
