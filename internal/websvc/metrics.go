package websvc

import (
	"context"
)

// RequestType is a type alias for string that represents the request type
// for web service metrics.
type RequestType = string

// List of web service requests of type RequestType.
//
// NOTE:  Keep in sync with [metrics.WebSvcReqType].
const (
	RequestTypeError404    RequestType = "error404"
	RequestTypeError500    RequestType = "error500"
	RequestTypeEventAction RequestType = "event_action"
	RequestTypeEventInfo   RequestType = "event_info"
	RequestTypeEventWrite  RequestType = "event_write"
	RequestTypeHealthCheck RequestType = "health_check"
	RequestTypeIconState   RequestType = "icon_state"
	RequestTypeRobotsTxt   RequestType = "robots_txt"
)

// Metrics is an interface for collecting web service request statistics.
type Metrics interface {
	// IncrementReqCount increments the web service request count for a given
	// RequestType.  reqType must be one of the RequestType values.
	IncrementReqCount(ctx context.Context, reqType RequestType)
}

// EmptyMetrics is the implementation of the [Metrics] interface that does
// nothing.
type EmptyMetrics struct{}

// type check
var _ Metrics = EmptyMetrics{}

// IncrementReqCount implements the [Metrics] interface for EmptyMetrics.
func (EmptyMetrics) IncrementReqCount(_ context.Context, _ RequestType) {}
