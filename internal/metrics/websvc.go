package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WebSvcReqType is a type alias for a string that represents the web service
// request type.
type WebSvcReqType = string

// Web service requests of [WebSvcReqType] type.
//
// NOTE:  Keep in sync with [websvc.RequestType].
const (
	WebSvcReqTypeError404    WebSvcReqType = "error404"
	WebSvcReqTypeError500    WebSvcReqType = "error500"
	WebSvcReqTypeEventAction WebSvcReqType = "event_action"
	WebSvcReqTypeEventInfo   WebSvcReqType = "event_info"
	WebSvcReqTypeEventWrite  WebSvcReqType = "event_write"
	WebSvcReqTypeHealthCheck WebSvcReqType = "health_check"
	WebSvcReqTypeIconState   WebSvcReqType = "icon_state"
	WebSvcReqTypeRobotsTxt   WebSvcReqType = "robots_txt"
)

// WebSvc is the Prometheus-based implementation of the [websvc.Metrics]
// interface.
type WebSvc struct {
	// reqCounters maps each web service request type to its corresponding
	// Prometheus counter.
	reqCounters map[WebSvcReqType]prometheus.Counter
}

// NewWebSvc registers the web service metrics in reg and returns a properly
// initialized [*WebSvc].
func NewWebSvc(namespace string, reg prometheus.Registerer) (m *WebSvc, err error) {
	const reqTotal = "requests_total"

	// reqCV is a Prometheus counter vector that tracks the number of web
	// service requests, categorized by request type.
	reqCV := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      reqTotal,
		Namespace: namespace,
		Subsystem: subsystemWebSvc,
		Help:      "The number of HTTP requests for websvc.",
	}, []string{"kind"})

	reqCounters := map[WebSvcReqType]prometheus.Counter{
		WebSvcReqTypeError404:    reqCV.WithLabelValues(WebSvcReqTypeError404),
		WebSvcReqTypeError500:    reqCV.WithLabelValues(WebSvcReqTypeError500),
		WebSvcReqTypeEventAction: reqCV.WithLabelValues(WebSvcReqTypeEventAction),
		WebSvcReqTypeEventInfo:   reqCV.WithLabelValues(WebSvcReqTypeEventInfo),
		WebSvcReqTypeEventWrite:  reqCV.WithLabelValues(WebSvcReqTypeEventWrite),
		WebSvcReqTypeHealthCheck: reqCV.WithLabelValues(WebSvcReqTypeHealthCheck),
		WebSvcReqTypeIconState:   reqCV.WithLabelValues(WebSvcReqTypeIconState),
		WebSvcReqTypeRobotsTxt:   reqCV.WithLabelValues(WebSvcReqTypeRobotsTxt),
	}

	err = reg.Register(reqCV)
	if err != nil {
		return nil, fmt.Errorf("registering metrics %q: %w", reqTotal, err)
	}

	return &WebSvc{reqCounters: reqCounters}, nil
}

// IncrementReqCount implements the [websvc.Metrics] interface for *WebSvc.
func (m *WebSvc) IncrementReqCount(_ context.Context, reqType WebSvcReqType) {
	ctr, ok := m.reqCounters[reqType]
	if !ok {
		panic(fmt.Errorf("incrementing req counter: bad type %q", reqType))
	}

	ctr.Inc()
}
