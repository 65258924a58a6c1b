// Package metrics contains definitions of most of the prometheus metrics
// that we use in the filtering log.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// constants with the subsystem names that we use in our prometheus metrics.
const (
	subsystemApplication = "app"
	subsystemEventLog    = "eventlog"
	subsystemFilterMeta  = "filtermeta"
	subsystemRemoteKV    = "remotekv"
	subsystemWebSvc      = "websvc"
)

// Namespace returns the namespace that we use in our prometheus metrics.
func Namespace() (ns string) {
	return "flog"
}

// SetUpGauge registers and sets the gauge signalling that the server has been
// started.
func SetUpGauge(
	reg prometheus.Registerer,
	version string,
	branch string,
	committime string,
	revision string,
	goversion string,
) (err error) {
	upGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "up",
		Namespace: Namespace(),
		Subsystem: subsystemApplication,
		Help: `A metric with a constant '1' value labeled by ` +
			`version and goversion from which the program was built.`,
		ConstLabels: prometheus.Labels{
			"version":    version,
			"branch":     branch,
			"committime": committime,
			"revision":   revision,
			"goversion":  goversion,
		},
	})

	err = reg.Register(upGauge)
	if err != nil {
		return fmt.Errorf("registering metrics %q: %w", "up", err)
	}

	upGauge.Set(1)

	return nil
}
