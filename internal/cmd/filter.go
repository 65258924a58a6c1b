package cmd

import (
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/AdguardTeam/golibs/validate"
)

// Filter metadata configuration

// filterMetaConfig is the filter-list metadata storage configuration.  See
// the environment type for the filter index URL.
type filterMetaConfig struct {
	// RefreshIvl defines how often the metadata is reloaded from the filter
	// index.
	RefreshIvl timeutil.Duration `yaml:"refresh_interval"`

	// Timeout is the timeout for filter index requests.
	Timeout timeutil.Duration `yaml:"timeout"`
}

// type check
var _ validate.Interface = (*filterMetaConfig)(nil)

// Validate implements the [validate.Interface] interface for
// *filterMetaConfig.
func (c *filterMetaConfig) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	errs := []error{
		validate.Positive("refresh_interval", time.Duration(c.RefreshIvl)),
		validate.Positive("timeout", time.Duration(c.Timeout)),
	}

	return errors.Join(errs...)
}
