package cmd

import (
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/timeutil"
	"github.com/AdguardTeam/golibs/validate"
)

// User rules configuration

// userRulesConfig is the configuration of the storage of rules added by the
// user.  See the environment type for the file paths.
type userRulesConfig struct {
	// SessionTTL defines for how long the storage remembers which rule was
	// added for a particular event.
	SessionTTL timeutil.Duration `yaml:"session_ttl"`
}

// type check
var _ validate.Interface = (*userRulesConfig)(nil)

// Validate implements the [validate.Interface] interface for
// *userRulesConfig.
func (c *userRulesConfig) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	return validate.Positive("session_ttl", time.Duration(c.SessionTTL))
}
