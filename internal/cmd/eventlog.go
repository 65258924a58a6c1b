package cmd

import (
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
)

// Event log configuration

// eventLogConfig is the event log configuration.
type eventLogConfig struct {
	// File contains the JSONL file event log configuration.
	File *eventLogFileConfig `yaml:"file"`

	// CacheSize is the maximum number of events kept in the in-memory
	// key-value storage.  It is only used when the Redis storage is disabled.
	CacheSize int `yaml:"cache_size"`
}

// type check
var _ validate.Interface = (*eventLogConfig)(nil)

// Validate implements the [validate.Interface] interface for *eventLogConfig.
func (c *eventLogConfig) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	errs := []error{
		validate.NotNil("file", c.File),
		validate.Positive("cache_size", c.CacheSize),
	}

	return errors.Join(errs...)
}

// eventLogFileConfig is the JSONL file event log configuration.
type eventLogFileConfig struct {
	Enabled bool `yaml:"enabled"`
}
