package cmd

import (
	"fmt"
	"os"

	"github.com/AdguardTeam/golibs/container"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
	"gopkg.in/yaml.v2"
)

// configuration represents the on-disk configuration of the filtering-log
// service.  The order of the fields should generally not be altered.
type configuration struct {
	// EventLog is the additional event log configuration.  See the
	// environment type for more event log parameters.
	EventLog *eventLogConfig `yaml:"event_log"`

	// FilterMeta is the filter-list metadata storage configuration.
	FilterMeta *filterMetaConfig `yaml:"filter_meta"`

	// UserRules is the configuration of the storage of rules added by the
	// user.
	UserRules *userRulesConfig `yaml:"user_rules"`

	// Web is the configuration for the HTTP API of the filtering log.
	Web *webConfig `yaml:"web"`
}

// type check
var _ validate.Interface = (*configuration)(nil)

// Validate implements the [validate.Interface] interface for *configuration.
func (c *configuration) Validate() (err error) {
	if c == nil {
		return errors.ErrNoValue
	}

	// Keep this in the same order as the fields in the config.
	validators := container.KeyValues[string, validate.Interface]{{
		Key:   "event_log",
		Value: c.EventLog,
	}, {
		Key:   "filter_meta",
		Value: c.FilterMeta,
	}, {
		Key:   "user_rules",
		Value: c.UserRules,
	}, {
		Key:   "web",
		Value: c.Web,
	}}

	var errs []error
	for _, kv := range validators {
		errs = validate.Append(errs, kv.Key, kv.Value)
	}

	return errors.Join(errs...)
}

// parseConfig reads the configuration.
func parseConfig(confPath string) (c *configuration, err error) {
	// #nosec G304 -- Trust the path to the configuration file that is given
	// from the environment.
	yamlFile, err := os.ReadFile(confPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	c = &configuration{}
	err = yaml.Unmarshal(yamlFile, c)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return c, nil
}
