// Package userrules contains the storage of rules added by the user: the user
// filtering rules and the website allowlist.  It also keeps the short-lived
// per-event record of rules added from the filtering log, which is used to
// offer an undo action for them.
package userrules

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/urlfilter/rules"
	renameio "github.com/google/renameio/v2"
	cache "github.com/patrickmn/go-cache"
)

// DefaultSessionTTL is the default time-to-live of the per-event added-rule
// records.
const DefaultSessionTTL = 1 * time.Hour

// Config is the configuration for the user-rules storage.
type Config struct {
	// Logger is used for logging the operation of the storage.  It must not
	// be nil.
	Logger *slog.Logger

	// RulesPath is the path to the file with the user filtering rules.  It
	// must not be empty.
	RulesPath string

	// AllowlistPath is the path to the file with the allowlisted websites.
	// It must not be empty.
	AllowlistPath string

	// SessionTTL is how long the per-event added-rule records are kept.  It
	// must be positive.
	SessionTTL time.Duration
}

// Storage is the storage of user filtering rules and allowlisted websites.
//
// TODO(d.seregin): Add a metrics interface once there is more than one
// counter to report.
type Storage struct {
	logger   *slog.Logger
	sessions *cache.Cache

	// mu protects rules and allowlist as well as the files these are
	// persisted to.
	mu        *sync.Mutex
	rules     []extlog.RuleText
	allowlist []string

	rulesPath     string
	allowlistPath string
}

// New returns a new storage with the rules and the allowlist loaded from the
// files in c.  Files that do not exist yet are treated as empty.  c must not
// be nil and must be valid.
func New(c *Config) (s *Storage, err error) {
	defer func() { err = errors.Annotate(err, "user rules: %w") }()

	s = &Storage{
		logger:        c.Logger,
		sessions:      cache.New(c.SessionTTL, c.SessionTTL),
		mu:            &sync.Mutex{},
		rulesPath:     c.RulesPath,
		allowlistPath: c.AllowlistPath,
	}

	ruleStrs, err := loadLines(c.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	for _, str := range ruleStrs {
		text, ruleErr := extlog.NewRuleText(str)
		if ruleErr != nil {
			s.logger.Warn("skipping bad rule", "rule", str, slogutil.KeyError, ruleErr)

			continue
		}

		s.rules = append(s.rules, text)
	}

	s.allowlist, err = loadLines(c.AllowlistPath)
	if err != nil {
		return nil, fmt.Errorf("loading allowlist: %w", err)
	}

	return s, nil
}

// loadLines reads the file at path and returns its non-empty lines.  A file
// that does not exist is treated as empty.
func loadLines(path string) (lines []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// The file hasn't been created yet, go on.
			return nil, nil
		}

		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines, nil
}

// storeLines writes lines to the file at path atomically.
func storeLines(path string, lines []string) (err error) {
	data := strings.Join(lines, "\n")
	if data != "" {
		data += "\n"
	}

	err = renameio.WriteFile(path, []byte(data), extlog.DefaultPerm)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return err
	}

	return nil
}

// storeRules persists the current user filtering rules.  s.mu must be locked.
func (s *Storage) storeRules() (err error) {
	lines := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		lines = append(lines, string(r))
	}

	return storeLines(s.rulesPath, lines)
}

// storeAllowlist persists the current allowlist.  s.mu must be locked.
func (s *Storage) storeAllowlist() (err error) {
	return storeLines(s.allowlistPath, s.allowlist)
}

// validateRuleText returns an error if text is not a valid filtering rule.
func validateRuleText(text extlog.RuleText) (err error) {
	_, err = rules.NewNetworkRule(string(text), rules.ListID(extlog.FilterIDUserFilter))
	if err != nil {
		return fmt.Errorf("parsing rule: %w", err)
	}

	return nil
}

// Rules returns a copy of the current user filtering rules.
func (s *Storage) Rules() (texts []extlog.RuleText) {
	s.mu.Lock()
	defer s.mu.Unlock()

	texts = make([]extlog.RuleText, len(s.rules))
	copy(texts, s.rules)

	return texts
}

// Allowlist returns a copy of the currently allowlisted websites.
func (s *Storage) Allowlist() (domains []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	domains = make([]string, len(s.allowlist))
	copy(domains, s.allowlist)

	return domains
}

// logRuleChange writes a debug record about a change of the rule lists.
func (s *Storage) logRuleChange(ctx context.Context, op string, val string) {
	s.logger.DebugContext(ctx, "rule list changed", "op", op, "value", val)
}
