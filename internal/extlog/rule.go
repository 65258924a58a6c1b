package extlog

import (
	"fmt"
	"unicode/utf8"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
)

// FilterID is the numeric ID of a filter list as used by the browser
// extension.
type FilterID int32

// Special filter ID values shared with the extension.
//
// NOTE:  DO NOT change these as the extension depends on these values.
const (
	// FilterIDUserFilter is the ID of the pseudo-filter containing the rules
	// added by the user.
	FilterIDUserFilter FilterID = 0

	// FilterIDAllowlist is the ID of the pseudo-filter containing the rules
	// generated from the site allowlist.
	FilterIDAllowlist FilterID = 100
)

// RuleText is the text of a single rule within a filter list.
type RuleText string

// MaxRuleTextRuneLen is the maximum length of a filter rule in runes.
const MaxRuleTextRuneLen = 1024

// NewRuleText converts a simple string into a RuleText and makes sure that
// it's valid.  This should be preferred to a simple type conversion.
func NewRuleText(s string) (t RuleText, err error) {
	defer func() { err = errors.Annotate(err, "bad filter rule text %q: %w", s) }()

	err = validate.InRange("length", utf8.RuneCountInString(s), 0, MaxRuleTextRuneLen)
	if err != nil {
		return "", err
	}

	for i, r := range s {
		if r == '\n' || r == '\r' {
			return "", fmt.Errorf("bad rune %q at index %d", r, i)
		}
	}

	return RuleText(s), nil
}

// RuleDescriptor describes one rule that has been applied to a filtering
// event, as reported by the filtering engine.
type RuleDescriptor struct {
	// AppliedRuleText is the text of the rule in the form it was applied.  For
	// converted rules it differs from OriginalRuleText.  It may be empty.
	AppliedRuleText RuleText

	// OriginalRuleText is the text of the rule as it appears in the source
	// filter list, if the applied text is a conversion.  It may be empty.
	OriginalRuleText RuleText

	// FilterID is the ID of the filter list the rule came from.
	FilterID FilterID

	// Allowlist is true if the rule is an exception rule.
	Allowlist bool

	// DocumentLevel is true if the rule matches the whole document as opposed
	// to a single sub-resource.
	DocumentLevel bool

	// StealthMode is true if the rule was generated by the tracking-protection
	// module.
	StealthMode bool

	// Cookie is true if the rule is a cookie-modifying rule.
	Cookie bool
}
