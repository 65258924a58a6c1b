package ruleinfo

import (
	"fmt"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/filtermeta"
)

// RuleTexts contains the rule texts derived for one filtering-log entry.
type RuleTexts struct {
	// Applied are the texts of the rules in the form they were applied.
	Applied []string

	// Original are the texts of the rules as they appear in their source
	// filter lists, for rules that were converted before application.
	Original []string
}

// ExtractRuleTexts determines which rule texts applied to e and annotates
// them with the display names of their filter lists where appropriate.  The
// rule groups are checked in fixed precedence order: replace rules first,
// then tracking-protection exceptions, then the single request rule.  The
// groups are never merged.  e must not be nil; f must not be nil.
func ExtractRuleTexts(e *extlog.FilteringEvent, f filtermeta.Finder) (r *RuleTexts) {
	switch {
	case len(e.ReplaceRules) > 0:
		return ruleGroupTexts(e.ReplaceRules, f)
	case len(e.StealthAllowlistRules) > 0:
		return ruleGroupTexts(e.StealthAllowlistRules, f)
	case e.RequestRule == nil:
		return &RuleTexts{}
	case isImplicitAllow(e.RequestRule):
		// An implicit, non-actionable allow decision.  Don't surface it as a
		// rule applied.
		return &RuleTexts{}
	default:
		return ruleGroupTexts([]extlog.RuleDescriptor{*e.RequestRule}, f)
	}
}

// isImplicitAllow returns true if rd represents the whole-document allowlist
// decision generated when the site is on the allowlist.  rd must not be nil.
func isImplicitAllow(rd *extlog.RuleDescriptor) (ok bool) {
	return rd.Allowlist && rd.DocumentLevel && rd.FilterID == extlog.FilterIDAllowlist
}

// ruleGroupTexts collects the applied and original texts of one rule group.
// Single-entry groups are emitted without filter-name annotation; larger
// groups have every present text annotated with the resolved display name of
// its filter list.  Entries lacking a text contribute nothing to the
// corresponding sequence.
func ruleGroupTexts(group []extlog.RuleDescriptor, f filtermeta.Finder) (r *RuleTexts) {
	r = &RuleTexts{}
	annotate := len(group) > 1

	for _, rd := range group {
		applied, original := string(rd.AppliedRuleText), string(rd.OriginalRuleText)

		if annotate {
			if name, ok := f.FindName(rd.FilterID); ok {
				if applied != "" {
					applied = fmt.Sprintf("%s (%s)", applied, name)
				}

				if original != "" {
					original = fmt.Sprintf("%s (%s)", original, name)
				}
			}
		}

		if applied != "" {
			r.Applied = append(r.Applied, applied)
		}

		if original != "" {
			r.Original = append(r.Original, original)
		}
	}

	return r
}
