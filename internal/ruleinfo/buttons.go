package ruleinfo

import (
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
)

// ResolveButtons determines which action buttons should be shown to the
// operator for e given the state of the rule, if any, that the operator has
// just added for the event.  e must not be nil.
//
// The first matching state wins, except for the preview button, which can be
// appended to any result other than the just-added states.
func ResolveButtons(e *extlog.FilteringEvent, added extlog.AddedRuleState) (btns []ButtonKind) {
	switch added {
	case extlog.AddedRuleBlock:
		return []ButtonKind{ButtonRemoveAddedBlock}
	case extlog.AddedRuleUnblock:
		return []ButtonKind{ButtonRemoveAddedUnblock}
	}

	rd := e.RequestRule
	switch {
	case rd == nil:
		btns = []ButtonKind{ButtonBlock}
	case rd.FilterID == extlog.FilterIDUserFilter:
		base := ButtonRemoveUserFilter
		if rd.StealthMode {
			base = ButtonUnblock
		}

		if rd.Allowlist {
			// A user-filter allowlist entry can both be removed and be
			// overridden by a fresh blocking rule, so both buttons are shown
			// together.
			btns = []ButtonKind{ButtonBlock, base}
		} else {
			btns = []ButtonKind{base}
		}
	case rd.FilterID == extlog.FilterIDAllowlist:
		btns = []ButtonKind{ButtonRemoveAllowlist}
	case !rd.Allowlist:
		btns = []ButtonKind{ButtonUnblock}
	default:
		btns = []ButtonKind{ButtonBlock}
	}

	if previewEligible(e) {
		btns = append(btns, ButtonPreview)
	}

	return btns
}

// previewEligible returns true if a preview button can be shown for e.  e
// must not be nil.
func previewEligible(e *extlog.FilteringEvent) (ok bool) {
	switch e.RequestType {
	case
		extlog.RequestTypeImage,
		extlog.RequestTypeDocument,
		extlog.RequestTypeSubdocument,
		extlog.RequestTypeScript,
		extlog.RequestTypeStylesheet:
		// Go on.
	default:
		return false
	}

	if e.Element != "" || e.Script || e.CookieName != "" {
		return false
	}

	return e.Status() != extlog.StatusBlocked
}
