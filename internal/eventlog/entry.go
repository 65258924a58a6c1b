package eventlog

import (
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/mathutil"
)

// jsonlEntry is a single JSONL filtering log entry / line.
type jsonlEntry struct {
	// RequestRule is the rule applied to the request, if any.
	//
	// The short name "r" stands for "rule".
	RequestRule *jsonRule `json:"r,omitempty"`

	// EventID is the unique ID of the event.
	//
	// The short name "u" stands for "unique".
	EventID string `json:"u"`

	// URL is the URL of the affected request or document.
	//
	// The short name "n" stands for "name".
	URL string `json:"n"`

	// RequestDomain is the effective domain of the request.
	//
	// The short name "d" stands for "domain".
	RequestDomain string `json:"d,omitempty"`

	// Element is the markup of the blocked DOM element, if any.
	//
	// The short name "e" stands for "element".
	Element string `json:"e,omitempty"`

	// CookieName is the name of the affected cookie, if any.
	//
	// The short name "c" stands for "cookie".
	CookieName string `json:"c,omitempty"`

	// ReplaceRules are the content-replacement rules applied to the response.
	//
	// The short name "p" stands for "patch".
	ReplaceRules []*jsonRule `json:"p,omitempty"`

	// StealthAllowlistRules are the tracking-protection exception rules
	// applied to the request.
	//
	// The short name "w" stands for "whitelist".
	StealthAllowlistRules []*jsonRule `json:"w,omitempty"`

	// Timestamp is the Unix time of the event in milliseconds.
	//
	// The short name "t" stands for "time".
	Timestamp int64 `json:"t"`

	// StealthActions is the bitmask of applied tracking-protection actions.
	//
	// The short name "a" stands for "actions".
	StealthActions uint32 `json:"a,omitempty"`

	// RequestType is the content category of the affected resource.
	//
	// The short name "q" stands for "question".
	RequestType uint8 `json:"q"`

	// Script is 1 if the event represents a blocked script and 0 otherwise.
	// It is a number and not a boolean to save space in the resulting JSON
	// object.
	//
	// The short name "s" stands for "script".
	Script uint8 `json:"s,omitempty"`
}

// jsonRule is the JSON representation of a single applied rule.
type jsonRule struct {
	// AppliedRuleText is the text of the rule in the form it was applied.
	//
	// The short name "a" stands for "applied".
	AppliedRuleText string `json:"a,omitempty"`

	// OriginalRuleText is the text of the rule as it appears in its source
	// filter list.
	//
	// The short name "o" stands for "original".
	OriginalRuleText string `json:"o,omitempty"`

	// FilterID is the ID of the filter list the rule came from.
	//
	// The short name "f" stands for "filter".
	FilterID int32 `json:"f"`

	// Allowlist is 1 if the rule is an exception rule.
	//
	// The short name "w" stands for "whitelist".
	Allowlist uint8 `json:"w,omitempty"`

	// DocumentLevel is 1 if the rule matches the whole document.
	//
	// The short name "d" stands for "document".
	DocumentLevel uint8 `json:"d,omitempty"`

	// StealthMode is 1 if the rule was generated by the tracking-protection
	// module.
	//
	// The short name "m" stands for "mode".
	StealthMode uint8 `json:"m,omitempty"`

	// Cookie is 1 if the rule is a cookie-modifying rule.
	//
	// The short name "c" stands for "cookie".
	Cookie uint8 `json:"c,omitempty"`
}

// newJSONRule converts a rule descriptor into its JSON representation.
func newJSONRule(rd *extlog.RuleDescriptor) (r *jsonRule) {
	return &jsonRule{
		AppliedRuleText:  string(rd.AppliedRuleText),
		OriginalRuleText: string(rd.OriginalRuleText),
		FilterID:         int32(rd.FilterID),
		Allowlist:        mathutil.BoolToNumber[uint8](rd.Allowlist),
		DocumentLevel:    mathutil.BoolToNumber[uint8](rd.DocumentLevel),
		StealthMode:      mathutil.BoolToNumber[uint8](rd.StealthMode),
		Cookie:           mathutil.BoolToNumber[uint8](rd.Cookie),
	}
}

// toInternal converts the JSON representation back into a rule descriptor.
func (r *jsonRule) toInternal() (rd *extlog.RuleDescriptor) {
	return &extlog.RuleDescriptor{
		AppliedRuleText:  extlog.RuleText(r.AppliedRuleText),
		OriginalRuleText: extlog.RuleText(r.OriginalRuleText),
		FilterID:         extlog.FilterID(r.FilterID),
		Allowlist:        r.Allowlist != 0,
		DocumentLevel:    r.DocumentLevel != 0,
		StealthMode:      r.StealthMode != 0,
		Cookie:           r.Cookie != 0,
	}
}

// newJSONRules converts a group of rule descriptors.
func newJSONRules(group []extlog.RuleDescriptor) (rs []*jsonRule) {
	if len(group) == 0 {
		return nil
	}

	rs = make([]*jsonRule, 0, len(group))
	for i := range group {
		rs = append(rs, newJSONRule(&group[i]))
	}

	return rs
}

// toInternalRules converts a group of JSON rules back into descriptors.
func toInternalRules(rs []*jsonRule) (group []extlog.RuleDescriptor) {
	if len(rs) == 0 {
		return nil
	}

	group = make([]extlog.RuleDescriptor, 0, len(rs))
	for _, r := range rs {
		group = append(group, *r.toInternal())
	}

	return group
}

// newJSONLEntry converts a filtering event into its JSONL representation.  e
// must not be nil.
func newJSONLEntry(e *extlog.FilteringEvent) (ent *jsonlEntry) {
	ent = &jsonlEntry{
		EventID:               string(e.ID),
		URL:                   e.URL,
		RequestDomain:         e.RequestDomain,
		Element:               e.Element,
		CookieName:            e.CookieName,
		ReplaceRules:          newJSONRules(e.ReplaceRules),
		StealthAllowlistRules: newJSONRules(e.StealthAllowlistRules),
		Timestamp:             e.Time.UnixMilli(),
		StealthActions:        uint32(e.StealthActions),
		RequestType:           uint8(e.RequestType),
		Script:                mathutil.BoolToNumber[uint8](e.Script),
	}

	if e.RequestRule != nil {
		ent.RequestRule = newJSONRule(e.RequestRule)
	}

	return ent
}

// toInternal converts the JSONL representation back into a filtering event.
func (ent *jsonlEntry) toInternal() (e *extlog.FilteringEvent) {
	e = &extlog.FilteringEvent{
		Time:                  time.UnixMilli(ent.Timestamp),
		ID:                    extlog.EventID(ent.EventID),
		URL:                   ent.URL,
		RequestDomain:         ent.RequestDomain,
		Element:               ent.Element,
		CookieName:            ent.CookieName,
		ReplaceRules:          toInternalRules(ent.ReplaceRules),
		StealthAllowlistRules: toInternalRules(ent.StealthAllowlistRules),
		StealthActions:        extlog.StealthActions(ent.StealthActions),
		RequestType:           extlog.RequestType(ent.RequestType),
		Script:                ent.Script != 0,
	}

	if ent.RequestRule != nil {
		e.RequestRule = ent.RequestRule.toInternal()
	}

	return e
}
