package websvc

import (
	"fmt"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/ruleinfo"
)

// ruleData is the JSON structure of a single applied rule.
type ruleData struct {
	AppliedRuleText  string          `json:"appliedRuleText"`
	OriginalRuleText string          `json:"originalRuleText,omitempty"`
	FilterID         extlog.FilterID `json:"filterId"`
	Allowlist        bool            `json:"allowlist,omitempty"`
	DocumentLevel    bool            `json:"documentLevel,omitempty"`
	StealthMode      bool            `json:"stealth,omitempty"`
	Cookie           bool            `json:"cookieRule,omitempty"`
}

// toInternal converts r to a rule descriptor used by the filtering log.
func (r *ruleData) toInternal() (rd *extlog.RuleDescriptor, err error) {
	applied, err := extlog.NewRuleText(r.AppliedRuleText)
	if err != nil {
		return nil, fmt.Errorf("applied rule text: %w", err)
	}

	original, err := extlog.NewRuleText(r.OriginalRuleText)
	if err != nil {
		return nil, fmt.Errorf("original rule text: %w", err)
	}

	return &extlog.RuleDescriptor{
		AppliedRuleText:  applied,
		OriginalRuleText: original,
		FilterID:         r.FilterID,
		Allowlist:        r.Allowlist,
		DocumentLevel:    r.DocumentLevel,
		StealthMode:      r.StealthMode,
		Cookie:           r.Cookie,
	}, nil
}

// eventReq is the JSON structure of the request body of the event-write
// endpoint.
type eventReq struct {
	RequestRule           *ruleData             `json:"requestRule,omitempty"`
	ID                    string                `json:"eventId"`
	URL                   string                `json:"requestUrl"`
	RequestDomain         string                `json:"frameDomain"`
	Element               string                `json:"element,omitempty"`
	CookieName            string                `json:"cookieName,omitempty"`
	ReplaceRules          []ruleData            `json:"replaceRules,omitempty"`
	StealthAllowlistRules []ruleData            `json:"stealthAllowlistRules,omitempty"`
	Time                  int64                 `json:"timestamp"`
	StealthActions        extlog.StealthActions `json:"stealthActions,omitempty"`
	RequestType           extlog.RequestType    `json:"requestType"`
	Script                bool                  `json:"script,omitempty"`
}

// toInternal converts r to a filtering event, validating its fields.
func (r *eventReq) toInternal() (e *extlog.FilteringEvent, err error) {
	id, err := extlog.NewEventID(r.ID)
	if err != nil {
		return nil, fmt.Errorf("event id: %w", err)
	}

	var reqRule *extlog.RuleDescriptor
	if r.RequestRule != nil {
		reqRule, err = r.RequestRule.toInternal()
		if err != nil {
			return nil, fmt.Errorf("request rule: %w", err)
		}
	}

	replace, err := rulesToInternal(r.ReplaceRules)
	if err != nil {
		return nil, fmt.Errorf("replace rules: %w", err)
	}

	stealth, err := rulesToInternal(r.StealthAllowlistRules)
	if err != nil {
		return nil, fmt.Errorf("stealth allowlist rules: %w", err)
	}

	return &extlog.FilteringEvent{
		Time:                  time.UnixMilli(r.Time),
		RequestRule:           reqRule,
		ID:                    id,
		URL:                   r.URL,
		RequestDomain:         r.RequestDomain,
		Element:               r.Element,
		CookieName:            r.CookieName,
		ReplaceRules:          replace,
		StealthAllowlistRules: stealth,
		StealthActions:        r.StealthActions,
		RequestType:           r.RequestType,
		Script:                r.Script,
	}, nil
}

// rulesToInternal converts a group of rules, validating each of them.
func rulesToInternal(data []ruleData) (rds []extlog.RuleDescriptor, err error) {
	for i, d := range data {
		rd, convErr := d.toInternal()
		if convErr != nil {
			return nil, fmt.Errorf("at index %d: %w", i, convErr)
		}

		rds = append(rds, *rd)
	}

	return rds, nil
}

// eventWriteResp is the JSON structure of the response body of the
// event-write endpoint.
type eventWriteResp struct {
	ID extlog.EventID `json:"eventId"`
}

// ruleTextsData is the JSON structure of the derived rule texts.
type ruleTextsData struct {
	Applied  []string `json:"applied,omitempty"`
	Original []string `json:"original,omitempty"`
}

// eventInfoResp is the JSON structure of the response body of the event-info
// endpoint.
type eventInfoResp struct {
	Status         string                `json:"status"`
	RuleTexts      ruleTextsData         `json:"ruleTexts"`
	Buttons        []ruleinfo.ButtonKind `json:"buttons"`
	StealthActions []string              `json:"stealthActions,omitempty"`
}

// eventActionReq is the JSON structure of the request body of the
// event-action endpoint.
type eventActionReq struct {
	Action   string `json:"action"`
	RuleText string `json:"ruleText,omitempty"`
}

// eventActionResp is the JSON structure of the response body of the
// event-action endpoint.  It carries the buttons recomputed after the
// action.
type eventActionResp struct {
	Buttons []ruleinfo.ButtonKind `json:"buttons"`
}

// iconResp is the JSON structure of the response body of the icon-state
// endpoint.
type iconResp struct {
	Variant   string `json:"variant"`
	BadgeText string `json:"badgeText,omitempty"`
}
