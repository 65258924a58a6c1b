package extlog

import (
	"fmt"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/validate"
)

// EventID is the unique ID of a filtering event.  It is an opaque string.
type EventID string

// The maximum and minimum lengths of an event ID.
const (
	MaxEventIDLen = 64
	MinEventIDLen = 1
)

// NewEventID converts a simple string into an EventID and makes sure that
// it's valid.  This should be preferred to a simple type conversion.
func NewEventID(s string) (id EventID, err error) {
	defer func() { err = errors.Annotate(err, "bad event id %q: %w", s) }()

	err = validate.InRange("length", len(s), MinEventIDLen, MaxEventIDLen)
	if err != nil {
		return "", err
	}

	for i, r := range s {
		if r <= ' ' || r > '~' {
			return "", fmt.Errorf("bad rune %q at index %d", r, i)
		}
	}

	return EventID(s), nil
}

// FilteringEvent is a single logged record of one intercepted request or
// content action and the rules, if any, that matched it.  It is immutable
// once constructed.
type FilteringEvent struct {
	// Time is the time at which the event was recorded.
	Time time.Time

	// RequestRule is the rule applied to the request, if any.
	RequestRule *RuleDescriptor

	// ID is the unique ID of the event.
	ID EventID

	// URL is the URL of the affected request or document.
	URL string

	// RequestDomain is the effective domain of the request.
	RequestDomain string

	// Element is the markup of the blocked DOM element, if the event
	// represents one.
	Element string

	// CookieName is the name of the affected cookie, if the event represents
	// a cookie action.
	CookieName string

	// ReplaceRules are the content-replacement rules applied to the response,
	// in application order.
	ReplaceRules []RuleDescriptor

	// StealthAllowlistRules are the tracking-protection exception rules
	// applied to the request, in application order.
	StealthAllowlistRules []RuleDescriptor

	// StealthActions is the bitmask of tracking-protection actions applied to
	// the request.
	StealthActions StealthActions

	// RequestType is the content category of the affected resource.
	RequestType RequestType

	// Script is true if the event represents a blocked script as opposed to a
	// network request.
	Script bool
}

// Status returns the derived status of the event.  The replace and
// tracking-protection rule groups take precedence over the single request
// rule, mirroring the precedence used for rule-text derivation.
func (e *FilteringEvent) Status() (s EventStatus) {
	switch {
	case len(e.ReplaceRules) > 0, len(e.StealthAllowlistRules) > 0:
		return StatusModified
	case e.RequestRule != nil && e.RequestRule.Allowlist:
		return StatusAllowed
	case e.RequestRule != nil, e.Element != "", e.CookieName != "", e.Script:
		return StatusBlocked
	default:
		return StatusProcessed
	}
}

// EventStatus is the derived disposition of a filtering event.
type EventStatus uint8

// EventStatus values.
const (
	// StatusProcessed means that the request passed through without any rule
	// applied.
	StatusProcessed EventStatus = iota

	// StatusBlocked means that the request or content was blocked.
	StatusBlocked

	// StatusAllowed means that an exception rule exempted the request from
	// blocking.
	StatusAllowed

	// StatusModified means that the response or request was modified rather
	// than blocked.
	StatusModified
)

// type check
var _ fmt.Stringer = StatusProcessed

// String implements the [fmt.Stringer] interface for EventStatus.
func (s EventStatus) String() (str string) {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusBlocked:
		return "blocked"
	case StatusAllowed:
		return "allowed"
	case StatusModified:
		return "modified"
	default:
		return fmt.Sprintf("!bad_status_%d", s)
	}
}

// AddedRuleState describes a rule the operator has just added for an event in
// this session.  It overrides the derived button state until acknowledged.
type AddedRuleState uint8

// AddedRuleState values.
const (
	// AddedRuleNone means that no rule has been added for the event.
	AddedRuleNone AddedRuleState = iota

	// AddedRuleBlock means that a blocking rule has just been added.
	AddedRuleBlock

	// AddedRuleUnblock means that an exception rule has just been added.
	AddedRuleUnblock
)
