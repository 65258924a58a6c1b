// Package ruleinfo derives the presentation data for a single filtering-log
// entry: the rule texts that were applied to the event and the action buttons
// that should be shown to the operator.
//
// Both derivations are pure functions of their inputs.  They never modify the
// event and never fail: missing or malformed rule descriptors mean that there
// is nothing to display, not an error.
package ruleinfo

// ButtonKind is the kind of an action button shown for a filtering-log entry.
// The rendering layer maps each kind to a localized label and a click
// handler.
type ButtonKind string

// ButtonKind values.
const (
	// ButtonBlock adds a blocking rule for the event's request.
	ButtonBlock ButtonKind = "block"

	// ButtonUnblock adds an exception rule for the event's request.
	ButtonUnblock ButtonKind = "unblock"

	// ButtonRemoveAllowlist removes the event's domain from the site
	// allowlist.
	ButtonRemoveAllowlist ButtonKind = "remove_allowlist"

	// ButtonRemoveUserFilter removes the applied rule from the user filter.
	ButtonRemoveUserFilter ButtonKind = "remove_user_filter"

	// ButtonRemoveAddedBlock removes the blocking rule the operator has just
	// added for this event.
	ButtonRemoveAddedBlock ButtonKind = "remove_added_block"

	// ButtonRemoveAddedUnblock removes the exception rule the operator has
	// just added for this event.
	ButtonRemoveAddedUnblock ButtonKind = "remove_added_unblock"

	// ButtonPreview opens a preview of the affected resource.
	ButtonPreview ButtonKind = "preview"
)
