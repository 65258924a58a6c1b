// Package iconstate derives the toolbar icon appearance from the filtering
// state of a frame.
package iconstate

import (
	"fmt"
)

// Variant is the icon variant shown in the toolbar.
type Variant uint8

// Variant values.
const (
	// VariantEnabled is the regular icon shown when filtering is active on
	// the frame.
	VariantEnabled Variant = iota

	// VariantDisabled is the grayed-out icon shown when filtering is paused
	// or the website is allowlisted.
	VariantDisabled
)

// String implements the [fmt.Stringer] interface for Variant.
func (v Variant) String() (s string) {
	switch v {
	case VariantEnabled:
		return "enabled"
	case VariantDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("!bad_variant_%d", v)
	}
}

// badgeMax is the largest blocked-request count shown on the badge as is.
// Larger counts are shown as [badgeOverflow].
const badgeMax = 99

// badgeOverflow is the badge text for counts above [badgeMax].
const badgeOverflow = "99+"

// FrameState is the filtering state of a frame that determines the icon
// appearance.
type FrameState struct {
	// BlockedCount is the number of requests blocked on the frame.
	BlockedCount uint64

	// FilteringEnabled is true if filtering is not paused globally.
	FilteringEnabled bool

	// DocumentAllowlisted is true if the website is allowlisted.
	DocumentAllowlisted bool
}

// Icon is the derived toolbar icon appearance.
type Icon struct {
	// BadgeText is the text shown on the icon badge.  It is empty when the
	// badge should be hidden.
	BadgeText string

	// Variant is the icon variant to show.
	Variant Variant
}

// Resolve returns the icon appearance for the given frame state.  The badge is
// only shown when filtering is active and at least one request has been
// blocked.
func Resolve(fs *FrameState) (ic Icon) {
	if !fs.FilteringEnabled || fs.DocumentAllowlisted {
		return Icon{
			Variant: VariantDisabled,
		}
	}

	ic = Icon{
		Variant: VariantEnabled,
	}

	switch c := fs.BlockedCount; {
	case c == 0:
		// Leave the badge empty.
	case c > badgeMax:
		ic.BadgeText = badgeOverflow
	default:
		ic.BadgeText = fmt.Sprintf("%d", c)
	}

	return ic
}
