// Package filtermeta contains the filter-list metadata used to annotate rule
// texts in the filtering log with the display names of their filter lists.
package filtermeta

import (
	"github.com/AdguardTeam/FilteringLog/internal/extlog"
)

// Finder resolves the display name of a filter list by its ID.
//
// All methods must be safe for concurrent use.
type Finder interface {
	// FindName returns the display name of the filter list with the given ID.
	// ok is false if the ID is unknown, which is not an error.
	FindName(id extlog.FilterID) (name string, ok bool)
}

// Static is a [Finder] backed by a fixed mapping.  It is mostly useful in
// tests and for configuration-file defined names.
type Static map[extlog.FilterID]string

// type check
var _ Finder = Static(nil)

// FindName implements the [Finder] interface for Static.
func (s Static) FindName(id extlog.FilterID) (name string, ok bool) {
	name, ok = s[id]

	return name, ok
}

// Empty is a [Finder] that knows no filter lists.
type Empty struct{}

// type check
var _ Finder = Empty{}

// FindName implements the [Finder] interface for Empty.  ok is always false.
func (Empty) FindName(_ extlog.FilterID) (name string, ok bool) {
	return "", false
}
