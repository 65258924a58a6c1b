// Package extlog contains the core entities of the filtering-log service:
// filtering events, rule descriptors, and the types derived from them.
package extlog
