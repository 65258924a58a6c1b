package userrules

import (
	"context"
	"fmt"
	"slices"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/golibs/errors"
)

// ErrNotFound is returned by removal operations when the rule or the website
// is not in the storage.
const ErrNotFound errors.Error = "not found"

// AddBlock validates text, adds it to the user filtering rules, and records
// that a blocking rule has been added for the event with the given ID.
func (s *Storage) AddBlock(ctx context.Context, id extlog.EventID, text extlog.RuleText) (err error) {
	defer func() { err = errors.Annotate(err, "adding blocking rule: %w") }()

	return s.add(ctx, id, text, extlog.AddedRuleBlock)
}

// AddUnblock validates text, adds it to the user filtering rules, and records
// that an unblocking rule has been added for the event with the given ID.
func (s *Storage) AddUnblock(ctx context.Context, id extlog.EventID, text extlog.RuleText) (err error) {
	defer func() { err = errors.Annotate(err, "adding unblocking rule: %w") }()

	return s.add(ctx, id, text, extlog.AddedRuleUnblock)
}

// add implements both [Storage.AddBlock] and [Storage.AddUnblock].
func (s *Storage) add(
	ctx context.Context,
	id extlog.EventID,
	text extlog.RuleText,
	state extlog.AddedRuleState,
) (err error) {
	err = validateRuleText(text)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.rules, text) {
		s.rules = append(s.rules, text)

		err = s.storeRules()
		if err != nil {
			return fmt.Errorf("storing rules: %w", err)
		}
	}

	s.sessions.SetDefault(string(id), state)
	s.logRuleChange(ctx, "add", string(text))

	return nil
}

// RemoveUserRule removes text from the user filtering rules and clears the
// added-rule record of the event with the given ID, if any.
func (s *Storage) RemoveUserRule(ctx context.Context, id extlog.EventID, text extlog.RuleText) (err error) {
	defer func() { err = errors.Annotate(err, "removing rule: %w") }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.rules, text)
	if i < 0 {
		return ErrNotFound
	}

	s.rules = slices.Delete(s.rules, i, i+1)

	err = s.storeRules()
	if err != nil {
		return fmt.Errorf("storing rules: %w", err)
	}

	s.sessions.Delete(string(id))
	s.logRuleChange(ctx, "remove", string(text))

	return nil
}

// RemoveAllowlist removes domain from the allowlisted websites.
func (s *Storage) RemoveAllowlist(ctx context.Context, domain string) (err error) {
	defer func() { err = errors.Annotate(err, "removing from allowlist: %w") }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.allowlist, domain)
	if i < 0 {
		return ErrNotFound
	}

	s.allowlist = slices.Delete(s.allowlist, i, i+1)

	err = s.storeAllowlist()
	if err != nil {
		return fmt.Errorf("storing allowlist: %w", err)
	}

	s.logRuleChange(ctx, "remove_allowlist", domain)

	return nil
}

// AddedRuleState returns the added-rule record of the event with the given
// ID.  The result is [extlog.AddedRuleNone] if no rule has been added
// for the event or if the record has expired.
func (s *Storage) AddedRuleState(id extlog.EventID) (state extlog.AddedRuleState) {
	v, ok := s.sessions.Get(string(id))
	if !ok {
		return extlog.AddedRuleNone
	}

	return v.(extlog.AddedRuleState)
}

// Acknowledge clears the added-rule record of the event with the given ID
// without changing the rule lists.
func (s *Storage) Acknowledge(id extlog.EventID) {
	s.sessions.Delete(string(id))
}
