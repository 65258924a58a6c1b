package userrules_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/AdguardTeam/FilteringLog/internal/fltest"
	"github.com/AdguardTeam/FilteringLog/internal/userrules"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEventID is the common event ID for tests.
const testEventID extlog.EventID = "event-1234"

// Common rule texts for tests.
const (
	testRuleBlock   extlog.RuleText = "||example.com^"
	testRuleUnblock extlog.RuleText = "@@||example.com^"
)

// newTestStorage is a helper that returns a storage persisting into dir as
// well as the paths to the rules and allowlist files.
func newTestStorage(tb testing.TB, dir string) (s *userrules.Storage, rulesPath, allowlistPath string) {
	tb.Helper()

	rulesPath = filepath.Join(dir, "user_rules.txt")
	allowlistPath = filepath.Join(dir, "allowlist.txt")

	s, err := userrules.New(&userrules.Config{
		Logger:        slogutil.NewDiscardLogger(),
		RulesPath:     rulesPath,
		AllowlistPath: allowlistPath,
		SessionTTL:    1 * time.Minute,
	})
	require.NoError(tb, err)

	return s, rulesPath, allowlistPath
}

func TestNew_load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "user_rules.txt")
	allowlistPath := filepath.Join(dir, "allowlist.txt")

	rulesData := "||example.com^\n\n  \n@@||example.org^\n"
	require.NoError(t, os.WriteFile(rulesPath, []byte(rulesData), 0o600))
	require.NoError(t, os.WriteFile(allowlistPath, []byte("example.net\n"), 0o600))

	s, err := userrules.New(&userrules.Config{
		Logger:        slogutil.NewDiscardLogger(),
		RulesPath:     rulesPath,
		AllowlistPath: allowlistPath,
		SessionTTL:    1 * time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, []extlog.RuleText{"||example.com^", "@@||example.org^"}, s.Rules())
	assert.Equal(t, []string{"example.net"}, s.Allowlist())
}

func TestStorage_AddBlock(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	dir := t.TempDir()
	s, rulesPath, _ := newTestStorage(t, dir)

	err := s.AddBlock(ctx, testEventID, testRuleBlock)
	require.NoError(t, err)

	assert.Equal(t, []extlog.RuleText{testRuleBlock}, s.Rules())
	assert.Equal(t, extlog.AddedRuleBlock, s.AddedRuleState(testEventID))

	// Adding the same rule again must not duplicate it.
	err = s.AddBlock(ctx, testEventID, testRuleBlock)
	require.NoError(t, err)

	assert.Equal(t, []extlog.RuleText{testRuleBlock}, s.Rules())

	data, err := os.ReadFile(rulesPath)
	require.NoError(t, err)

	assert.Equal(t, "||example.com^\n", string(data))
}

func TestStorage_AddUnblock(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	s, _, _ := newTestStorage(t, t.TempDir())

	err := s.AddUnblock(ctx, testEventID, testRuleUnblock)
	require.NoError(t, err)

	assert.Equal(t, []extlog.RuleText{testRuleUnblock}, s.Rules())
	assert.Equal(t, extlog.AddedRuleUnblock, s.AddedRuleState(testEventID))
}

func TestStorage_AddBlock_badRule(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	s, _, _ := newTestStorage(t, t.TempDir())

	err := s.AddBlock(ctx, testEventID, "||example.com^$unknownmodifier")
	assert.Error(t, err)

	assert.Empty(t, s.Rules())
	assert.Equal(t, extlog.AddedRuleNone, s.AddedRuleState(testEventID))
}

func TestStorage_RemoveUserRule(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	s, rulesPath, _ := newTestStorage(t, t.TempDir())

	require.NoError(t, s.AddBlock(ctx, testEventID, testRuleBlock))

	err := s.RemoveUserRule(ctx, testEventID, testRuleBlock)
	require.NoError(t, err)

	assert.Empty(t, s.Rules())
	assert.Equal(t, extlog.AddedRuleNone, s.AddedRuleState(testEventID))

	data, err := os.ReadFile(rulesPath)
	require.NoError(t, err)

	assert.Equal(t, "", string(data))

	err = s.RemoveUserRule(ctx, testEventID, testRuleBlock)
	assert.ErrorIs(t, err, userrules.ErrNotFound)
}

func TestStorage_RemoveAllowlist(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	dir := t.TempDir()
	allowlistPath := filepath.Join(dir, "allowlist.txt")
	require.NoError(t, os.WriteFile(allowlistPath, []byte("example.com\nexample.org\n"), 0o600))

	s, err := userrules.New(&userrules.Config{
		Logger:        slogutil.NewDiscardLogger(),
		RulesPath:     filepath.Join(dir, "user_rules.txt"),
		AllowlistPath: allowlistPath,
		SessionTTL:    1 * time.Minute,
	})
	require.NoError(t, err)

	err = s.RemoveAllowlist(ctx, "example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"example.org"}, s.Allowlist())

	data, err := os.ReadFile(allowlistPath)
	require.NoError(t, err)

	assert.Equal(t, "example.org\n", string(data))

	err = s.RemoveAllowlist(ctx, "example.com")
	assert.ErrorIs(t, err, userrules.ErrNotFound)
}

func TestStorage_Acknowledge(t *testing.T) {
	t.Parallel()

	ctx := testutil.ContextWithTimeout(t, fltest.Timeout)

	s, _, _ := newTestStorage(t, t.TempDir())

	require.NoError(t, s.AddBlock(ctx, testEventID, testRuleBlock))
	require.Equal(t, extlog.AddedRuleBlock, s.AddedRuleState(testEventID))

	s.Acknowledge(testEventID)

	assert.Equal(t, extlog.AddedRuleNone, s.AddedRuleState(testEventID))

	// The rule itself must stay in the list.
	assert.Equal(t, []extlog.RuleText{testRuleBlock}, s.Rules())
}
