package extlog_test

import (
	"strings"
	"testing"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventID(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		in      string
		wantErr bool
	}{{
		name:    "success",
		in:      "event-1234",
		wantErr: false,
	}, {
		name:    "empty",
		in:      "",
		wantErr: true,
	}, {
		name:    "too_long",
		in:      strings.Repeat("a", extlog.MaxEventIDLen+1),
		wantErr: true,
	}, {
		name:    "bad_rune",
		in:      "event\n1234",
		wantErr: true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, err := extlog.NewEventID(tc.in)
			if tc.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, extlog.EventID(tc.in), id)
		})
	}
}

func TestNewRuleText(t *testing.T) {
	t.Parallel()

	tooLong := strings.Repeat("a", extlog.MaxRuleTextRuneLen+1)

	_, err := extlog.NewRuleText("||example.com^")
	require.NoError(t, err)

	_, err = extlog.NewRuleText("")
	require.NoError(t, err)

	_, err = extlog.NewRuleText("bad\nrule")
	assert.Error(t, err)

	_, err = extlog.NewRuleText(tooLong)
	assert.Error(t, err)
}

func TestFilteringEvent_Status(t *testing.T) {
	t.Parallel()

	blockRule := &extlog.RuleDescriptor{
		AppliedRuleText: "||example.com^",
		FilterID:        1,
	}

	allowRule := &extlog.RuleDescriptor{
		AppliedRuleText: "@@||example.com^",
		FilterID:        1,
		Allowlist:       true,
	}

	testCases := []struct {
		event *extlog.FilteringEvent
		name  string
		want  extlog.EventStatus
	}{{
		event: &extlog.FilteringEvent{},
		name:  "processed",
		want:  extlog.StatusProcessed,
	}, {
		event: &extlog.FilteringEvent{
			RequestRule: blockRule,
		},
		name: "blocked",
		want: extlog.StatusBlocked,
	}, {
		event: &extlog.FilteringEvent{
			RequestRule: allowRule,
		},
		name: "allowed",
		want: extlog.StatusAllowed,
	}, {
		event: &extlog.FilteringEvent{
			ReplaceRules: []extlog.RuleDescriptor{*blockRule},
		},
		name: "modified_replace",
		want: extlog.StatusModified,
	}, {
		event: &extlog.FilteringEvent{
			RequestRule:           blockRule,
			StealthAllowlistRules: []extlog.RuleDescriptor{*allowRule},
		},
		name: "modified_stealth",
		want: extlog.StatusModified,
	}, {
		event: &extlog.FilteringEvent{
			Element: "<div id=\"banner\"></div>",
		},
		name: "blocked_element",
		want: extlog.StatusBlocked,
	}, {
		event: &extlog.FilteringEvent{
			CookieName: "tracker",
		},
		name: "blocked_cookie",
		want: extlog.StatusBlocked,
	}, {
		event: &extlog.FilteringEvent{
			Script: true,
		},
		name: "blocked_script",
		want: extlog.StatusBlocked,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.event.Status())
		})
	}
}

func TestStealthActions_Names(t *testing.T) {
	t.Parallel()

	assert.Nil(t, extlog.StealthActions(0).Names())

	a := extlog.StealthActionHideReferrer | extlog.StealthActionThirdPartyCookies
	assert.Equal(t, []string{"hide_referrer", "third_party_cookies"}, a.Names())
}
