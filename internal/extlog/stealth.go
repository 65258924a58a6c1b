package extlog

// StealthActions is the bitmask of tracking-protection actions applied to a
// request independently of blocking rules.
type StealthActions uint32

// StealthActions bit values.
//
// NOTE:  DO NOT change the numerical values, because the extension reports
// these bits in its filtering events.
const (
	StealthActionHideReferrer      StealthActions = 1 << 0
	StealthActionHideSearchQueries StealthActions = 1 << 1
	StealthActionBlockChromeExt    StealthActions = 1 << 2
	StealthActionSendDoNotTrack    StealthActions = 1 << 3
	StealthActionFirstPartyCookies StealthActions = 1 << 4
	StealthActionThirdPartyCookies StealthActions = 1 << 5
)

// stealthActionNames maps each action bit to its display name, in bit order.
var stealthActionNames = []struct {
	name   string
	action StealthActions
}{{
	name:   "hide_referrer",
	action: StealthActionHideReferrer,
}, {
	name:   "hide_search_queries",
	action: StealthActionHideSearchQueries,
}, {
	name:   "block_chrome_client_data",
	action: StealthActionBlockChromeExt,
}, {
	name:   "send_do_not_track",
	action: StealthActionSendDoNotTrack,
}, {
	name:   "first_party_cookies",
	action: StealthActionFirstPartyCookies,
}, {
	name:   "third_party_cookies",
	action: StealthActionThirdPartyCookies,
}}

// Names returns the display names of all actions set in a, in a fixed order.
// Unknown bits are ignored.
func (a StealthActions) Names() (names []string) {
	for _, n := range stealthActionNames {
		if a&n.action != 0 {
			names = append(names, n.name)
		}
	}

	return names
}
