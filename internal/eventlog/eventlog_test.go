package eventlog_test

import (
	"time"

	"github.com/AdguardTeam/FilteringLog/internal/extlog"
)

// testTimeout is the common timeout for tests.
const testTimeout = 1 * time.Second

// testEventID is the common event ID for tests.
const testEventID extlog.EventID = "event-1234"

// testEntry returns an event for tests.
func testEntry() (e *extlog.FilteringEvent) {
	return &extlog.FilteringEvent{
		Time: time.Unix(123, 0),
		RequestRule: &extlog.RuleDescriptor{
			AppliedRuleText: "||example.com^",
			FilterID:        1,
		},
		ID:            testEventID,
		URL:           "https://example.com/banner.png",
		RequestDomain: "example.com",
		RequestType:   extlog.RequestTypeImage,
	}
}
