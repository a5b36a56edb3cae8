package chat

import (
	"strings"
	"time"
)

// ClockPlaceholder is shown for messages without a usable timestamp.
const ClockPlaceholder = "--:--"

// EmptyRoster is shown in place of an empty user list.
const EmptyRoster = "—"

// FormatClock renders epoch milliseconds as zero-padded HH:MM wall-clock
// time in loc, truncating to whole seconds first.  Non-positive values
// render as ClockPlaceholder.
func FormatClock(millis int64, loc *time.Location) string {
	if millis <= 0 {
		return ClockPlaceholder
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(millis/1000, 0).In(loc).Format("15:04")
}

// FormatRoster joins users with ", ", or returns EmptyRoster.
func FormatRoster(users []string) string {
	if len(users) == 0 {
		return EmptyRoster
	}
	return strings.Join(users, ", ")
}
