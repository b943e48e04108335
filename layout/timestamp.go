package layout

import (
	"fmt"
	"time"
)

// DefaultDateSeparator separates date fields when FormatTimestamp gets "".
const DefaultDateSeparator = "-"

var weekdayNames = [...]string{
	time.Sunday:    "日",
	time.Monday:    "一",
	time.Tuesday:   "二",
	time.Wednesday: "三",
	time.Thursday:  "四",
	time.Friday:    "五",
	time.Saturday:  "六",
}

// Timestamp is a time formatted for card display.
type Timestamp struct {
	// Date is "YYYY<sep>MM<sep>DD".
	Date string
	// Weekday is the Chinese weekday with a trailing space, e.g. "星期一 ".
	Weekday string
	// Clock is "HH:MM" on a 24-hour clock.
	Clock string
}

// String joins the parts as "2024-03-08 星期五 09:05".
func (ts Timestamp) String() string {
	return ts.Date + " " + ts.Weekday + ts.Clock
}

// FormatTimestamp formats t in its own location.
func FormatTimestamp(t time.Time, sep string) Timestamp {
	if sep == "" {
		sep = DefaultDateSeparator
	}
	return Timestamp{
		Date:    fmt.Sprintf("%d%s%02d%s%02d", t.Year(), sep, int(t.Month()), sep, t.Day()),
		Weekday: "星期" + weekdayNames[t.Weekday()] + " ",
		Clock:   fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()),
	}
}

// FormatUnixMilli formats a millisecond Unix timestamp in loc
// (time.Local when nil).
func FormatUnixMilli(ms int64, sep string, loc *time.Location) Timestamp {
	if loc == nil {
		loc = time.Local
	}
	return FormatTimestamp(time.UnixMilli(ms).In(loc), sep)
}
