package record

import (
	"fmt"
	"time"
)

// TimestampLayout is the persisted timestamp form: RFC 3339 with microsecond
// precision (trailing zeros dropped) and a numeric UTC offset. UTC is written
// as "+00:00", never "Z".
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// FormatTimestamp renders t in TimestampLayout. Sub-microsecond precision is
// truncated.
func FormatTimestamp(t time.Time) string {
	return t.Truncate(time.Microsecond).Format(TimestampLayout)
}

// ParseTimestamp parses any RFC 3339 timestamp, including the persisted form.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
