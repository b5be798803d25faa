// Package format renders counts, durations and timestamps the way the CreaTV apps show them.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/mo"
)

// Count abbreviates large numbers: 1.2K, 3M, 1B.
func Count(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return abbreviate(float64(n)/1_000_000_000) + "B"
	case abs >= 1_000_000:
		return abbreviate(float64(n)/1_000_000) + "M"
	case abs >= 1_000:
		return abbreviate(float64(n)/1_000) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

func abbreviate(value float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(value, 'f', 1, 64), ".0")
}

// Views renders a view count with its unit.
func Views(n int64) string {
	if n == 1 {
		return Count(n) + " view"
	}
	return Count(n) + " views"
}

var relativeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Second, Format: "%d second %s", DivBy: time.Second},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%d minute %s", DivBy: time.Minute},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%d hour %s", DivBy: time.Hour},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%d day %s", DivBy: humanize.Day},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%d week %s", DivBy: humanize.Week},
	{D: 30 * humanize.Day, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 60 * humanize.Day, Format: "%d month %s", DivBy: 30 * humanize.Day},
	{D: 365 * humanize.Day, Format: "%d months %s", DivBy: 30 * humanize.Day},
	{D: 730 * humanize.Day, Format: "%d year %s", DivBy: 365 * humanize.Day},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: 365 * humanize.Day},
}

// RelativeTime renders then relative to now, e.g. "3 weeks ago". Future times read "0 seconds ago".
func RelativeTime(then, now time.Time) string {
	if then.IsZero() {
		return ""
	}

	if then.After(now) {
		then = now
	}

	return humanize.CustomRelTime(then, now, "ago", "ago", relativeMagnitudes)
}

// Duration renders seconds as m:ss or h:mm:ss. Non-positive input renders "0:00".
func Duration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0:00"
	}

	return clock(int(math.Floor(seconds)))
}

func clock(total int) string {
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ParseTimestamp reads m:ss or h:mm:ss. Anything else is 0.
func ParseTimestamp(timestamp string) int {
	parts := strings.Split(timestamp, ":")
	numbers := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		numbers[i] = n
	}

	switch len(numbers) {
	case 2:
		return numbers[0]*60 + numbers[1]
	case 3:
		return numbers[0]*3600 + numbers[1]*60 + numbers[2]
	default:
		return 0
	}
}

// ShareTimestamp renders a start offset for share dialogs.
func ShareTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	return clock(int(math.Floor(seconds)))
}

// ParseShareTimestamp validates user input such as "90", "1:30" or "1:02:03".
// Minutes and seconds must stay below 60 when a larger unit is present.
func ParseShareTimestamp(value string) mo.Option[int] {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return mo.None[int]()
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return mo.None[int]()
	}

	numbers := make([]int, len(parts))
	for i, part := range parts {
		if part == "" || strings.Trim(part, "0123456789") != "" {
			return mo.None[int]()
		}

		n, err := strconv.Atoi(part)
		if err != nil {
			return mo.None[int]()
		}
		numbers[i] = n
	}

	switch len(numbers) {
	case 1:
		return mo.Some(numbers[0])
	case 2:
		if numbers[1] >= 60 {
			return mo.None[int]()
		}
		return mo.Some(numbers[0]*60 + numbers[1])
	default:
		if numbers[1] >= 60 || numbers[2] >= 60 {
			return mo.None[int]()
		}
		return mo.Some(numbers[0]*3600 + numbers[1]*60 + numbers[2])
	}
}
