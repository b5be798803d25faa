package format

import (
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCount(t *testing.T) {
	Convey("Count", t, func() {
		So(Count(999), ShouldEqual, "999")
		So(Count(1000), ShouldEqual, "1K")
		So(Count(1260), ShouldEqual, "1.3K")
		So(Count(3_000_000), ShouldEqual, "3M")
		So(Count(1_540_000_000), ShouldEqual, "1.5B")
		So(Count(-2500), ShouldEqual, "-2.5K")
	})

	Convey("Views", t, func() {
		So(Views(1), ShouldEqual, "1 view")
		So(Views(0), ShouldEqual, "0 views")
		So(Views(12_000), ShouldEqual, "12K views")
	})
}

func TestRelativeTime(t *testing.T) {
	Convey("RelativeTime", t, func() {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		ago := func(d time.Duration) string { return RelativeTime(now.Add(-d), now) }

		So(RelativeTime(time.Time{}, now), ShouldEqual, "")
		So(ago(0), ShouldEqual, "0 seconds ago")
		So(ago(time.Second), ShouldEqual, "1 second ago")
		So(ago(59*time.Second), ShouldEqual, "59 seconds ago")
		So(ago(time.Minute), ShouldEqual, "1 minute ago")
		So(ago(3*time.Hour), ShouldEqual, "3 hours ago")
		So(ago(24*time.Hour), ShouldEqual, "1 day ago")
		So(ago(8*24*time.Hour), ShouldEqual, "1 week ago")
		So(ago(29*24*time.Hour), ShouldEqual, "4 weeks ago")
		So(ago(45*24*time.Hour), ShouldEqual, "1 month ago")
		So(ago(364*24*time.Hour), ShouldEqual, "12 months ago")
		So(ago(800*24*time.Hour), ShouldEqual, "2 years ago")
		So(RelativeTime(now.Add(time.Hour), now), ShouldEqual, "0 seconds ago")
	})
}

func TestDuration(t *testing.T) {
	Convey("Duration", t, func() {
		So(Duration(0), ShouldEqual, "0:00")
		So(Duration(-3), ShouldEqual, "0:00")
		So(Duration(65.9), ShouldEqual, "1:05")
		So(Duration(3725), ShouldEqual, "1:02:05")
	})

	Convey("ShareTimestamp", t, func() {
		So(ShareTimestamp(math.Inf(1)), ShouldEqual, "0:00")
		So(ShareTimestamp(90), ShouldEqual, "1:30")
		So(ShareTimestamp(3600), ShouldEqual, "1:00:00")
	})
}

func TestParse(t *testing.T) {
	Convey("ParseTimestamp", t, func() {
		So(ParseTimestamp("1:30"), ShouldEqual, 90)
		So(ParseTimestamp("01:02:03"), ShouldEqual, 3723)
		So(ParseTimestamp("90"), ShouldEqual, 0)
		So(ParseTimestamp("a:b"), ShouldEqual, 0)
	})

	Convey("ParseShareTimestamp", t, func() {
		So(ParseShareTimestamp("90").MustGet(), ShouldEqual, 90)
		So(ParseShareTimestamp(" 1:30 ").MustGet(), ShouldEqual, 90)
		So(ParseShareTimestamp("1:02:03").MustGet(), ShouldEqual, 3723)
		So(ParseShareTimestamp("1:60").IsAbsent(), ShouldBeTrue)
		So(ParseShareTimestamp("1::3").IsAbsent(), ShouldBeTrue)
		So(ParseShareTimestamp("1:2:3:4").IsAbsent(), ShouldBeTrue)
		So(ParseShareTimestamp("-5").IsAbsent(), ShouldBeTrue)
		So(ParseShareTimestamp("").IsAbsent(), ShouldBeTrue)
	})
}
