package util

import (
	"testing"

	"github.com/creatv/creatv/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(0, "video", "videos"), ShouldEqual, "0 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hls"), ShouldEqual, "Hls")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate("short", 10), ShouldEqual, "short")
		So(Truncate("a long title", 7), ShouldEqual, "a long…")
		So(Truncate("héllo", 2), ShouldEqual, "h…")
		So(Truncate("x", 0), ShouldEqual, "")
	})
}

func TestWrap(t *testing.T) {
	Convey("Wrap", t, func() {
		So(Wrap("one two three", 7), ShouldEqual, "one two\nthree")
		So(Wrap("unchanged", 0), ShouldEqual, "unchanged")
		So(Wrap("abcdefgh", 4), ShouldEqual, "abcd\nefgh")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 3), ShouldEqual, 3)
		So(Clamp(-1, 0, 3), ShouldEqual, 0)
		So(Clamp(2, 0, 3), ShouldEqual, 2)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/creatv/dir", 0755), ShouldBeNil)
		So(afero.WriteFile(fs, "/tmp/creatv/dir/file", []byte("x"), 0644), ShouldBeNil)

		So(Delete("/tmp/creatv/dir"), ShouldBeNil)
		exists, _ := afero.Exists(fs, "/tmp/creatv/dir")
		So(exists, ShouldBeFalse)
		So(Delete("/tmp/creatv/missing"), ShouldNotBeNil)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[string]
		s.Push("home")
		s.Push("quality")
		So(s.Len(), ShouldEqual, 2)

		top, ok := s.Peek()
		So(ok, ShouldBeTrue)
		So(top, ShouldEqual, "quality")

		top, _ = s.Pop()
		So(top, ShouldEqual, "quality")
		s.Pop()
		_, ok = s.Pop()
		So(ok, ShouldBeFalse)
	})
}
