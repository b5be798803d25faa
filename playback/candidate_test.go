package playback

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var testURLs = URLResolverFunc(func(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, true
	}
	return "https://cdn.test/" + strings.TrimPrefix(key, "/"), true
})

func modes(c Candidates) []Mode {
	out := make([]Mode, len(c.Items))
	for i, item := range c.Items {
		out[i] = item.Mode
	}
	return out
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver", t, func() {
		resolver := NewResolver(testURLs)
		keys := ManifestKeys{
			PremiumDashManifest: "v1/dash/manifest.mpd",
			HLSMasterPlaylist:   "v1/hls/master.m3u8",
			OriginalFile:        "https://files.test/v1.mp4",
		}

		Convey("Android should prefer dash then hls then file", func() {
			c := resolver.Resolve("v1", keys, PlatformAndroid)
			So(modes(c), ShouldResemble, []Mode{ModeDash, ModeHLS, ModeFile})
			So(c.Items[0].URL, ShouldEqual, "https://cdn.test/v1/dash/manifest.mpd")
			So(c.Items[0].Type, ShouldEqual, "mpd")
			So(c.Items[2].URL, ShouldEqual, "https://files.test/v1.mp4")
		})

		Convey("iOS should never get dash", func() {
			c := resolver.Resolve("v1", keys, PlatformIOS)
			So(modes(c), ShouldResemble, []Mode{ModeHLS, ModeFile})
		})

		Convey("A storage path should stand in for a missing master playlist", func() {
			keys.HLSMasterPlaylist = ""
			keys.HLSStoragePath = "v1/hls//"
			c := resolver.Resolve("v1", keys, PlatformIOS)
			So(c.Items[0].URL, ShouldEqual, "https://cdn.test/v1/hls/master.m3u8")
		})

		Convey("Blank keys should be skipped", func() {
			c := resolver.Resolve("v1", ManifestKeys{OriginalFile: "  "}, PlatformAndroid)
			So(c.Empty(), ShouldBeTrue)
		})

		Convey("Key should change with the video or any url", func() {
			a := resolver.Resolve("v1", keys, PlatformAndroid)
			b := resolver.Resolve("v2", keys, PlatformAndroid)
			keys.OriginalFile = "v1-new.mp4"
			c := resolver.Resolve("v1", keys, PlatformAndroid)
			So(a.Key(), ShouldNotEqual, b.Key())
			So(a.Key(), ShouldNotEqual, c.Key())
			So(a.Key(), ShouldEqual, resolver.Resolve("v1", ManifestKeys{
				PremiumDashManifest: "v1/dash/manifest.mpd",
				HLSMasterPlaylist:   "v1/hls/master.m3u8",
				OriginalFile:        "https://files.test/v1.mp4",
			}, PlatformAndroid).Key())
		})
	})
}

func TestParsePlatform(t *testing.T) {
	Convey("ParsePlatform", t, func() {
		p, err := ParsePlatform(" iOS ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, PlatformIOS)

		_, err = ParsePlatform("windows")
		So(err, ShouldNotBeNil)
	})
}
