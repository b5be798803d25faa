package cdn

import (
	"testing"

	"github.com/creatv/creatv/config"
	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/playback"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

func TestResolveMediaURL(t *testing.T) {
	Convey("Given a resolver", t, func() {
		r := New("https://media.test//", "https://bucket.test/")

		Convey("Relative keys should be prefixed", func() {
			url, ok := r.ResolveMediaURL("//videos/a/master.m3u8")
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://media.test/videos/a/master.m3u8")
		})

		Convey("Absolute urls should pass through", func() {
			url, _ := r.ResolveMediaURL(" HTTP://other.test/a.mp4 ")
			So(url, ShouldEqual, "HTTP://other.test/a.mp4")
		})

		Convey("Blank keys should resolve to nothing", func() {
			_, ok := r.ResolveMediaURL("   ")
			So(ok, ShouldBeFalse)
			_, ok = r.ResolveMediaURL("///")
			So(ok, ShouldBeFalse)
		})

		Convey("Without a base the path stays root-relative", func() {
			url, _ := New("", "").ResolveMediaURL("a.mp4")
			So(url, ShouldEqual, "/a.mp4")
		})
	})
}

func TestBuildMediaURL(t *testing.T) {
	Convey("Given a resolver", t, func() {
		r := New("https://media.test", "https://bucket.test")

		Convey("Relative keys land on the bucket", func() {
			url, ok := r.BuildMediaURL("/videos/a.mp4")
			So(ok, ShouldBeTrue)
			So(url, ShouldEqual, "https://bucket.test/videos/a.mp4")
		})

		Convey("Bucket urls are kept regardless of case", func() {
			url, _ := r.BuildMediaURL("HTTPS://BUCKET.test/a.mpd")
			So(url, ShouldEqual, "HTTPS://BUCKET.test/a.mpd")
		})

		Convey("It satisfies the playback resolver", func() {
			var resolver playback.URLResolver = r
			c := playback.NewResolver(resolver).Resolve("v1", playback.ManifestKeys{HLSStoragePath: "videos/v1/"}, playback.PlatformIOS)
			So(c.Items, ShouldHaveLength, 1)
			So(c.Items[0].URL, ShouldEqual, "https://bucket.test/videos/v1/master.m3u8")
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("FromConfig", t, func() {
		viper.Set(key.CDNBucketBaseURL, "https://bucket.example")
		defer viper.Set(key.CDNBucketBaseURL, "https://cdn.creatv.io")

		url, _ := FromConfig().BuildMediaURL("x.mp4")
		So(url, ShouldEqual, "https://bucket.example/x.mp4")
	})
}
