package session

import (
	"testing"
	"time"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/config"
	"github.com/creatv/creatv/filesystem"
	"github.com/creatv/creatv/history"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/player"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func init() {
	filesystem.SetMemMapFs()
	lo.Must0(config.Setup())
}

var urls = playback.URLResolverFunc(func(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return "https://cdn.test/" + key, true
})

func testVideo() *api.Video {
	return &api.Video{
		ID:                     42,
		Title:                  "Ocean",
		DurationSeconds:        600,
		Description:            "Chapters\n0:00 Intro\n1:30 Waves\n5:00 Outro",
		PremiumDashManifestKey: "v/42/manifest.mpd",
		HLSMasterPlaylistKey:   "v/42/master.m3u8",
		OriginalFileKey:        "v/42/original.mp4",
	}
}

func newSession(p *fakePlayer, clock *fakeClock) *Session {
	s, err := New(Options{
		Video:    testVideo(),
		Player:   p,
		URLs:     urls,
		Platform: mo.Some(playback.PlatformAndroid),
		Clock:    clock,
	})
	So(err, ShouldBeNil)
	return s
}

func TestSession(t *testing.T) {
	Convey("Given a session", t, func() {
		So(history.Remove("42"), ShouldBeNil)

		p := newFakePlayer()
		clock := &fakeClock{now: time.Date(2024, 1, 1, 21, 0, 0, 0, time.UTC)}
		s := newSession(p, clock)

		Convey("Start should play the first candidate", func() {
			So(s.Start(), ShouldBeNil)
			So(p.played, ShouldResemble, []string{"https://cdn.test/v/42/manifest.mpd"})
			So(p.listener, ShouldNotBeNil)

			snap := s.Snapshot()
			So(snap.Candidate.MustGet().Mode, ShouldEqual, playback.ModeDash)
			So(snap.CandidateCount, ShouldEqual, 3)
			So(snap.Qualities.SelectedID, ShouldEqual, playback.AutoQualityID)
			So(p.lastSelection(), ShouldResemble, playback.AutoSelection())
		})

		Convey("A candidate the player refuses should be skipped", func() {
			p.fail["https://cdn.test/v/42/manifest.mpd"] = true
			So(s.Start(), ShouldBeNil)
			So(p.played, ShouldResemble, []string{"https://cdn.test/v/42/master.m3u8"})
			So(s.Snapshot().CandidateIndex, ShouldEqual, 1)
		})

		Convey("A first candidate failing right after it loaded should fall back", func() {
			p.failLater["https://cdn.test/v/42/manifest.mpd"] = true
			So(s.Start(), ShouldBeNil)

			So(p.waitPlayed(2), ShouldResemble, []string{
				"https://cdn.test/v/42/manifest.mpd",
				"https://cdn.test/v/42/master.m3u8",
			})
			So(s.Snapshot().CandidateIndex, ShouldEqual, 1)
		})

		Convey("When every candidate fails", func() {
			So(s.Start(), ShouldBeNil)
			p.emit(player.PlaybackError{Reason: "403"})
			p.emit(player.PlaybackError{Reason: "403"})
			p.emit(player.PlaybackError{Reason: "403"})

			So(p.played, ShouldHaveLength, 3)
			So(s.Snapshot().Err, ShouldEqual, playback.ErrPlaybackFailed)
		})

		Convey("A fallback should continue from the reached position", func() {
			So(s.Start(), ShouldBeNil)
			p.emit(player.PositionChanged{Seconds: 75})
			p.emit(player.PlaybackError{Reason: "decoder"})
			So(p.starts, ShouldResemble, []float64{0, 75})
		})

		Convey("An HLS-only video on iOS should offer the reported ladder", func() {
			v := testVideo()
			v.PremiumDashManifestKey, v.OriginalFileKey = "", ""
			hls, err := New(Options{Video: v, Player: p, URLs: urls, Platform: mo.Some(playback.PlatformIOS), Clock: clock})
			So(err, ShouldBeNil)
			So(hls.Start(), ShouldBeNil)

			snap := hls.Snapshot()
			So(snap.CandidateCount, ShouldEqual, 1)
			So(snap.Candidate.MustGet().Mode, ShouldEqual, playback.ModeHLS)
			So(p.played, ShouldResemble, []string{"https://cdn.test/v/42/master.m3u8"})

			p.emit(player.TracksChanged{Tracks: []playback.Track{
				{Index: 0, Height: 1080, Bitrate: 4_000_000},
				{Index: 1, Height: 1080, Bitrate: 6_000_000},
				{Index: 2, Height: 2160, Bitrate: 12_000_000},
			}})

			options := hls.Snapshot().Qualities.Options
			So(options, ShouldHaveLength, 3)
			So(options[0].ID, ShouldEqual, playback.AutoQualityID)
			So(options[1].Label, ShouldEqual, "1080p")
			So(options[1].Detail, ShouldEqual, "6000 kbps")
			So(options[1].RequiresPremium, ShouldBeFalse)
			So(options[2].Label, ShouldEqual, "2160p (4K)")
			So(options[2].RequiresPremium, ShouldBeTrue)
		})

		Convey("A video without keys should have no source", func() {
			v := testVideo()
			v.PremiumDashManifestKey, v.HLSMasterPlaylistKey, v.OriginalFileKey = "", "", ""
			empty, err := New(Options{Video: v, Player: p, URLs: urls, Clock: clock})
			So(err, ShouldBeNil)
			So(empty.Start(), ShouldEqual, playback.ErrNoSource)
			So(p.played, ShouldBeEmpty)
		})

		Convey("Given reported tracks", func() {
			So(s.Start(), ShouldBeNil)
			p.emit(player.TracksChanged{Tracks: []playback.Track{
				{Index: 0, Height: 720, Width: 1280, Bitrate: 2_500_000},
				{Index: 1, Height: 2160, Width: 3840, Bitrate: 15_000_000},
			}})

			Convey("the quality menu should list them", func() {
				ids := lo.Map(s.Snapshot().Qualities.Options, func(o playback.QualityOption, _ int) string { return o.ID })
				So(ids, ShouldResemble, []string{"auto", "height-720", "height-2160"})
			})

			Convey("a regular quality should be forwarded verbatim", func() {
				So(s.SelectQuality("height-720"), ShouldBeNil)
				So(p.lastSelection(), ShouldResemble, playback.TrackSelection{Kind: playback.SelectResolution, Value: 720})
				So(s.Snapshot().Qualities.SelectedID, ShouldEqual, "height-720")
			})

			Convey("4K should be gated for non-premium viewers", func() {
				So(s.SelectQuality("height-2160"), ShouldEqual, playback.ErrPremiumRequired)
				So(s.Snapshot().Qualities.SelectedID, ShouldEqual, playback.AutoQualityID)

				s.SetPremium(true)
				So(s.SelectQuality("height-2160"), ShouldBeNil)
				So(p.lastSelection().Value, ShouldEqual, 2160)
			})

			Convey("auto should release the pin", func() {
				So(s.SelectQuality("height-720"), ShouldBeNil)
				s.SetAutoQuality()
				So(p.lastSelection(), ShouldResemble, playback.AutoSelection())
			})
		})

		Convey("Chapters should be applied once the file loads", func() {
			So(s.Start(), ShouldBeNil)
			p.emit(player.FileLoaded{})
			So(p.chapters, ShouldHaveLength, 3)

			p.emit(player.PositionChanged{Seconds: 100})
			So(s.Snapshot().Chapter.MustGet().Title, ShouldEqual, "Waves")
		})

		Convey("The sleep timer should pause playback when it fires", func() {
			So(s.Start(), ShouldBeNil)
			choice, _ := sleeptimer.FindChoice(5)
			s.SetSleepTimer(choice)
			So(s.Snapshot().Sleep.Badge(), ShouldEqual, "5 min")

			clock.Advance(2 * time.Minute)
			So(s.Snapshot().Sleep.Badge(), ShouldEqual, "3 min")
			So(p.paused, ShouldBeFalse)

			clock.Advance(3 * time.Minute)
			snap := s.Snapshot()
			So(p.paused, ShouldBeTrue)
			So(snap.Notice, ShouldEqual, SleepNotice)
			So(snap.Sleep.Active(), ShouldBeFalse)
			So(snap.Sleep.Label, ShouldEqual, sleeptimer.OffLabel)
		})

		Convey("A sleep timer set while closing should not stay armed", func() {
			So(s.Start(), ShouldBeNil)
			choice, _ := sleeptimer.FindChoice(60)

			done := make(chan struct{})
			go func() {
				defer close(done)
				s.SetSleepTimer(choice)
			}()
			So(s.Close(), ShouldBeNil)
			<-done

			So(s.timer.Snapshot().Active(), ShouldBeFalse)
			clock.Advance(2 * time.Hour)
			So(p.paused, ShouldBeFalse)
		})

		Convey("Updates should hold the latest snapshot", func() {
			So(s.Start(), ShouldBeNil)
			p.emit(player.PositionChanged{Seconds: 10})
			p.emit(player.PositionChanged{Seconds: 20})

			snap := <-s.Updates()
			So(snap.Position, ShouldEqual, 20)
		})

		Convey("Close should stop everything and save history", func() {
			So(s.Start(), ShouldBeNil)
			choice, _ := sleeptimer.FindChoice(10)
			s.SetSleepTimer(choice)
			p.position = 300

			So(s.Close(), ShouldBeNil)
			So(p.closed, ShouldBeTrue)

			clock.Advance(time.Hour)
			So(p.paused, ShouldBeFalse)

			entry, err := history.Find("42")
			So(err, ShouldBeNil)
			So(entry.MustGet().LastPosition, ShouldEqual, 300)
			So(entry.MustGet().WatchedPercentage, ShouldEqual, 50)

			for range s.Updates() {
			}
			So(s.SelectQuality("auto"), ShouldEqual, ErrClosed)
			So(s.Close(), ShouldBeNil)
		})

		Convey("Close should not record history when saving is disabled", func() {
			viper.Set(key.HistorySaveOnWatch, false)
			defer viper.Set(key.HistorySaveOnWatch, true)

			So(history.Remove("42"), ShouldBeNil)
			So(s.Start(), ShouldBeNil)
			p.position = 30

			So(s.Close(), ShouldBeNil)
			So(p.closed, ShouldBeTrue)

			entry, err := history.Find("42")
			So(err, ShouldBeNil)
			So(entry.IsAbsent(), ShouldBeTrue)
		})

		Convey("A saved position should be resumed", func() {
			So(history.Save(&history.Entry{VideoID: "42", Title: "Ocean", LastPosition: 120, WatchedPercentage: 20}), ShouldBeNil)
			resumed := newSession(p, clock)
			So(resumed.Start(), ShouldBeNil)
			So(p.starts, ShouldResemble, []float64{120})

			Convey("unless resuming is disabled", func() {
				viper.Set(key.PlayerResume, false)
				defer viper.Set(key.PlayerResume, true)

				fresh := newSession(newFakePlayer(), clock)
				So(fresh.start, ShouldEqual, 0)
			})
		})
	})
}
