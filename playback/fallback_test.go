package playback

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func threeCandidates(videoID string) Candidates {
	return Candidates{
		VideoID: videoID,
		Items: []Candidate{
			{Mode: ModeDash, URL: "https://cdn.test/" + videoID + ".mpd", Type: "mpd"},
			{Mode: ModeHLS, URL: "https://cdn.test/" + videoID + ".m3u8", Type: "m3u8"},
			{Mode: ModeFile, URL: "https://cdn.test/" + videoID + ".mp4", Type: "mp4"},
		},
	}
}

// spyEngine records the sink handed to Load.
type spyEngine struct {
	Engine
	sinks *[]Sink
}

func (s *spyEngine) Load(options LoadOptions) {
	*s.sinks = append(*s.sinks, options.Sink)
	s.Engine.Load(options)
}

func TestController(t *testing.T) {
	Convey("Given a controller with three candidates", t, func() {
		rec := &recorder{}
		var (
			engines []Engine
			sinks   []Sink
		)
		controller := NewController(ControllerOptions{
			Sink: rec.sink,
			NewEngine: func(mode Mode) Engine {
				e := &spyEngine{Engine: NewEngine(mode), sinks: &sinks}
				engines = append(engines, e)
				return e
			},
		})

		So(controller.Err(), ShouldEqual, ErrNoSource)
		So(controller.SetSource(threeCandidates("v1")), ShouldBeTrue)

		Convey("It should activate the first candidate", func() {
			active, ok := controller.Active()
			So(ok, ShouldBeTrue)
			So(active.Mode, ShouldEqual, ModeDash)
			So(rec.activations(), ShouldHaveLength, 1)
			So(engines[0].State(), ShouldEqual, StateLoaded)
			So(controller.Err(), ShouldBeNil)
		})

		Convey("The same list should be a no-op", func() {
			So(controller.SetSource(threeCandidates("v1")), ShouldBeFalse)
			So(engines, ShouldHaveLength, 1)
		})

		Convey("Errors should walk the list and then fail once", func() {
			So(controller.HandleError(), ShouldBeTrue)
			So(controller.Index(), ShouldEqual, 1)
			So(engines[0].State(), ShouldEqual, StateUnloaded)

			So(controller.HandleError(), ShouldBeTrue)
			active, _ := controller.Active()
			So(active.Mode, ShouldEqual, ModeFile)

			So(controller.HandleError(), ShouldBeFalse)
			So(controller.HandleError(), ShouldBeFalse)
			So(rec.failures(), ShouldResemble, []PlaybackFailed{{Message: FailedMessage}})
			So(controller.Err(), ShouldEqual, ErrPlaybackFailed)
			So(engines, ShouldHaveLength, 3)
		})

		Convey("A new video should start over", func() {
			controller.HandleError()
			controller.HandleError()
			controller.HandleError()

			So(controller.SetSource(threeCandidates("v2")), ShouldBeTrue)
			So(controller.Index(), ShouldEqual, 0)
			So(controller.Err(), ShouldBeNil)
			So(engines[2].State(), ShouldEqual, StateUnloaded)
		})

		Convey("Stale engines should not leak events", func() {
			staleSink := sinks[0]
			controller.HandleError()
			rec.reset()

			staleSink(QualitiesChanged{Set: QualitySet{Options: []QualityOption{AutoOption, {ID: "height-720"}}}})
			So(rec.events, ShouldBeEmpty)
			So(optionIDs(controller.Qualities()), ShouldResemble, []string{AutoQualityID})
		})

		Convey("With a 4K ladder", func() {
			controller.HandleTracks([]Track{
				{Index: 0, Height: 1080, Bitrate: 6_000_000},
				{Index: 1, Height: 2160, Width: 3840, Bitrate: 12_000_000},
			})

			Convey("A non-premium viewer should be refused 4K", func() {
				rec.reset()
				So(controller.SelectQuality("height-2160"), ShouldEqual, ErrPremiumRequired)
				So(rec.events, ShouldBeEmpty)
				So(controller.Qualities().SelectedID, ShouldEqual, AutoQualityID)
			})

			Convey("A premium viewer should get it", func() {
				controller.SetPremium(true)
				rec.reset()
				So(controller.SelectQuality("height-2160"), ShouldBeNil)
				So(rec.selections(), ShouldResemble, []TrackSelection{{Kind: SelectResolution, Value: 2160}})
				So(controller.Qualities().Selected().Label, ShouldEqual, "2160p (4K)")
			})

			Convey("Non-premium options should pass", func() {
				So(controller.SelectQuality("height-1080"), ShouldBeNil)
				So(controller.Qualities().SelectedID, ShouldEqual, "height-1080")
			})
		})

		Convey("Close should destroy the engine", func() {
			controller.Close()
			So(engines[0].State(), ShouldEqual, StateUnloaded)
			_, ok := controller.Active()
			So(ok, ShouldBeFalse)
			So(controller.SelectQuality("auto"), ShouldEqual, ErrNoSource)
		})
	})

	Convey("An empty list should report no source", t, func() {
		controller := NewController(ControllerOptions{})
		controller.SetSource(Candidates{VideoID: "v1"})
		So(controller.Err(), ShouldEqual, ErrNoSource)
		So(controller.HandleError(), ShouldBeFalse)
	})
}
