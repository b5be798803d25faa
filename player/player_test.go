package player

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleTrackList() []any {
	return []any{
		map[string]any{"id": 1.0, "type": "audio", "demux-bitrate": 128000.0},
		map[string]any{"id": 2.0, "type": "video", "demux-w": 1280.0, "demux-h": 720.0, "hls-bitrate": 2500000.0},
		map[string]any{"id": 3.0, "type": "video", "demux-w": 1920.0, "demux-h": 1080.0, "demux-bitrate": 5000000.0},
		map[string]any{"id": 4.0, "type": "video", "albumart": true},
		map[string]any{"id": 5.0, "type": "video", "demux-w": 1920.0, "demux-h": 1080.0, "hls-bitrate": 7000000.0},
	}
}

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		p, err := New("")
		So(err, ShouldBeNil)
		So(p, ShouldHaveSameTypeAs, &MPV{})

		_, err = New("MPV")
		So(err, ShouldBeNil)

		_, err = New("vlc")
		So(err, ShouldNotBeNil)
	})
}

func TestParseTrackList(t *testing.T) {
	Convey("parseTrackList", t, func() {
		tracks := parseTrackList(sampleTrackList())
		So(tracks, ShouldHaveLength, 3)

		So(tracks[0].id, ShouldEqual, 2)
		So(tracks[0].track, ShouldResemble, playback.Track{Index: 0, Height: 720, Width: 1280, Bitrate: 2500000})
		So(tracks[1].track.Bitrate, ShouldEqual, 5000000)
		So(tracks[2].track.Index, ShouldEqual, 2)

		So(parseTrackList(nil), ShouldBeEmpty)
		So(parseTrackList("nope"), ShouldBeEmpty)
	})
}

func TestResolveSelection(t *testing.T) {
	Convey("Given parsed tracks", t, func() {
		tracks := parseTrackList(sampleTrackList())

		Convey("auto should map to the auto vid", func() {
			vid, err := resolveSelection(tracks, playback.AutoSelection())
			So(err, ShouldBeNil)
			So(vid, ShouldEqual, "auto")
		})

		Convey("a resolution should pick its highest bitrate track", func() {
			vid, err := resolveSelection(tracks, playback.TrackSelection{Kind: playback.SelectResolution, Value: 1080})
			So(err, ShouldBeNil)
			So(vid, ShouldEqual, 5)
		})

		Convey("an index should pick by position", func() {
			vid, err := resolveSelection(tracks, playback.TrackSelection{Kind: playback.SelectIndex, Value: 1})
			So(err, ShouldBeNil)
			So(vid, ShouldEqual, 3)
		})

		Convey("unmatched selections should fail", func() {
			_, err := resolveSelection(tracks, playback.TrackSelection{Kind: playback.SelectResolution, Value: 2160})
			So(errors.Is(err, ErrTrackNotFound), ShouldBeTrue)

			_, err = resolveSelection(tracks, playback.TrackSelection{Kind: playback.SelectIndex, Value: 3})
			So(errors.Is(err, ErrTrackNotFound), ShouldBeTrue)
		})
	})
}

func TestParseEvent(t *testing.T) {
	Convey("parseEvent", t, func() {
		event, ok := parseEvent([]byte(`{"event":"property-change","id":2,"name":"time-pos","data":12.5}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, PositionChanged{Seconds: 12.5})

		event, ok = parseEvent([]byte(`{"event":"property-change","id":3,"name":"pause","data":true}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, PauseChanged{Paused: true})

		event, ok = parseEvent([]byte(`{"event":"property-change","id":1,"name":"track-list","data":[{"id":7,"type":"video","demux-h":480,"demux-w":854}]}`))
		So(ok, ShouldBeTrue)
		changed := event.(TracksChanged)
		So(changed.Tracks, ShouldResemble, []playback.Track{{Index: 0, Height: 480, Width: 854}})
		So(changed.ids, ShouldResemble, []int{7})

		event, ok = parseEvent([]byte(`{"event":"end-file","reason":"error","file_error":"loading failed"}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, PlaybackError{Reason: "loading failed"})

		event, ok = parseEvent([]byte(`{"event":"end-file","reason":"eof"}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, EndOfFile{})

		event, ok = parseEvent([]byte(`{"event":"file-loaded"}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, FileLoaded{})

		_, ok = parseEvent([]byte(`{"event":"end-file","reason":"stop"}`))
		So(ok, ShouldBeFalse)
		_, ok = parseEvent([]byte(`{"event":"property-change","name":"time-pos","data":null}`))
		So(ok, ShouldBeFalse)
		_, ok = parseEvent([]byte(`{"request_id":4,"error":"success"}`))
		So(ok, ShouldBeFalse)
		_, ok = parseEvent([]byte(`garbage`))
		So(ok, ShouldBeFalse)
	})
}

func TestArgs(t *testing.T) {
	Convey("args", t, func() {
		a := args("/tmp/x.sock", "Title")
		So(a, ShouldContain, "--input-ipc-server=/tmp/x.sock")
		So(a, ShouldContain, "--force-media-title=Title")
		So(a, ShouldContain, "--idle=yes")
		So(a, ShouldNotContain, "--")
	})
}

func TestSanitize(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		_, err := sanitizeMediaTarget("--script=evil.lua")
		So(err, ShouldNotBeNil)
		_, err = sanitizeMediaTarget("ftp://host/file")
		So(err, ShouldNotBeNil)
		_, err = sanitizeMediaTarget("  ")
		So(err, ShouldNotBeNil)

		target, err := sanitizeMediaTarget(" https://cdn.example.com/a.mpd ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://cdn.example.com/a.mpd")

		So(sanitizeTitle(" a\nb\tc\x00 "), ShouldEqual, "a b c")
	})
}

func TestMPVCommands(t *testing.T) {
	Convey("Given mpv answering on a socket", t, func() {
		fake := newFakeMPV(t)
		m := connectedMPV(fake)

		Convey("properties should be read through replies", func() {
			fake.set("time-pos", 30.0)
			fake.set("duration", 120.0)

			pos, err := m.TimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 30)

			percent, err := m.PercentWatched()
			So(err, ShouldBeNil)
			So(percent, ShouldEqual, 25)
		})

		Convey("mpv errors should not be retried", func() {
			_, err := m.TimePos()
			var cmdErr *CommandError
			So(errors.As(err, &cmdErr), ShouldBeTrue)
			So(cmdErr.Message, ShouldEqual, "property unavailable")
			So(fake.count("get_property"), ShouldEqual, 1)
		})

		Convey("pause should be set and toggled", func() {
			So(m.SetPaused(true), ShouldBeNil)
			paused, err := m.Paused()
			So(err, ShouldBeNil)
			So(paused, ShouldBeTrue)

			So(m.TogglePause(), ShouldBeNil)
			So(fake.get("pause"), ShouldEqual, false)
		})

		Convey("selections should set vid from the track list", func() {
			fake.set("track-list", sampleTrackList())

			tracks, err := m.VideoTracks()
			So(err, ShouldBeNil)
			So(tracks, ShouldHaveLength, 3)

			So(m.SelectTrack(playback.TrackSelection{Kind: playback.SelectResolution, Value: 720}), ShouldBeNil)
			So(fake.get("vid"), ShouldEqual, 2.0)

			So(m.SelectTrack(playback.AutoSelection()), ShouldBeNil)
			So(fake.get("vid"), ShouldEqual, "auto")

			err = m.SelectTrack(playback.TrackSelection{Kind: playback.SelectResolution, Value: 2160})
			So(errors.Is(err, ErrTrackNotFound), ShouldBeTrue)
		})

		Convey("a selection before any report should query the tracks", func() {
			fake.set("track-list", sampleTrackList())
			So(m.SelectTrack(playback.TrackSelection{Kind: playback.SelectIndex, Value: 1}), ShouldBeNil)
			So(fake.get("vid"), ShouldEqual, 3.0)
		})

		Convey("chapters should be sent as a chapter list", func() {
			So(m.SetChapters([]chapters.Chapter{{Title: "Intro", Start: 0}, {Title: "Main", Start: 95}}), ShouldBeNil)
			So(fake.get("chapter-list"), ShouldResemble, []any{
				map[string]any{"title": "Intro", "time": 0.0},
				map[string]any{"title": "Main", "time": 95.0},
			})
		})

		Convey("a replacing Play should reuse the running instance", func() {
			m.cmd = &exec.Cmd{}
			So(m.Play("https://cdn.example.com/b.m3u8", "Next", 40), ShouldBeNil)
			So(fake.get("force-media-title"), ShouldEqual, "Next")
			So(fake.get("options/start"), ShouldEqual, "40")
			So(fake.count("loadfile"), ShouldEqual, 1)
			m.cmd = nil
		})
	})
}

func TestListen(t *testing.T) {
	Convey("Given a listening player", t, func() {
		fake := newFakeMPV(t)
		m := connectedMPV(fake)

		events := make(chan Event, 8)
		So(m.Listen(func(e Event) { events <- e }), ShouldBeNil)

		conn := <-fake.observers
		So(fake.count("observe_property"), ShouldEqual, len(observed))

		Convey("notifications should arrive as typed events", func() {
			So(fake.write(conn, map[string]any{"event": "property-change", "name": "time-pos", "data": 3.5}), ShouldBeNil)
			So(receive(events), ShouldResemble, PositionChanged{Seconds: 3.5})

			So(fake.write(conn, map[string]any{"event": "end-file", "reason": "error", "file_error": "403"}), ShouldBeNil)
			So(receive(events), ShouldResemble, PlaybackError{Reason: "403"})
		})

		Convey("reported tracks should back later selections", func() {
			So(fake.write(conn, map[string]any{"event": "property-change", "name": "track-list", "data": sampleTrackList()}), ShouldBeNil)
			changed, ok := receive(events).(TracksChanged)
			So(ok, ShouldBeTrue)
			So(changed.Tracks, ShouldHaveLength, 3)

			So(m.SelectTrack(playback.TrackSelection{Kind: playback.SelectIndex, Value: 2}), ShouldBeNil)
			So(fake.get("vid"), ShouldEqual, 5.0)
			So(fake.count("get_property"), ShouldEqual, 0)
		})

		Reset(func() {
			So(m.Close(), ShouldBeNil)
		})
	})
}

func TestFirstLoadFailure(t *testing.T) {
	Convey("Given a listener registered before mpv runs", t, func() {
		fake := newFakeMPV(t)
		fake.mu.Lock()
		fake.failLoads = true
		fake.mu.Unlock()

		m := NewMPV()
		events := make(chan Event, 8)
		So(m.Listen(func(e Event) { events <- e }), ShouldBeNil)
		So(fake.count("observe_property"), ShouldEqual, 0)

		Convey("a file failing right after the launch should still be reported", func() {
			// stands in for a successful launch
			m.cmd, m.socketPath = &exec.Cmd{}, fake.path

			So(m.Play("https://cdn.example.com/a.mpd", "First", 0), ShouldBeNil)
			So(fake.count("loadfile"), ShouldEqual, 1)
			So(fake.get("options/start"), ShouldEqual, "none")
			So(receive(events), ShouldResemble, PlaybackError{Reason: "403"})
		})

		Reset(func() {
			m.cmd = nil
			So(m.Close(), ShouldBeNil)
		})
	})
}

func receive(events <-chan Event) Event {
	select {
	case e := <-events:
		return e
	case <-time.After(2 * time.Second):
		return nil
	}
}
