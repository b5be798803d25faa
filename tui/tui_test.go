package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/session"
	"github.com/creatv/creatv/share"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeSession struct {
	snapshot session.Snapshot
	updates  chan session.Snapshot
	done     chan struct{}

	toggled  int
	seeks    []float64
	selected []string
	sleep    []sleeptimer.Choice
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		snapshot: session.Snapshot{
			VideoID:        "42",
			Title:          "Ocean",
			Candidate:      mo.Some(playback.Candidate{Mode: playback.ModeHLS, URL: "https://cdn.test/a.m3u8", Type: "application/x-mpegURL"}),
			CandidateCount: 2,
			Position:       95,
			Duration:       600,
			Qualities: playback.QualitySet{
				Options: []playback.QualityOption{
					playback.AutoOption,
					{ID: "height-720", Label: "720p", Height: 720},
					{ID: "height-2160", Label: "2160p (4K)", Height: 2160, RequiresPremium: true},
				},
				SelectedID: playback.AutoQualityID,
			},
		},
		updates: make(chan session.Snapshot, 1),
		done:    make(chan struct{}),
	}
}

func (f *fakeSession) Video() *api.Video {
	return &api.Video{ID: 42, Title: "Ocean"}
}

func (f *fakeSession) Chapters() []chapters.Chapter {
	return []chapters.Chapter{{Title: "Intro", Start: 0}, {Title: "Waves", Start: 90}, {Title: "Outro", Start: 300}}
}

func (f *fakeSession) Snapshot() session.Snapshot             { return f.snapshot }
func (f *fakeSession) Updates() <-chan session.Snapshot       { return f.updates }
func (f *fakeSession) Done() <-chan struct{}                  { return f.done }
func (f *fakeSession) TogglePause() error                     { f.toggled++; return nil }
func (f *fakeSession) SetSleepTimer(choice sleeptimer.Choice) { f.sleep = append(f.sleep, choice) }

func (f *fakeSession) Seek(seconds float64) error {
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakeSession) SelectQuality(id string) error {
	f.selected = append(f.selected, id)
	for _, o := range f.snapshot.Qualities.Options {
		if o.ID == id && o.RequiresPremium && !f.snapshot.Qualities.PremiumViewer {
			return playback.ErrPremiumRequired
		}
	}
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(b *statefulBubble, msgs ...tea.Msg) {
	for _, msg := range msgs {
		b.Update(msg)
	}
}

func TestBubble(t *testing.T) {
	Convey("Given a surface over a playing session", t, func() {
		fake := newFakeSession()
		var copied []string
		b := newBubble(&Options{
			Session: fake,
			Builder: share.NewBuilder("https://creatv.test", nil),
			Dispatcher: &share.Dispatcher{
				Copy: func(text string) error { copied = append(copied, text); return nil },
				Open: func(string) error { return errors.New("no browser") },
			},
		})

		b.resize(100, 40)

		So(b.state, ShouldEqual, playingState)
		So(b.View(), ShouldContainSubstring, "Ocean")

		Convey("space should toggle pause", func() {
			press(b, tea.KeyMsg{Type: tea.KeySpace})
			So(fake.toggled, ShouldEqual, 1)
		})

		Convey("arrows should seek by ten seconds", func() {
			press(b, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyLeft})
			So(fake.seeks, ShouldResemble, []float64{105, 85})
		})

		Convey("chapter keys should jump between chapters", func() {
			press(b, runes("n"), runes("p"))
			So(fake.seeks, ShouldResemble, []float64{300, 90})
		})

		Convey("picking a regular quality should select it and go back", func() {
			press(b, runes("v"))
			So(b.state, ShouldEqual, qualityState)

			press(b, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
			So(fake.selected, ShouldResemble, []string{"height-720"})
			So(b.state, ShouldEqual, playingState)
		})

		Convey("picking 4K without premium should show the upsell", func() {
			press(b, runes("v"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
			So(fake.selected, ShouldResemble, []string{"height-2160"})
			So(b.state, ShouldEqual, premiumState)
			So(b.View(), ShouldContainSubstring, "CreaTV Premium")

			press(b, tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, qualityState)
		})

		Convey("the sleep menu should arm the chosen preset", func() {
			press(b, runes("z"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
			So(fake.sleep, ShouldResemble, []sleeptimer.Choice{{Label: "5 minutes", Minutes: 5}})
			So(b.state, ShouldEqual, playingState)
		})

		Convey("sharing should copy the web link with the timestamp when asked", func() {
			press(b, runes("s"), runes("t"))
			So(b.includeTimestamp, ShouldBeTrue)

			msg := b.shareLink(share.TargetCopy)().(sharedMsg)
			So(msg.err, ShouldBeNil)
			So(msg.action, ShouldEqual, share.ActionCopied)
			So(copied, ShouldResemble, []string{"https://creatv.test/video/42?t=95"})
			So(sharedNotice(msg), ShouldContainSubstring, "Link copied")
		})

		Convey("targets that cannot be opened should show the message", func() {
			msg := b.shareLink(share.TargetWhatsApp)().(sharedMsg)
			So(msg.action, ShouldEqual, share.ActionPrinted)
			So(msg.output, ShouldContainSubstring, "https://creatv.test/video/42")
		})

		Convey("a failed session should show the error", func() {
			snapshot := fake.snapshot
			snapshot.Err = playback.ErrPlaybackFailed
			press(b, snapshotMsg(snapshot))

			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, playback.FailedMessage)
		})

		Convey("a new notice should be shown once", func() {
			snapshot := fake.snapshot
			snapshot.Notice = session.SleepNotice

			_, cmd := b.Update(snapshotMsg(snapshot))
			So(cmd, ShouldNotBeNil)
			So(b.lastNotice, ShouldEqual, session.SleepNotice)
			So(b.applySnapshot(snapshot), ShouldBeNil)
		})
	})
}

func TestAdjacentChapter(t *testing.T) {
	Convey("adjacentChapter", t, func() {
		list := newFakeSession().Chapters()

		next, ok := adjacentChapter(list, 95, 1)
		So(ok, ShouldBeTrue)
		So(next.Title, ShouldEqual, "Outro")

		prev, ok := adjacentChapter(list, 95, -1)
		So(ok, ShouldBeTrue)
		So(prev.Title, ShouldEqual, "Waves")

		// right after a chapter starts, going back skips to the one before
		prev, _ = adjacentChapter(list, 92, -1)
		So(prev.Title, ShouldEqual, "Intro")

		_, ok = adjacentChapter(list, 400, 1)
		So(ok, ShouldBeFalse)
	})
}

func TestNotifier(t *testing.T) {
	Convey("A stale clear should not hide a newer notification", t, func() {
		n := &notifier{}
		So(n.Update(notificationMsg("first")), ShouldNotBeNil)
		n.Update(notificationMsg("second"))

		n.Update(clearNotificationMsg{id: 1})
		So(n.View(), ShouldContainSubstring, "second")

		n.Update(clearNotificationMsg{id: 2})
		So(n.View(), ShouldBeEmpty)
	})
}
