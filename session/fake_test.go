package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/player"
	"github.com/creatv/creatv/sleeptimer"
)

type fakePlayer struct {
	mu sync.Mutex

	// fail lists urls whose Play returns an error.
	fail map[string]bool
	// failLater lists urls that load but report an error right away,
	// delivered only if a listener was registered before Play.
	failLater map[string]bool

	played     []string
	starts     []float64
	selections []playback.TrackSelection
	chapters   []chapters.Chapter
	paused     bool
	position   float64
	listener   player.EventCallback
	closed     bool
	exited     chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{fail: map[string]bool{}, failLater: map[string]bool{}, exited: make(chan struct{})}
}

func (p *fakePlayer) Play(url, _ string, start float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail[url] {
		return errors.New("cannot open " + url)
	}

	p.played = append(p.played, url)
	p.starts = append(p.starts, start)

	if p.failLater[url] && p.listener != nil {
		go p.listener(player.PlaybackError{Reason: "403"})
	}
	return nil
}

// waitPlayed polls until n urls were played or a second passed.
func (p *fakePlayer) waitPlayed(n int) []string {
	deadline := time.Now().Add(time.Second)
	for {
		p.mu.Lock()
		played := append([]string(nil), p.played...)
		p.mu.Unlock()

		if len(played) >= n || time.Now().After(deadline) {
			return played
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (p *fakePlayer) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = !p.paused
	return nil
}

func (p *fakePlayer) SetPaused(paused bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
	return nil
}

func (p *fakePlayer) Paused() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused, nil
}

func (p *fakePlayer) TimePos() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, nil
}

func (p *fakePlayer) Duration() (float64, error)       { return 0, errors.New("unknown") }
func (p *fakePlayer) PercentWatched() (float64, error) { return 0, nil }

func (p *fakePlayer) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = seconds
	return nil
}

func (p *fakePlayer) SelectTrack(selection playback.TrackSelection) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selections = append(p.selections, selection)
	return nil
}

func (p *fakePlayer) VideoTracks() ([]playback.Track, error) { return nil, nil }

func (p *fakePlayer) SetChapters(list []chapters.Chapter) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chapters = list
	return nil
}

func (p *fakePlayer) Listen(callback player.EventCallback) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = callback
	return nil
}

func (p *fakePlayer) Wait() <-chan struct{} { return p.exited }

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// emit delivers an event the way the listener goroutine would.
func (p *fakePlayer) emit(event player.Event) {
	p.mu.Lock()
	callback := p.listener
	p.mu.Unlock()

	callback(event)
}

func (p *fakePlayer) lastSelection() playback.TrackSelection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selections[len(p.selections)-1]
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

var _ sleeptimer.Clock = (*fakeClock)(nil)

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) sleeptimer.Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward, running due callbacks in deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].at.Before(c.timers[j].at) })

		var due *fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.at.After(target) {
				due = t
				break
			}
		}

		if due == nil {
			c.now = target
			c.mu.Unlock()
			return
		}

		due.stopped = true
		c.now = due.at
		c.mu.Unlock()

		due.f()
	}
}
