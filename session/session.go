// Package session runs one video: it resolves candidates, drives the player through the
// fallback controller, owns the sleep timer and publishes snapshots to the surfaces.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/creatv/creatv/api"
	"github.com/creatv/creatv/cdn"
	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/history"
	"github.com/creatv/creatv/key"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/playback"
	"github.com/creatv/creatv/player"
	"github.com/creatv/creatv/sleeptimer"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// SleepNotice is published when the sleep timer pauses playback.
const SleepNotice = "Sleep timer ended. Playback paused."

var ErrClosed = errors.New("session is closed")

// Options configure a Session. Zero values are filled from the configuration.
type Options struct {
	Video  *api.Video
	Player player.Player

	Premium bool
	// Platform defaults to player.platform.
	Platform mo.Option[playback.Platform]
	// URLs defaults to the configured CDN.
	URLs playback.URLResolver
	// Start overrides the resume position from history.
	Start mo.Option[float64]

	Clock     sleeptimer.Clock
	NewEngine func(playback.Mode) playback.Engine
}

// Session is safe for concurrent use. Player events, timer callbacks and user actions
// are serialized on one mutex.
type Session struct {
	video    *api.Video
	player   player.Player
	platform playback.Platform
	urls     playback.URLResolver
	chapters []chapters.Chapter
	timer    *sleeptimer.Timer

	mu         sync.Mutex
	controller *playback.Controller
	start      float64
	listening  bool
	playFailed bool
	closed     bool

	position float64
	duration float64
	paused   bool
	ended    bool
	sleep    sleeptimer.Snapshot
	notice   string

	updates chan Snapshot
}

// New prepares a session. Nothing is played until Start.
func New(options Options) (*Session, error) {
	if options.Video == nil {
		return nil, errors.New("session needs a video")
	}

	if options.Player == nil {
		return nil, errors.New("session needs a player")
	}

	platform, ok := options.Platform.Get()
	if !ok {
		var err error
		platform, err = playback.ParsePlatform(viper.GetString(key.PlayerPlatform))
		if err != nil {
			return nil, err
		}
	}

	urls := options.URLs
	if urls == nil {
		urls = cdn.FromConfig()
	}

	s := &Session{
		video:    options.Video,
		player:   options.Player,
		platform: platform,
		urls:     urls,
		duration: options.Video.DurationSeconds,
		updates:  make(chan Snapshot, 1),
	}

	s.start = options.Start.OrElse(resumePosition(options.Video.IDString()))

	if viper.GetBool(key.PlayerApplyChapters) {
		s.chapters = chapters.Parse(options.Video.Description, options.Video.DurationSeconds)
	}

	s.controller = playback.NewController(playback.ControllerOptions{
		Sink:      s.onPlayback,
		Premium:   options.Premium,
		NewEngine: options.NewEngine,
	})

	s.timer = sleeptimer.New(sleeptimer.Config{
		Clock:    options.Clock,
		OnFire:   s.onSleep,
		OnChange: s.onSleepChange,
	})
	s.sleep = s.timer.Snapshot()

	return s, nil
}

func resumePosition(videoID string) float64 {
	if !viper.GetBool(key.PlayerResume) {
		return 0
	}

	found, err := history.Find(videoID)
	if err != nil {
		log.Warnf("read history: %v", err)
		return 0
	}

	if entry, ok := found.Get(); ok {
		return entry.ResumePosition()
	}

	return 0
}

// Start resolves the candidates and plays the first one that loads.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	candidates := playback.NewResolver(s.urls).Resolve(s.video.IDString(), s.video.ManifestKeys(), s.platform)
	log.With(log.Fields{"video": candidates.VideoID, "candidates": candidates.Len()}).Info("starting session")

	if candidates.Empty() {
		s.publishLocked()
		return playback.ErrNoSource
	}

	s.drive(func() { s.controller.SetSource(candidates) })
	s.publishLocked()

	return s.controller.Err()
}

// drive runs a controller call, then advances past candidates the player refused to load.
func (s *Session) drive(f func()) {
	f()

	for s.playFailed {
		s.playFailed = false
		s.controller.HandleError()
	}
}

// onPlayback is the controller sink. It always runs with s.mu held.
func (s *Session) onPlayback(event playback.Event) {
	switch e := event.(type) {
	case playback.CandidateActivated:
		s.play(e.Candidate)
	case playback.TrackSelected:
		if err := s.player.SelectTrack(e.Selection); err != nil {
			log.With(log.Fields{"selection": e.Selection.String()}).Warnf("select track: %v", err)
		}
	case playback.PlaybackFailed:
		log.Errorf("playback failed for video %s", s.video.IDString())
	}
}

func (s *Session) play(candidate playback.Candidate) {
	entry := log.With(log.Fields{"mode": candidate.Mode, "url": candidate.URL})

	start := s.start
	if s.position > 0 {
		start = s.position
	}

	// registered before the first load so its failure reaches the controller
	if !s.listening {
		if err := s.player.Listen(s.onPlayer); err != nil {
			entry.Warnf("listen: %v", err)
		} else {
			s.listening = true
		}
	}

	s.ended = false
	if err := s.player.Play(candidate.URL, s.video.Title, start); err != nil {
		entry.Warnf("load candidate: %v", err)
		s.playFailed = true
		return
	}
	entry.Info("candidate loaded")
}

// onPlayer receives player events on the listener goroutine.
func (s *Session) onPlayer(event player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch e := event.(type) {
	case player.TracksChanged:
		s.drive(func() { s.controller.HandleTracks(e.Tracks) })
	case player.PlaybackError:
		log.Warnf("player error: %s", e.Reason)
		s.drive(func() { s.controller.HandleError() })
	case player.FileLoaded:
		s.applyChapters()
		if d, err := s.player.Duration(); err == nil && d > 0 {
			s.duration = d
		}
	case player.PositionChanged:
		s.position = e.Seconds
	case player.PauseChanged:
		s.paused = e.Paused
	case player.EndOfFile:
		s.ended = true
	}

	s.publishLocked()
}

// applyChapters runs on every load since mpv resets the chapter list per file.
func (s *Session) applyChapters() {
	if len(s.chapters) == 0 {
		return
	}

	if err := s.player.SetChapters(s.chapters); err != nil {
		log.Warnf("set chapters: %v", err)
	}
}

func (s *Session) onSleep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if err := s.player.SetPaused(true); err != nil {
		log.Warnf("sleep timer pause: %v", err)
	}

	s.paused = true
	s.notice = SleepNotice
	s.publishLocked()
}

func (s *Session) onSleepChange(snapshot sleeptimer.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.sleep = snapshot
	s.publishLocked()
}

// SelectQuality pins a quality. A premium-only option returns playback.ErrPremiumRequired.
func (s *Session) SelectQuality(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	var err error
	s.drive(func() { err = s.controller.SelectQuality(id) })
	s.publishLocked()

	return err
}

// SetAutoQuality returns to adaptive selection.
func (s *Session) SetAutoQuality() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.drive(s.controller.SetAutoQuality)
	s.publishLocked()
}

// SetPremium updates the entitlement, e.g. after the profile loaded.
func (s *Session) SetPremium(premium bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.drive(func() { s.controller.SetPremium(premium) })
	s.publishLocked()
}

// SetSleepTimer arms the timer for a preset. The Off preset cancels it.
func (s *Session) SetSleepTimer(choice sleeptimer.Choice) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return
	}

	// the timer notifies synchronously, so s.mu must not be held here
	s.timer.Select(choice.Minutes, choice.Label)

	s.mu.Lock()
	closed = s.closed
	s.mu.Unlock()

	// Close may have stopped the timer between the check and Select
	if closed {
		s.timer.Stop()
	}
}

func (s *Session) TogglePause() error {
	return s.player.TogglePause()
}

func (s *Session) Seek(seconds float64) error {
	return s.player.Seek(max(seconds, 0))
}

// Chapters returns the chapters parsed from the description.
func (s *Session) Chapters() []chapters.Chapter {
	return s.chapters
}

func (s *Session) Video() *api.Video {
	return s.video
}

// Updates delivers the latest snapshot. Only the newest pending value is kept.
// The channel is closed by Close.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

// Done is closed when the player exits.
func (s *Session) Done() <-chan struct{} {
	return s.player.Wait()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		VideoID:        s.video.IDString(),
		Title:          s.video.Title,
		CandidateIndex: s.controller.Index(),
		CandidateCount: s.controller.Candidates().Len(),
		Qualities:      s.controller.Qualities(),
		Sleep:          s.sleep,
		Position:       s.position,
		Duration:       s.duration,
		Paused:         s.paused,
		Ended:          s.ended,
		Notice:         s.notice,
		Err:            s.controller.Err(),
	}

	if candidate, ok := s.controller.Active(); ok {
		snapshot.Candidate = mo.Some(candidate)
	}

	if chapter, ok := chapters.At(s.chapters, s.position); ok {
		snapshot.Chapter = mo.Some(chapter)
	}

	return snapshot
}

func (s *Session) publishLocked() {
	snapshot := s.snapshotLocked()

	select {
	case <-s.updates:
	default:
	}

	s.updates <- snapshot
}

// Close cancels the sleep timer, tears the engine down, records history and stops the player.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	if pos, err := s.player.TimePos(); err == nil && pos > 0 {
		s.position = pos
	}

	s.closed = true
	s.controller.Close()
	entry := s.historyEntryLocked()
	close(s.updates)
	s.mu.Unlock()

	// SetSleepTimer re-checks closed after arming, so this must follow it
	s.timer.Stop()

	var errs []error
	if entry != nil && viper.GetBool(key.HistorySaveOnWatch) {
		if err := history.Save(entry); err != nil {
			errs = append(errs, fmt.Errorf("save history: %w", err))
		}
	}

	// outside s.mu: stopping the listener waits for an in-flight callback
	if err := s.player.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close player: %w", err))
	}

	return errors.Join(errs...)
}

func (s *Session) historyEntryLocked() *history.Entry {
	if s.position <= 0 {
		return nil
	}

	snapshot := s.snapshotLocked()
	return &history.Entry{
		VideoID:           snapshot.VideoID,
		Title:             s.video.Title,
		ChannelID:         s.video.ChannelID,
		DurationSeconds:   s.duration,
		LastPosition:      s.position,
		WatchedPercentage: snapshot.Percent(),
	}
}
