package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/creatv/creatv/chapters"
	"github.com/creatv/creatv/log"
	"github.com/creatv/creatv/playback"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV controls an mpv process over its JSON IPC socket.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	// mu serializes IPC requests.
	mu sync.Mutex

	stateMu  sync.Mutex
	tracks   []videoTrack
	callback EventCallback
	listener *EventListener
}

// NewMPV returns an idle player. Nothing is started until Play.
func NewMPV() *MPV {
	return &MPV{
		binary: "mpv",
		exited: make(chan struct{}),
	}
}

func (m *MPV) started() bool {
	return m.cmd != nil
}

// Play loads url. The first call launches mpv idle. Every file is loaded over IPC once the
// event listener is attached, so load failures of the first file are reported too.
func (m *MPV) Play(rawURL, title string, start float64) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	title = sanitizeTitle(title)

	m.stateMu.Lock()
	m.tracks = nil
	m.stateMu.Unlock()

	if !m.started() {
		if err := m.launch(title); err != nil {
			return err
		}
	}

	if err := m.attach(); err != nil {
		return err
	}

	return m.replace(target, title, start)
}

func (m *MPV) launch(title string) error {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	socketPath := filepath.Join(os.TempDir(), fmt.Sprintf("creatv-%x.sock", randomBytes))

	cmd := exec.Command(m.binary, args(socketPath, title)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	log.With(log.Fields{"socket": socketPath, "title": title}).Info("mpv started")

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(socketPath, exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		_ = os.Remove(socketPath)
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.cmd, m.exited, m.socketPath = cmd, exited, socketPath
	return nil
}

// args builds the command line of an idle instance. Only the socket and title are passed
// so the user's mpv.conf stays in charge of everything else.
func args(socketPath, title string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socketPath,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--idle=yes",
	}
}

func (m *MPV) replace(target, title string, start float64) error {
	if _, err := m.sendCommand("set_property", "force-media-title", title); err != nil {
		return err
	}

	begin := "none"
	if start > 0 {
		begin = formatSeconds(start)
	}
	if _, err := m.sendCommand("set_property", "options/start", begin); err != nil {
		return err
	}

	_, err := m.sendCommand("loadfile", target, "replace")
	return err
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			_ = conn.Close()
			return nil
		}
	}

	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

func (m *MPV) TimePos() (float64, error) {
	return m.floatProperty("time-pos")
}

func (m *MPV) Duration() (float64, error) {
	return m.floatProperty("duration")
}

// PercentWatched returns 0 while the duration is unknown.
func (m *MPV) PercentWatched() (float64, error) {
	pos, err := m.TimePos()
	if err != nil {
		return 0, err
	}

	dur, err := m.Duration()
	if err != nil || dur <= 0 {
		return 0, nil
	}

	return pos / dur * 100, nil
}

func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand("get_property", "pause")
	if err != nil {
		return false, err
	}

	paused, _ := data.(bool)
	return paused, nil
}

func (m *MPV) SetPaused(paused bool) error {
	_, err := m.sendCommand("set_property", "pause", paused)
	return err
}

func (m *MPV) TogglePause() error {
	_, err := m.sendCommand("cycle", "pause")
	return err
}

// Seek moves to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

// SelectTrack resolves the selection against the last known tracks and sets vid.
func (m *MPV) SelectTrack(selection playback.TrackSelection) error {
	m.stateMu.Lock()
	tracks := m.tracks
	m.stateMu.Unlock()

	if tracks == nil && selection.Kind != playback.SelectAuto {
		if _, err := m.VideoTracks(); err != nil {
			return err
		}
		m.stateMu.Lock()
		tracks = m.tracks
		m.stateMu.Unlock()
	}

	vid, err := resolveSelection(tracks, selection)
	if err != nil {
		return fmt.Errorf("select %s: %w", selection, err)
	}

	_, err = m.sendCommand("set_property", "vid", vid)
	return err
}

// VideoTracks queries the track list and remembers it for later selections.
func (m *MPV) VideoTracks() ([]playback.Track, error) {
	data, err := m.sendCommand("get_property", "track-list")
	if err != nil {
		return nil, err
	}

	tracks := parseTrackList(data)
	m.setTracks(tracks)
	return publicTracks(tracks), nil
}

func (m *MPV) setTracks(tracks []videoTrack) {
	if tracks == nil {
		tracks = []videoTrack{}
	}

	m.stateMu.Lock()
	m.tracks = tracks
	m.stateMu.Unlock()
}

// SetChapters shows chapter marks on mpv's timeline.
func (m *MPV) SetChapters(list []chapters.Chapter) error {
	payload := make([]map[string]any, len(list))
	for i, c := range list {
		payload[i] = map[string]any{
			"title": c.Title,
			"time":  c.Start,
		}
	}

	_, err := m.sendCommand("set_property", "chapter-list", payload)
	return err
}

// Listen replaces any previous listener. Before mpv runs, the callback is kept and attached
// by Play ahead of the first load. Track reports are also kept for SelectTrack.
func (m *MPV) Listen(callback EventCallback) error {
	m.stateMu.Lock()
	m.callback = callback
	previous := m.listener
	m.listener = nil
	m.stateMu.Unlock()

	if previous != nil {
		previous.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	return m.attach()
}

// attach connects the registered callback unless a listener is already running.
func (m *MPV) attach() error {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if m.listener != nil || m.callback == nil {
		return nil
	}

	callback := m.callback
	listener := NewEventListener(m.socketPath, func(event Event) {
		if changed, ok := event.(TracksChanged); ok {
			tracks := make([]videoTrack, len(changed.Tracks))
			for i, t := range changed.Tracks {
				tracks[i] = videoTrack{track: t, id: changed.ids[i]}
			}
			m.setTracks(tracks)
		}

		callback(event)
	})

	if err := listener.Start(); err != nil {
		return err
	}

	m.listener = listener
	return nil
}

// Close asks mpv to quit, kills it if it lingers and removes the socket.
func (m *MPV) Close() error {
	m.stateMu.Lock()
	listener := m.listener
	m.listener = nil
	m.stateMu.Unlock()

	if listener != nil {
		listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	if m.started() {
		_, _ = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	return nil
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget rejects targets mpv would read as flags or unsupported schemes.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
