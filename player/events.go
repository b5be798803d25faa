package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/creatv/creatv/log"
)

// observed lists the properties the listener subscribes to, keyed by observer id.
var observed = []struct {
	id   int
	name string
}{
	{1, "track-list"},
	{2, "time-pos"},
	{3, "pause"},
}

// EventListener keeps a dedicated IPC connection open and turns mpv notifications into events.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	done      chan struct{}
	listening bool
}

// NewEventListener returns a listener for the socket. Start must be called to connect.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start connects, subscribes to the observed properties and begins reading.
// Observers belong to the connection, so they are registered on it directly.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for _, prop := range observed {
		if _, err := writeCommand(conn, []any{"observe_property", prop.id, prop.name}); err != nil {
			_ = conn.Close()
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	el.listening = true

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to return.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}

	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	_ = conn.Close()
	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	reader := bufio.NewReaderSize(conn, maxLineSize)
	for {
		line, err := reader.ReadSlice('\n')
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		if event, ok := parseEvent(line); ok && el.callback != nil {
			el.callback(event)
		}
	}
}

type rawEvent struct {
	Event     string          `json:"event"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Reason    string          `json:"reason"`
	FileError string          `json:"file_error"`
}

// parseEvent converts one notification line. Replies and unknown events are dropped.
func parseEvent(line []byte) (Event, bool) {
	var raw rawEvent
	if err := json.Unmarshal(line, &raw); err != nil || raw.Event == "" {
		return nil, false
	}

	switch raw.Event {
	case "property-change":
		return parseProperty(raw.Name, raw.Data)
	case "file-loaded":
		return FileLoaded{}, true
	case "end-file":
		switch raw.Reason {
		case "error":
			reason := raw.FileError
			if reason == "" {
				reason = "unknown error"
			}
			return PlaybackError{Reason: reason}, true
		case "eof":
			return EndOfFile{}, true
		}
	}

	return nil, false
}

func parseProperty(name string, data json.RawMessage) (Event, bool) {
	if len(data) == 0 || string(data) == "null" {
		return nil, false
	}

	switch name {
	case "track-list":
		var list any
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, false
		}
		tracks := parseTrackList(list)
		ids := make([]int, len(tracks))
		for i, t := range tracks {
			ids[i] = t.id
		}
		return TracksChanged{Tracks: publicTracks(tracks), ids: ids}, true
	case "time-pos":
		var seconds float64
		if err := json.Unmarshal(data, &seconds); err != nil {
			return nil, false
		}
		return PositionChanged{Seconds: seconds}, true
	case "pause":
		var paused bool
		if err := json.Unmarshal(data, &paused); err != nil {
			return nil, false
		}
		return PauseChanged{Paused: paused}, true
	}

	return nil, false
}
