package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMPV answers IPC requests the way mpv does, from an in-memory property map.
type fakeMPV struct {
	path string
	ln   net.Listener

	mu       sync.Mutex
	props    map[string]any
	commands [][]any
	conns    []net.Conn

	// failLoads reports every loadfile as a failed file to all connected clients.
	failLoads bool

	observers chan net.Conn
	wg        sync.WaitGroup
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "s.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{
		path:      path,
		ln:        ln,
		props:     map[string]any{},
		observers: make(chan net.Conn, 4),
	}

	t.Cleanup(func() {
		f.Close()
		_ = os.RemoveAll(dir)
	})

	f.wg.Add(1)
	go f.accept()
	return f
}

func (f *fakeMPV) accept() {
	defer f.wg.Done()
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}

		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()

		f.wg.Add(1)
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	defer f.wg.Done()

	subscriptions := 0
	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var req ipcCommand
		if err := json.Unmarshal(line, &req); err != nil || len(req.Command) == 0 {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		f.mu.Unlock()

		resp := map[string]any{"request_id": req.RequestID, "error": "success"}
		switch req.Command[0] {
		case "get_property":
			name, _ := req.Command[1].(string)
			f.mu.Lock()
			value, ok := f.props[name]
			f.mu.Unlock()
			if ok {
				resp["data"] = value
			} else {
				resp["error"] = "property unavailable"
			}
			// unrelated traffic must be skipped by the client
			_ = f.write(conn, map[string]any{"event": "idle"})
		case "set_property":
			name, _ := req.Command[1].(string)
			f.set(name, req.Command[2])
		case "cycle":
			f.mu.Lock()
			paused, _ := f.props["pause"].(bool)
			f.props["pause"] = !paused
			f.mu.Unlock()
		case "observe_property":
			subscriptions++
		}

		if err := f.write(conn, resp); err != nil {
			return
		}

		f.mu.Lock()
		failLoad := req.Command[0] == "loadfile" && f.failLoads
		f.mu.Unlock()

		if failLoad {
			f.broadcast(conn, map[string]any{"event": "end-file", "reason": "error", "file_error": "403"})
		}

		if req.Command[0] == "observe_property" && subscriptions == len(observed) {
			f.observers <- conn
		}
	}
}

func (f *fakeMPV) write(conn net.Conn, message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = conn.Write(append(payload, '\n'))
	return err
}

// broadcast sends an event to every client connected so far, the way mpv does.
func (f *fakeMPV) broadcast(from net.Conn, message any) {
	f.mu.Lock()
	conns := append([]net.Conn(nil), f.conns...)
	f.mu.Unlock()

	for _, c := range conns {
		if c != from {
			_ = f.write(c, message)
		}
	}
}

func (f *fakeMPV) set(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[name] = value
}

func (f *fakeMPV) get(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[name]
}

// count returns how many requests carried the given command name.
func (f *fakeMPV) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int
	for _, c := range f.commands {
		if c[0] == name {
			n++
		}
	}
	return n
}

func (f *fakeMPV) Close() {
	_ = f.ln.Close()

	f.mu.Lock()
	for _, c := range f.conns {
		_ = c.Close()
	}
	f.mu.Unlock()

	f.wg.Wait()
}

func connectedMPV(f *fakeMPV) *MPV {
	return &MPV{socketPath: f.path, exited: make(chan struct{})}
}
