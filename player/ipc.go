package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type ipcResponse struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
}

// CommandError is an error reported by mpv itself. It is never retried.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.Command, e.Message)
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 2 * time.Second
	maxLineSize  = 1 << 20
)

var requestCounter atomic.Int64

// sendCommand runs one IPC command, retrying transient connection failures.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}

		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// writeCommand sends one newline-delimited request and returns its id.
func writeCommand(conn net.Conn, command []any) (int64, error) {
	id := requestCounter.Add(1)
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}

	return id, nil
}

// readReply skips events and replies to other requests until the reply for id arrives.
func readReply(reader *bufio.Reader, id int64, name string) (any, error) {
	for {
		line, err := reader.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("read: reply larger than %d bytes", reader.Size())
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}

		if resp.Event != "" || resp.RequestID != id {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, &CommandError{Command: name, Message: resp.Error}
		}

		return resp.Data, nil
	}
}

func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	id, err := writeCommand(conn, command)
	if err != nil {
		return nil, err
	}

	name, _ := command[0].(string)
	return readReply(bufio.NewReaderSize(conn, maxLineSize), id, name)
}
