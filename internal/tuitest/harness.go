// Package tuitest drives a compiled TUI binary inside a pseudo terminal and
// captures what it renders, so integration tests can assert on frames.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 100
	defaultHeight  = 32
	defaultTimeout = 10 * time.Second
)

// Step is one scripted user interaction. A zero delay writes immediately.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config describes how to spawn and script the program under test.
type Config struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
	Steps   []Step
	Timeout time.Duration
}

// Recording holds the raw terminal stream and the parsed frames.
type Recording struct {
	Raw    []byte
	Frames []Frame
}

var (
	// KeyEnter sends a carriage return.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC asks the program to terminate.
	KeyCtrlC = []byte{3}
)

// Run executes the command inside a PTY, replays the scripted input, and
// captures everything written to the terminal until the program exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	var output bytes.Buffer
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		responder := newQueryResponder(ptmx)
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				responder.Process(chunk)
				_, _ = output.Write(chunk)
			}
			if readErr != nil {
				return
			}
		}
	}()

	for _, step := range cfg.Steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("tuitest: cancelled mid-script: %w", ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if len(step.Input) > 0 {
			if _, err := ptmx.Write(step.Input); err != nil {
				return nil, fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	select {
	case err := <-waitErr:
		if err != nil && !isInterrupt(err) {
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for exit: %w", ctx.Err())
	}

	_ = ptmx.Close()
	<-copyDone

	raw := output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw)}, nil
}

func isInterrupt(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.Contains(exitErr.Error(), "interrupt")
	}
	return false
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}

// queryResponder answers the terminal capability queries bubbletea sends at
// startup, since no real terminal sits behind the PTY.
type queryResponder struct {
	w   io.Writer
	buf []byte
}

func newQueryResponder(w io.Writer) *queryResponder {
	return &queryResponder{w: w, buf: make([]byte, 0, 128)}
}

func (qr *queryResponder) Process(chunk []byte) {
	qr.buf = append(qr.buf, chunk...)
	for {
		answered := false
		if qr.consume([]byte("\x1b[6n"), []byte("\x1b[1;1R")) {
			answered = true
		}
		if qr.consume([]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")) {
			answered = true
		}
		if qr.consume([]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")) {
			answered = true
		}
		if qr.consume([]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")) {
			answered = true
		}
		if qr.consume([]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")) {
			answered = true
		}
		if !answered {
			break
		}
	}
	// Keep a small tail for sequences spanning reads.
	if len(qr.buf) > 256 {
		qr.buf = qr.buf[len(qr.buf)-64:]
	}
}

func (qr *queryResponder) consume(pattern, response []byte) bool {
	idx := bytes.Index(qr.buf, pattern)
	if idx < 0 {
		return false
	}
	qr.buf = qr.buf[idx+len(pattern):]
	_, _ = qr.w.Write(response)
	return true
}
