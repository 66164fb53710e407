package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one repaint of the screen, kept both as the raw escape-sequence
// stream and as stripped plain text.
type Frame struct {
	ANSI  string
	Plain string
}

// bubbletea repaints by erasing the display, so each erase sequence marks a
// frame boundary in the recorded stream.
var (
	eraseDisplay = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSeq       = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSeq       = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	shiftChars   = strings.NewReplacer("\x0e", "", "\x0f", "")
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range eraseDisplay.Split(stream, -1) {
		if frame, ok := newFrame(chunk); ok {
			frames = append(frames, frame)
		}
	}
	// A program that exits before its first repaint still wrote something
	// worth asserting on.
	if frames == nil {
		if frame, ok := newFrame(stream); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

func newFrame(chunk string) (Frame, bool) {
	chunk = strings.TrimPrefix(strings.Trim(chunk, "\x00"), "\x1b[H")
	plain := plainText(chunk)
	if strings.TrimSpace(plain) == "" {
		return Frame{}, false
	}
	return Frame{ANSI: chunk, Plain: plain}, true
}

// ContainsFrame reports whether any recorded frame rendered needle.
func (r *Recording) ContainsFrame(needle string) bool {
	if r == nil {
		return false
	}
	for _, frame := range r.Frames {
		if strings.Contains(frame.Plain, needle) {
			return true
		}
	}
	return false
}

// FinalFrame returns the last captured frame; false when nothing rendered.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// plainText strips escape sequences and trims trailing blank space so frame
// assertions compare visible text only.
func plainText(s string) string {
	s = oscSeq.ReplaceAllString(s, "")
	s = csiSeq.ReplaceAllString(s, "")
	s = shiftChars.Replace(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
