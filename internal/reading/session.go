// Package reading owns the in-memory state of one reading session: the
// chapter list, the navigation cursor, and the bookmark and highlight lists.
// Nothing in here touches the network or the terminal.
package reading

import (
	"github.com/hurbes/gita-tui/internal/gita"
)

// Cursor identifies the currently displayed verse by position. Both indices
// are zero-based and stay within bounds as long as the session is non-empty.
type Cursor struct {
	Chapter int
	Verse   int
}

// Bookmark marks a (chapter, verse) position. The pair is the identity:
// toggling the same position twice removes the bookmark again.
type Bookmark struct {
	Chapter int
	Verse   int
}

// Highlight records the text of a verse at capture time. Highlights are
// append-only and never deduplicated.
type Highlight struct {
	Chapter int
	Verse   int
	Text    string
}

// Session holds all mutable reader state. It is owned by a single goroutine
// (the TUI update loop) and is not safe for concurrent use.
type Session struct {
	chapters   []gita.Chapter
	cursor     Cursor
	bookmarks  []Bookmark
	highlights []Highlight
}

// NewSession builds a session over the fetched chapter list. The cursor
// starts at the first verse of the first non-empty chapter.
func NewSession(chapters []gita.Chapter) *Session {
	s := &Session{chapters: chapters}
	if idx, ok := s.firstReadable(); ok {
		s.cursor = Cursor{Chapter: idx}
	}
	return s
}

// Empty reports whether the session has no verses to display, either because
// the fetch failed or because every chapter in the feed is empty.
func (s *Session) Empty() bool {
	return gita.TotalVerses(s.chapters) == 0
}

// Chapters returns the fetched chapter list.
func (s *Session) Chapters() []gita.Chapter {
	return s.chapters
}

// Cursor returns the current position.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

// Current returns the chapter and verse under the cursor. ok is false when
// the session is empty.
func (s *Session) Current() (gita.Chapter, gita.Verse, bool) {
	if s.Empty() {
		return gita.Chapter{}, gita.Verse{}, false
	}
	ch := s.chapters[s.cursor.Chapter]
	return ch, ch.Verses[s.cursor.Verse], true
}

// Advance moves to the next verse, rolling over to verse zero of the next
// non-empty chapter at a chapter boundary. At the last verse of the last
// chapter, and on an empty session, it is a no-op. It reports whether the
// cursor moved.
func (s *Session) Advance() bool {
	if s.Empty() {
		return false
	}
	if s.cursor.Verse+1 < len(s.chapters[s.cursor.Chapter].Verses) {
		s.cursor.Verse++
		return true
	}
	for idx := s.cursor.Chapter + 1; idx < len(s.chapters); idx++ {
		if len(s.chapters[idx].Verses) > 0 {
			s.cursor = Cursor{Chapter: idx}
			return true
		}
	}
	return false
}

// Retreat mirrors Advance: previous verse, or the last verse of the previous
// non-empty chapter when at verse zero. No-op at the very first verse and on
// an empty session.
func (s *Session) Retreat() bool {
	if s.Empty() {
		return false
	}
	if s.cursor.Verse > 0 {
		s.cursor.Verse--
		return true
	}
	for idx := s.cursor.Chapter - 1; idx >= 0; idx-- {
		if n := len(s.chapters[idx].Verses); n > 0 {
			s.cursor = Cursor{Chapter: idx, Verse: n - 1}
			return true
		}
	}
	return false
}

// Seek jumps to the given position when it is readable. Out-of-range verse
// indices are clamped into the chapter; a chapter without verses is refused.
func (s *Session) Seek(chapter, verse int) bool {
	if chapter < 0 || chapter >= len(s.chapters) {
		return false
	}
	n := len(s.chapters[chapter].Verses)
	if n == 0 {
		return false
	}
	if verse < 0 {
		verse = 0
	}
	if verse >= n {
		verse = n - 1
	}
	s.cursor = Cursor{Chapter: chapter, Verse: verse}
	return true
}

// ToggleBookmark adds a bookmark at the cursor, or removes it when one
// already exists at that exact position. added reports the resulting state;
// ok is false on an empty session.
func (s *Session) ToggleBookmark() (added, ok bool) {
	if s.Empty() {
		return false, false
	}
	for i, b := range s.bookmarks {
		if b.Chapter == s.cursor.Chapter && b.Verse == s.cursor.Verse {
			s.bookmarks = append(s.bookmarks[:i], s.bookmarks[i+1:]...)
			return false, true
		}
	}
	s.bookmarks = append(s.bookmarks, Bookmark{Chapter: s.cursor.Chapter, Verse: s.cursor.Verse})
	return true, true
}

// IsBookmarked reports whether the cursor position carries a bookmark.
func (s *Session) IsBookmarked() bool {
	for _, b := range s.bookmarks {
		if b.Chapter == s.cursor.Chapter && b.Verse == s.cursor.Verse {
			return true
		}
	}
	return false
}

// Bookmarks returns the bookmark list in insertion order.
func (s *Session) Bookmarks() []Bookmark {
	return s.bookmarks
}

// CaptureHighlight appends a highlight holding the current verse text. ok is
// false on an empty session.
func (s *Session) CaptureHighlight() (Highlight, bool) {
	_, verse, ok := s.Current()
	if !ok {
		return Highlight{}, false
	}
	h := Highlight{Chapter: s.cursor.Chapter, Verse: s.cursor.Verse, Text: verse.Text}
	s.highlights = append(s.highlights, h)
	return h, true
}

// Highlights returns the highlight list in capture order.
func (s *Session) Highlights() []Highlight {
	return s.highlights
}

// Progress returns the one-based ordinal of the current verse and the total
// verse count across all chapters. Both are zero on an empty session.
func (s *Session) Progress() (position, total int) {
	total = gita.TotalVerses(s.chapters)
	if total == 0 {
		return 0, 0
	}
	for idx := 0; idx < s.cursor.Chapter; idx++ {
		position += len(s.chapters[idx].Verses)
	}
	return position + s.cursor.Verse + 1, total
}

func (s *Session) firstReadable() (int, bool) {
	for idx, ch := range s.chapters {
		if len(ch.Verses) > 0 {
			return idx, true
		}
	}
	return 0, false
}
