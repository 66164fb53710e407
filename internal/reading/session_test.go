package reading

import (
	"reflect"
	"testing"

	"github.com/hurbes/gita-tui/internal/gita"
)

func twoChapterFixture() []gita.Chapter {
	return []gita.Chapter{
		{Name: "Ch1", Verses: []gita.Verse{{Text: "v1"}, {Text: "v2"}}},
		{Name: "Ch2", Verses: []gita.Verse{{Text: "v3"}}},
	}
}

func TestAdvanceRollsOverChapterBoundary(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	if got := s.Cursor(); got != (Cursor{}) {
		t.Fatalf("starting cursor = %+v, want (0,0)", got)
	}

	// Three verses: the first two advances move, the third is the no-op at
	// the final verse.
	for i := 0; i < 2; i++ {
		if !s.Advance() {
			t.Fatalf("advance %d should move the cursor", i+1)
		}
	}
	if s.Advance() {
		t.Fatal("advance at the final verse should be a no-op")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 1, Verse: 0}) {
		t.Fatalf("cursor after three advances = %+v, want (1,0)", got)
	}
	if _, verse, ok := s.Current(); !ok || verse.Text != "v3" {
		t.Fatalf("current verse = %q ok=%v, want v3", verse.Text, ok)
	}

	if s.Advance() {
		t.Fatal("repeated advance at the final verse should stay a no-op")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 1, Verse: 0}) {
		t.Fatalf("no-op advance moved cursor to %+v", got)
	}
}

func TestAdvanceWalksEveryVerseExactlyOnce(t *testing.T) {
	t.Parallel()

	chapters := []gita.Chapter{
		{Name: "A", Verses: []gita.Verse{{Text: "a1"}, {Text: "a2"}, {Text: "a3"}}},
		{Name: "B", Verses: []gita.Verse{{Text: "b1"}}},
		{Name: "C", Verses: []gita.Verse{{Text: "c1"}, {Text: "c2"}}},
	}
	s := NewSession(chapters)

	total := gita.TotalVerses(chapters)
	for i := 0; i < total-1; i++ {
		if !s.Advance() {
			t.Fatalf("advance %d/%d unexpectedly stalled at %+v", i+1, total-1, s.Cursor())
		}
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 2, Verse: 1}) {
		t.Fatalf("cursor after %d advances = %+v, want last verse of last chapter", total-1, got)
	}
	if s.Advance() {
		t.Fatal("one further advance should be a no-op")
	}
}

func TestAdvanceSkipsEmptyChapters(t *testing.T) {
	t.Parallel()

	chapters := []gita.Chapter{
		{Name: "A", Verses: []gita.Verse{{Text: "a1"}}},
		{Name: "Empty"},
		{Name: "C", Verses: []gita.Verse{{Text: "c1"}}},
	}
	s := NewSession(chapters)

	if !s.Advance() {
		t.Fatal("advance should skip over the empty chapter")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 2, Verse: 0}) {
		t.Fatalf("cursor = %+v, want (2,0)", got)
	}
	if !s.Retreat() {
		t.Fatal("retreat should skip back over the empty chapter")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 0, Verse: 0}) {
		t.Fatalf("cursor = %+v, want (0,0)", got)
	}
}

func TestRetreatIsNoOpAtOrigin(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	for i := 0; i < 5; i++ {
		if s.Retreat() {
			t.Fatalf("retreat %d at origin should be a no-op", i+1)
		}
	}
	if got := s.Cursor(); got != (Cursor{}) {
		t.Fatalf("cursor drifted to %+v", got)
	}
}

func TestRetreatRollsBackToPreviousChapterEnd(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	if !s.Seek(1, 0) {
		t.Fatal("seek to (1,0) should succeed")
	}
	if !s.Retreat() {
		t.Fatal("retreat at a chapter boundary should move")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 0, Verse: 1}) {
		t.Fatalf("cursor = %+v, want last verse of previous chapter", got)
	}
}

func TestEmptySessionOperationsAreGuardedNoOps(t *testing.T) {
	t.Parallel()

	for _, chapters := range [][]gita.Chapter{nil, {{Name: "Hollow"}}} {
		s := NewSession(chapters)
		if !s.Empty() {
			t.Fatal("session should report empty")
		}
		if s.Advance() || s.Retreat() {
			t.Fatal("navigation on an empty session should be a no-op")
		}
		if _, _, ok := s.Current(); ok {
			t.Fatal("Current() should report no verse")
		}
		if _, ok := s.ToggleBookmark(); ok {
			t.Fatal("bookmarking an empty session should be refused")
		}
		if _, ok := s.CaptureHighlight(); ok {
			t.Fatal("highlighting an empty session should be refused")
		}
		if pos, total := s.Progress(); pos != 0 || total != 0 {
			t.Fatalf("Progress() = (%d, %d), want zeros", pos, total)
		}
	}
}

func TestToggleBookmarkTwiceRestoresList(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	s.Advance()
	if added, ok := s.ToggleBookmark(); !ok || !added {
		t.Fatalf("first toggle should add, got added=%v ok=%v", added, ok)
	}
	if !s.IsBookmarked() {
		t.Fatal("cursor position should report bookmarked")
	}
	if added, ok := s.ToggleBookmark(); !ok || added {
		t.Fatalf("second toggle should remove, got added=%v ok=%v", added, ok)
	}
	if len(s.Bookmarks()) != 0 {
		t.Fatalf("bookmark list not restored: %#v", s.Bookmarks())
	}
}

func TestToggleBookmarkRemovesOnlyTheMatchingPair(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	s.ToggleBookmark() // (0,0)
	s.Advance()
	s.ToggleBookmark() // (0,1)
	s.Seek(0, 0)
	s.ToggleBookmark() // removes (0,0)

	want := []Bookmark{{Chapter: 0, Verse: 1}}
	if !reflect.DeepEqual(s.Bookmarks(), want) {
		t.Fatalf("bookmarks = %#v, want %#v", s.Bookmarks(), want)
	}
}

func TestCaptureHighlightAppendsWithoutMutation(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	first, ok := s.CaptureHighlight()
	if !ok || first.Text != "v1" {
		t.Fatalf("first highlight = %+v ok=%v", first, ok)
	}

	s.Advance()
	second, ok := s.CaptureHighlight()
	if !ok || second.Text != "v2" {
		t.Fatalf("second highlight = %+v ok=%v", second, ok)
	}

	got := s.Highlights()
	if len(got) != 2 {
		t.Fatalf("highlight count = %d, want 2", len(got))
	}
	if got[0] != first {
		t.Fatalf("earlier highlight mutated: %+v", got[0])
	}

	// Duplicates are allowed: same verse captured again grows the list.
	if _, ok := s.CaptureHighlight(); !ok {
		t.Fatal("duplicate capture should succeed")
	}
	if len(s.Highlights()) != 3 {
		t.Fatalf("highlight count = %d, want 3", len(s.Highlights()))
	}
}

func TestSeekClampsVerseAndRefusesEmptyChapters(t *testing.T) {
	t.Parallel()

	chapters := []gita.Chapter{
		{Name: "A", Verses: []gita.Verse{{Text: "a1"}, {Text: "a2"}}},
		{Name: "Empty"},
	}
	s := NewSession(chapters)

	if !s.Seek(0, 99) {
		t.Fatal("seek with oversized verse index should clamp, not fail")
	}
	if got := s.Cursor(); got != (Cursor{Chapter: 0, Verse: 1}) {
		t.Fatalf("cursor = %+v, want clamped to last verse", got)
	}
	if s.Seek(1, 0) {
		t.Fatal("seek into an empty chapter should be refused")
	}
	if s.Seek(5, 0) || s.Seek(-1, 0) {
		t.Fatal("seek outside the chapter list should be refused")
	}
}

func TestProgressCountsAcrossChapters(t *testing.T) {
	t.Parallel()

	s := NewSession(twoChapterFixture())
	s.Seek(1, 0)
	pos, total := s.Progress()
	if pos != 3 || total != 3 {
		t.Fatalf("Progress() = (%d, %d), want (3, 3)", pos, total)
	}
}

func TestNewSessionStartsAtFirstReadableChapter(t *testing.T) {
	t.Parallel()

	chapters := []gita.Chapter{
		{Name: "Empty"},
		{Name: "B", Verses: []gita.Verse{{Text: "b1"}}},
	}
	s := NewSession(chapters)
	if got := s.Cursor(); got != (Cursor{Chapter: 1, Verse: 0}) {
		t.Fatalf("cursor = %+v, want the first non-empty chapter", got)
	}
}
