package tui

import "time"

type stage int

const (
	stageLoading stage = iota
	stageReading
	stageJump
)

const (
	anchorVerse      = "verse"
	anchorBookmarks  = "bookmarks"
	anchorHighlights = "highlights"
)

var sectionSequence = []string{
	anchorVerse,
	anchorBookmarks,
	anchorHighlights,
}

const (
	minTextScale     = 1
	maxTextScale     = 5
	defaultTextScale = 3
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	toastDuration             = 3 * time.Second
)

const emptyStateMessage = "No content available. Check the chapter feed and restart."

const jumpPlaceholder = "chapter:verse (e.g. 2:14)"
