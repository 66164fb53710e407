package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	switch m.stage {
	case stageLoading:
		return m.viewLoading()
	case stageJump:
		return m.viewJump()
	default:
		return m.viewReading()
	}
}

func (m *Model) viewLoading() string {
	body := fmt.Sprintf("%s Fetching chapters…", m.spinner.View())
	return joinNonEmpty([]string{m.headerView(), body})
}

func (m *Model) viewJump() string {
	var b strings.Builder
	b.WriteString(m.styles.SectionHeader.Render("Go to reference"))
	b.WriteRune('\n')
	b.WriteString(m.jumpInput.View())
	b.WriteRune('\n')
	b.WriteString(m.styles.Helper.Render("Press Enter to jump, Esc to cancel."))
	return joinNonEmpty([]string{m.headerView(), b.String()})
}

func (m *Model) viewReading() string {
	m.refreshViewportIfDirty()

	parts := []string{m.headerView()}
	if m.session.Empty() {
		parts = append(parts, m.styles.EmptyState.Render(emptyStateMessage))
		if m.loadErr != nil {
			parts = append(parts, m.styles.Error.Render(fmt.Sprintf("Load error: %v", m.loadErr)))
		}
	} else {
		parts = append(parts, m.viewport.View())
	}
	if m.toast != "" {
		parts = append(parts, m.styles.Toast.Render(m.toast))
	}
	parts = append(parts, m.legendView())
	if m.helpVisible {
		parts = append(parts, m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *Model) headerView() string {
	title := "Bhagavad Gita"
	if chapter, _, ok := m.session.Current(); ok {
		position, total := m.session.Progress()
		title = fmt.Sprintf("%s — %s · verse %d/%d", title, chapter.Name, position, total)
	}
	return m.styles.Header.Render(title)
}

func (m *Model) legendView() string {
	hints := []string{
		"←/→ verse",
		"b bookmark",
		"x highlight",
		"+/- text size",
		": go to",
		"tab section",
		"? help",
		"q quit",
	}
	return m.styles.Legend.Render(strings.Join(hints, " │ "))
}

func (m *Model) helpView() string {
	lines := []string{
		m.styles.SectionHeader.Render("Keys"),
		m.styles.Helper.Render("←/h/p and →/l/n move one verse; the mouse wheel does the same."),
		m.styles.Helper.Render("b toggles a bookmark on the current verse; x highlights its text."),
		m.styles.Helper.Render("+ and - change the text scale; : jumps to a chapter:verse reference."),
		m.styles.Helper.Render("tab cycles the verse, bookmark, and highlight sections; g/G scroll."),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshViewportIfDirty() {
	if !m.contentDirty {
		return
	}
	m.contentDirty = false
	content, anchors := m.buildContent()
	m.anchors = anchors
	m.viewport.SetContent(content)
}

func (m *Model) buildContent() (string, map[string]int) {
	anchors := map[string]int{}
	chapter, verse, ok := m.session.Current()
	if !ok {
		return "", anchors
	}

	var b strings.Builder
	line := 0
	write := func(s string) {
		b.WriteString(s)
		b.WriteRune('\n')
		line += strings.Count(s, "\n") + 1
	}

	anchors[anchorVerse] = line
	write(m.styles.ChapterTitle.Render(chapter.Name))

	cursor := m.session.Cursor()
	marker := ""
	if m.session.IsBookmarked() {
		marker = " ★"
	}
	write(m.styles.VerseNumber.Render(fmt.Sprintf("Verse %d of %d%s", cursor.Verse+1, len(chapter.Verses), marker)))
	write("")
	write(m.verseStyle().Render(wordwrap.String(verse.Text, m.wrapWidth())))
	write("")

	anchors[anchorBookmarks] = line
	write(m.styles.SectionHeader.Render(fmt.Sprintf("Bookmarks (%d)", len(m.session.Bookmarks()))))
	if len(m.session.Bookmarks()) == 0 {
		write(m.styles.Helper.Render("None yet. Press b on a verse to keep your place."))
	} else {
		for _, bm := range m.session.Bookmarks() {
			write(m.styles.Bookmark.Render(fmt.Sprintf(" %d:%d  %s", bm.Chapter+1, bm.Verse+1, m.excerptAt(bm.Chapter, bm.Verse))))
		}
	}
	write("")

	anchors[anchorHighlights] = line
	write(m.styles.SectionHeader.Render(fmt.Sprintf("Highlights (%d)", len(m.session.Highlights()))))
	if len(m.session.Highlights()) == 0 {
		write(m.styles.Helper.Render("None yet. Press x to capture the current verse."))
	} else {
		for _, h := range m.session.Highlights() {
			write(fmt.Sprintf(" %s %s",
				m.styles.VerseNumber.Render(fmt.Sprintf("%d:%d", h.Chapter+1, h.Verse+1)),
				m.styles.Highlight.Render(excerpt(h.Text, 64))))
		}
	}

	return strings.TrimRight(b.String(), "\n"), anchors
}

// wrapWidth maps the text scale to a column width: a larger scale reads like
// a larger font, so the column narrows.
func (m *Model) wrapWidth() int {
	widths := [...]int{96, 84, 72, 58, 44}
	width := widths[clampScale(m.textScale)-minTextScale]
	if m.viewport.Width > 0 && width > m.viewport.Width {
		width = m.viewport.Width
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *Model) verseStyle() lipgloss.Style {
	if m.textScale >= 4 {
		return m.styles.VerseText.Bold(true)
	}
	return m.styles.VerseText
}

func clampScale(scale int) int {
	if scale < minTextScale {
		return minTextScale
	}
	if scale > maxTextScale {
		return maxTextScale
	}
	return scale
}

func (m *Model) excerptAt(chapter, verse int) string {
	chapters := m.session.Chapters()
	if chapter < 0 || chapter >= len(chapters) {
		return ""
	}
	verses := chapters[chapter].Verses
	if verse < 0 || verse >= len(verses) {
		return ""
	}
	return excerpt(verses[verse].Text, 48)
}

func excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
