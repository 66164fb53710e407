package tui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hurbes/gita-tui/internal/gita"
)

type chaptersLoadedMsg struct {
	chapters []gita.Chapter
}

type errMsg struct {
	err error
}

type toastExpiredMsg struct {
	seq int
}

func fetchChaptersCmd(client *gita.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		chapters, err := client.FetchChapters(ctx)
		if err != nil {
			log.Printf("[fetch] chapter feed failed: %v", err)
			return errMsg{err: err}
		}
		log.Printf("[fetch] loaded %d chapters (%d verses)", len(chapters), gita.TotalVerses(chapters))
		return chaptersLoadedMsg{chapters: chapters}
	}
}

func toastExpiryCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
