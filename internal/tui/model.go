package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hurbes/gita-tui/internal/gita"
	"github.com/hurbes/gita-tui/internal/reading"
	"github.com/hurbes/gita-tui/internal/settings"
	"github.com/hurbes/gita-tui/internal/theme"
)

// Config wires runtime options into the reader program.
type Config struct {
	Client          *gita.Client
	Theme           theme.Theme
	Restore         settings.Settings
	RestorePosition bool
}

// Model is the single owner of all mutable reader state. All mutation happens
// on the bubbletea update loop.
type Model struct {
	config Config
	styles theme.Styles
	stage  stage

	session   *reading.Session
	viewport  viewport.Model
	spinner   spinner.Model
	jumpInput textinput.Model

	width  int
	height int
	ready  bool

	textScale    int
	loadErr      error
	toast        string
	toastSeq     int
	contentDirty bool
	helpVisible  bool

	anchors map[string]int
}

// New returns a reader model ready to be mounted into a tea.Program.
func New(config Config) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	jump := textinput.New()
	jump.Placeholder = jumpPlaceholder
	jump.CharLimit = 16
	jump.Width = 30

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = false

	scale := config.Restore.TextScale
	if scale < minTextScale || scale > maxTextScale {
		scale = defaultTextScale
	}

	return &Model{
		config:       config,
		styles:       config.Theme.Styles(),
		stage:        stageLoading,
		session:      reading.NewSession(nil),
		viewport:     vp,
		spinner:      spin,
		jumpInput:    jump,
		textScale:    scale,
		contentDirty: true,
		anchors:      map[string]int{},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchChaptersCmd(m.config.Client))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage == stageLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case chaptersLoadedMsg:
		m.session = reading.NewSession(msg.chapters)
		m.loadErr = nil
		m.stage = stageReading
		if m.config.RestorePosition {
			m.session.Seek(m.config.Restore.LastChapter, m.config.Restore.LastVerse)
		}
		m.markDirty()
		return m, nil

	case errMsg:
		m.loadErr = msg.err
		m.session = reading.NewSession(nil)
		m.stage = stageReading
		m.markDirty()
		return m, m.showToast("Could not load chapters.")

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		innerWidth := msg.Width - viewportHorizontalPadding
		if innerWidth < minViewportWidth {
			innerWidth = minViewportWidth
		}
		innerHeight := msg.Height - 7
		if innerHeight < 5 {
			innerHeight = 5
		}
		if !m.ready {
			m.viewport = viewport.New(innerWidth, innerHeight)
			// Wheel events move the cursor, not the scrollback.
			m.viewport.MouseWheelEnabled = false
			m.ready = true
		} else {
			m.viewport.Width = innerWidth
			m.viewport.Height = innerHeight
		}
		m.markDirty()
		return m, nil

	case tea.MouseMsg:
		// Wheel scrolling is the terminal analog of the original swipe
		// gesture: one notch, one verse.
		if m.stage == stageReading {
			switch msg.Button {
			case tea.MouseButtonWheelDown:
				m.advance()
			case tea.MouseButtonWheelUp:
				m.retreat()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.stage == stageJump {
			m.stage = stageReading
			m.jumpInput.SetValue("")
			m.jumpInput.Blur()
			return m, nil
		}
		return m, tea.Quit
	}

	switch m.stage {
	case stageLoading:
		return m, nil
	case stageJump:
		return m.handleJumpKey(key)
	default:
		return m.handleReadingKey(key)
	}
}

func (m *Model) handleJumpKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(key)
	if key.Type != tea.KeyEnter {
		return m, cmd
	}

	value := strings.TrimSpace(m.jumpInput.Value())
	m.jumpInput.SetValue("")
	m.jumpInput.Blur()
	m.stage = stageReading
	if value == "" {
		return m, cmd
	}

	chapter, verse, err := parseReference(value)
	if err != nil {
		return m, tea.Batch(cmd, m.showToast(fmt.Sprintf("Bad reference %q.", value)))
	}
	if !m.session.Seek(chapter, verse) {
		return m, tea.Batch(cmd, m.showToast(fmt.Sprintf("No verse at %q.", value)))
	}
	m.markDirty()
	m.viewport.GotoTop()
	return m, cmd
}

func (m *Model) handleReadingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "right", "l", "n":
		m.advance()
	case "left", "h", "p":
		m.retreat()
	case "b":
		return m, m.toggleBookmark()
	case "x":
		return m, m.captureHighlight()
	case "+", "=":
		return m, m.adjustScale(1)
	case "-", "_":
		return m, m.adjustScale(-1)
	case ":":
		if !m.session.Empty() {
			m.stage = stageJump
			m.jumpInput.Focus()
			return m, textinput.Blink
		}
	case "tab":
		m.jumpToNextSection()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "?":
		m.helpVisible = !m.helpVisible
		m.markDirty()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(key)
		return m, cmd
	}
	return m, nil
}

func (m *Model) advance() {
	if m.session.Advance() {
		m.markDirty()
		m.viewport.GotoTop()
	}
}

func (m *Model) retreat() {
	if m.session.Retreat() {
		m.markDirty()
		m.viewport.GotoTop()
	}
}

func (m *Model) toggleBookmark() tea.Cmd {
	added, ok := m.session.ToggleBookmark()
	if !ok {
		return nil
	}
	m.markDirty()
	cursor := m.session.Cursor()
	if added {
		return m.showToast(fmt.Sprintf("Bookmarked %d:%d.", cursor.Chapter+1, cursor.Verse+1))
	}
	return m.showToast(fmt.Sprintf("Removed bookmark %d:%d.", cursor.Chapter+1, cursor.Verse+1))
}

func (m *Model) captureHighlight() tea.Cmd {
	h, ok := m.session.CaptureHighlight()
	if !ok {
		return nil
	}
	m.markDirty()
	return m.showToast(fmt.Sprintf("Highlighted %d:%d.", h.Chapter+1, h.Verse+1))
}

func (m *Model) adjustScale(delta int) tea.Cmd {
	target := m.textScale + delta
	if target < minTextScale || target > maxTextScale {
		return nil
	}
	m.textScale = target
	m.markDirty()
	return m.showToast(fmt.Sprintf("Text scale %d/%d.", m.textScale, maxTextScale))
}

func (m *Model) jumpToNextSection() {
	if len(m.anchors) == 0 {
		return
	}
	current := m.viewport.YOffset
	for _, anchor := range sectionSequence {
		line, ok := m.anchors[anchor]
		if ok && line > current {
			m.viewport.SetYOffset(line)
			return
		}
	}
	m.viewport.GotoTop()
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastSeq++
	return toastExpiryCmd(m.toastSeq)
}

func (m *Model) markDirty() {
	m.contentDirty = true
}

// Snapshot captures the persistable part of the model for settings storage.
func (m *Model) Snapshot() settings.Settings {
	cursor := m.session.Cursor()
	return settings.Settings{
		Theme:       m.config.Theme.Name,
		TextScale:   m.textScale,
		LastChapter: cursor.Chapter,
		LastVerse:   cursor.Verse,
	}
}

// Session exposes the reading state, used by the command layer after the
// program exits and by tests.
func (m *Model) Session() *reading.Session {
	return m.session
}

func parseReference(ref string) (chapter, verse int, err error) {
	parts := strings.SplitN(strings.TrimSpace(ref), ":", 2)
	chapter, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid chapter in %q", ref)
	}
	verse = 1
	if len(parts) == 2 {
		verse, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid verse in %q", ref)
		}
	}
	// References are written one-based; the session indexes from zero.
	return chapter - 1, verse - 1, nil
}
