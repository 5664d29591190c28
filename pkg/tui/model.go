package tui

import (
	"strings"

	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/arnavshah/shift-lookup-go/pkg/session"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the interactive lookup screen. It shows the search step until a
// person is chosen and the shift list afterwards.
type Model struct {
	session *session.Session
	notes   []models.NoteBlock
	input   textinput.Model
	cursor  int
	styles  Styles
	width   int
}

// NewModel creates the lookup screen over s
func NewModel(s *session.Session, notes []models.NoteBlock, styles Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "名前を入力..."
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()

	return Model{
		session: s,
		notes:   notes,
		input:   ti,
		styles:  styles,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State exposes the selection state
func (m Model) State() session.State {
	return m.session.State()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.session.State().IsSelected() {
			return m.updateDetail(msg)
		}
		return m.updateSearch(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidates := m.session.View().Candidates

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(candidates)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(candidates) == 0 {
			return m, nil
		}
		m.session.Select(candidates[m.cursor])
		m.input.SetValue(m.session.State().SearchText)
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.session.State().SearchText {
		m.session.SetSearchText(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "c", "backspace":
		m.session.Clear()
		m.input.SetValue("")
		m.cursor = 0
		return m, m.input.Focus()
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(Title))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtle.Render("将棋サロン・わらび餅シフト"))
	sb.WriteString("\n\n")

	view := m.session.View()
	if view.Selected == "" {
		sb.WriteString("名前を検索してください\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		for i, name := range view.Candidates {
			if i == m.cursor {
				sb.WriteString(m.styles.Selected.Render("▸ " + name))
			} else {
				sb.WriteString("  " + name)
			}
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Subtle.Render("↑/↓ 移動 • enter 選択 • esc 終了"))
	} else {
		sb.WriteString(RenderGroups(view.Selected, view.Groups, view.Total, m.styles))
		sb.WriteString(m.styles.Subtle.Render("c 変更 • q 終了"))
	}
	sb.WriteString("\n\n")

	notes := RenderNotes(m.notes, m.styles)
	if m.width > 0 {
		notes = m.styles.Box.Width(m.width - 4).Render(strings.TrimRight(notes, "\n"))
	}
	sb.WriteString(notes)
	return sb.String()
}
