package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskmanager/internal/models"
	"taskmanager/internal/tasks"
)

type tab int

const (
	tabTasks tab = iota
	tabSettings
)

func (t tab) String() string {
	if t == tabSettings {
		return "Settings"
	}
	return "Tasks"
}

type mode int

const (
	modeList mode = iota
	modeInput
	modeConfirm
	modeAlert
)

// Dialog texts.
const (
	alertInvalidTask = "Please enter a valid task."
	confirmDelete    = "Do you really want to delete this task?"
)

// Model is the root bubbletea model: a header, a tab bar and the active screen.
type Model struct {
	ctx  context.Context
	list *tasks.List
	info models.AppInfo

	tab            tab
	mode           mode
	cursor         int
	settingsCursor int
	input          textinput.Model

	pending     *models.Task
	alert       string
	alertReturn mode
	status      string
	warn        bool
}

// NewModel creates the root model over an already loaded task list. A
// non-nil loadErr is shown in the status line.
func NewModel(ctx context.Context, list *tasks.List, info models.AppInfo, loadErr error) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a task"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctx:    ctx,
		list:   list,
		info:   info,
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
	}
	if loadErr != nil {
		m.status = fmt.Sprintf("Saved tasks could not be loaded: %v", loadErr)
		m.warn = true
	}
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, list *tasks.List, info models.AppInfo, loadErr error) error {
	program := tea.NewProgram(NewModel(ctx, list, info, loadErr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAlert:
			return m.updateAlert(msg.String())
		case modeConfirm:
			return m.updateDeleteConfirm(msg.String())
		case modeInput:
			return m.updateInput(msg)
		}
		return m.updateList(msg.String())
	case tea.WindowSizeMsg:
		if w := msg.Width - 10; w > 0 {
			m.input.Width = w
		}
	}
	return m, nil
}

func (m Model) showAlert(text string) Model {
	m.alertReturn = m.mode
	m.alert = text
	m.mode = modeAlert
	return m
}

func (m Model) updateAlert(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "esc", " ":
		m.alert = ""
		m.mode = m.alertReturn
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.Blur()
		m.setStatus("Cancelled", false)
		return m, nil
	case "enter":
		task, err := m.list.Add(m.ctx, m.input.Value())
		if errors.Is(err, models.ErrEmptyText) {
			return m.showAlert(alertInvalidTask), nil
		}
		if err != nil {
			m.setStatus(fmt.Sprintf("add failed: %v", err), true)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.cursor = clampCursor(m.list.Len()-1, m.list.Len())
		m.reportSaved(fmt.Sprintf("Added %q", task.Text))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.tab == tabTasks {
			m.tab = tabSettings
		} else {
			m.tab = tabTasks
		}
		return m, nil
	}

	if m.tab == tabSettings {
		return m.updateSettings(key)
	}
	return m.updateTasks(key)
}

func (m Model) updateTasks(key string) (tea.Model, tea.Cmd) {
	list := m.list.Tasks()

	switch key {
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(list))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(list))
	case "a":
		m.mode = modeInput
		m.setStatus("Type a task and press Enter", false)
		cmd := m.input.Focus()
		return m, cmd
	case " ", "enter", "x":
		if len(list) == 0 {
			return m, nil
		}
		task, _ := m.list.Toggle(m.ctx, list[m.cursor].ID)
		m.reportSaved(fmt.Sprintf("Marked %q %s", task.Text, task.Status()))
	case "d":
		if len(list) == 0 {
			return m, nil
		}
		t := list[m.cursor]
		m.pending = &t
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	var answer bool
	switch key {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return m, nil
	}

	pending := m.pending
	m.pending = nil
	m.mode = modeList
	if pending == nil {
		return m, nil
	}

	removed, err := m.list.Remove(m.ctx, pending.ID, tasks.Answer(answer))
	switch {
	case err != nil:
		m.setStatus(fmt.Sprintf("delete failed: %v", err), true)
	case removed:
		m.cursor = clampCursor(m.cursor, m.list.Len())
		m.reportSaved("Deleted task")
	default:
		m.setStatus("Delete cancelled", false)
	}
	return m, nil
}

func (m Model) updateSettings(key string) (tea.Model, tea.Cmd) {
	n := len(m.info.Actions)
	switch key {
	case "down", "j":
		m.settingsCursor = clampCursor(m.settingsCursor+1, n)
	case "up", "k":
		m.settingsCursor = clampCursor(m.settingsCursor-1, n)
	case "enter", " ":
		if n == 0 {
			return m, nil
		}
		return m.showAlert(m.info.Actions[m.settingsCursor].Notice()), nil
	}
	return m, nil
}

// setStatus sets the status line. Errors are highlighted as warnings.
func (m *Model) setStatus(msg string, warn bool) {
	m.status = msg
	m.warn = warn
}

// reportSaved sets the status after a mutation, warning when the write failed.
func (m *Model) reportSaved(msg string) {
	if err := m.list.SaveErr(); err != nil {
		m.setStatus(fmt.Sprintf("%s (not saved: %v)", msg, err), true)
		return
	}
	m.setStatus(msg, false)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(m.info.Name))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.tab == tabSettings {
		b.WriteString(m.renderSettings())
	} else {
		b.WriteString(m.renderTasks())
	}

	switch m.mode {
	case modeConfirm:
		if m.pending != nil {
			b.WriteString("\n\n")
			b.WriteString(DialogStyle.Render(fmt.Sprintf("%s\n%q\n\n[y] Yes  [n] Cancel", confirmDelete, m.pending.Text)))
		}
	case modeAlert:
		b.WriteString("\n\n")
		b.WriteString(AlertStyle.Render(m.alert + "\n\n[enter] OK"))
	}

	b.WriteString("\n\n")
	if m.warn {
		b.WriteString(WarningStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []tab{tabTasks, tabSettings}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.tab {
			parts = append(parts, ActiveTabStyle.Render("["+t.String()+"]"))
		} else {
			parts = append(parts, TabStyle.Render(" "+t.String()+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderTasks() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	list := m.list.Tasks()
	if len(list) == 0 {
		b.WriteString(MutedStyle.Render("No tasks yet. Press 'a' to add one."))
		return b.String()
	}

	for i, task := range list {
		prefix := "  "
		if i == m.cursor && m.mode != modeInput {
			prefix = CursorStyle.Render("> ")
		}
		text := task.Text
		if task.Completed {
			text = CompletedStyle.Render(text)
		}
		b.WriteString(prefix + text)
		if i < len(list)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderSettings() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Version: %s\n", m.info.Version)
	b.WriteString(m.info.Description)
	b.WriteString("\n\n")

	for i, action := range m.info.Actions {
		prefix := "  "
		if i == m.settingsCursor {
			prefix = CursorStyle.Render("> ")
		}
		b.WriteString(prefix + action.Label)
		if i < len(m.info.Actions)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderHelp() string {
	switch m.mode {
	case modeInput:
		return "enter add • esc cancel"
	case modeConfirm:
		return "y delete • n cancel"
	case modeAlert:
		return "enter dismiss"
	}
	if m.tab == tabSettings {
		return "↑/↓ move • enter select • tab switch • q quit"
	}
	return "↑/↓ move • a add • space toggle • d delete • tab switch • q quit"
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
