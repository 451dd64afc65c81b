// Package tui is the terminal front-end. The model implements app.Surface
// and turns key presses into controller events.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/app"
	"todolist/internal/models"
	"todolist/internal/store"
	"todolist/internal/tasklist"
)

type field int

const (
	fieldTitle field = iota
	fieldPriority
	fieldCategory
	fieldSearch
	fieldFilterPriority
	fieldFilterCategory
	fieldList
	fieldCount
)

// ThemeMsg switches the theme from outside the program, e.g. after the
// config file changed.
type ThemeMsg struct {
	Dark bool
}

// Model is the bubbletea model for the to-do list.
type Model struct {
	ctx        context.Context
	controller *app.Controller
	keys       keyMap
	styles     styles

	title          textinput.Model
	search         textinput.Model
	priority       int
	category       int
	filterPriority int
	filterCategory int
	focus          field

	items  []tasklist.Item
	cursor int

	prompt string
	answer func(bool)
	status string
	width  int
}

// New creates a model backed by s and loads the list.
func New(ctx context.Context, s store.Store, opts ...app.Option) (*Model, error) {
	title := textinput.New()
	title.Placeholder = "Enter task"
	title.CharLimit = 256
	title.Focus()

	search := textinput.New()
	search.Placeholder = "Search tasks"
	search.CharLimit = 256

	m := &Model{
		ctx:    ctx,
		keys:   keys,
		styles: newStyles(false),
		title:  title,
		search: search,
	}
	m.controller = app.New(s, m, opts...)

	if err := m.controller.Start(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// Run starts the program and blocks until the user quits. Values received
// on themes switch the theme while it runs.
func Run(ctx context.Context, m *Model, themes <-chan bool) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	if themes != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case dark, ok := <-themes:
					if !ok {
						return
					}
					p.Send(ThemeMsg{Dark: dark})
				}
			}
		}()
	}

	_, err := p.Run()
	return err
}

// Values implements app.Surface.
func (m *Model) Values() app.Form {
	return app.Form{
		Title:    m.title.Value(),
		Priority: models.Priorities[m.priority],
		Category: models.Categories[m.category],
		Filter: tasklist.Filter{
			Search:   m.search.Value(),
			Priority: tasklist.PriorityOptions()[m.filterPriority],
			Category: tasklist.CategoryOptions()[m.filterCategory],
		},
	}
}

// ClearTitle implements app.Surface.
func (m *Model) ClearTitle() { m.title.SetValue("") }

// Show implements app.Surface.
func (m *Model) Show(items []tasklist.Item) {
	m.items = items
	m.cursor = clampCursor(m.cursor, len(items))
}

// ApplyTheme implements app.Surface.
func (m *Model) ApplyTheme(dark bool) {
	m.styles = newStyles(dark)
}

// Confirm implements app.Surface. The answer is given by the next y or n.
func (m *Model) Confirm(prompt string, answer func(bool)) {
	m.prompt = prompt + " (y/n)"
	m.answer = answer
}

// Notify implements app.Surface.
func (m *Model) Notify(err error) {
	m.status = err.Error()
}

// Init starts the cursor blinking in the focused input.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes and theme messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.title.Width = msg.Width - 12
		m.search.Width = msg.Width - 12
		return m, nil
	case ThemeMsg:
		m.controller.SetDarkMode(msg.Dark)
		return m, nil
	case tea.KeyMsg:
		if m.answer != nil {
			return m, m.updateConfirm(msg)
		}
		return m, m.updateKey(msg)
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	answer := m.answer
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Yes):
		m.answer, m.prompt = nil, ""
		answer(true)
	case key.Matches(msg, m.keys.No):
		m.answer, m.prompt = nil, ""
		answer(false)
	case key.Matches(msg, m.keys.Cancel):
		m.answer, m.prompt = nil, ""
	}
	return nil
}

// Controller failures reach the status line through Notify, so the errors
// returned by the event methods below are not inspected again.
func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Theme):
		_ = m.controller.ToggleTheme(m.ctx)
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	switch m.focus {
	case fieldTitle:
		if key.Matches(msg, m.keys.Submit) {
			_ = m.controller.Add(m.ctx)
			return nil
		}
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		return cmd
	case fieldSearch:
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			_ = m.controller.Dispatch(m.ctx, app.Event{Name: app.EventSearchChanged})
		}
		return cmd
	case fieldPriority:
		m.priority = m.cycle(msg, m.priority, len(models.Priorities))
	case fieldCategory:
		m.category = m.cycle(msg, m.category, len(models.Categories))
	case fieldFilterPriority:
		if next := m.cycle(msg, m.filterPriority, len(tasklist.PriorityOptions())); next != m.filterPriority {
			m.filterPriority = next
			_ = m.controller.Dispatch(m.ctx, app.Event{Name: app.EventPriorityFilterChanged})
		}
	case fieldFilterCategory:
		if next := m.cycle(msg, m.filterCategory, len(tasklist.CategoryOptions())); next != m.filterCategory {
			m.filterCategory = next
			_ = m.controller.Dispatch(m.ctx, app.Event{Name: app.EventCategoryFilterChanged})
		}
	case fieldList:
		return m.updateList(msg)
	}
	return nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ListQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.MoveUp):
		m.move(m.cursor - 1)
	case key.Matches(msg, m.keys.MoveDown):
		m.move(m.cursor + 1)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.items))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.items))
	case key.Matches(msg, m.keys.Delete):
		if len(m.items) > 0 {
			_ = m.controller.Delete(m.ctx, m.items[m.cursor].ID)
		}
	}
	return nil
}

func (m *Model) move(to int) {
	if to < 0 || to >= len(m.items) {
		return
	}
	if err := m.controller.Move(m.ctx, m.cursor, to); err == nil {
		m.cursor = to
	}
}

func (m *Model) cycle(msg tea.KeyMsg, current, n int) int {
	switch {
	case key.Matches(msg, m.keys.Left):
		return (current + n - 1) % n
	case key.Matches(msg, m.keys.Right):
		return (current + 1) % n
	}
	return current
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.search.Blur()
	switch f {
	case fieldTitle:
		return m.title.Focus()
	case fieldSearch:
		return m.search.Focus()
	}
	return nil
}

// View renders the form, the filters, the list and the status line.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("To-Do List"))
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldTitle, "Task"))
	b.WriteString(m.title.View())
	b.WriteString("\n")
	b.WriteString(m.label(fieldPriority, "Priority"))
	b.WriteString(choice(string(models.Priorities[m.priority])))
	b.WriteString("  ")
	b.WriteString(m.label(fieldCategory, "Category"))
	b.WriteString(choice(string(models.Categories[m.category])))
	b.WriteString("\n")
	b.WriteString(m.label(fieldSearch, "Search"))
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.label(fieldFilterPriority, "Show"))
	b.WriteString(choice(tasklist.PriorityOptions()[m.filterPriority]))
	b.WriteString("  ")
	b.WriteString(m.label(fieldFilterCategory, "In"))
	b.WriteString(choice(tasklist.CategoryOptions()[m.filterCategory]))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.styles.Status.Render("No tasks."))
		b.WriteString("\n")
	}
	for i, item := range m.items {
		line := m.styles.forPriority(item.Color).Render(item.Label)
		if m.focus == fieldList && i == m.cursor {
			line = m.styles.Cursor.Render("> " + item.Label)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.prompt != "":
		b.WriteString(m.styles.Prompt.Render(m.prompt))
	case m.status != "":
		b.WriteString(m.styles.Error.Render(m.status))
	default:
		b.WriteString(m.styles.Help.Render(m.help()))
	}
	b.WriteString("\n")

	return m.styles.Base.Render(b.String())
}

func (m *Model) label(f field, name string) string {
	text := fmt.Sprintf("%-9s", name+":")
	if m.focus == f {
		return m.styles.Focused.Render(text)
	}
	return m.styles.Label.Render(text)
}

func (m *Model) help() string {
	bindings := []key.Binding{m.keys.Next, m.keys.Theme, m.keys.Quit}
	switch m.focus {
	case fieldTitle:
		bindings = append(bindings, m.keys.Submit)
	case fieldList:
		bindings = append(bindings, m.keys.MoveUp, m.keys.MoveDown, m.keys.Delete)
	case fieldPriority, fieldCategory, fieldFilterPriority, fieldFilterCategory:
		bindings = append(bindings, m.keys.Left, m.keys.Right)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func choice(v string) string {
	return "‹ " + v + " ›"
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
