package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handleTodoKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.Tasks.Focused {
		switch msg.String() {
		case "esc":
			m.Tasks.Focused = false
			m.taskInput.Blur()
			m.Status = StatusBar{Text: "task list mode", IsError: false}
		case "enter":
			err := m.addTask(m.taskInput.Value())
			if errors.Is(err, model.ErrEmptyTaskTitle) {
				return m, nil, true
			}
			if err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m, nil, true
			}
			m.taskInput.SetValue("")
			m.Tasks.Input = ""
		default:
			var cmd tea.Cmd
			m.taskInput, cmd = m.taskInput.Update(msg)
			m.Tasks.Input = m.taskInput.Value()
			return m, cmd, true
		}
		return m, nil, true
	}

	switch msg.String() {
	case "a", "i", "enter":
		m.Tasks.Focused = true
		m.Status = StatusBar{Text: "task capture mode", IsError: false}
		blink := m.taskInput.Focus()
		return m, blink, true
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
	case "down", "j":
		if m.Tasks.Cursor < len(m.Tasks.Items)-1 {
			m.Tasks.Cursor++
		}
	case "x":
		m.toggleTaskAtCursor()
	case "d":
		m.deleteTaskAtCursor()
	case "C":
		m.clearTasks()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *Model) addTask(title string) error {
	task, err := model.NewTask(uuid.NewString(), title, m.clock.Now())
	if err != nil {
		return err
	}
	m.Tasks.Items = append(m.Tasks.Items, task)
	m.Tasks.Input = ""
	m.Tasks.Cursor = len(m.Tasks.Items) - 1
	m.Status = StatusBar{Text: "task added", IsError: false}
	return nil
}

func (m *Model) toggleTaskAtCursor() {
	if len(m.Tasks.Items) == 0 {
		return
	}
	item := &m.Tasks.Items[m.Tasks.Cursor]
	item.Done = !item.Done
	if item.Done {
		m.Tasks.Finished++
		m.Status = StatusBar{Text: fmt.Sprintf("done: %s", item.Title), IsError: false}
		return
	}
	m.Tasks.Finished--
	m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", item.Title), IsError: false}
}

func (m *Model) deleteTaskAtCursor() {
	if len(m.Tasks.Items) == 0 {
		return
	}
	removed := m.Tasks.Items[m.Tasks.Cursor]
	items := make([]model.Task, 0, len(m.Tasks.Items)-1)
	items = append(items, m.Tasks.Items[:m.Tasks.Cursor]...)
	m.Tasks.Items = append(items, m.Tasks.Items[m.Tasks.Cursor+1:]...)
	if removed.Done {
		m.Tasks.Finished--
	}
	if m.Tasks.Cursor >= len(m.Tasks.Items) && m.Tasks.Cursor > 0 {
		m.Tasks.Cursor--
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", removed.Title), IsError: false}
}

func (m *Model) clearTasks() int {
	n := len(m.Tasks.Items)
	m.Tasks.Items = nil
	m.Tasks.Cursor = 0
	m.Tasks.Finished = 0
	m.Status = StatusBar{Text: fmt.Sprintf("cleared %d task(s)", n), IsError: false}
	return n
}
