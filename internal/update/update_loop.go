package update

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		wallClockTickCmd(),
		tea.SetWindowTitle(m.presenter.Last().Title()),
	}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForAlarmCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if next.Status != m.Status && next.Status.Text != "" && next.statusTTL > 0 {
		next.statusSeq++
		cmd = tea.Batch(cmd, clearStatusCmd(next.statusTTL, next.statusSeq))
	}
	next.syncBubbleData()
	if title := next.presenter.Last().Title(); title != next.title {
		next.title = title
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case AlarmDueMsg:
		var cmd tea.Cmd
		m, cmd = m.onAlarm(typed.Alarm)
		if m.Scheduler != nil {
			return m, tea.Batch(cmd, waitForAlarmCmd(m.Scheduler.C()))
		}
		return m, cmd
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case WallClockTickMsg:
		m.Now = typed.At
		return m, wallClockTickCmd()
	case spinner.TickMsg:
		if m.Timer.Running() {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			log.Printf("focusd: %v", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// updateFocusedInput hands messages no pane claims, such as cursor blinks and
// clipboard pastes, to the text box that has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.Palette.Active:
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	case m.Tasks.Visible && m.Tasks.Focused:
		m.taskInput, cmd = m.taskInput.Update(msg)
		m.Tasks.Input = m.taskInput.Value()
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.inputFocused() {
		next, cmd, _ := m.handleTodoKey(msg)
		return next, cmd
	}

	switch keyStr {
	case "/":
		return m.openPalette()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "help hidden", IsError: false}
		}
		return m, nil
	case m.Keys.Tasks:
		m.Tasks.Visible = !m.Tasks.Visible
		m.Tasks.Focused = m.Tasks.Visible
		if m.Tasks.Visible {
			m.Status = StatusBar{Text: "tasks shown", IsError: false}
			blink := m.taskInput.Focus()
			return m, blink
		}
		m.taskInput.Blur()
		m.Status = StatusBar{Text: "tasks hidden", IsError: false}
		return m, nil
	case m.Keys.Fullscreen:
		m.Fullscreen = !m.Fullscreen
		if m.Fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	case m.Keys.Quit:
		m.Quitting = true
		m.cancelAlarm()
		return m, tea.Quit
	}

	if next, cmd, ok := m.handleTimerKey(msg); ok {
		return next, cmd
	}
	if next, cmd, ok := m.handleMusicKey(msg); ok {
		return next, cmd
	}
	if m.Tasks.Visible {
		next, cmd, _ := m.handleTodoKey(msg)
		return next, cmd
	}
	return m, nil
}

func clearStatusCmd(ttl time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	snap := m.presenter.Last()

	leftPane := joinSections(m.renderTimerView(), m.renderClockView())
	rightPane := joinSections(
		m.renderTodoView(),
		m.renderMusicView(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	)

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focusd | %s | %s", snap.Mode.Label(), snap.Title()),
		Mode:         string(snap.Mode),
		Width:        m.Width,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: space start/stop | h/l mode | +/- adjust | %s tasks | %s music | %s full | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Music, m.Keys.Fullscreen, m.Keys.Help, m.Keys.Quit),
	})
}
