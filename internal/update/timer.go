package update

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/timer"
)

// snapshotPresenter keeps the latest state pushed by the timer so View and
// the window title never read a half-updated machine.
type snapshotPresenter struct {
	last     timer.Snapshot
	presents int
}

func (p *snapshotPresenter) Present(s timer.Snapshot) {
	p.last = s
	p.presents++
}

func (p *snapshotPresenter) Last() timer.Snapshot { return p.last }

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case m.Keys.Toggle:
		next, cmd := m.toggleTimer()
		return next, cmd, true
	case m.Keys.Main:
		m.click()
		next, cmd := m.toggleTimer()
		return next, cmd, true
	case "left", "h":
		m.Timer.CycleMode(-1)
		m.cancelAlarm()
		m.Status = StatusBar{Text: fmt.Sprintf("mode: %s", m.Timer.Mode().Label()), IsError: false}
		return m, nil, true
	case "right", "l":
		m.Timer.CycleMode(1)
		m.cancelAlarm()
		m.Status = StatusBar{Text: fmt.Sprintf("mode: %s", m.Timer.Mode().Label()), IsError: false}
		return m, nil, true
	case "1", "2", "3":
		m.click()
		m.selectMode(model.Modes[int(msg.String()[0]-'1')])
		return m, nil, true
	case "+", "=":
		m.click()
		m.adjust(m.AdjustStep)
		return m, nil, true
	case "-", "_":
		m.click()
		m.adjust(-m.AdjustStep)
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) toggleTimer() (Model, tea.Cmd) {
	if m.Timer.Running() {
		m.Timer.Stop()
		m.cancelAlarm()
		m.Status = StatusBar{Text: "timer stopped", IsError: false}
		return m, nil
	}
	return m.startTimer()
}

func (m Model) startTimer() (Model, tea.Cmd) {
	gen, started := m.Timer.Start()
	if !started {
		return m, nil
	}
	m.scheduleAlarm(gen)
	m.Status = StatusBar{Text: fmt.Sprintf("%s started", m.Timer.Mode().Label()), IsError: false}
	return m, tea.Batch(timerTickCmd(gen), m.runSpinner.Tick)
}

func (m *Model) selectMode(mode model.Mode) {
	m.Timer.SelectMode(mode)
	m.cancelAlarm()
	m.Status = StatusBar{Text: fmt.Sprintf("mode: %s", m.Timer.Mode().Label()), IsError: false}
}

func (m *Model) adjust(delta int) bool {
	if !m.Timer.Adjust(delta) {
		return false
	}
	mode := m.Timer.Mode()
	m.Status = StatusBar{Text: fmt.Sprintf("%s set to %s", mode.Label(), formatDuration(m.Timer.Registry().Duration(mode))), IsError: false}
	return true
}

func (m *Model) click() {
	m.sounds.Play(timer.SoundClick)
}

func (m Model) onTimerTick(msg TimerTickMsg) (Model, tea.Cmd) {
	res := m.Timer.Tick(msg.Gen)
	if res.Completed != nil {
		return m, m.onCompletion(*res.Completed)
	}
	if res.Continue {
		return m, timerTickCmd(msg.Gen)
	}
	return m, nil
}

// onAlarm forces a tick at the exact end instant, covering periodic ticks
// that arrive late or were throttled.
func (m Model) onAlarm(alarm scheduler.Alarm) (Model, tea.Cmd) {
	m.AlarmLog = append(m.AlarmLog, alarm)
	if len(m.AlarmLog) > 20 {
		m.AlarmLog = m.AlarmLog[len(m.AlarmLog)-20:]
	}
	if alarm.ID != countdownAlarmID || alarm.Gen != m.Timer.Generation() {
		return m, nil
	}
	res := m.Timer.Tick(alarm.Gen)
	if res.Completed != nil {
		return m, m.onCompletion(*res.Completed)
	}
	return m, nil
}

// onCompletion reports a finished countdown and returns the desktop
// notification, if enabled, as a command so a slow notifier never stalls input.
func (m *Model) onCompletion(done timer.Completion) tea.Cmd {
	m.cancelAlarm()
	title := "Focus session done"
	body := fmt.Sprintf("Session #%d finished. Up next: %s.", done.Sessions, done.Next.Label())
	if done.Finished.IsBreak() {
		title = "Break over"
		body = fmt.Sprintf("%s finished. Up next: %s.", done.Finished.Label(), done.Next.Label())
	}
	m.Status = StatusBar{Text: body, IsError: false}
	n := m.notify(title, body, "info")
	if !m.DesktopEnabled || m.notifier == nil {
		return nil
	}
	return desktopNotifyCmd(m.notifier, n)
}

func desktopNotifyCmd(notifier DesktopNotifier, n Notification) tea.Cmd {
	return func() tea.Msg {
		if err := notifier.Send(n); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("desktop notification: %w", err)}
		}
		return nil
	}
}

func (m *Model) scheduleAlarm(gen uint64) {
	if m.Scheduler == nil {
		return
	}
	err := m.Scheduler.Reschedule(scheduler.Alarm{
		ID:        countdownAlarmID,
		Gen:       gen,
		Label:     string(m.Timer.Mode()),
		TriggerAt: m.Timer.EndAt(),
	})
	if err != nil {
		log.Printf("schedule countdown alarm: %v", err)
	}
}

func (m *Model) cancelAlarm() {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.Cancel(countdownAlarmID)
}

func timerTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{Gen: gen} })
}

func wallClockTickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return WallClockTickMsg{At: t} })
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmDueMsg{Alarm: ev}
	}
}
