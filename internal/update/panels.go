package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/clock"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) renderTimerView() string {
	snap := m.presenter.Last()
	tabs := make([]views.ModeTabData, 0, len(model.Modes))
	for _, mode := range model.Modes {
		tabs = append(tabs, views.ModeTabData{ID: string(mode), Label: mode.Label(), Active: mode == snap.Mode})
	}
	progress := snap.Progress()
	return views.RenderTimerPanel(views.TimerPanelData{
		Tabs:         tabs,
		Mode:         string(snap.Mode),
		Hours:        snap.Hours(),
		Minutes:      snap.Minutes(),
		Seconds:      snap.Seconds(),
		Action:       snap.Action.Label(),
		Running:      snap.Running,
		SpinnerView:  m.runSpinner.View(),
		Sessions:     snap.Sessions,
		Interval:     m.Timer.Registry().LongBreakInterval(),
		ProgressView: m.timerProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
	})
}

func (m Model) renderClockView() string {
	wall := clock.Wall(m.Now)
	return views.RenderClockPanel(views.ClockPanelData{
		Time:     wall.Time,
		Meridiem: wall.Meridiem,
		Date:     wall.Date,
	})
}

func (m Model) renderTodoView() string {
	items := make([]views.TodoItemData, 0, len(m.Tasks.Items))
	for i, task := range m.Tasks.Items {
		items = append(items, views.TodoItemData{
			Title:    task.Title,
			Done:     task.Done,
			Selected: !m.Tasks.Focused && i == m.Tasks.Cursor,
		})
	}
	return views.RenderTodoPanel(views.TodoPanelData{
		Visible:   m.Tasks.Visible,
		Focused:   m.Tasks.Focused,
		InputView: m.taskInput.View(),
		Items:     items,
	})
}

func (m Model) renderMusicView() string {
	playing := ""
	if track, ok := m.Music.Track(m.Music.Current()); ok {
		playing = track.Title
	}
	return views.RenderMusicPanel(views.MusicPanelData{
		Expanded:      m.Music.Expanded(),
		ListView:      m.trackList.View(),
		Playing:       playing,
		VolumeVisible: m.Music.VolumeVisible(),
		Volume:        m.Music.Volume(),
		VolumeLevel:   string(m.Music.Level()),
		VolumeView:    m.volumeProgress.ViewAs(float64(m.Music.Volume()) / 100),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// notify appends to the bounded notification log and returns the entry.
func (m *Model) notify(title, body, level string) Notification {
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	if strings.TrimSpace(body) == "" {
		return n
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	return n
}

func joinSections(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
