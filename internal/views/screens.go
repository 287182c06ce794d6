package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// maxTaskWidth keeps long task titles on one line of the right pane.
const maxTaskWidth = 46

type ModeTabData struct {
	ID     string
	Label  string
	Active bool
}

type TimerPanelData struct {
	Tabs         []ModeTabData
	Mode         string
	Hours        string
	Minutes      string
	Seconds      string
	Action       string
	Running      bool
	SpinnerView  string
	Sessions     int
	Interval     int
	ProgressView string
	ProgressPct  int
}

type TodoItemData struct {
	Title    string
	Done     bool
	Selected bool
}

type TodoPanelData struct {
	Visible   bool
	Focused   bool
	InputView string
	Items     []TodoItemData
}

type ClockPanelData struct {
	Time     string
	Meridiem string
	Date     string
}

type MusicPanelData struct {
	Expanded      bool
	ListView      string
	Playing       string
	VolumeVisible bool
	Volume        int
	VolumeLevel   string
	VolumeView    string
}

type HelpPanelData struct {
	Bindings   []string
	HelpView   string
	CheatSheet string
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15"))
	digitsStyle    = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderTimerPanel(data TimerPanelData) string {
	tabs := make([]string, 0, len(data.Tabs))
	for _, tab := range data.Tabs {
		if tab.Active {
			tabs = append(tabs, activeTabStyle.Background(modeColor(tab.ID)).Render(tab.Label))
			continue
		}
		tabs = append(tabs, tabStyle.Render(tab.Label))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")
	digits := data.Minutes + ":" + data.Seconds
	if data.Hours != "" {
		digits = data.Hours + ":" + digits
	}
	b.WriteString(digitsStyle.Foreground(modeColor(data.Mode)).Render(digits) + "\n")
	action := fmt.Sprintf("[ %s ]", strings.ToUpper(data.Action))
	if data.Running && data.SpinnerView != "" {
		action = data.SpinnerView + " " + action
	}
	b.WriteString(action + "\n")
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions: #%d (long break every %d)", data.Sessions, data.Interval))
	return strings.TrimSpace(b.String())
}

func RenderClockPanel(data ClockPanelData) string {
	return fmt.Sprintf("clock:\n%s %s\n%s", data.Time, data.Meridiem, mutedStyle.Render(data.Date))
}

func RenderTodoPanel(data TodoPanelData) string {
	if !data.Visible {
		return ""
	}
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.InputView + "\n")
	if data.Focused {
		b.WriteString("actions: [enter]add [esc]leave input\n")
	} else {
		b.WriteString("actions: [a]type [j/k]move [x]done [d]delete [C]clear all\n")
	}
	if len(data.Items) == 0 {
		b.WriteString(mutedStyle.Render("(no tasks)"))
		return b.String()
	}
	for _, item := range data.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		box := "[ ]"
		title := ansi.Truncate(item.Title, maxTaskWidth, "…")
		if item.Done {
			box = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, title))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderMusicPanel(data MusicPanelData) string {
	if !data.Expanded {
		return "music: [m] show player"
	}
	var b strings.Builder
	b.WriteString("music:\n")
	if data.Playing != "" {
		b.WriteString(fmt.Sprintf("now playing: %s\n", data.Playing))
	} else {
		b.WriteString("now playing: (paused)\n")
	}
	b.WriteString(data.ListView + "\n")
	if data.VolumeVisible {
		b.WriteString(fmt.Sprintf("volume %s %s %d\n", volumeIcon(data.VolumeLevel), data.VolumeView, data.Volume))
		b.WriteString("actions: [up/down]select [p]play/pause [</>]volume [v]hide volume")
	} else {
		b.WriteString("actions: [up/down]select [p]play/pause [v]volume")
	}
	return strings.TrimSpace(b.String())
}

func volumeIcon(level string) string {
	switch level {
	case "mute":
		return "(mute)"
	case "down":
		return "(low)"
	default:
		return "(high)"
	}
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	parts := []string{"help:", strings.Join(data.Bindings, "\n"), data.HelpView}
	if data.CheatSheet != "" {
		parts = append(parts, data.CheatSheet)
	}
	return strings.Join(parts, "\n")
}
