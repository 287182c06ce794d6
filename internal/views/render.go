package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	leftPaneWidth  = 44
	rightPaneWidth = 58
)

type AppData struct {
	Header       string
	Mode         string
	Width        int
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// modeColors stand in for the page background that follows the active mode.
var modeColors = map[string]lipgloss.Color{
	"pomodoro":   lipgloss.Color("#ba4949"),
	"shortBreak": lipgloss.Color("#38858a"),
	"longBreak":  lipgloss.Color("#397097"),
}

func modeColor(mode string) lipgloss.Color {
	if c, ok := modeColors[mode]; ok {
		return c
	}
	return lipgloss.Color("12")
}

// RenderApp lays the panes side by side, or stacked when the terminal is
// narrower than both together. Width 0 means unknown.
func RenderApp(data AppData) string {
	accent := modeColor(data.Mode)
	panel := panelStyle.BorderForeground(accent)

	var row string
	if data.Width > 0 && data.Width < leftPaneWidth+rightPaneWidth+4 {
		w := max(data.Width-4, 20)
		row = lipgloss.JoinVertical(lipgloss.Left,
			panel.Width(w).Render(data.LeftPane),
			panel.Width(w).Render(data.RightPane),
		)
	} else {
		row = lipgloss.JoinHorizontal(lipgloss.Top,
			panel.Width(leftPaneWidth).Render(data.LeftPane),
			panel.Width(rightPaneWidth).Render(data.RightPane),
		)
	}

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
