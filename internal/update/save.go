package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

// saveConfig folds the live mode durations and adjust step into the runtime
// config and returns the file write as a command.
func (m *Model) saveConfig() (tea.Cmd, error) {
	if m.configPath == "" {
		return nil, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no config path, set FOCUSD_CONFIG"}
	}
	reg := m.Timer.Registry()
	cfg := m.config
	minutes := map[model.Mode]*int{
		model.ModePomodoro:   &cfg.PomodoroMinutes,
		model.ModeShortBreak: &cfg.ShortBreakMinutes,
		model.ModeLongBreak:  &cfg.LongBreakMinutes,
	}
	for _, mode := range model.Modes {
		seconds := reg.Duration(mode)
		if seconds%60 != 0 {
			return nil, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: fmt.Sprintf("%s is %s, only whole minutes can be saved", mode.Label(), formatDuration(seconds)),
			}
		}
		*minutes[mode] = seconds / 60
	}
	cfg.AdjustStepSeconds = m.AdjustStep
	m.config = cfg
	return saveConfigCmd(m.configPath, cfg), nil
}

func saveConfigCmd(path string, cfg RuntimeConfig) tea.Cmd {
	return func() tea.Msg {
		if err := SaveRuntimeConfig(path, cfg); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SetStatusMsg{Text: "config saved to " + path}
	}
}
