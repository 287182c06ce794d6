package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/commands"
)

func (m Model) openPalette() (Model, tea.Cmd) {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	blink := m.commandInput.Focus()
	return m, blink
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

// executePaletteCommand runs the typed command. Work that must not block the
// UI comes back as the follow-up command.
func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette(), nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if err := m.addTask(a.Title); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Tasks.Visible = true
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			m.selectMode(a.Mode)
			return commands.Result{Message: fmt.Sprintf("mode: %s", a.Mode.Label())}, nil
		},
		Adjust: func(a commands.AdjustArgs) (commands.Result, error) {
			if !m.adjust(a.DeltaSec) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "duration must stay above zero"}
			}
			mode := m.Timer.Mode()
			return commands.Result{Message: fmt.Sprintf("%s set to %s", mode.Label(), formatDuration(m.Timer.Registry().Duration(mode)))}, nil
		},
		Play: func(a commands.PlayArgs) (commands.Result, error) {
			markPlayed, err := m.toggleTrack(a.Index - 1)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			follow = markPlayed
			return commands.Result{Message: m.Status.Text}, nil
		},
		Volume: func(a commands.VolumeArgs) (commands.Result, error) {
			if err := m.setVolume(a.Level); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("volume %d", m.Music.Volume())}, nil
		},
		Clear: func(commands.ClearArgs) (commands.Result, error) {
			n := m.clearTasks()
			return commands.Result{Message: fmt.Sprintf("cleared %d task(s)", n)}, nil
		},
		Track: func(a commands.TrackArgs) (commands.Result, error) {
			msg, err := m.editPlaylist(a)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: msg}, nil
		},
		Save: func(commands.SaveArgs) (commands.Result, error) {
			write, err := m.saveConfig()
			if err != nil {
				return commands.Result{}, err
			}
			follow = write
			return commands.Result{Message: "saving config"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}
	return m.closePalette(), follow
}

// closePalette hides the palette and hands keys back to the panes.
func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}
