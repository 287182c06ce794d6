package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/focusd/internal/views"
)

const cheatSheetMarkdown = `## Focus timer

| Key | Action |
| --- | --- |
| space | start / stop |
| s | main button (with click) |
| left / right | previous / next mode (stops the timer) |
| 1 2 3 | pomodoro, short break, long break |
| + / - | lengthen / shorten the active mode |

Palette examples: ` + "`/add review notes`" + `, ` + "`/mode long`" + `, ` + "`/adjust -90s`" + `, ` + "`/play 2`" + `, ` + "`/volume 30`" + `.

Playlist: ` + "`/track add ~/music/rain.mp3 Rain`" + `, ` + "`/track rename 2 Deep Work`" + `, ` + "`/track rm 3`" + `, ` + "`/track reset`" + `. ` + "`/save`" + ` writes the current durations to the config file.
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.contextBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := toKeyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global},
		}),
		CheatSheet: m.cheatSheet,
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "space", Action: "start/stop"},
		{Key: "h/l", Action: "cycle mode"},
		{Key: "1/2/3", Action: "select mode"},
		{Key: "+/-", Action: "adjust duration"},
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Music, Action: "music"},
		{Key: m.Keys.Fullscreen, Action: "fullscreen"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) contextBindings() []KeyBinding {
	var out []KeyBinding
	if m.Tasks.Visible {
		out = append(out,
			KeyBinding{Key: "a", Action: "type a new task"},
			KeyBinding{Key: "j/k", Action: "move task cursor"},
			KeyBinding{Key: "x", Action: "mark task done"},
			KeyBinding{Key: "d", Action: "delete task"},
			KeyBinding{Key: "C", Action: "clear all tasks"},
		)
	}
	if m.Music.Expanded() {
		out = append(out,
			KeyBinding{Key: "up/down", Action: "move track cursor"},
			KeyBinding{Key: "p", Action: "play/pause track"},
			KeyBinding{Key: m.Keys.Volume, Action: "toggle volume control"},
		)
		if m.Music.VolumeVisible() {
			out = append(out, KeyBinding{Key: "</>", Action: "volume down/up"})
		}
	}
	if len(out) == 0 {
		out = append(out, KeyBinding{Key: "-", Action: "no contextual bindings"})
	}
	return out
}

func toKeyBindings(bindings []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, kb := range bindings {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
