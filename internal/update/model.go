package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/focusd/internal/clock"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/music"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/timer"
	"github.com/sandeepkv93/focusd/internal/views"
)

// countdownAlarmID names the single completion alarm kept in the scheduler.
const countdownAlarmID = "countdown"

// defaultStatusTTL is how long a status line stays before it is cleared.
const defaultStatusTTL = 5 * time.Second

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Toggle     string
	Main       string
	Tasks      string
	Music      string
	Volume     string
	Fullscreen string
	Help       string
	Quit       string
}

type Model struct {
	Timer          *timer.Machine
	Music          *music.Panel
	Tasks          TodoState
	Palette        CommandPaletteState
	HelpVisible    bool
	Fullscreen     bool
	Width          int
	Scheduler      *scheduler.Engine
	AlarmLog       []scheduler.Alarm
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Now            time.Time
	AdjustStep     int

	clock     clock.Clock
	sounds    timer.Notifier
	presenter *snapshotPresenter
	library   storage.TrackRepository
	title     string
	// config is what save writes back, with the live durations merged in.
	config     RuntimeConfig
	configPath string
	statusSeq  uint64
	statusTTL  time.Duration
	// Bubble components used for rich TUI controls
	taskInput      textinput.Model
	commandInput   textinput.Model
	trackList      list.Model
	trackCursor    int
	timerProgress  progress.Model
	volumeProgress progress.Model
	runSpinner     spinner.Model
	helpModel      help.Model
	cheatSheet     string
}

type TodoState struct {
	Visible  bool
	Focused  bool
	Input    string
	Items    []model.Task
	Cursor   int
	Finished int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Dependencies are the collaborators wired in by the entrypoint. Zero values
// fall back to silent in-memory implementations.
type Dependencies struct {
	Scheduler *scheduler.Engine
	Desktop   DesktopNotifier
	Sounds    timer.Notifier
	Music     music.Backend
	Tracks    []model.Track
	Library   storage.TrackRepository
	Clock     clock.Clock
	// ConfigPath is where the save command writes. Empty disables saving.
	ConfigPath string
}

// TimerTickMsg is the periodic countdown tick. Gen must match the machine's
// live generation or the tick is dropped.
type TimerTickMsg struct {
	Gen uint64
}

type WallClockTickMsg struct {
	At time.Time
}

type AlarmDueMsg struct {
	Alarm scheduler.Alarm
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg expires the status line set under Seq. A newer status keeps
// its own timer, so stale clears are ignored.
type ClearStatusMsg struct {
	Seq uint64
}

// AppErrorMsg reports a failure from a background command.
type AppErrorMsg struct {
	Err error
}

func NewModelWithConfig(deps Dependencies, cfg RuntimeConfig) (Model, error) {
	registry, err := model.NewRegistry(cfg.Durations(), cfg.LongBreakInterval)
	if err != nil {
		return Model{}, fmt.Errorf("build mode registry: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Sounds == nil {
		deps.Sounds = timer.NoopNotifier{}
	}
	if deps.Tracks == nil {
		deps.Tracks = model.DefaultTracks()
	}
	step := cfg.AdjustStepSeconds
	if step <= 0 {
		step = DefaultRuntimeConfig().AdjustStepSeconds
	}

	m := Model{
		Scheduler:      deps.Scheduler,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Music:          music.NewPanel(deps.Tracks, deps.Music),
		Keys: GlobalKeyMap{
			Toggle:     " ",
			Main:       "s",
			Tasks:      "t",
			Music:      "m",
			Volume:     "v",
			Fullscreen: "f",
			Help:       "?",
			Quit:       "q",
		},
		AdjustStep: step,
		clock:      deps.Clock,
		sounds:     deps.Sounds,
		presenter:  &snapshotPresenter{},
		library:    deps.Library,
		config:     cfg,
		configPath: deps.ConfigPath,
		statusTTL:  defaultStatusTTL,
	}
	if deps.Desktop != nil {
		m.notifier = deps.Desktop
	}
	m.Now = m.clock.Now()
	m.Timer = timer.New(registry, m.clock, m.presenter, m.sounds)
	m.title = m.presenter.Last().Title()
	m.initBubbleComponents()
	m.syncBubbleData()
	return m, nil
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.Placeholder = "what are you working on?"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.trackList = list.New([]list.Item{}, list.NewDefaultDelegate(), 54, 10)
	m.trackList.Title = "Lofi playlist"
	m.trackList.SetShowHelp(false)
	m.trackList.SetFilteringEnabled(false)

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(28))
	m.volumeProgress = progress.New(progress.WithSolidFill("#38858a"), progress.WithoutPercentage(), progress.WithWidth(20))

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.cheatSheet = views.RenderMarkdown(cheatSheetMarkdown)
}

func (m *Model) syncBubbleData() {
	tracks := m.Music.Tracks()
	items := make([]list.Item, 0, len(tracks))
	for i, track := range tracks {
		desc := fmt.Sprintf("#%d", i+1)
		if track.ID == m.Music.Current() {
			desc += " | playing"
		}
		items = append(items, listItem{title: track.Title, description: desc})
	}
	m.trackList.SetItems(items)
	if m.trackCursor >= len(items) {
		m.trackCursor = max(len(items)-1, 0)
	}
	if len(items) > 0 {
		m.trackList.Select(m.trackCursor)
	}

	m.taskInput.SetValue(m.Tasks.Input)
	// Focusing again would restart the cursor blink the key handlers started.
	if !m.Tasks.Focused {
		m.taskInput.Blur()
	} else if !m.taskInput.Focused() {
		m.taskInput.Focus()
	}
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active && !m.commandInput.Focused() {
		m.commandInput.Focus()
	}
}

// inputFocused reports whether typed keys belong to a text box.
func (m Model) inputFocused() bool {
	return m.Palette.Active || (m.Tasks.Visible && m.Tasks.Focused)
}
