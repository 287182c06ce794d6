package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/clock"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/timer"
)

type recordingSounds struct {
	played []timer.Sound
}

func (r *recordingSounds) Play(s timer.Sound) { r.played = append(r.played, s) }

type recordingDesktop struct {
	sent []Notification
}

func (r *recordingDesktop) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type failingDesktop struct{}

func (failingDesktop) Send(Notification) error { return errors.New("no notification daemon") }

// brokenLibrary fails every play mark; other calls are never made.
type brokenLibrary struct {
	storage.TrackRepository
}

func (brokenLibrary) MarkPlayed(context.Context, string, time.Time) error {
	return errors.New("database is locked")
}

type recordingBackend struct {
	played []string
	paused int
	volume int
}

func (b *recordingBackend) Play(track model.Track, volume int) error {
	b.played = append(b.played, track.ID)
	b.volume = volume
	return nil
}

func (b *recordingBackend) Pause() error {
	b.paused++
	return nil
}

func (b *recordingBackend) SetVolume(volume int) error {
	b.volume = volume
	return nil
}

type harness struct {
	clock   *clock.Fake
	sounds  *recordingSounds
	desktop *recordingDesktop
	backend *recordingBackend
	engine  *scheduler.Engine
}

func newHarness(t *testing.T, cfg RuntimeConfig, opts ...func(*Dependencies)) (Model, harness) {
	t.Helper()
	h := harness{
		clock:   clock.NewFake(time.Date(2026, 10, 16, 9, 5, 0, 0, time.UTC)),
		sounds:  &recordingSounds{},
		desktop: &recordingDesktop{},
		backend: &recordingBackend{},
		engine:  scheduler.NewEngine(4),
	}
	deps := Dependencies{
		Scheduler: h.engine,
		Desktop:   h.desktop,
		Sounds:    h.sounds,
		Music:     h.backend,
		Clock:     h.clock,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	m, err := NewModelWithConfig(deps, cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.statusTTL = time.Millisecond
	return m, h
}

func openLibrary(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// collectMsgs runs cmd, expanding batches, and returns every message produced.
// Only call it on commands that finish without a running countdown.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("command did not finish")
	}
	switch typed := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range typed {
			out = append(out, collectMsgs(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// shorten sets the active pomodoro to seconds so tests can run it to completion.
func shorten(m Model, seconds int) Model {
	m.Timer.Registry().SetDuration(model.ModePomodoro, seconds)
	m.Timer.SwitchMode(model.ModePomodoro)
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runPalette(m Model, line string) Model {
	m, _ = press(m, "/", line, "enter")
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, err := NewModelWithConfig(Dependencies{}, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.Timer.Mode() != model.ModePomodoro || m.Timer.Running() {
		t.Fatalf("unexpected initial timer state: mode=%s running=%v", m.Timer.Mode(), m.Timer.Running())
	}
	snap := m.presenter.Last()
	if snap.Minutes() != "25" || snap.Seconds() != "00" || snap.Action != timer.ActionStart {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
	if m.title != "25:00 | Focus Timer" {
		t.Fatalf("unexpected initial title: %q", m.title)
	}
	if m.Keys.Quit != "q" || m.AdjustStep != 300 {
		t.Fatalf("unexpected defaults: keys=%+v step=%d", m.Keys, m.AdjustStep)
	}
	if len(m.Music.Tracks()) != 4 {
		t.Fatalf("expected default playlist, got %d tracks", len(m.Music.Tracks()))
	}
}

func TestNewModelRejectsInvalidInterval(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.LongBreakInterval = 0
	if _, err := NewModelWithConfig(Dependencies{}, cfg); !errors.Is(err, model.ErrInvalidInterval) {
		t.Fatalf("expected invalid interval error, got %v", err)
	}
}

func TestSpaceRunsCountdownToCompletion(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m = shorten(m, 3)

	m, cmd := press(m, "space")
	if !m.Timer.Running() {
		t.Fatal("expected timer running after space")
	}
	if cmd == nil {
		t.Fatal("expected tick cmd on start")
	}
	if len(h.sounds.played) != 0 {
		t.Fatalf("space should not click, got %v", h.sounds.played)
	}
	gen := m.Timer.Generation()

	h.clock.Advance(time.Second)
	m, cmd = send(m, TimerTickMsg{Gen: gen})
	if m.Timer.Remaining().Total != 2 {
		t.Fatalf("expected 2s left, got %d", m.Timer.Remaining().Total)
	}
	if cmd == nil {
		t.Fatal("expected next tick while running")
	}
	if m.title != "00:02 | Focus Timer" {
		t.Fatalf("unexpected title: %q", m.title)
	}

	h.clock.Advance(2 * time.Second)
	m, _ = send(m, TimerTickMsg{Gen: gen})
	if m.Timer.Running() {
		t.Fatal("expected timer stopped after completion")
	}
	if m.Timer.Mode() != model.ModeShortBreak || m.Timer.Sessions() != 1 {
		t.Fatalf("unexpected post-completion state: mode=%s sessions=%d", m.Timer.Mode(), m.Timer.Sessions())
	}
	if len(h.sounds.played) != 1 || h.sounds.played[0] != timer.SoundComplete {
		t.Fatalf("expected one completion sound, got %v", h.sounds.played)
	}
	if !strings.Contains(m.Status.Text, "Session #1 finished") {
		t.Fatalf("unexpected completion status: %q", m.Status.Text)
	}
	if len(m.Notifications) != 1 {
		t.Fatalf("expected completion notification, got %d", len(m.Notifications))
	}
	if len(h.desktop.sent) != 0 {
		t.Fatal("desktop notifications are disabled by default")
	}
	if h.engine.Pending() != 0 {
		t.Fatalf("expected alarm cancelled after completion, pending=%d", h.engine.Pending())
	}
}

func TestDesktopNotificationOnCompletion(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.DesktopNotifications = true
	m, h := newHarness(t, cfg)
	m = shorten(m, 1)

	m, _ = press(m, "space")
	h.clock.Advance(time.Second)
	m, cmd := send(m, TimerTickMsg{Gen: m.Timer.Generation()})
	if len(h.desktop.sent) != 0 {
		t.Fatal("desktop notification must be sent from a command, not inside Update")
	}
	if _, failed := findMsg[AppErrorMsg](collectMsgs(t, cmd)); failed {
		t.Fatal("unexpected notification error")
	}
	if len(h.desktop.sent) != 1 || h.desktop.sent[0].Title != "Focus session done" {
		t.Fatalf("expected one desktop notification, got %#v", h.desktop.sent)
	}

	m.Timer.Registry().SetDuration(model.ModeShortBreak, 1)
	m.Timer.SwitchMode(model.ModeShortBreak)
	m, _ = press(m, "space")
	h.clock.Advance(time.Second)
	_, cmd = send(m, TimerTickMsg{Gen: m.Timer.Generation()})
	collectMsgs(t, cmd)
	if len(h.desktop.sent) != 2 || h.desktop.sent[1].Title != "Break over" {
		t.Fatalf("expected break notification, got %#v", h.desktop.sent)
	}
}

func TestDesktopNotificationFailureIsReported(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.DesktopNotifications = true
	m, h := newHarness(t, cfg, func(d *Dependencies) { d.Desktop = failingDesktop{} })
	m = shorten(m, 1)

	m, _ = press(m, "space")
	h.clock.Advance(time.Second)
	m, cmd := send(m, TimerTickMsg{Gen: m.Timer.Generation()})
	failure, ok := findMsg[AppErrorMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected an error message from the failed notification")
	}
	m, _ = send(m, failure)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no notification daemon") || m.LastError == nil {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestStopCancelsTicksAndAlarm(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "space")
	gen := m.Timer.Generation()
	if h.engine.Pending() != 1 {
		t.Fatalf("expected one pending alarm, got %d", h.engine.Pending())
	}

	m, _ = press(m, "space")
	if m.Timer.Running() {
		t.Fatal("expected timer stopped")
	}
	if h.engine.Pending() != 0 {
		t.Fatalf("expected alarm cancelled, pending=%d", h.engine.Pending())
	}

	h.clock.Advance(5 * time.Second)
	m, cmd := send(m, TimerTickMsg{Gen: gen})
	if cmd != nil {
		t.Fatal("stale tick must not reschedule")
	}
	if m.Timer.Remaining().Total != 1500 {
		t.Fatalf("stale tick changed remaining: %d", m.Timer.Remaining().Total)
	}
}

func TestAlarmCompletesAtEndInstant(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m = shorten(m, 10)
	m, _ = press(m, "space")
	gen := m.Timer.Generation()

	m, cmd := send(m, AlarmDueMsg{Alarm: scheduler.Alarm{ID: countdownAlarmID, Gen: gen + 7}})
	if !m.Timer.Running() {
		t.Fatal("alarm from another generation must be ignored")
	}
	if cmd == nil {
		t.Fatal("expected alarm listener to be re-armed")
	}

	h.clock.Advance(10 * time.Second)
	m, _ = send(m, AlarmDueMsg{Alarm: scheduler.Alarm{ID: countdownAlarmID, Gen: gen}})
	if m.Timer.Running() || m.Timer.Mode() != model.ModeShortBreak {
		t.Fatalf("expected alarm to complete countdown, mode=%s running=%v", m.Timer.Mode(), m.Timer.Running())
	}
	if len(m.AlarmLog) != 2 {
		t.Fatalf("expected both alarms logged, got %d", len(m.AlarmLog))
	}

	// The periodic tick that was already in flight is now stale.
	m, cmd = send(m, TimerTickMsg{Gen: gen})
	if cmd != nil || m.Timer.Sessions() != 1 {
		t.Fatalf("completion must fire once, sessions=%d", m.Timer.Sessions())
	}
}

func TestMainButtonClicksAndToggles(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "s")
	if !m.Timer.Running() || m.presenter.Last().Action != timer.ActionStop {
		t.Fatal("expected main button to start the timer")
	}
	m, _ = press(m, "s")
	if m.Timer.Running() {
		t.Fatal("expected main button to stop the timer")
	}
	if len(h.sounds.played) != 2 || h.sounds.played[0] != timer.SoundClick {
		t.Fatalf("expected two clicks, got %v", h.sounds.played)
	}
}

func TestArrowKeysCycleModesAndStop(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "space", "right")
	if m.Timer.Mode() != model.ModeShortBreak || m.Timer.Running() {
		t.Fatalf("expected short break stopped, got %s running=%v", m.Timer.Mode(), m.Timer.Running())
	}
	m, _ = press(m, "left", "left")
	if m.Timer.Mode() != model.ModeLongBreak {
		t.Fatalf("expected wrap to long break, got %s", m.Timer.Mode())
	}
	m, _ = press(m, "l")
	if m.Timer.Mode() != model.ModePomodoro {
		t.Fatalf("expected wrap to pomodoro, got %s", m.Timer.Mode())
	}
	if m.presenter.Last().Minutes() != "25" {
		t.Fatalf("expected full duration after switch, got %s", m.presenter.Last().Minutes())
	}
}

func TestModeButtons(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "space", "3")
	if m.Timer.Mode() != model.ModeLongBreak || m.Timer.Running() {
		t.Fatalf("expected long break stopped, got %s running=%v", m.Timer.Mode(), m.Timer.Running())
	}
	if m.presenter.Last().Minutes() != "15" {
		t.Fatalf("expected 15 minutes, got %s", m.presenter.Last().Minutes())
	}
	if len(h.sounds.played) != 1 || h.sounds.played[0] != timer.SoundClick {
		t.Fatalf("expected a click, got %v", h.sounds.played)
	}
}

func TestAdjustKeys(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "+")
	if got := m.Timer.Registry().Duration(model.ModePomodoro); got != 1800 {
		t.Fatalf("expected 1800s, got %d", got)
	}
	m, _ = press(m, "-", "-")
	if got := m.Timer.Registry().Duration(model.ModePomodoro); got != 1200 {
		t.Fatalf("expected 1200s, got %d", got)
	}
	if m.presenter.Last().Minutes() != "20" {
		t.Fatalf("expected display 20 minutes, got %s", m.presenter.Last().Minutes())
	}
	if len(h.sounds.played) != 3 {
		t.Fatalf("expected a click per adjust, got %v", h.sounds.played)
	}

	m = shorten(m, 300)
	m, _ = press(m, "-")
	if got := m.Timer.Registry().Duration(model.ModePomodoro); got != 300 {
		t.Fatalf("adjust below one second must be rejected, got %d", got)
	}
}

func TestTodoCaptureToggleDeleteClear(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "t")
	if !m.Tasks.Visible || !m.Tasks.Focused {
		t.Fatalf("expected focused task input, got %+v", m.Tasks)
	}

	m, _ = press(m, "  write docs ", "enter", "q", "enter", "   ", "enter")
	if m.Quitting {
		t.Fatal("typing q into the task input must not quit")
	}
	if len(m.Tasks.Items) != 2 {
		t.Fatalf("expected two tasks, got %#v", m.Tasks.Items)
	}
	if m.Tasks.Items[0].Title != "write docs" {
		t.Fatalf("expected trimmed title, got %q", m.Tasks.Items[0].Title)
	}
	if m.Tasks.Items[0].ID == "" || m.Tasks.Items[0].ID == m.Tasks.Items[1].ID {
		t.Fatalf("expected distinct task ids, got %q and %q", m.Tasks.Items[0].ID, m.Tasks.Items[1].ID)
	}

	m, _ = press(m, "esc", "k", "x")
	if !m.Tasks.Items[0].Done || m.Tasks.Finished != 1 {
		t.Fatalf("expected first task done, got %+v", m.Tasks)
	}
	if out := m.View(); !strings.Contains(out, "[x]") {
		t.Fatalf("expected done checkbox in view: %q", out)
	}

	m, _ = press(m, "d")
	if len(m.Tasks.Items) != 1 || m.Tasks.Items[0].Title != "q" || m.Tasks.Finished != 0 {
		t.Fatalf("unexpected tasks after delete: %+v", m.Tasks)
	}

	m, _ = press(m, "C")
	if len(m.Tasks.Items) != 0 {
		t.Fatalf("expected tasks cleared, got %d", len(m.Tasks.Items))
	}

	m, _ = press(m, "t")
	if m.Tasks.Visible {
		t.Fatal("expected tasks hidden")
	}
}

func TestTimerKeysIgnoredWhileTyping(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "t", "s", "space", "1")
	if m.Timer.Running() {
		t.Fatal("timer keys must go to the task input while it is focused")
	}
	if m.Tasks.Input != "s 1" {
		t.Fatalf("expected typed text, got %q", m.Tasks.Input)
	}
}

func TestMusicPanel(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "v")
	if m.Music.VolumeVisible() {
		t.Fatal("volume control must stay hidden while collapsed")
	}

	m, _ = press(m, "m", "down", "p")
	if !m.Music.Expanded() || m.Music.Current() != "2" {
		t.Fatalf("expected track 2 playing, current=%q", m.Music.Current())
	}
	if len(h.backend.played) != 1 || h.backend.played[0] != "2" {
		t.Fatalf("unexpected backend plays: %v", h.backend.played)
	}
	if !strings.Contains(m.View(), "now playing: Halo Lofi") {
		t.Fatal("expected now playing line in view")
	}

	m, _ = press(m, "p")
	if m.Music.Playing() || h.backend.paused != 1 {
		t.Fatalf("expected re-select to pause, paused=%d", h.backend.paused)
	}

	m, _ = press(m, "v", ">", ">")
	if m.Music.Volume() != 70 || h.backend.volume != 70 {
		t.Fatalf("expected volume 70, got %d", m.Music.Volume())
	}

	m, _ = press(m, "m")
	if m.Music.Expanded() || m.Music.VolumeVisible() {
		t.Fatal("collapsing must hide the volume control")
	}
}

func TestPaletteCommands(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())

	m = runPalette(m, "mode long")
	if m.Timer.Mode() != model.ModeLongBreak {
		t.Fatalf("expected long break, got %s", m.Timer.Mode())
	}
	if m.Palette.Active {
		t.Fatal("palette should close after a command")
	}

	m = runPalette(m, "adjust -5")
	if got := m.Timer.Registry().Duration(model.ModeLongBreak); got != 600 {
		t.Fatalf("expected 600s long break, got %d", got)
	}

	m = runPalette(m, "add ship release")
	if len(m.Tasks.Items) != 1 || !m.Tasks.Visible {
		t.Fatalf("expected task added and shown, got %+v", m.Tasks)
	}

	m = runPalette(m, "play 3")
	if m.Music.Current() != "3" || len(h.backend.played) != 1 {
		t.Fatalf("expected track 3 playing, current=%q", m.Music.Current())
	}

	m = runPalette(m, "volume 20")
	if m.Music.Volume() != 20 {
		t.Fatalf("expected volume 20, got %d", m.Music.Volume())
	}

	m = runPalette(m, "clear")
	if len(m.Tasks.Items) != 0 {
		t.Fatal("expected tasks cleared")
	}
	if n := len(m.Notifications); n != 6 {
		t.Fatalf("expected a notification per command, got %d", n)
	}
}

func TestPaletteErrors(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())

	m = runPalette(m, "play 9")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid argument status, got %+v", m.Status)
	}

	m = runPalette(m, "adjust -25")
	if !m.Status.IsError {
		t.Fatalf("expected rejected adjust, got %+v", m.Status)
	}

	m = runPalette(m, "dance")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command status, got %+v", m.Status)
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "/", "mo", "esc")
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette closed, got %+v", m.Palette)
	}
}

func TestFullscreenToggle(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, cmd := press(m, "f")
	if !m.Fullscreen || cmd == nil {
		t.Fatal("expected alt screen enter")
	}
	m, cmd = press(m, "f")
	if m.Fullscreen || cmd == nil {
		t.Fatal("expected alt screen exit")
	}
}

func TestWallClockTick(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	at := time.Date(2026, 10, 16, 21, 7, 0, 0, time.UTC)
	m, cmd := send(m, WallClockTickMsg{At: at})
	if !m.Now.Equal(at) || cmd == nil {
		t.Fatalf("expected clock updated and re-armed, now=%s", m.Now)
	}
	if out := m.View(); !strings.Contains(out, "9:07 PM") {
		t.Fatalf("expected digital clock in view: %q", out)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel")
	}
	m, _ = press(m, "?")
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestInitWithSchedulerReturnsCmd(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected init cmd")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, _ = send(m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m, _ = send(m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m, _ = send(m, ClearStatusMsg{Seq: m.statusSeq})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestStatusExpiresUnlessReplaced(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, cmd := press(m, "?")
	expiry, ok := findMsg[ClearStatusMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected a status expiry after a status change")
	}

	m, cmd = press(m, "?")
	m, _ = send(m, expiry)
	if m.Status.Text != "help hidden" {
		t.Fatalf("an older expiry must not clear a newer status, got %+v", m.Status)
	}

	expiry, ok = findMsg[ClearStatusMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected expiry for the newer status")
	}
	m, cmd = send(m, expiry)
	if m.Status.Text != "" {
		t.Fatalf("expected status cleared, got %+v", m.Status)
	}
	if cmd != nil {
		t.Fatal("clearing the status must not schedule another expiry")
	}
}

func TestNotificationLogIsBounded(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	for i := 0; i < 45; i++ {
		m.notify("Status", "tick", "info")
	}
	if len(m.Notifications) != 40 {
		t.Fatalf("expected 40 notifications, got %d", len(m.Notifications))
	}
}

func TestQuitKeys(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())
	m, _ = press(m, "space")
	next, cmd := press(m, "q")
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if h.engine.Pending() != 0 {
		t.Fatal("expected alarm cancelled on quit")
	}

	next, cmd = press(m, "ctrl+c")
	if !next.Quitting || cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"25:00", "Pomodoro", "Short Break", "START", "status: all good", "9:05 AM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view: %q", want, out)
		}
	}
}

func TestWindowSizeIsRemembered(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m, cmd := send(m, tea.WindowSizeMsg{Width: 72, Height: 30})
	if m.Width != 72 {
		t.Fatalf("expected width 72, got %d", m.Width)
	}
	if cmd != nil {
		t.Fatal("resize should not schedule anything")
	}
	if !strings.Contains(m.View(), "25:00") {
		t.Fatal("expected countdown in narrow view")
	}
}

func TestHourLongPomodoroShowsHoursInTimerPane(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	for range 7 {
		m, _ = press(m, "+")
	}
	if got := m.Timer.Registry().Duration(model.ModePomodoro); got != 3600 {
		t.Fatalf("expected 3600 s pomodoro, got %d", got)
	}
	pane := m.renderTimerView()
	if !strings.Contains(pane, "1:00:00") {
		t.Fatalf("expected 1:00:00 in timer pane: %q", pane)
	}
}

func TestTextInputsKeepCursorBlinking(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	for _, open := range []string{"t", "/"} {
		next, cmd := press(m, open)
		blink, ok := findMsg[cursor.BlinkMsg](collectMsgs(t, cmd))
		if !ok {
			t.Fatalf("%q: expected a cursor blink from the focused input", open)
		}
		if _, cmd = send(next, blink); cmd == nil {
			t.Fatalf("%q: expected the blink to be re-armed", open)
		}
	}
}

func TestPlayMarksTrackInLibrary(t *testing.T) {
	repo := openLibrary(t)
	m, h := newHarness(t, DefaultRuntimeConfig(), func(d *Dependencies) { d.Library = repo })

	m, cmd := press(m, "/", "play 2", "enter")
	if m.Music.Current() != "2" {
		t.Fatalf("expected track 2 playing, current=%q", m.Music.Current())
	}
	if _, failed := findMsg[AppErrorMsg](collectMsgs(t, cmd)); failed {
		t.Fatal("unexpected library error")
	}
	got, err := repo.GetTrack(t.Context(), "2")
	if err != nil {
		t.Fatalf("get track: %v", err)
	}
	if got.LastPlayedAt == nil || !got.LastPlayedAt.Equal(h.clock.Now().UTC()) {
		t.Fatalf("expected play recorded at %s, got %v", h.clock.Now(), got.LastPlayedAt)
	}
}

func TestMarkPlayedFailureIsReported(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig(), func(d *Dependencies) { d.Library = brokenLibrary{} })

	m, cmd := press(m, "m", "p")
	if !m.Music.Playing() {
		t.Fatal("a library failure must not stop playback")
	}
	failure, ok := findMsg[AppErrorMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected an error message from the failed play mark")
	}
	m, _ = send(m, failure)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "database is locked") {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	if !m.Music.Playing() {
		t.Fatal("playback must continue after the error")
	}
}

func TestTrackCommandsEditPlaylist(t *testing.T) {
	m, h := newHarness(t, DefaultRuntimeConfig())

	m = runPalette(m, "track add /music/rain.ogg")
	tracks := m.Music.Tracks()
	if len(tracks) != 5 || tracks[4].Title != "rain" || tracks[4].Path != "/music/rain.ogg" {
		t.Fatalf("unexpected playlist after add: %#v", tracks)
	}

	m = runPalette(m, "track rename 5 Night Rain")
	if got := m.Music.Tracks()[4].Title; got != "Night Rain" {
		t.Fatalf("expected renamed track, got %q", got)
	}

	m = runPalette(m, "play 5")
	m = runPalette(m, "track rm 5")
	if len(m.Music.Tracks()) != 4 || m.Music.Playing() || h.backend.paused != 1 {
		t.Fatalf("expected playing track removed and paused, tracks=%d paused=%d", len(m.Music.Tracks()), h.backend.paused)
	}

	m = runPalette(m, "track rm 9")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid track number, got %+v", m.Status)
	}

	m = runPalette(m, "track rm 1")
	m = runPalette(m, "track reset")
	if tracks := m.Music.Tracks(); len(tracks) != 4 || tracks[0].ID != "1" {
		t.Fatalf("expected default playlist after reset, got %#v", tracks)
	}
}

func TestTrackCommandsPersistToLibrary(t *testing.T) {
	repo := openLibrary(t)
	ctx := t.Context()
	tracks, err := storage.LoadPlaylist(ctx, repo)
	if err != nil {
		t.Fatalf("load playlist: %v", err)
	}
	m, _ := newHarness(t, DefaultRuntimeConfig(), func(d *Dependencies) {
		d.Library = repo
		d.Tracks = tracks
	})

	m = runPalette(m, "track add rain.ogg Rain")
	if m.Status.IsError {
		t.Fatalf("add failed: %+v", m.Status)
	}
	added := m.Music.Tracks()[4]
	stored, err := repo.GetTrack(ctx, added.ID)
	if err != nil {
		t.Fatalf("expected added track stored: %v", err)
	}
	if stored.Title != "Rain" || stored.Position != 5 || !stored.Enabled || added.Position != 5 {
		t.Fatalf("unexpected stored track: %#v", stored)
	}

	m = runPalette(m, "track rename 1 Hollow")
	if got, err := repo.GetTrack(ctx, "1"); err != nil || got.Title != "Hollow" {
		t.Fatalf("expected rename stored, got %#v err=%v", got, err)
	}

	m = runPalette(m, "track rm 2")
	if _, err := repo.GetTrack(ctx, "2"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected track 2 deleted, got %v", err)
	}

	m = runPalette(m, "track reset")
	if got := m.Music.Tracks(); len(got) != 4 || got[0].Title != "Hollow Knight Lofi" {
		t.Fatalf("expected seeded playlist after reset, got %#v", got)
	}
	if _, err := repo.GetTrack(ctx, added.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected reset to drop added track, got %v", err)
	}
}

func TestSaveWritesLiveDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusd", "config.yaml")
	m, _ := newHarness(t, DefaultRuntimeConfig(), func(d *Dependencies) { d.ConfigPath = path })

	m = runPalette(m, "adjust +5")
	m, cmd := press(m, "/", "save", "enter")
	saved, ok := findMsg[SetStatusMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected a status message once the file is written")
	}
	m, _ = send(m, saved)
	if !strings.Contains(m.Status.Text, "config saved to "+path) {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	cfg, err := RuntimeConfigFromFile(path, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if cfg.PomodoroMinutes != 30 || cfg.ShortBreakMinutes != 5 || cfg.AdjustStepSeconds != 300 {
		t.Fatalf("unexpected saved config: %+v", cfg)
	}

	m = runPalette(m, "adjust +30s")
	m = runPalette(m, "save")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "whole minutes") {
		t.Fatalf("expected partial minutes rejected, got %+v", m.Status)
	}
}

func TestSaveErrors(t *testing.T) {
	m, _ := newHarness(t, DefaultRuntimeConfig())
	m = runPalette(m, "save")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "FOCUSD_CONFIG") {
		t.Fatalf("expected missing path error, got %+v", m.Status)
	}

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	m, _ = newHarness(t, DefaultRuntimeConfig(), func(d *Dependencies) { d.ConfigPath = filepath.Join(blocker, "config.yaml") })
	m, cmd := press(m, "/", "save", "enter")
	failure, ok := findMsg[AppErrorMsg](collectMsgs(t, cmd))
	if !ok {
		t.Fatal("expected an error message when the config cannot be written")
	}
	m, _ = send(m, failure)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "create config directory") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}
