// Package timer implements the countdown state machine: mode switching,
// wall-clock anchored ticking, session counting and completion handling.
package timer

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/clock"
	"github.com/sandeepkv93/focusd/internal/model"
)

type Sound string

const (
	SoundClick    Sound = "click"
	SoundComplete Sound = "complete"
)

type Presenter interface {
	Present(Snapshot)
}

// Notifier plays short effects. Implementations must not block on playback.
type Notifier interface {
	Play(Sound)
}

type NoopPresenter struct{}

func (NoopPresenter) Present(Snapshot) {}

type NoopNotifier struct{}

func (NoopNotifier) Play(Sound) {}

// Completion describes a countdown that reached zero.
type Completion struct {
	Finished model.Mode
	Next     model.Mode
	Sessions int
}

type TickResult struct {
	// Continue is false when the tick was stale or ended the countdown.
	Continue  bool
	Completed *Completion
}

// Machine owns all mutable timer state. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Machine struct {
	registry  *model.Registry
	clock     clock.Clock
	presenter Presenter
	notifier  Notifier

	remaining clock.RemainingTime
	running   bool
	endAt     time.Time
	sessions  int
	// gen identifies the live periodic tick. Bumping it cancels the tick.
	gen uint64
}

func New(registry *model.Registry, clk clock.Clock, presenter Presenter, notifier Notifier) *Machine {
	if clk == nil {
		clk = clock.Real{}
	}
	if presenter == nil {
		presenter = NoopPresenter{}
	}
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	m := &Machine{
		registry:  registry,
		clock:     clk,
		presenter: presenter,
		notifier:  notifier,
	}
	m.SwitchMode(registry.Active())
	return m
}

// SwitchMode activates mode and resets the countdown to its full duration.
// It does not stop a running countdown.
func (m *Machine) SwitchMode(mode model.Mode) {
	if !m.registry.SetActive(mode) {
		return
	}
	m.remaining = clock.FromSeconds(m.registry.Duration(mode))
	m.present()
}

// Start anchors the end timestamp and returns the generation that periodic
// ticks must carry. Starting a running machine schedules nothing new.
func (m *Machine) Start() (uint64, bool) {
	if m.running {
		return m.gen, false
	}
	m.endAt = clock.EndFrom(m.now(), m.remaining.Total)
	m.running = true
	m.gen++
	m.present()
	return m.gen, true
}

func (m *Machine) Stop() {
	if m.running {
		m.gen++
	}
	m.running = false
	m.present()
}

// Toggle is the start/stop button. It reports the new tick generation when it
// started the countdown.
func (m *Machine) Toggle() (uint64, bool) {
	if m.running {
		m.Stop()
		return 0, false
	}
	return m.Start()
}

// Tick recomputes the remaining time from the end timestamp. Ticks from a
// cancelled generation are ignored.
func (m *Machine) Tick(gen uint64) TickResult {
	if !m.running || gen != m.gen {
		return TickResult{}
	}
	m.remaining = clock.RemainingFrom(m.endAt, m.now())
	m.present()
	if !m.remaining.Done() {
		return TickResult{Continue: true}
	}
	m.gen++
	m.notifier.Play(SoundComplete)
	done := m.complete()
	return TickResult{Completed: &done}
}

func (m *Machine) complete() Completion {
	finished := m.registry.Active()
	if finished == model.ModePomodoro {
		m.sessions++
	}
	next := m.registry.NextMode(finished, m.sessions)
	m.SwitchMode(next)
	m.Stop()
	return Completion{Finished: finished, Next: next, Sessions: m.sessions}
}

// Adjust changes the active mode's duration by delta seconds and shows the
// new full countdown. Results of zero or less are rejected. Run state is
// left alone.
func (m *Machine) Adjust(delta int) bool {
	mode := m.registry.Active()
	if !m.registry.Adjust(mode, delta) {
		return false
	}
	if m.registry.Active() == mode {
		m.SwitchMode(mode)
	}
	return true
}

// SelectMode is an explicit mode change; it always stops the countdown.
func (m *Machine) SelectMode(mode model.Mode) {
	m.SwitchMode(mode)
	m.Stop()
}

func (m *Machine) CycleMode(delta int) model.Mode {
	next := m.registry.Active().Cycle(delta)
	m.SelectMode(next)
	return next
}

func (m *Machine) Snapshot() Snapshot {
	action := ActionStart
	if m.running {
		action = ActionStop
	}
	mode := m.registry.Active()
	return Snapshot{
		Mode:      mode,
		Remaining: m.remaining,
		Duration:  m.registry.Duration(mode),
		Running:   m.running,
		Sessions:  m.sessions,
		Action:    action,
	}
}

func (m *Machine) Mode() model.Mode               { return m.registry.Active() }
func (m *Machine) Running() bool                  { return m.running }
func (m *Machine) Sessions() int                  { return m.sessions }
func (m *Machine) Remaining() clock.RemainingTime { return m.remaining }
func (m *Machine) Generation() uint64             { return m.gen }
func (m *Machine) Registry() *model.Registry      { return m.registry }

// EndAt is the anchored end timestamp; zero when stopped.
func (m *Machine) EndAt() time.Time {
	if !m.running {
		return time.Time{}
	}
	return m.endAt
}

func (m *Machine) now() time.Time {
	return clock.Truncate(m.clock.Now())
}

func (m *Machine) present() {
	m.presenter.Present(m.Snapshot())
}
