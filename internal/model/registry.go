package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDuration = errors.New("model: invalid mode duration")
	ErrInvalidInterval = errors.New("model: invalid long break interval")
)

// Durations are per-mode countdown lengths in seconds.
type Durations struct {
	Pomodoro   int
	ShortBreak int
	LongBreak  int
}

func DefaultDurations() Durations {
	return Durations{Pomodoro: 1500, ShortBreak: 300, LongBreak: 900}
}

const DefaultLongBreakInterval = 4

// MaxDurationSeconds caps a mode at one day so end timestamps never overflow.
const MaxDurationSeconds = 24 * 60 * 60

// Registry holds the duration table, the long break interval and the active
// mode. Durations stay strictly positive.
type Registry struct {
	durations         map[Mode]int
	longBreakInterval int
	active            Mode
}

func NewRegistry(d Durations, longBreakInterval int) (*Registry, error) {
	table := map[Mode]int{
		ModePomodoro:   d.Pomodoro,
		ModeShortBreak: d.ShortBreak,
		ModeLongBreak:  d.LongBreak,
	}
	for _, mode := range Modes {
		if table[mode] <= 0 || table[mode] > MaxDurationSeconds {
			return nil, fmt.Errorf("%w: %s=%d", ErrInvalidDuration, mode, table[mode])
		}
	}
	if longBreakInterval <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, longBreakInterval)
	}
	return &Registry{
		durations:         table,
		longBreakInterval: longBreakInterval,
		active:            ModePomodoro,
	}, nil
}

// Duration returns 0 for modes outside the three known ids.
func (r *Registry) Duration(mode Mode) int {
	return r.durations[mode]
}

// SetDuration rejects unknown modes and values outside (0, MaxDurationSeconds],
// keeping the previous value.
func (r *Registry) SetDuration(mode Mode, seconds int) bool {
	if !mode.IsValid() || seconds <= 0 || seconds > MaxDurationSeconds {
		return false
	}
	r.durations[mode] = seconds
	return true
}

func (r *Registry) Adjust(mode Mode, delta int) bool {
	if delta > MaxDurationSeconds || delta < -MaxDurationSeconds {
		return false
	}
	return r.SetDuration(mode, r.durations[mode]+delta)
}

func (r *Registry) Active() Mode { return r.active }

// SetActive leaves durations untouched.
func (r *Registry) SetActive(mode Mode) bool {
	if !mode.IsValid() {
		return false
	}
	r.active = mode
	return true
}

func (r *Registry) LongBreakInterval() int { return r.longBreakInterval }

func (r *Registry) Durations() Durations {
	return Durations{
		Pomodoro:   r.durations[ModePomodoro],
		ShortBreak: r.durations[ModeShortBreak],
		LongBreak:  r.durations[ModeLongBreak],
	}
}

// NextMode picks the mode that follows a completed interval. sessions is the
// counter after the completion was recorded.
func (r *Registry) NextMode(completed Mode, sessions int) Mode {
	switch completed {
	case ModePomodoro:
		if sessions%r.longBreakInterval == 0 {
			return ModeLongBreak
		}
		return ModeShortBreak
	default:
		return ModePomodoro
	}
}
