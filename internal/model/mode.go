package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("model: unknown mode")

type Mode string

const (
	ModePomodoro   Mode = "pomodoro"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes is the cycling order used by the keyboard arrows.
var Modes = []Mode{ModePomodoro, ModeShortBreak, ModeLongBreak}

func (m Mode) IsValid() bool {
	switch m {
	case ModePomodoro, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

func (m Mode) Label() string {
	switch m {
	case ModePomodoro:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(m)
	}
}

func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Cycle steps delta positions through Modes, wrapping at both ends.
func (m Mode) Cycle(delta int) Mode {
	idx := 0
	for i, candidate := range Modes {
		if candidate == m {
			idx = i
			break
		}
	}
	n := len(Modes)
	return Modes[((idx+delta)%n+n)%n]
}

func ParseMode(raw string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "pomodoro", "work", "focus", "p":
		return ModePomodoro, nil
	case "shortbreak", "short", "s":
		return ModeShortBreak, nil
	case "longbreak", "long", "l":
		return ModeLongBreak, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}
