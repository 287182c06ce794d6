package timer

import (
	"strconv"

	"github.com/sandeepkv93/focusd/internal/clock"
	"github.com/sandeepkv93/focusd/internal/model"
)

type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

func (a Action) Label() string {
	if a == ActionStop {
		return "Stop"
	}
	return "Start"
}

// Snapshot is what the presentation layer receives after every state change.
type Snapshot struct {
	Mode      model.Mode
	Remaining clock.RemainingTime
	Duration  int
	Running   bool
	Sessions  int
	Action    Action
}

// Hours is empty below one hour so short countdowns keep the MM:SS face.
func (s Snapshot) Hours() string {
	if s.Remaining.Hours <= 0 {
		return ""
	}
	return strconv.Itoa(s.Remaining.Hours)
}

func (s Snapshot) Minutes() string { return s.Remaining.PaddedMinutes() }
func (s Snapshot) Seconds() string { return s.Remaining.PaddedSeconds() }

func (s Snapshot) Title() string {
	return s.Remaining.String() + " | Focus Timer"
}

// Progress is the elapsed fraction of the current countdown in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	left := max(s.Remaining.Total, 0)
	p := 1 - float64(left)/float64(s.Duration)
	return min(max(p, 0), 1)
}
