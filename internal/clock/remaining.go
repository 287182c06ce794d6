package clock

import (
	"fmt"
	"time"
)

// RemainingTime is the breakdown of a countdown. Total may go to zero or
// below once the end timestamp has passed; nothing here clamps it.
type RemainingTime struct {
	Total   int
	Hours   int
	Minutes int
	Seconds int
}

// RemainingFrom derives the time left until end as seen at now. Total is
// truncated toward zero.
func RemainingFrom(end, now time.Time) RemainingTime {
	return FromSeconds(int(end.Sub(now) / time.Second))
}

func FromSeconds(total int) RemainingTime {
	return RemainingTime{
		Total:   total,
		Hours:   total / 3600,
		Minutes: (total / 60) % 60,
		Seconds: total % 60,
	}
}

// EndFrom is the end timestamp of a countdown of total seconds started at now.
func EndFrom(now time.Time, total int) time.Time {
	return now.Add(time.Duration(total) * time.Second)
}

// Clock readings are kept at whole-second resolution so that a tick fired a
// few milliseconds after a second boundary does not drop a whole second.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Second)
}

func (r RemainingTime) Done() bool { return r.Total <= 0 }

// PaddedMinutes and PaddedSeconds never go negative on screen.
func (r RemainingTime) PaddedMinutes() string {
	return fmt.Sprintf("%02d", max(r.Minutes, 0))
}

func (r RemainingTime) PaddedSeconds() string {
	return fmt.Sprintf("%02d", max(r.Seconds, 0))
}

func (r RemainingTime) String() string {
	if r.Hours > 0 {
		return fmt.Sprintf("%d:%s:%s", r.Hours, r.PaddedMinutes(), r.PaddedSeconds())
	}
	return r.PaddedMinutes() + ":" + r.PaddedSeconds()
}
