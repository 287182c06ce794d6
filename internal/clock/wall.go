package clock

import (
	"fmt"
	"time"
)

// WallTime is the digital clock face: 12-hour time, meridiem and a long date.
type WallTime struct {
	Time     string
	Meridiem string
	Date     string
}

func Wall(now time.Time) WallTime {
	hour := now.Hour()
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return WallTime{
		Time:     fmt.Sprintf("%d:%02d", hour, now.Minute()),
		Meridiem: meridiem,
		Date:     fmt.Sprintf("%s - %s %d, %d", now.Weekday(), now.Month(), now.Day(), now.Year()),
	}
}

func (w WallTime) String() string {
	return w.Time + " " + w.Meridiem
}
