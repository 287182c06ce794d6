package model

import (
	"errors"
	"testing"
)

func TestModeCycleWrapsAround(t *testing.T) {
	cases := []struct {
		from  Mode
		delta int
		want  Mode
	}{
		{ModePomodoro, 1, ModeShortBreak},
		{ModeShortBreak, 1, ModeLongBreak},
		{ModeLongBreak, 1, ModePomodoro},
		{ModePomodoro, -1, ModeLongBreak},
		{ModeLongBreak, -1, ModeShortBreak},
		{ModeShortBreak, -4, ModePomodoro},
	}
	for _, tc := range cases {
		if got := tc.from.Cycle(tc.delta); got != tc.want {
			t.Fatalf("%s.Cycle(%d) = %s, want %s", tc.from, tc.delta, got, tc.want)
		}
	}
}

func TestParseModeAliases(t *testing.T) {
	cases := map[string]Mode{
		"pomodoro":    ModePomodoro,
		"work":        ModePomodoro,
		"shortBreak":  ModeShortBreak,
		"short-break": ModeShortBreak,
		"LONG":        ModeLongBreak,
		" long_break": ModeLongBreak,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseMode("nap"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}
