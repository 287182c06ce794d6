package sound

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/focusd/internal/timer"
)

type recordedRun struct {
	name string
	args []string
}

func newTestPlayer(cfg Config) (*Player, *bytes.Buffer, chan recordedRun) {
	runs := make(chan recordedRun, 4)
	bell := &bytes.Buffer{}
	p := NewPlayer(cfg)
	p.bell = bell
	p.run = func(name string, args ...string) error {
		runs <- recordedRun{name: name, args: args}
		return nil
	}
	return p, bell, runs
}

func TestPlayRunsCommandForEffect(t *testing.T) {
	p, bell, runs := newTestPlayer(Config{
		Enabled:      true,
		Command:      "paplay",
		ClickFile:    "click.wav",
		CompleteFile: "done.wav",
	})

	p.Play(timer.SoundComplete)
	select {
	case got := <-runs:
		if got.name != "paplay" || len(got.args) != 1 || got.args[0] != "done.wav" {
			t.Fatalf("unexpected run: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for player command")
	}
	if bell.Len() != 0 {
		t.Fatalf("did not expect bell output, got %q", bell.String())
	}
}

func TestPlayDoesNotWaitForPlayback(t *testing.T) {
	var release sync.WaitGroup
	release.Add(1)
	p := NewPlayer(Config{Enabled: true, Command: "paplay", ClickFile: "click.wav"})
	p.run = func(string, ...string) error {
		release.Wait()
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.Play(timer.SoundClick)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Play blocked on playback")
	}
	release.Done()
}

func TestPlayFallsBackToBell(t *testing.T) {
	p, bell, runs := newTestPlayer(Config{Enabled: true, Command: "paplay"})
	p.Play(timer.SoundClick)
	if bell.String() != "\a" {
		t.Fatalf("expected bell, got %q", bell.String())
	}
	select {
	case got := <-runs:
		t.Fatalf("unexpected command run: %+v", got)
	default:
	}
}

func TestPlayDisabledIsSilent(t *testing.T) {
	p, bell, _ := newTestPlayer(Config{Enabled: false})
	p.Play(timer.SoundComplete)
	if bell.Len() != 0 {
		t.Fatalf("disabled player made noise: %q", bell.String())
	}
}
