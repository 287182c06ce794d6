// Package sound plays the short interaction and completion effects.
package sound

import (
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sandeepkv93/focusd/internal/timer"
)

type Config struct {
	Enabled      bool
	Command      string
	ClickFile    string
	CompleteFile string
}

// DefaultCommand is the stock audio player for the current platform.
func DefaultCommand() string {
	switch runtime.GOOS {
	case "linux":
		return "paplay"
	case "darwin":
		return "afplay"
	default:
		return ""
	}
}

// Player runs the configured command once per effect and never waits for it.
// When no command or file is configured it rings the terminal bell instead.
type Player struct {
	cfg  Config
	run  func(name string, args ...string) error
	bell io.Writer
}

var _ timer.Notifier = (*Player)(nil)

func NewPlayer(cfg Config) *Player {
	return &Player{
		cfg:  cfg,
		run:  runCommand,
		bell: os.Stderr,
	}
}

func (p *Player) Play(s timer.Sound) {
	if p == nil || !p.cfg.Enabled {
		return
	}
	file := p.fileFor(s)
	command := strings.TrimSpace(p.cfg.Command)
	if command == "" || file == "" {
		p.ring()
		return
	}
	go func() {
		if err := p.run(command, file); err != nil {
			log.Printf("sound: play %s via %s: %v", s, command, err)
		}
	}()
}

func (p *Player) fileFor(s timer.Sound) string {
	switch s {
	case timer.SoundClick:
		return strings.TrimSpace(p.cfg.ClickFile)
	case timer.SoundComplete:
		return strings.TrimSpace(p.cfg.CompleteFile)
	default:
		return ""
	}
}

func (p *Player) ring() {
	if p.bell == nil {
		return
	}
	_, _ = io.WriteString(p.bell, "\a")
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}
