package music

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sandeepkv93/focusd/internal/model"
)

// ExecBackend loops a track through an external player process. mpv and
// ffplay are understood; a volume change restarts the current track.
type ExecBackend struct {
	Command string
	Dir     string

	mu      sync.Mutex
	cancel  context.CancelFunc
	current *model.Track
	volume  int
	start   func(ctx context.Context, name string, args ...string) error
}

// DefaultCommand is the player used when none is configured.
func DefaultCommand() string {
	return "mpv"
}

func NewExecBackend(command, dir string) *ExecBackend {
	return &ExecBackend{
		Command: strings.TrimSpace(command),
		Dir:     dir,
		volume:  DefaultVolume,
		start:   startProcess,
	}
}

func (b *ExecBackend) Play(track model.Track, volume int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.volume = volume
	return b.playLocked(track)
}

func (b *ExecBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.current = nil
	return nil
}

func (b *ExecBackend) SetVolume(volume int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = volume
	if b.current == nil {
		return nil
	}
	track := *b.current
	b.stopLocked()
	return b.playLocked(track)
}

func (b *ExecBackend) playLocked(track model.Track) error {
	if b.Command == "" {
		return fmt.Errorf("music: no player command configured")
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := b.start(ctx, b.Command, b.args(track)...); err != nil {
		cancel()
		return err
	}
	b.cancel = cancel
	b.current = &track
	return nil
}

func (b *ExecBackend) stopLocked() {
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *ExecBackend) args(track model.Track) []string {
	path := track.Path
	if b.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.Dir, path)
	}
	vol := fmt.Sprint(b.volume)
	switch filepath.Base(b.Command) {
	case "ffplay":
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-loop", "0", "-volume", vol, path}
	default:
		return []string{"--no-video", "--really-quiet", "--loop-file=inf", "--volume=" + vol, path}
	}
}

func startProcess(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			log.Printf("music: %s exited: %v", name, err)
		}
	}()
	return nil
}
