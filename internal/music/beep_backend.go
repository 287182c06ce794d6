package music

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/sandeepkv93/focusd/internal/audio"
	"github.com/sandeepkv93/focusd/internal/model"
)

// BeepBackend loops a decoded track through the shared speaker. Volume changes
// apply to the live stream without restarting it.
type BeepBackend struct {
	Dir string

	mu      sync.Mutex
	stream  beep.StreamSeekCloser
	ctrl    *beep.Ctrl
	gain    *effects.Volume
	current *model.Track
	volume  int

	play   func(beep.Streamer)
	lock   func()
	unlock func()
}

var _ Backend = (*BeepBackend)(nil)

func NewBeepBackend(dir string) (*BeepBackend, error) {
	if err := audio.Init(); err != nil {
		return nil, fmt.Errorf("music: init speaker: %w", err)
	}
	b := newBeepBackend(dir)
	b.play = func(s beep.Streamer) { speaker.Play(s) }
	b.lock = speaker.Lock
	b.unlock = speaker.Unlock
	return b, nil
}

func newBeepBackend(dir string) *BeepBackend {
	return &BeepBackend{
		Dir:    dir,
		volume: DefaultVolume,
		play:   func(beep.Streamer) {},
		lock:   func() {},
		unlock: func() {},
	}
}

func (b *BeepBackend) Play(track model.Track, volume int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()

	path := track.Path
	if b.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.Dir, path)
	}
	stream, format, err := audio.Open(path)
	if err != nil {
		return err
	}
	b.volume = volume
	b.stream = stream
	b.gain = audio.NewVolume(audio.Resample(format.SampleRate, beep.Loop(-1, stream)), volume)
	b.ctrl = &beep.Ctrl{Streamer: b.gain}
	b.current = &track
	b.play(b.ctrl)
	return nil
}

func (b *BeepBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopLocked()
}

func (b *BeepBackend) SetVolume(volume int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = volume
	if b.gain == nil {
		return nil
	}
	b.lock()
	audio.SetLevel(b.gain, volume)
	b.unlock()
	return nil
}

// stopLocked detaches the live stream from the speaker and releases the file.
func (b *BeepBackend) stopLocked() error {
	if b.ctrl != nil {
		b.lock()
		b.ctrl.Paused = true
		b.ctrl.Streamer = nil
		b.unlock()
	}
	var err error
	if b.stream != nil {
		err = b.stream.Close()
	}
	b.stream = nil
	b.ctrl = nil
	b.gain = nil
	b.current = nil
	return err
}
