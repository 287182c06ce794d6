package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/sandeepkv93/focusd/internal/audio"
	"github.com/sandeepkv93/focusd/internal/timer"
)

// BeepPlayer mixes preloaded effects into the shared speaker. Effects without
// a file ring the terminal bell.
type BeepPlayer struct {
	enabled bool
	buffers map[timer.Sound]*beep.Buffer
	play    func(beep.Streamer)
	bell    io.Writer
}

var _ timer.Notifier = (*BeepPlayer)(nil)

func NewBeepPlayer(cfg Config) (*BeepPlayer, error) {
	if err := audio.Init(); err != nil {
		return nil, fmt.Errorf("sound: init speaker: %w", err)
	}
	return newBeepPlayer(cfg, func(s beep.Streamer) { speaker.Play(s) })
}

func newBeepPlayer(cfg Config, play func(beep.Streamer)) (*BeepPlayer, error) {
	p := &BeepPlayer{
		enabled: cfg.Enabled,
		buffers: make(map[timer.Sound]*beep.Buffer),
		play:    play,
		bell:    os.Stderr,
	}
	paths := &Player{cfg: cfg}
	for _, s := range []timer.Sound{timer.SoundClick, timer.SoundComplete} {
		path := paths.fileFor(s)
		if path == "" {
			continue
		}
		buf, err := audio.Load(path)
		if err != nil {
			return nil, fmt.Errorf("sound: load %s effect: %w", s, err)
		}
		p.buffers[s] = buf
	}
	return p, nil
}

// Play starts the effect and returns at once; the speaker mixes it in.
func (p *BeepPlayer) Play(s timer.Sound) {
	if p == nil || !p.enabled {
		return
	}
	buf, ok := p.buffers[s]
	if !ok {
		if p.bell != nil {
			_, _ = io.WriteString(p.bell, "\a")
		}
		return
	}
	p.play(audio.Resample(buf.Format().SampleRate, buf.Streamer(0, buf.Len())))
}
