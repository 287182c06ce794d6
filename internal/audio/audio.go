// Package audio wraps the beep speaker shared by sound effects and music.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// SampleRate is the rate the speaker is opened at; decoded streams are
// resampled to it.
const SampleRate beep.SampleRate = 44100

var ErrUnsupportedFormat = errors.New("audio: unsupported file format")

var (
	speakerOnce sync.Once
	speakerErr  error
)

// Init opens the output device once per process.
func Init() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

// Open decodes a WAV or MP3 file. The caller owns the returned stream.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}
	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, format, nil
}

// Load decodes path fully into memory for repeated playback.
func Load(path string) (*beep.Buffer, error) {
	s, format, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf, nil
}

// Resample converts s to the speaker rate when needed.
func Resample(from beep.SampleRate, s beep.Streamer) beep.Streamer {
	if from == SampleRate {
		return s
	}
	return beep.Resample(4, from, SampleRate, s)
}

// NewVolume wraps s with a gain control for level 0..100.
func NewVolume(s beep.Streamer, level int) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	SetLevel(v, level)
	return v
}

// SetLevel maps 0..100 onto the logarithmic gain; 0 is silent and 100 is unity.
func SetLevel(v *effects.Volume, level int) {
	level = min(max(level, 0), 100)
	v.Silent = level == 0
	v.Volume = float64(level-100) / 25
}
