// Package music keeps the background music panel state and drives a looping
// player process.
package music

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/focusd/internal/model"
)

var ErrUnknownTrack = errors.New("music: unknown track")

const (
	DefaultVolume = 50
	VolumeStep    = 10
)

type VolumeLevel string

const (
	VolumeMute VolumeLevel = "mute"
	VolumeDown VolumeLevel = "down"
	VolumeUp   VolumeLevel = "up"
)

type Backend interface {
	Play(track model.Track, volume int) error
	Pause() error
	SetVolume(volume int) error
}

type NoopBackend struct{}

func (NoopBackend) Play(model.Track, int) error { return nil }
func (NoopBackend) Pause() error                { return nil }
func (NoopBackend) SetVolume(int) error         { return nil }

// Panel is the music pane: an expandable playlist with a volume control that
// is only reachable while the panel is expanded.
type Panel struct {
	expanded      bool
	volumeVisible bool
	tracks        []model.Track
	current       string
	volume        int
	backend       Backend
}

func NewPanel(tracks []model.Track, backend Backend) *Panel {
	if backend == nil {
		backend = NoopBackend{}
	}
	return &Panel{
		tracks:  slices.Clone(tracks),
		volume:  DefaultVolume,
		backend: backend,
	}
}

func (p *Panel) ToggleExpanded() bool {
	p.expanded = !p.expanded
	if !p.expanded {
		p.volumeVisible = false
	}
	return p.expanded
}

// ToggleVolume is ignored while the panel is collapsed.
func (p *Panel) ToggleVolume() bool {
	if !p.expanded {
		return false
	}
	p.volumeVisible = !p.volumeVisible
	return p.volumeVisible
}

// Select plays the track, or pauses it when it is the one already playing.
// It reports whether a track is playing afterwards.
func (p *Panel) Select(id string) (bool, error) {
	if p.current == id {
		if err := p.backend.Pause(); err != nil {
			return true, fmt.Errorf("pause %s: %w", id, err)
		}
		p.current = ""
		return false, nil
	}
	track, ok := p.Track(id)
	if !ok {
		return p.current != "", fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	if err := p.backend.Play(track, p.volume); err != nil {
		p.current = ""
		return false, fmt.Errorf("play %s: %w", track.Title, err)
	}
	p.current = id
	return true, nil
}

func (p *Panel) SelectIndex(i int) (bool, error) {
	if i < 0 || i >= len(p.tracks) {
		return p.current != "", fmt.Errorf("%w: #%d", ErrUnknownTrack, i+1)
	}
	return p.Select(p.tracks[i].ID)
}

func (p *Panel) AddTrack(t model.Track) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := p.Track(t.ID); ok {
		return fmt.Errorf("music: duplicate track %q", t.ID)
	}
	p.tracks = append(p.tracks, t)
	return nil
}

// RemoveTrack drops a track, pausing playback first when it is the one
// playing.
func (p *Panel) RemoveTrack(id string) error {
	i := slices.IndexFunc(p.tracks, func(t model.Track) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	if p.current == id {
		if err := p.backend.Pause(); err != nil {
			return fmt.Errorf("pause %s: %w", id, err)
		}
		p.current = ""
	}
	p.tracks = slices.Delete(p.tracks, i, i+1)
	return nil
}

func (p *Panel) RenameTrack(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("music: track title is required")
	}
	i := slices.IndexFunc(p.tracks, func(t model.Track) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTrack, id)
	}
	p.tracks[i].Title = title
	return nil
}

// SetTracks replaces the playlist and stops whatever was playing.
func (p *Panel) SetTracks(tracks []model.Track) error {
	if p.current != "" {
		if err := p.backend.Pause(); err != nil {
			return fmt.Errorf("pause %s: %w", p.current, err)
		}
		p.current = ""
	}
	p.tracks = slices.Clone(tracks)
	return nil
}

func (p *Panel) SetVolume(v int) error {
	p.volume = min(max(v, 0), 100)
	return p.backend.SetVolume(p.volume)
}

func (p *Panel) NudgeVolume(delta int) error {
	return p.SetVolume(p.volume + delta)
}

func (p *Panel) Level() VolumeLevel {
	switch {
	case p.volume == 0:
		return VolumeMute
	case p.volume < 50:
		return VolumeDown
	default:
		return VolumeUp
	}
}

func (p *Panel) Track(id string) (model.Track, bool) {
	for _, t := range p.tracks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Track{}, false
}

func (p *Panel) Expanded() bool        { return p.expanded }
func (p *Panel) VolumeVisible() bool   { return p.volumeVisible }
func (p *Panel) Tracks() []model.Track { return p.tracks }
func (p *Panel) Current() string       { return p.current }
func (p *Panel) Playing() bool         { return p.current != "" }
func (p *Panel) Volume() int           { return p.volume }
