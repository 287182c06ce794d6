package update

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/music"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// libraryTimeout bounds each call into the track library.
const libraryTimeout = 2 * time.Second

func (m Model) handleMusicKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case m.Keys.Music:
		if m.Music.ToggleExpanded() {
			m.Status = StatusBar{Text: "music player shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "music player hidden", IsError: false}
		}
		return m, nil, true
	}
	if !m.Music.Expanded() {
		return m, nil, false
	}

	var cmd tea.Cmd
	switch msg.String() {
	case m.Keys.Volume:
		if m.Music.ToggleVolume() {
			m.Status = StatusBar{Text: "volume control shown", IsError: false}
		} else {
			m.Status = StatusBar{Text: "volume control hidden", IsError: false}
		}
	case "up":
		if m.trackCursor > 0 {
			m.trackCursor--
		}
	case "down":
		if m.trackCursor < len(m.Music.Tracks())-1 {
			m.trackCursor++
		}
	case "p":
		cmd, _ = m.toggleTrack(m.trackCursor)
	case "<", ",":
		if !m.Music.VolumeVisible() {
			return m, nil, false
		}
		m.nudgeVolume(-music.VolumeStep)
	case ">", ".":
		if !m.Music.VolumeVisible() {
			return m, nil, false
		}
		m.nudgeVolume(music.VolumeStep)
	default:
		return m, nil, false
	}
	return m, cmd, true
}

// toggleTrack plays the track at index i, pausing it when it is already
// playing. Starting a track returns the library update as a command.
func (m *Model) toggleTrack(i int) (tea.Cmd, error) {
	playing, err := m.Music.SelectIndex(i)
	if err != nil {
		log.Printf("music: %v", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return nil, err
	}
	m.trackCursor = i
	track := m.Music.Tracks()[i]
	if !playing {
		m.Status = StatusBar{Text: fmt.Sprintf("paused: %s", track.Title), IsError: false}
		return nil, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("playing: %s", track.Title), IsError: false}
	if m.library == nil {
		return nil, nil
	}
	return markPlayedCmd(m.library, track.ID, m.clock.Now().UTC()), nil
}

func markPlayedCmd(repo storage.TrackRepository, id string, at time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), libraryTimeout)
		defer cancel()
		if err := repo.MarkPlayed(ctx, id, at); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("mark track played: %w", err)}
		}
		return nil
	}
}

func (m *Model) setVolume(v int) error {
	return m.volumeResult(m.Music.SetVolume(v))
}

func (m *Model) nudgeVolume(delta int) error {
	return m.volumeResult(m.Music.NudgeVolume(delta))
}

func (m *Model) volumeResult(err error) error {
	if err != nil {
		log.Printf("music volume: %v", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return err
	}
	m.Status = StatusBar{Text: fmt.Sprintf("volume %d", m.Music.Volume()), IsError: false}
	return nil
}
