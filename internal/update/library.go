package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
)

// editPlaylist applies a track command to the library, when one is open, and
// then to the music panel.
func (m *Model) editPlaylist(a commands.TrackArgs) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), libraryTimeout)
	defer cancel()

	switch a.Action {
	case commands.TrackAdd:
		return m.addTrack(ctx, a.Path, a.Title)
	case commands.TrackRemove:
		track, err := m.trackAt(a.Index)
		if err != nil {
			return "", err
		}
		if m.library != nil {
			if err := m.library.DeleteTrack(ctx, track.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return "", fmt.Errorf("delete track: %w", err)
			}
		}
		if err := m.Music.RemoveTrack(track.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("removed track: %s", track.Title), nil
	case commands.TrackRename:
		track, err := m.trackAt(a.Index)
		if err != nil {
			return "", err
		}
		if m.library != nil {
			stored, err := m.library.GetTrack(ctx, track.ID)
			if err != nil {
				return "", fmt.Errorf("load track: %w", err)
			}
			stored.Title = a.Title
			if err := m.library.UpdateTrack(ctx, stored); err != nil {
				return "", fmt.Errorf("rename track: %w", err)
			}
		}
		if err := m.Music.RenameTrack(track.ID, a.Title); err != nil {
			return "", err
		}
		return fmt.Sprintf("renamed track #%d: %s", a.Index, a.Title), nil
	case commands.TrackReset:
		tracks := model.DefaultTracks()
		if m.library != nil {
			if err := m.library.Reset(ctx); err != nil {
				return "", err
			}
			var err error
			if tracks, err = storage.LoadPlaylist(ctx, m.library); err != nil {
				return "", err
			}
		}
		if err := m.Music.SetTracks(tracks); err != nil {
			return "", err
		}
		m.trackCursor = 0
		return fmt.Sprintf("playlist reset: %d tracks", len(tracks)), nil
	}
	return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown track action: %s", a.Action)}
}

// addTrack appends a track. With a library the stored row decides the final
// position.
func (m *Model) addTrack(ctx context.Context, path, title string) (string, error) {
	track := model.Track{ID: uuid.NewString(), Title: title, Path: path, Position: len(m.Music.Tracks()) + 1}
	if err := track.Validate(); err != nil {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	if m.library != nil {
		err := m.library.CreateTrack(ctx, storage.Track{
			ID:        track.ID,
			Title:     track.Title,
			Path:      track.Path,
			Enabled:   true,
			CreatedAt: m.clock.Now().UTC(),
		})
		if err != nil {
			return "", fmt.Errorf("save track: %w", err)
		}
		stored, err := m.library.GetTrack(ctx, track.ID)
		if err != nil {
			return "", fmt.Errorf("load track: %w", err)
		}
		track = stored.Model()
	}
	if err := m.Music.AddTrack(track); err != nil {
		return "", err
	}
	return fmt.Sprintf("added track #%d: %s", len(m.Music.Tracks()), track.Title), nil
}

// trackAt resolves a 1-based playlist number.
func (m *Model) trackAt(n int) (model.Track, error) {
	tracks := m.Music.Tracks()
	if n < 1 || n > len(tracks) {
		return model.Track{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no track #%d", n)}
	}
	return tracks[n-1], nil
}
