package storage

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/focusd/internal/model"
)

func (t Track) Model() model.Track {
	return model.Track{ID: t.ID, Title: t.Title, Path: t.Path, Position: t.Position}
}

// LoadPlaylist returns the enabled tracks in playlist order.
func LoadPlaylist(ctx context.Context, repo TrackRepository) ([]model.Track, error) {
	enabled := true
	rows, err := repo.ListTracks(ctx, TrackListFilter{Enabled: &enabled})
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	out := make([]model.Track, 0, len(rows))
	for _, row := range rows {
		track := row.Model()
		if err := track.Validate(); err != nil {
			return nil, fmt.Errorf("track %s: %w", row.ID, err)
		}
		out = append(out, track)
	}
	return out, nil
}
