package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

// TrackRepository is the music library. Tasks and timer state are never
// stored.
type TrackRepository interface {
	CreateTrack(ctx context.Context, in Track) error
	GetTrack(ctx context.Context, id string) (Track, error)
	UpdateTrack(ctx context.Context, in Track) error
	DeleteTrack(ctx context.Context, id string) error
	ListTracks(ctx context.Context, filter TrackListFilter) ([]Track, error)
	MarkPlayed(ctx context.Context, id string, at time.Time) error
	// Reset drops every user edit and restores the seeded playlist.
	Reset(ctx context.Context) error
}
