package model

import (
	"errors"
	"strings"
)

// Track is one entry of the background music playlist.
type Track struct {
	ID       string
	Title    string
	Path     string
	Position int
}

func (t Track) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: track id is required")
	}
	if strings.TrimSpace(t.Path) == "" {
		return errors.New("model: track path is required")
	}
	return nil
}

func DefaultTracks() []Track {
	return []Track{
		{ID: "1", Title: "Hollow Knight Lofi", Path: "Hollow Knight Lofi.mp3", Position: 1},
		{ID: "2", Title: "Halo Lofi", Path: "Halo Lofi.mp3", Position: 2},
		{ID: "3", Title: "Star Wars Lofi", Path: "Star Wars Lofi.mp3", Position: 3},
		{ID: "4", Title: "Silksong Lofi", Path: "Silksong Lofi.mp3", Position: 4},
	}
}
