package storage

import "time"

type Track struct {
	ID           string
	Title        string
	Path         string
	Position     int
	Enabled      bool
	LastPlayedAt *time.Time
	CreatedAt    time.Time
}

type TrackListFilter struct {
	Enabled *bool
	Limit   int
	Offset  int
}
