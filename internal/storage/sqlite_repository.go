package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteTimeLayout = time.RFC3339Nano
	trackColumns     = `id, title, path, position, enabled, last_played_at, created_at`
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ TrackRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	// The UI marks plays while another focusd may hold the file.
	if _, err := db.Exec("PRAGMA busy_timeout = 2000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the library at path and applies the embedded migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTrack inserts in. A non-positive Position appends the track to the end
// of the playlist.
func (r *SQLiteRepository) CreateTrack(ctx context.Context, in Track) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tracks (`+trackColumns+`)
		SELECT ?, ?, ?, CASE WHEN ? > 0 THEN ? ELSE COALESCE(MAX(position), 0) + 1 END, ?, ?, ?
		FROM tracks`,
		in.ID, in.Title, in.Path, in.Position, in.Position, boolInt(in.Enabled),
		formatNullTime(in.LastPlayedAt), formatTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetTrack(ctx context.Context, id string) (Track, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM tracks WHERE id = ?`, id)
	track, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Track{}, ErrNotFound
	}
	return track, err
}

func (r *SQLiteRepository) UpdateTrack(ctx context.Context, in Track) error {
	return r.exec(ctx, `
		UPDATE tracks
		SET title = ?, path = ?, position = ?, enabled = ?, last_played_at = ?
		WHERE id = ?`,
		in.Title, in.Path, in.Position, boolInt(in.Enabled), formatNullTime(in.LastPlayedAt), in.ID,
	)
}

func (r *SQLiteRepository) DeleteTrack(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM tracks WHERE id = ?`, id)
}

func (r *SQLiteRepository) Reset(ctx context.Context) error {
	if err := MigrateDownContext(ctx, r.db); err != nil {
		return fmt.Errorf("reset library: %w", err)
	}
	if err := MigrateUpContext(ctx, r.db); err != nil {
		return fmt.Errorf("reset library: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkPlayed(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, `UPDATE tracks SET last_played_at = ? WHERE id = ?`, formatTime(at), id)
}

func (r *SQLiteRepository) ListTracks(ctx context.Context, filter TrackListFilter) ([]Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks`
	var args []any
	if filter.Enabled != nil {
		query += ` WHERE enabled = ?`
		args = append(args, boolInt(*filter.Enabled))
	}
	query += ` ORDER BY position ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, track)
	}
	return out, rows.Err()
}

// exec runs a single-row statement and maps zero affected rows to ErrNotFound.
func (r *SQLiteRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func formatTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func formatNullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return formatTime(*v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// applyPagination appends LIMIT/OFFSET clauses; SQLite needs a LIMIT before
// any OFFSET, so -1 stands in for no limit.
func applyPagination(args *[]any, limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	if limit <= 0 {
		limit = -1
	}
	*args = append(*args, limit, max(offset, 0))
	return " LIMIT ? OFFSET ?"
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrack(s scanner) (Track, error) {
	var (
		out     Track
		enabled int
		played  sql.NullString
		created string
	)
	if err := s.Scan(&out.ID, &out.Title, &out.Path, &out.Position, &enabled, &played, &created); err != nil {
		return Track{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Track{}, fmt.Errorf("track %s created_at: %w", out.ID, err)
	}
	if played.Valid && played.String != "" {
		at, err := time.Parse(sqliteTimeLayout, played.String)
		if err != nil {
			return Track{}, fmt.Errorf("track %s last_played_at: %w", out.ID, err)
		}
		out.LastPlayedAt = &at
	}
	out.Enabled = enabled == 1
	out.CreatedAt = createdAt
	return out, nil
}
