package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roman-kulish/drone-state-publisher/internal/track"
)

// TrackReader provides an iterator-based interface for reading a recorded
// flight track with optional time filtering.
type TrackReader interface {
	// Session returns metadata about the session this reader is accessing.
	Session() *track.Session

	// Next advances the iterator and returns true if there is another point
	// to read, false when the iteration is complete or if an error occurred.
	Next(context.Context) bool

	// Current returns the current point in the iteration.
	// If called after Next() returns false, the behavior is undefined.
	Current() *track.Point

	// Error returns any error that occurred during iteration.
	// If Next() returns false, Error() should be checked to distinguish between
	// end of data and an error condition.
	Error() error

	// Close releases any resources associated with the reader.
	Close() error
}

// ReaderOption configures a TrackReader with specific filtering criteria.
type ReaderOption func(*SqliteTrackReader)

// WithStartTime sets the start time filter for the track reader.
// Points with timestamps before this time will be excluded.
func WithStartTime(t time.Time) ReaderOption {
	return func(r *SqliteTrackReader) {
		r.startTime = &t
	}
}

// WithEndTime sets the end time filter for the track reader.
// Points with timestamps after this time will be excluded.
func WithEndTime(t time.Time) ReaderOption {
	return func(r *SqliteTrackReader) {
		r.endTime = &t
	}
}

// WithTimeRange sets both start and end time filters.
func WithTimeRange(startTime, endTime time.Time) ReaderOption {
	return func(r *SqliteTrackReader) {
		r.startTime = &startTime
		r.endTime = &endTime
	}
}

func newSqliteTrackReader(ctx context.Context, db *sql.DB, sessionID int64, opts ...ReaderOption) (*SqliteTrackReader, error) {
	tr := &SqliteTrackReader{
		db:        db,
		sessionID: sessionID,
	}
	for _, opt := range opts {
		opt(tr)
	}
	if err := tr.init(ctx); err != nil {
		return nil, fmt.Errorf("initializing reader: %w", err)
	}
	return tr, nil
}

// SqliteTrackReader implements TrackReader for SQLite database backend.
type SqliteTrackReader struct {
	db *sql.DB

	sessionID int64
	session   *track.Session

	startTime *time.Time // Optional start of time range filter
	endTime   *time.Time // Optional end of time range filter

	current track.Point
	rows    *sql.Rows
	err     error
}

func (tr *SqliteTrackReader) init(ctx context.Context) error {
	if tr.db == nil {
		return errors.New("database connection required")
	}
	if tr.sessionID <= 0 {
		return errors.New("session ID required")
	}

	steps := []struct {
		msg string
		fn  func(context.Context) error
	}{
		{msg: "loading session", fn: tr.loadSession},
		{msg: "initializing filters", fn: tr.initFilters},
		{msg: "initializing query", fn: tr.initQuery},
	}
	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.msg, err)
		}
	}
	return nil
}

func (tr *SqliteTrackReader) loadSession(ctx context.Context) (err error) {
	tr.session, err = loadSession(ctx, tr.db, tr.sessionID)
	return
}

func (tr *SqliteTrackReader) initFilters(ctx context.Context) (err error) {
	if tr.startTime != nil && tr.endTime != nil {
		if tr.startTime.After(*tr.endTime) {
			return fmt.Errorf("start time %s is after end time %s", tr.startTime, tr.endTime)
		}
		return nil
	}

	stmt, err := tr.db.PrepareContext(ctx, selectTimeRangeSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	var minTime, maxTime int64
	if err = stmt.QueryRowContext(ctx, tr.sessionID).Scan(&minTime, &maxTime); err != nil {
		return fmt.Errorf("scanning time range: %w", err)
	}

	if tr.startTime == nil {
		t := time.Unix(0, minTime).UTC()
		tr.startTime = &t
	}
	if tr.endTime == nil {
		t := time.Unix(0, maxTime).UTC()
		tr.endTime = &t
	}

	return nil
}

func (tr *SqliteTrackReader) initQuery(ctx context.Context) (err error) {
	stmt, err := tr.db.PrepareContext(ctx, selectStatesSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	if tr.rows, err = stmt.QueryContext(ctx, tr.sessionID, tr.startTime.UnixNano(), tr.endTime.UnixNano()); err != nil {
		return err
	}
	return nil
}

func (tr *SqliteTrackReader) Session() *track.Session {
	return tr.session
}

func (tr *SqliteTrackReader) Next(ctx context.Context) bool {
	if tr.err != nil || tr.rows == nil {
		return false
	}

	select {
	case <-ctx.Done():
		tr.err = ctx.Err()
		return false
	default:
	}

	if !tr.rows.Next() {
		return false
	}

	var data stateData
	tr.err = tr.rows.Scan(
		&data.Timestamp,
		&data.X,
		&data.Y,
		&data.Z,
		&data.Roll,
		&data.Pitch,
		&data.Yaw,
		&data.QX,
		&data.QY,
		&data.QZ,
		&data.QW,
	)
	if tr.err != nil {
		tr.err = fmt.Errorf("scanning state: %w", tr.err)
		return false
	}

	tr.current = toPoint(&data)
	return true
}

func (tr *SqliteTrackReader) Current() *track.Point {
	return &tr.current
}

func (tr *SqliteTrackReader) Error() error {
	if tr.err != nil {
		return tr.err
	}
	if tr.rows != nil {
		return tr.rows.Err()
	}
	return nil
}

func (tr *SqliteTrackReader) Close() error {
	if tr.rows != nil {
		err := tr.rows.Close()
		tr.rows = nil
		return err
	}
	return nil
}

// ReadAll drains a reader into a slice
func ReadAll(ctx context.Context, r TrackReader) ([]track.Point, error) {
	var points []track.Point
	for r.Next(ctx) {
		points = append(points, *r.Current())
	}
	if err := r.Error(); err != nil {
		return nil, err
	}
	return points, nil
}
