// Package storage persists conversion input and output: KML and GPX objects
// in S3-compatible storage, and an optional Postgres archive of waypoints.
package storage

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kml2gpx/internal/models"
)

const createWaypoints = `
CREATE TABLE IF NOT EXISTS waypoints (
	source      TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	record_id   TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	lat         DOUBLE PRECISION NOT NULL,
	lon         DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (source, seq)
)`

var waypointColumns = []string{"source", "seq", "record_id", "name", "description", "lat", "lon"}

// WaypointStore archives the waypoints of each converted document, keyed by
// the document's source (e.g. bucket/key).
type WaypointStore struct {
	pool *pgxpool.Pool
}

// NewWaypointStore connects to dsn and makes sure the table exists.
func NewWaypointStore(ctx context.Context, dsn string) (*WaypointStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse dsn")
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping")
	}
	if _, err := pool.Exec(ctx, createWaypoints); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "create waypoints table")
	}
	return &WaypointStore{pool: pool}, nil
}

// Replace swaps the archived waypoints of source for wpts in one
// transaction.
func (s *WaypointStore) Replace(ctx context.Context, source string, wpts []models.Waypoint) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM waypoints WHERE source = $1`, source); err != nil {
		return errors.Wrapf(err, "clear %s", source)
	}
	n, err := tx.CopyFrom(ctx, pgx.Identifier{"waypoints"}, waypointColumns,
		pgx.CopyFromSlice(len(wpts), func(i int) ([]any, error) {
			return waypointRow(source, i, wpts[i]), nil
		}))
	if err != nil {
		return errors.Wrapf(err, "copy waypoints for %s", source)
	}
	if int(n) != len(wpts) {
		return errors.Newf("copied %d of %d waypoints for %s", n, len(wpts), source)
	}
	return tx.Commit(ctx)
}

func waypointRow(source string, seq int, w models.Waypoint) []any {
	return []any{source, seq, w.RecordID, w.Name, w.Description, w.Coordinate.Lat, w.Coordinate.Lon}
}

// Close releases pool resources.
func (s *WaypointStore) Close() {
	s.pool.Close()
}
