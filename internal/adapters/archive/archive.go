// Package archive keeps a SQLite copy of the events export keyed by event URL.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/ufcradar/internal/domain/fields"
	"github.com/okian/ufcradar/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

const dateLayout = "2006-01-02"

// Event is a stored event.
type Event struct {
	URL      string
	Name     string
	Date     time.Time
	Location string
}

// DB wraps a sql.DB for the event archive.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	// one connection keeps ":memory:" databases shared across statements
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: apply schema: %w", ErrOpen, err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q querier, url string) (Event, error) {
	var (
		e    Event
		date string
	)
	err := q.QueryRowContext(ctx,
		"SELECT url, name, date, location FROM events WHERE url = ?", url,
	).Scan(&e.URL, &e.Name, &date, &e.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	e.Date, err = time.Parse(dateLayout, date)
	if err != nil {
		return Event{}, fmt.Errorf("event %s: bad stored date %q: %w", url, date, err)
	}
	return e, nil
}

// Get returns the event stored under url.
func (db *DB) Get(ctx context.Context, url string) (Event, error) {
	return get(ctx, db.conn, url)
}

// Count returns the number of stored events.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(1) FROM events").Scan(&n)
	return n, err
}

// List returns up to limit events, most recent first. limit <= 0 returns all.
func (db *DB) List(ctx context.Context, limit int) ([]Event, error) {
	q := "SELECT url, name, date, location FROM events ORDER BY date DESC, name"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e    Event
			date string
		)
		if err := rows.Scan(&e.URL, &e.Name, &date, &e.Location); err != nil {
			return nil, err
		}
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("event %s: bad stored date %q: %w", e.URL, date, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Action is what Import did, or would do, with a row.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Change describes one created or updated event.
type Change struct {
	Action Action
	Event  Event
	// Fields lists the changed columns of an update.
	Fields []string
}

// Report summarizes an import.
type Report struct {
	Applied   bool
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Changes   []Change
}

// Import classifies every row against the archive and, when apply is set,
// writes creates and updates in a single transaction. Rows without a name,
// URL or parseable date are skipped. A URL repeated within rows is compared
// against its earlier occurrence.
func (db *DB) Import(ctx context.Context, rows []model.EventRow, apply bool) (Report, error) {
	rep := Report{Applied: apply}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return rep, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	pending := make(map[string]Event)
	for _, r := range rows {
		if r.Name == "" || r.URL == "" || r.Date == "" {
			rep.Skipped++
			continue
		}
		d := fields.ParseEventDate(r.Date)
		if !d.OK() {
			rep.Skipped++
			continue
		}
		next := Event{URL: r.URL, Name: r.Name, Date: d.Get(), Location: r.Location}

		prev, ok := pending[r.URL]
		if !ok {
			prev, err = get(ctx, tx, r.URL)
			switch {
			case errors.Is(err, ErrNotFound):
			case err != nil:
				return rep, fmt.Errorf("lookup %s: %w", r.URL, err)
			default:
				ok = true
			}
		}

		if !ok {
			rep.Created++
			rep.Changes = append(rep.Changes, Change{Action: ActionCreate, Event: next})
		} else {
			changed := diff(prev, next)
			if len(changed) == 0 {
				rep.Unchanged++
				continue
			}
			rep.Updated++
			rep.Changes = append(rep.Changes, Change{Action: ActionUpdate, Event: next, Fields: changed})
		}
		pending[r.URL] = next

		if apply {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO events(url, name, date, location) VALUES (?, ?, ?, ?)
				ON CONFLICT(url) DO UPDATE SET name = excluded.name, date = excluded.date, location = excluded.location`,
				next.URL, next.Name, next.Date.Format(dateLayout), next.Location,
			); err != nil {
				return rep, fmt.Errorf("upsert %s: %w", r.URL, err)
			}
		}
	}

	if !apply {
		return rep, nil
	}
	if err := tx.Commit(); err != nil {
		return rep, fmt.Errorf("commit import: %w", err)
	}
	return rep, nil
}

func diff(prev, next Event) []string {
	var out []string
	if prev.Name != next.Name {
		out = append(out, "name")
	}
	if !prev.Date.Equal(next.Date) {
		out = append(out, "date")
	}
	if prev.Location != next.Location {
		out = append(out, "location")
	}
	return out
}
