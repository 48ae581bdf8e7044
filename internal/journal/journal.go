// Package journal keeps an append-only trail of what happened in the shop:
// tasks created, assigned and completed, customers added, parts requested.
// The trail is for review only and is never replayed into shop state.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/workshop/internal/db"
)

// Kind identifies what an event records.
type Kind string

const (
	KindTaskCreated        Kind = "task_created"
	KindTaskAssigned       Kind = "task_assigned"
	KindTaskCompleted      Kind = "task_completed"
	KindCustomerRegistered Kind = "customer_registered"
	KindWalkInAdded        Kind = "walkin_added"
	KindCustomerUpgraded   Kind = "customer_upgraded"
	KindMechanicAdded      Kind = "mechanic_added"
	KindManufacturerAdded  Kind = "manufacturer_added"
	KindSupplierAdded      Kind = "supplier_added"
	KindPartRequested      Kind = "part_requested"
	KindNotificationSent   Kind = "notification_sent"
)

// Event is one journal entry. Zero ids mean "not applicable".
type Event struct {
	ID         int64
	SessionID  string
	Time       time.Time
	Kind       Kind
	TaskID     int
	MechanicID int
	CustomerID int
	Priority   int
	Detail     string
}

// Session is one run of the interactive console.
type Session struct {
	ID        string
	ShopName  string
	StartedAt time.Time
	EndedAt   time.Time // zero while open or if the process died
	Events    int
}

// Recorder accepts journal events.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Discard is a Recorder that drops every event.
type Discard struct{}

// Record implements Recorder.
func (Discard) Record(context.Context, Event) error { return nil }

// Journal writes events for one session to the database.
type Journal struct {
	db      *sql.DB
	session string
	now     func() time.Time
}

// Open starts a new session in the database.
func Open(ctx context.Context, database *db.DB, shopName string) (*Journal, error) {
	if database == nil || database.SQL() == nil {
		return nil, db.ErrNilDB
	}
	j := &Journal{
		db:      database.SQL(),
		session: uuid.NewString(),
		now:     time.Now,
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sessions (id, shop_name, started_at) VALUES (?, ?, ?)`,
		j.session, shopName, j.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("journal: start session: %w", err)
	}
	return j, nil
}

// SessionID returns the id of the session being written.
func (j *Journal) SessionID() string {
	return j.session
}

// Record appends an event to the current session.
func (j *Journal) Record(ctx context.Context, e Event) error {
	if e.Time.IsZero() {
		e.Time = j.now()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (session_id, occurred_at, kind, task_id, mechanic_id, customer_id, priority, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.session, e.Time.UTC(), string(e.Kind), e.TaskID, e.MechanicID, e.CustomerID, e.Priority, e.Detail)
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", e.Kind, err)
	}
	return nil
}

// Close marks the session as ended.
func (j *Journal) Close(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ? WHERE id = ?`, j.now().UTC(), j.session)
	if err != nil {
		return fmt.Errorf("journal: end session: %w", err)
	}
	return nil
}

// Query selects events for Recent.
type Query struct {
	SessionID string // empty means all sessions
	Kind      Kind   // empty means all kinds
	Limit     int    // <= 0 means 50
}

// Recent returns the newest matching events, newest first.
func Recent(ctx context.Context, database *db.DB, q Query) ([]Event, error) {
	if database == nil || database.SQL() == nil {
		return nil, db.ErrNilDB
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}

	rows, err := database.SQL().QueryContext(ctx, `
		SELECT id, session_id, occurred_at, kind, task_id, mechanic_id, customer_id, priority, detail
		FROM events
		WHERE (? = '' OR session_id = ?) AND (? = '' OR kind = ?)
		ORDER BY id DESC
		LIMIT ?`,
		q.SessionID, q.SessionID, string(q.Kind), string(q.Kind), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Time, &kind, &e.TaskID, &e.MechanicID, &e.CustomerID, &e.Priority, &e.Detail); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		e.Kind = Kind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Sessions returns the newest sessions with their event counts.
func Sessions(ctx context.Context, database *db.DB, limit int) ([]Session, error) {
	if database == nil || database.SQL() == nil {
		return nil, db.ErrNilDB
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := database.SQL().QueryContext(ctx, `
		SELECT s.id, s.shop_name, s.started_at, s.ended_at,
		       (SELECT COUNT(*) FROM events e WHERE e.session_id = s.id)
		FROM sessions s
		ORDER BY s.started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Session
	for rows.Next() {
		var s Session
		var ended sql.NullTime
		if err := rows.Scan(&s.ID, &s.ShopName, &s.StartedAt, &ended, &s.Events); err != nil {
			return nil, fmt.Errorf("journal: scan session: %w", err)
		}
		if ended.Valid {
			s.EndedAt = ended.Time
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
