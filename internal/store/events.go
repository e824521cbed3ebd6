package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Action is what happened in a review event.
type Action string

const (
	ActionStart     Action = "start"     // a deck was loaded and review began
	ActionKnown     Action = "known"     // entry marked known and removed
	ActionUnknown   Action = "unknown"   // entry skipped, stays in the deck
	ActionExhausted Action = "exhausted" // deck ran out of entries
	ActionEnd       Action = "end"       // review session closed
)

// ReviewEvent is one row of review history.
type ReviewEvent struct {
	ID        int64
	SessionID string
	Action    Action
	Language  string
	Category  string
	Direction string
	Prompt    string
	Answer    string
	CreatedAt time.Time
}

// EventRepo provides append and query access to review history.
type EventRepo interface {
	// Append records an event. A zero CreatedAt is set to the current time.
	Append(ctx context.Context, ev ReviewEvent) error

	// Counts returns the number of events per action at or after since.
	Counts(ctx context.Context, since time.Time) (map[Action]int, error)

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]ReviewEvent, error)
}

// builder generates SQLite-style "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var eventColumns = []string{
	"id", "session_id", "action", "language", "category", "direction", "prompt", "answer", "created_at",
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, ev ReviewEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	query := builder.
		Insert("review_events").
		Columns("session_id", "action", "language", "category", "direction", "prompt", "answer", "created_at").
		Values(ev.SessionID, string(ev.Action), ev.Language, ev.Category, ev.Direction,
			ev.Prompt, ev.Answer, ev.CreatedAt.UnixMilli()).
		RunWith(r.db)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("save review event: %w", err)
	}
	return nil
}

func (r *eventRepo) Counts(ctx context.Context, since time.Time) (map[Action]int, error) {
	rows, err := builder.
		Select("action", "COUNT(*)").
		From("review_events").
		Where(sq.GtOrEq{"created_at": since.UnixMilli()}).
		GroupBy("action").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query review counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[Action]int)
	for rows.Next() {
		var (
			action string
			n      int
		)
		if err := rows.Scan(&action, &n); err != nil {
			return nil, fmt.Errorf("scan review count: %w", err)
		}
		counts[Action(action)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query review counts: %w", err)
	}
	return counts, nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]ReviewEvent, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := builder.
		Select(eventColumns...).
		From("review_events").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query recent reviews: %w", err)
	}
	defer rows.Close()

	var events []ReviewEvent
	for rows.Next() {
		var (
			ev      ReviewEvent
			action  string
			created int64
		)
		if err := rows.Scan(&ev.ID, &ev.SessionID, &action, &ev.Language, &ev.Category,
			&ev.Direction, &ev.Prompt, &ev.Answer, &created); err != nil {
			return nil, fmt.Errorf("scan review event: %w", err)
		}
		ev.Action = Action(action)
		ev.CreatedAt = time.UnixMilli(created)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query recent reviews: %w", err)
	}
	return events, nil
}
