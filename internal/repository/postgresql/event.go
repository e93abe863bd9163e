package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/event"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, user_id, kind, timestamp, is_return, location,
	   latitude, longitude, accuracy, reason, created_at`

func scanEvent(row pgx.Row) (event.Event, error) {
	var ev event.Event
	err := row.Scan(
		&ev.ID, &ev.UserID, &ev.Kind, &ev.Timestamp, &ev.IsReturn, &ev.Location,
		&ev.Latitude, &ev.Longitude, &ev.Accuracy, &ev.Reason, &ev.CreatedAt,
	)
	return ev, err
}

// Create implements event.EventRepository.
func (r *eventRepository) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (
			id, user_id, kind, timestamp, is_return, location,
			latitude, longitude, accuracy, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		ev.ID,
		ev.UserID,
		ev.Kind,
		ev.Timestamp,
		ev.IsReturn,
		ev.Location,
		ev.Latitude,
		ev.Longitude,
		ev.Accuracy,
		ev.Reason,
	).Scan(&ev.CreatedAt)

	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return ev, nil
}

// LatestByUserAndKind implements event.EventRepository.
func (r *eventRepository) LatestByUserAndKind(ctx context.Context, userID string, kind event.Kind) (*event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1
		  AND kind = $2
		ORDER BY timestamp DESC, created_at DESC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, userID, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest event: %w", err)
	}

	return &ev, nil
}

// FindWithinWindow implements event.EventRepository.
func (r *eventRepository) FindWithinWindow(ctx context.Context, userID string, kind event.Kind, since time.Time) (*event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1
		  AND kind = $2
		  AND timestamp >= $3
		ORDER BY timestamp DESC, created_at DESC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, userID, kind, since))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find event within window: %w", err)
	}

	return &ev, nil
}

// ListForUserOnDate implements event.EventRepository.
func (r *eventRepository) ListForUserOnDate(ctx context.Context, userID string, date time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE user_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for date: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// List implements event.EventRepository.
func (r *eventRepository) List(ctx context.Context, filter event.Filter) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argPos))
		args = append(args, *filter.Kind)
		argPos++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("timestamp < $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY timestamp ASC, created_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListOpenSessions implements event.EventRepository.
func (r *eventRepository) ListOpenSessions(ctx context.Context, cutoff time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM (
			SELECT DISTINCT ON (user_id) ` + eventColumns + `
			FROM events
			ORDER BY user_id, timestamp DESC, created_at DESC
		) latest
		WHERE kind <> 'checkout'
		  AND timestamp < $1
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]event.Event, error) {
	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
