package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/event"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	const query = `
SELECT id, name, city, status, starts_at, created_at, updated_at
FROM events
ORDER BY starts_at, id`

	var rows []eventTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, eventFromRow(row))
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (event.Event, bool, error) {
	const query = `
SELECT id, name, city, status, starts_at, created_at, updated_at
FROM events
WHERE id = $1`

	var row eventTableModel
	if err := r.db.GetContext(ctx, &row, query, eventID); err != nil {
		if isNotFound(err) {
			return event.Event{}, false, nil
		}
		return event.Event{}, false, fmt.Errorf("get event: %w", err)
	}

	return eventFromRow(row), true, nil
}

func (r *EventRepository) Create(ctx context.Context, item event.Event) error {
	const query = `
INSERT INTO events (id, name, city, status, starts_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.City, item.Status, item.StartsAt); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func eventFromRow(row eventTableModel) event.Event {
	return event.Event{
		ID:        row.ID,
		Name:      row.Name,
		City:      row.City,
		Status:    row.Status,
		StartsAt:  row.StartsAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
