package store

import (
	"context"
	"time"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, ip, url, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    string
	IP        string
	URL       string
	Metadata  string
	CreatedAt time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.IP, arg.URL,
		arg.Metadata, arg.CreatedAt)
	return err
}

const listRecentEvents = `
SELECT id, level, category, message, user_id, ip, url, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ?
`

func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID,
			&e.IP, &e.URL, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const deleteEventsBefore = `
DELETE FROM events WHERE created_at < ?
`

// DeleteEventsBefore prunes old events and returns the number of rows removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
