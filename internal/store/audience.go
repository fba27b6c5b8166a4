package store

import (
	"context"
	"time"
)

// Newsletter subscribers

const createSubscriber = `
INSERT INTO subscribers (email, name, token, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, email, name, token, created_at
`

type CreateSubscriberParams struct {
	Email     string
	Name      string
	Token     string
	CreatedAt time.Time
}

func (q *Queries) CreateSubscriber(ctx context.Context, arg CreateSubscriberParams) (Subscriber, error) {
	row := q.db.QueryRowContext(ctx, createSubscriber, arg.Email, arg.Name, arg.Token, arg.CreatedAt)
	var s Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Token, &s.CreatedAt)
	return s, err
}

const getSubscriberByEmail = `
SELECT id, email, name, token, created_at FROM subscribers WHERE email = ?
`

func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error) {
	var s Subscriber
	err := q.db.QueryRowContext(ctx, getSubscriberByEmail, email).
		Scan(&s.ID, &s.Email, &s.Name, &s.Token, &s.CreatedAt)
	return s, err
}

const listSubscribers = `
SELECT id, email, name, token, created_at FROM subscribers ORDER BY created_at DESC
`

func (q *Queries) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listSubscribers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Token, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const deleteSubscriberByToken = `
DELETE FROM subscribers WHERE token = ?
`

// DeleteSubscriberByToken removes a subscriber by unsubscribe token and
// reports whether a row was deleted.
func (q *Queries) DeleteSubscriberByToken(ctx context.Context, token string) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteSubscriberByToken, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const countSubscribers = `
SELECT COUNT(*) FROM subscribers
`

func (q *Queries) CountSubscribers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSubscribers).Scan(&count)
	return count, err
}

// Contact messages

const createContactMessage = `
INSERT INTO contact_messages (name, email, subject, message, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, email, subject, message, created_at
`

type CreateContactMessageParams struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Name, arg.Email, arg.Subject, arg.Message, arg.CreatedAt)
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	return m, err
}

const listContactMessages = `
SELECT id, name, email, subject, message, created_at
FROM contact_messages ORDER BY created_at DESC
`

func (q *Queries) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const deleteContactMessage = `
DELETE FROM contact_messages WHERE id = ?
`

// DeleteContactMessage removes a message and reports whether a row was
// deleted.
func (q *Queries) DeleteContactMessage(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteContactMessage, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const countContactMessages = `
SELECT COUNT(*) FROM contact_messages
`

func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactMessages).Scan(&count)
	return count, err
}
