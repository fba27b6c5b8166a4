package store

import (
	"context"
	"database/sql"
	"time"
)

const createProfile = `
INSERT INTO profiles (id, email, full_name, avatar_url, role, bio, website, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, email, full_name, avatar_url, role, bio, website, password_hash, last_login_at, created_at, updated_at
`

type CreateProfileParams struct {
	ID           string
	Email        string
	FullName     string
	AvatarURL    string
	Role         string
	Bio          string
	Website      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error) {
	row := q.db.QueryRowContext(ctx, createProfile,
		arg.ID, arg.Email, arg.FullName, arg.AvatarURL, arg.Role,
		arg.Bio, arg.Website, arg.PasswordHash, arg.CreatedAt, arg.UpdatedAt)
	return scanProfile(row)
}

const getProfileByID = `
SELECT id, email, full_name, avatar_url, role, bio, website, password_hash, last_login_at, created_at, updated_at
FROM profiles WHERE id = ?
`

func (q *Queries) GetProfileByID(ctx context.Context, id string) (Profile, error) {
	return scanProfile(q.db.QueryRowContext(ctx, getProfileByID, id))
}

const getProfileByEmail = `
SELECT id, email, full_name, avatar_url, role, bio, website, password_hash, last_login_at, created_at, updated_at
FROM profiles WHERE email = ?
`

func (q *Queries) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	return scanProfile(q.db.QueryRowContext(ctx, getProfileByEmail, email))
}

const listProfiles = `
SELECT id, email, full_name, avatar_url, role, bio, website, password_hash, last_login_at, created_at, updated_at
FROM profiles ORDER BY created_at ASC
`

func (q *Queries) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := q.db.QueryContext(ctx, listProfiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role,
			&p.Bio, &p.Website, &p.PasswordHash, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updateProfile = `
UPDATE profiles
SET email = ?, full_name = ?, avatar_url = ?, role = ?, bio = ?, website = ?, updated_at = ?
WHERE id = ?
`

type UpdateProfileParams struct {
	Email     string
	FullName  string
	AvatarURL string
	Role      string
	Bio       string
	Website   string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) error {
	_, err := q.db.ExecContext(ctx, updateProfile,
		arg.Email, arg.FullName, arg.AvatarURL, arg.Role, arg.Bio, arg.Website, arg.UpdatedAt, arg.ID)
	return err
}

const updateProfilePassword = `
UPDATE profiles SET password_hash = ?, updated_at = ? WHERE id = ?
`

type UpdateProfilePasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateProfilePassword(ctx context.Context, arg UpdateProfilePasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateProfilePassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

const updateProfileLastLogin = `
UPDATE profiles SET last_login_at = ? WHERE id = ?
`

type UpdateProfileLastLoginParams struct {
	LastLoginAt time.Time
	ID          string
}

func (q *Queries) UpdateProfileLastLogin(ctx context.Context, arg UpdateProfileLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateProfileLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

const deleteProfile = `
DELETE FROM profiles WHERE id = ?
`

// DeleteProfile removes a profile and reports whether a row was deleted.
func (q *Queries) DeleteProfile(ctx context.Context, id string) (bool, error) {
	res, err := q.db.ExecContext(ctx, deleteProfile, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

const countProfiles = `
SELECT COUNT(*) FROM profiles
`

func (q *Queries) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProfiles).Scan(&count)
	return count, err
}

const countProfilesByRole = `
SELECT COUNT(*) FROM profiles WHERE role = ?
`

func (q *Queries) CountProfilesByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProfilesByRole, role).Scan(&count)
	return count, err
}

func scanProfile(row *sql.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.Role,
		&p.Bio, &p.Website, &p.PasswordHash, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
