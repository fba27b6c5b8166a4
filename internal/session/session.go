// Package session configures the server-side session manager backed by
// the SQLite sessions table.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys used across handlers.
const (
	KeyProfileID = "profile_id"
	KeyFlash     = "flash"
	KeyFlashKind = "flash_kind"
)

// Lifetime is how long a session stays valid after login.
const Lifetime = 24 * time.Hour

// NewManager creates a session manager that stores session data in the
// given database. Secure cookies are enabled outside development.
func NewManager(db *sql.DB, isDevelopment bool) *scs.SessionManager {
	manager := scs.New()
	manager.Store = sqlite3store.New(db)
	manager.Lifetime = Lifetime
	manager.Cookie.Name = "reclaimd_session"
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = !isDevelopment
	return manager
}
