// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginProtection rate-limits login and signup attempts per client IP to
// slow down credential stuffing. Limiters are created lazily and pruned
// after a period of inactivity.
type LoginProtection struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginProtection allows `burst` immediate attempts per IP, refilling
// one attempt every `interval`.
func NewLoginProtection(interval time.Duration, burst int) *LoginProtection {
	lp := &LoginProtection{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(interval),
		burst:    burst,
	}
	go lp.cleanupLoop()
	return lp
}

// Limit wraps a handler with the per-IP attempt limit.
func (lp *LoginProtection) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !lp.allow(ip) {
			slog.Warn("login attempt rate limited", "ip", ip)
			http.Error(w, "Too many attempts. Try again in a minute.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (lp *LoginProtection) allow(ip string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	v, ok := lp.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(lp.limit, lp.burst)}
		lp.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (lp *LoginProtection) cleanupLoop() {
	for range time.Tick(10 * time.Minute) {
		lp.mu.Lock()
		for ip, v := range lp.visitors {
			if time.Since(v.lastSeen) > 30*time.Minute {
				delete(lp.visitors, ip)
			}
		}
		lp.mu.Unlock()
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
