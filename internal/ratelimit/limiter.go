// Package ratelimit enforces the anonymous query quota. Clients are
// identified by a hashed IP + User-Agent key and tracked in SQLite so
// limits survive restarts.
package ratelimit

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"sync"
	"time"
)

// Limiter tracks per-client query counts over a fixed window.
type Limiter struct {
	mu         sync.Mutex
	db         *sql.DB
	maxQueries int
	window     time.Duration
}

// Decision is the outcome of a consuming rate limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetTime string
	Message   string
}

// Status reports a client's quota usage without consuming any of it.
type Status struct {
	QueriesUsed      int    `json:"queries_used"`
	QueriesRemaining int    `json:"queries_remaining"`
	ResetTime        string `json:"reset_time"`
	TimeWindowHours  int    `json:"time_window_hours"`
}

// NewLimiter creates a Limiter allowing maxQueries per window, backed
// by the rate_limits table in db.
func NewLimiter(db *sql.DB, maxQueries int, window time.Duration) *Limiter {
	return &Limiter{
		db:         db,
		maxQueries: maxQueries,
		window:     window,
	}
}

// ClientKey derives the anonymous client identity from the request IP
// and User-Agent. Only a 16-character hash prefix is ever stored.
func ClientKey(ip, userAgent string) string {
	if ip == "" {
		ip = "unknown"
	}
	if userAgent == "" {
		userAgent = "unknown"
	}
	sum := sha256.Sum256([]byte(ip + ":" + userAgent))
	return hex.EncodeToString(sum[:])[:16]
}

// Check consumes one query from the client's quota if any remains.
// A fresh window starts once the previous one has fully elapsed.
func (l *Limiter) Check(ip, userAgent string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ClientKey(ip, userAgent)
	now := time.Now().UTC()

	count, firstQuery, err := l.loadClient(key, now)
	if err != nil {
		return Decision{}, err
	}

	// A finished window resets the counter before anything else.
	if now.Sub(firstQuery) >= l.window {
		count = 0
		firstQuery = now
		_, err = l.db.Exec(
			`UPDATE rate_limits SET query_count = 0, first_query = ?, last_reset = ? WHERE client_key = ?`,
			now, now, key,
		)
		if err != nil {
			return Decision{}, fmt.Errorf("failed to reset rate limit window: %w", err)
		}
	}

	resetAt := clockUTC(firstQuery.Add(l.window))
	if count >= l.maxQueries {
		return Decision{
			Allowed:   false,
			Remaining: 0,
			ResetTime: resetAt,
			Message: fmt.Sprintf("Rate limit exceeded. You can make %d queries every %d hours. Try again at %s.",
				l.maxQueries, l.windowHours(), resetAt),
		}, nil
	}

	count++
	_, err = l.db.Exec(
		`UPDATE rate_limits SET query_count = ?, last_query = ? WHERE client_key = ?`,
		count, now, key,
	)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to record query: %w", err)
	}

	remaining := l.maxQueries - count
	return Decision{
		Allowed:   true,
		Remaining: remaining,
		ResetTime: resetAt,
		Message:   fmt.Sprintf("Query allowed. %d queries remaining until %s.", remaining, resetAt),
	}, nil
}

// loadClient fetches the client row, creating it on first contact.
func (l *Limiter) loadClient(key string, now time.Time) (int, time.Time, error) {
	var count int
	var firstQuery time.Time
	err := l.db.QueryRow(
		`SELECT query_count, first_query FROM rate_limits WHERE client_key = ?`, key,
	).Scan(&count, &firstQuery)
	if err == sql.ErrNoRows {
		_, err = l.db.Exec(
			`INSERT INTO rate_limits (client_key, query_count, first_query, last_query, last_reset) VALUES (?, 0, ?, ?, ?)`,
			key, now, now, now,
		)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to create rate limit entry: %w", err)
		}
		return 0, now, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to query rate limit entry: %w", err)
	}
	return count, firstQuery, nil
}

// GetStatus reports the client's current usage without consuming quota.
func (l *Limiter) GetStatus(ip, userAgent string) (Status, error) {
	key := ClientKey(ip, userAgent)
	now := time.Now().UTC()

	st := Status{
		QueriesRemaining: l.maxQueries,
		ResetTime:        "N/A",
		TimeWindowHours:  l.windowHours(),
	}

	var count int
	var firstQuery time.Time
	err := l.db.QueryRow(
		`SELECT query_count, first_query FROM rate_limits WHERE client_key = ?`, key,
	).Scan(&count, &firstQuery)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to query rate limit entry: %w", err)
	}

	if now.Sub(firstQuery) >= l.window {
		st.ResetTime = "Window expired - resets on next query"
		return st, nil
	}

	st.QueriesUsed = count
	st.QueriesRemaining = l.maxQueries - count
	st.ResetTime = clockUTC(firstQuery.Add(l.window))
	return st, nil
}

// Cleanup removes clients whose last window reset is older than twice
// the window. Returns the number of entries removed.
func (l *Limiter) Cleanup() (int, error) {
	cutoff := time.Now().UTC().Add(-2 * l.window)
	res, err := l.db.Exec(`DELETE FROM rate_limits WHERE last_reset < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up rate limits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleaned rate limits: %w", err)
	}
	if n > 0 {
		log.Printf("[RateLimit] Removed %d stale client entries", n)
	}
	return int(n), nil
}

// windowHours reports the window length in whole hours for messages.
func (l *Limiter) windowHours() int {
	return int(l.window / time.Hour)
}

// clockUTC formats a wall clock reading the way clients display it.
func clockUTC(t time.Time) string {
	return t.UTC().Format("15:04:05") + " UTC"
}
