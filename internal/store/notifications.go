// Package store provides SQLite persistence for the notification history.
package store

import (
	"time"
)

// Notification is one recorded notification delivery.
type Notification struct {
	ID               int64     `json:"id"`
	SentAt           time.Time `json:"sent_at"`
	SessionID        string    `json:"session_id,omitempty"`
	Project          string    `json:"project,omitempty"`
	Status           string    `json:"status"`
	Summary          string    `json:"summary"`
	Stats            string    `json:"stats,omitempty"`
	DeliveredDesktop bool      `json:"delivered_desktop"`
	DeliveredPush    bool      `json:"delivered_push"`
}

// RecordNotification inserts a notification record and returns its ID.
func (db *DB) RecordNotification(n *Notification) (int64, error) {
	sentAt := n.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO notifications
		(sent_at, session_id, project, status, summary, stats, delivered_desktop, delivered_push)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sentAt.Format(time.RFC3339), n.SessionID, n.Project, n.Status,
		n.Summary, n.Stats, n.DeliveredDesktop, n.DeliveredPush,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// RecentNotifications returns the newest notifications, most recent first.
func (db *DB) RecentNotifications(limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(
		`SELECT id, sent_at, session_id, project, status, summary, stats,
		        delivered_desktop, delivered_push
		 FROM notifications ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var sentAt string
		if err := rows.Scan(
			&n.ID, &sentAt, &n.SessionID, &n.Project, &n.Status,
			&n.Summary, &n.Stats, &n.DeliveredDesktop, &n.DeliveredPush,
		); err != nil {
			return nil, err
		}
		n.SentAt, _ = time.Parse(time.RFC3339, sentAt)
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountByStatus returns how many notifications were recorded per status.
func (db *DB) CountByStatus() (map[string]int, error) {
	rows, err := db.conn.Query("SELECT status, COUNT(*) FROM notifications GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
