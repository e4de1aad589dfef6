package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/laboissim/labctl/internal/domain"
)

// CacheStore persists snapshots of the session fan-out. Every write
// replaces the whole collection: the server re-fetch is authoritative
// and partial patching would let the cache drift.
type CacheStore struct {
	db *DB
}

// NewCacheStore creates a cache store on db.
func NewCacheStore(db *DB) *CacheStore {
	return &CacheStore{db: db}
}

// ReplaceDirectory replaces the cached user directory.
func (s *CacheStore) ReplaceDirectory(users []domain.UserProfile) error {
	return s.replace("directory", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO directory
			(id, email, display_name, role, status, verified, joined_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, u := range users {
			if _, err := stmt.Exec(u.ID, u.Email, u.DisplayName, string(u.Role),
				string(u.Status), u.Verified, u.JoinedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// Directory returns the cached user directory.
func (s *CacheStore) Directory() ([]domain.UserProfile, error) {
	rows, err := s.db.Query(`SELECT id, email, display_name, role, status, verified, joined_at
		FROM directory ORDER BY display_name`)
	if err != nil {
		return nil, fmt.Errorf("query directory: %w", err)
	}
	defer rows.Close()

	var users []domain.UserProfile
	for rows.Next() {
		var u domain.UserProfile
		var role, status string
		var joined sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &role, &status, &u.Verified, &joined); err != nil {
			return nil, fmt.Errorf("scan directory row: %w", err)
		}
		u.Role = domain.Role(role)
		u.Status = domain.UserStatus(status)
		if joined.Valid {
			u.JoinedAt = joined.Time
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ReplaceContactMessages replaces the cached contact messages.
func (s *CacheStore) ReplaceContactMessages(msgs []domain.ContactMessage) error {
	return s.replace("contact_messages", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO contact_messages
			(id, name, email, subject, category, message, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range msgs {
			if _, err := stmt.Exec(m.ID, m.Name, m.Email, m.Subject, m.Category,
				m.Message, string(m.Status), m.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// ContactMessages returns the cached contact messages, newest first.
func (s *CacheStore) ContactMessages() ([]domain.ContactMessage, error) {
	rows, err := s.db.Query(`SELECT id, name, email, subject, category, message, status, created_at
		FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		var status string
		var created sql.NullTime
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Category,
			&m.Message, &status, &created); err != nil {
			return nil, fmt.Errorf("scan contact message row: %w", err)
		}
		m.Status = domain.ContactMessageStatus(status)
		if created.Valid {
			m.CreatedAt = created.Time
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// ReplaceAccountRequests replaces the cached account requests.
func (s *CacheStore) ReplaceAccountRequests(reqs []domain.AccountRequest) error {
	return s.replace("account_requests", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO account_requests
			(id, name, email, reason, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range reqs {
			if _, err := stmt.Exec(r.ID, r.Name, r.Email, r.Reason,
				string(r.Status), r.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// AccountRequests returns the cached account requests, newest first.
func (s *CacheStore) AccountRequests() ([]domain.AccountRequest, error) {
	rows, err := s.db.Query(`SELECT id, name, email, reason, status, created_at
		FROM account_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query account requests: %w", err)
	}
	defer rows.Close()

	var reqs []domain.AccountRequest
	for rows.Next() {
		var r domain.AccountRequest
		var status string
		var created sql.NullTime
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Reason, &status, &created); err != nil {
			return nil, fmt.Errorf("scan account request row: %w", err)
		}
		r.Status = domain.AccountRequestStatus(status)
		if created.Valid {
			r.CreatedAt = created.Time
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// ReplaceInternalMessages replaces the cached internal messages.
func (s *CacheStore) ReplaceInternalMessages(msgs []domain.InternalMessage) error {
	return s.replace("internal_messages", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO internal_messages
			(id, sender_id, receiver_id, sender_name, receiver_name,
			 subject, message, status, reply_to_id, conversation_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range msgs {
			if _, err := stmt.Exec(m.ID, m.SenderID, m.ReceiverID, m.SenderName,
				m.ReceiverName, m.Subject, m.Message, string(m.Status),
				m.ReplyToID, m.ConversationID, m.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// InternalMessages returns the cached internal messages, newest first.
func (s *CacheStore) InternalMessages() ([]domain.InternalMessage, error) {
	rows, err := s.db.Query(`SELECT id, sender_id, receiver_id, sender_name, receiver_name,
		subject, message, status, reply_to_id, conversation_id, created_at
		FROM internal_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query internal messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.InternalMessage
	for rows.Next() {
		var m domain.InternalMessage
		var status string
		var created sql.NullTime
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.SenderName,
			&m.ReceiverName, &m.Subject, &m.Message, &status,
			&m.ReplyToID, &m.ConversationID, &created); err != nil {
			return nil, fmt.Errorf("scan internal message row: %w", err)
		}
		m.Status = domain.InternalMessageStatus(status)
		if created.Valid {
			m.CreatedAt = created.Time
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Clear drops every cached snapshot. Called on logout so a shared
// machine does not keep another member's data around.
func (s *CacheStore) Clear() error {
	for _, table := range []string{"directory", "contact_messages", "account_requests", "internal_messages"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// replace runs fill inside a transaction that first empties the table.
func (s *CacheStore) replace(table string, fill func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear %s: %w", table, err)
	}

	if err := fill(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("fill %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}
