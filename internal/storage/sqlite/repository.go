package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hankchat/hanktui/internal/transcript"
)

const messageColumns = `role, text, timestamp, created_at`

// MessageRepository stores transcript history rows, one partition per
// server URL.
type MessageRepository struct {
	db *sql.DB
}

func newMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// messageModel is the database row for the messages table.
type messageModel struct {
	Role      string
	Text      string
	Timestamp int64
	CreatedAt int64
}

func (m *messageModel) toTranscript() transcript.Message {
	return transcript.Message{
		ID:        uuid.New(),
		Role:      transcript.Role(m.Role),
		Text:      m.Text,
		Timestamp: m.Timestamp,
		LocalTime: time.Unix(m.CreatedAt, 0),
		State:     transcript.StateConfirmed,
	}
}

// SaveRecent replaces the stored history for serverURL with the newest
// limit messages from msgs. Pending and failed sends are not persisted;
// they were never acknowledged by the server.
func (r *MessageRepository) SaveRecent(serverURL string, msgs []transcript.Message, limit int) error {
	confirmed := make([]transcript.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.State == transcript.StateConfirmed && m.Role != transcript.RoleSystem {
			confirmed = append(confirmed, m)
		}
	}
	if limit > 0 && len(confirmed) > limit {
		confirmed = confirmed[len(confirmed)-limit:]
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM messages WHERE server_url = ?`, serverURL); err != nil {
		return fmt.Errorf("failed to clear stored history: %w", err)
	}
	for _, m := range confirmed {
		_, err := tx.Exec(
			`INSERT INTO messages (server_url, `+messageColumns+`) VALUES (?, ?, ?, ?, ?)`,
			serverURL, string(m.Role), m.Text, m.Timestamp, m.LocalTime.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history save: %w", err)
	}
	return nil
}

// LoadRecent returns up to limit stored messages for serverURL in
// ascending timestamp order.
func (r *MessageRepository) LoadRecent(serverURL string, limit int) ([]transcript.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE server_url = ? ORDER BY timestamp ASC, id ASC`
	args := []any{serverURL}
	if limit > 0 {
		// Newest rows win the limit, but the result stays ascending.
		query = `SELECT ` + messageColumns + ` FROM (
			SELECT id, ` + messageColumns + ` FROM messages WHERE server_url = ?
			ORDER BY timestamp DESC, id DESC LIMIT ?
		) ORDER BY timestamp ASC, id ASC`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []transcript.Message
	for rows.Next() {
		var model messageModel
		if err := rows.Scan(&model.Role, &model.Text, &model.Timestamp, &model.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msgs = append(msgs, model.toTranscript())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return msgs, nil
}

// DeleteAll removes every stored message for serverURL.
func (r *MessageRepository) DeleteAll(serverURL string) error {
	if _, err := r.db.Exec(`DELETE FROM messages WHERE server_url = ?`, serverURL); err != nil {
		return fmt.Errorf("failed to delete stored history: %w", err)
	}
	return nil
}
