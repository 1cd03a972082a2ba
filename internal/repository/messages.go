package repository

import (
	"context"
	"fmt"

	"messenger-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// MessageRepository is the persistent message store: insert plus the
// two-sided conversation query and the read-flag side effect.
type MessageRepository interface {
	Insert(ctx context.Context, message *models.Message) error
	Conversation(ctx context.Context, userA, userB int64) ([]models.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID int64) error
	UnreadFrom(ctx context.Context, senderID, receiverID int64) (int, error)
	UnreadTotal(ctx context.Context, receiverID int64) (int, error)
	LastMessage(ctx context.Context, userA, userB int64) (*models.Message, error)
	Delete(ctx context.Context, messageID, senderID int64) (bool, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log *zap.SugaredLogger
}

func NewMessageRepository(db *pgxpool.Pool, log *zap.SugaredLogger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Insert(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, message_type, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.SenderID, message.ReceiverID, message.Content, message.MessageType,
	).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
	if err != nil {
		r.log.Errorw("failed to insert message", "error", err)
		return fmt.Errorf("insert message: %w", err)
	}

	return nil
}

// Conversation returns both directions of the (userA, userB) pair ascending
// by created_at, ties broken by id, each row enriched with the sender's
// display name and picture.
func (r *messageRepository) Conversation(ctx context.Context, userA, userB int64) ([]models.Message, error) {
	query := `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.message_type, m.is_read, m.created_at,
			   u.name AS sender_name, u.profile_picture AS sender_picture
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC, m.id ASC
	`

	rows, err := r.db.Query(ctx, query, userA, userB)
	if err != nil {
		r.log.Errorw("failed to fetch conversation", "error", err)
		return nil, fmt.Errorf("fetch conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.MessageType,
			&msg.IsRead, &msg.CreatedAt, &msg.SenderName, &msg.SenderPicture,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

// MarkRead flips is_read for unread messages of the specific
// (receiver, sender) pair only, so concurrent viewers cannot touch each
// other's flags.
func (r *messageRepository) MarkRead(ctx context.Context, receiverID, senderID int64) error {
	query := `
		UPDATE messages
		SET is_read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE
	`
	if _, err := r.db.Exec(ctx, query, receiverID, senderID); err != nil {
		r.log.Errorw("failed to mark messages read", "error", err)
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (r *messageRepository) UnreadFrom(ctx context.Context, senderID, receiverID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE sender_id = $1 AND receiver_id = $2 AND is_read = FALSE",
		senderID, receiverID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func (r *messageRepository) UnreadTotal(ctx context.Context, receiverID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE",
		receiverID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread total: %w", err)
	}
	return count, nil
}

func (r *messageRepository) LastMessage(ctx context.Context, userA, userB int64) (*models.Message, error) {
	var msg models.Message
	err := r.db.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, content, message_type, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userA, userB).Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.MessageType,
		&msg.IsRead, &msg.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("last message: %w", err)
	}
	return &msg, nil
}

// Delete removes a message, scoped to its own sender. Returns false when no
// row matched (wrong id or not the sender).
func (r *messageRepository) Delete(ctx context.Context, messageID, senderID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM messages WHERE id = $1 AND sender_id = $2",
		messageID, senderID,
	)
	if err != nil {
		r.log.Errorw("failed to delete message", "error", err)
		return false, fmt.Errorf("delete message: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
