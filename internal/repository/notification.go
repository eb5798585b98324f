package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"safechat/internal/models"
)

// ErrNotificationNotFound is returned when a notification id does not exist
// or does not belong to the requesting parent.
var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	// Create resolves the receiver's current guardian and inserts the record
	// in a single transaction. On success n.ParentUsername, n.ID and
	// n.CreatedAt are filled in. Returns ErrChildNotFound when the receiver
	// no longer resolves to a parent.
	Create(ctx context.Context, n *models.Notification) error
	GetForParent(ctx context.Context, parentUsername string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, parentUsername string, id int64) error
	CountUnread(ctx context.Context, parentUsername string) (int, error)
}

type notificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) NotificationRepository {
	return &notificationRepository{db: db, logger: logger}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The guardian is resolved inside the transaction so the record always
	// references the receiver's parent as of write time.
	var parentUsername string
	err = tx.GetContext(ctx, &parentUsername,
		`SELECT parent_username FROM children WHERE username = $1`, n.ReceiverChildUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrChildNotFound
		}
		return fmt.Errorf("failed to resolve receiver's parent: %w", err)
	}
	n.ParentUsername = parentUsername

	query := `INSERT INTO notifications (correlation_id, sender_child_username, receiver_child_username, parent_username, content, original_content, risk_type)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, is_read`
	err = tx.QueryRowxContext(ctx, query,
		n.CorrelationID, n.SenderChildUsername, n.ReceiverChildUsername,
		n.ParentUsername, n.Content, n.OriginalContent, n.RiskType,
	).Scan(&n.ID, &n.CreatedAt, &n.IsRead)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetForParent(ctx context.Context, parentUsername string) ([]*models.Notification, error) {
	var notifications []*models.Notification
	query := `
		SELECT
			n.id,
			n.correlation_id,
			n.sender_child_username,
			n.receiver_child_username,
			n.parent_username,
			n.content,
			n.original_content,
			n.risk_type,
			n.created_at,
			n.is_read,
			c.first_name AS receiver_first_name,
			c.last_name AS receiver_last_name
		FROM notifications n
		JOIN children c ON n.receiver_child_username = c.username
		WHERE n.parent_username = $1
		ORDER BY n.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &notifications, query, parentUsername); err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, parentUsername string, id int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND parent_username = $2`
	result, err := r.db.ExecContext(ctx, query, id, parentUsername)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, parentUsername string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE parent_username = $1 AND is_read = FALSE`
	if err := r.db.GetContext(ctx, &count, query, parentUsername); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
