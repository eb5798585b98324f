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

type ParentRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Parent, error)
	GetTelegramChatID(ctx context.Context, username string) (*int64, error)
}

type parentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewParentRepository(db *sqlx.DB, logger *zap.Logger) ParentRepository {
	return &parentRepository{db: db, logger: logger}
}

func (r *parentRepository) GetByUsername(ctx context.Context, username string) (*models.Parent, error) {
	var parent models.Parent
	query := `SELECT username, first_name, last_name, email, telegram_chat_id FROM parents WHERE username = $1`
	err := r.db.GetContext(ctx, &parent, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	return &parent, nil
}

func (r *parentRepository) GetTelegramChatID(ctx context.Context, username string) (*int64, error) {
	var chatID *int64
	query := `SELECT telegram_chat_id FROM parents WHERE username = $1`
	err := r.db.GetContext(ctx, &chatID, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get telegram chat id: %w", err)
	}
	return chatID, nil
}
