package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"safechat/internal/models"
)

var (
	// ErrChildNotFound is returned when a child username has no account.
	ErrChildNotFound = errors.New("child not found")
	// ErrParentNotFound is returned when a parent username has no account.
	ErrParentNotFound = errors.New("parent not found")
)

type ChildRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Child, error)
	GetBirthDate(ctx context.Context, username string) (time.Time, error)
	GetParentUsername(ctx context.Context, username string) (string, error)
}

type childRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewChildRepository(db *sqlx.DB, logger *zap.Logger) ChildRepository {
	return &childRepository{db: db, logger: logger}
}

func (r *childRepository) GetByUsername(ctx context.Context, username string) (*models.Child, error) {
	var child models.Child
	query := `SELECT username, first_name, last_name, email, date_of_birth, time_control, parent_username, profile_icon
	          FROM children WHERE username = $1`
	err := r.db.GetContext(ctx, &child, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChildNotFound
		}
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return &child, nil
}

func (r *childRepository) GetBirthDate(ctx context.Context, username string) (time.Time, error) {
	var birth time.Time
	query := `SELECT date_of_birth FROM children WHERE username = $1`
	err := r.db.GetContext(ctx, &birth, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrChildNotFound
		}
		return time.Time{}, fmt.Errorf("failed to get birth date: %w", err)
	}
	return birth, nil
}

func (r *childRepository) GetParentUsername(ctx context.Context, username string) (string, error) {
	var parent string
	query := `SELECT parent_username FROM children WHERE username = $1`
	err := r.db.GetContext(ctx, &parent, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrChildNotFound
		}
		return "", fmt.Errorf("failed to get parent username: %w", err)
	}
	return parent, nil
}
