package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"services/notification-service/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Placeholders are written $1..$n, each used exactly once and in order,
// which binds identically under pgx and the SQLite driver.
const notificationColumns = `
	id, user_id, kind, title, message, link,
	is_read, created_at, related_object_id, related_object_type`

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new notification with read=false and createdAt set to
// the current time
func (r *NotificationRepository) Create(ctx context.Context, create *model.NotificationCreate) (*model.Notification, error) {
	notification := &model.Notification{
		ID:                uuid.New().String(),
		UserID:            create.UserID,
		Kind:              create.Kind,
		Title:             create.Title,
		Message:           create.Message,
		Link:              create.Link,
		IsRead:            false,
		CreatedAt:         time.Now().UTC(),
		RelatedObjectID:   create.RelatedObjectID,
		RelatedObjectType: create.RelatedObjectType,
	}

	query := `
		INSERT INTO notifications (
			id, user_id, kind, title, message, link,
			is_read, created_at, related_object_id, related_object_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Kind,
		notification.Title,
		notification.Message,
		notification.Link,
		notification.IsRead,
		notification.CreatedAt,
		notification.RelatedObjectID,
		notification.RelatedObjectType,
	)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Error(err),
			zap.Int("userID", create.UserID),
			zap.String("kind", create.Kind))
		return nil, err
	}

	return notification, nil
}

// CountUnread retrieves the count of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		r.logger.Error("Failed to count unread notifications", zap.Error(err), zap.Int("userID", userID))
		return 0, err
	}

	return count, nil
}

// ListRecent retrieves the most recent notifications for a user, newest
// first, truncated to limit
func (r *NotificationRepository) ListRecent(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	query := `
		SELECT` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list notifications", zap.Error(err), zap.Int("userID", userID))
		return nil, err
	}

	return notifications, nil
}

// GetByID retrieves a notification matching both id and owning user
func (r *NotificationRepository) GetByID(ctx context.Context, id string, userID int) (*model.Notification, error) {
	query := `
		SELECT` + notificationColumns + `
		FROM notifications
		WHERE id = $1 AND user_id = $2
	`

	var notification model.Notification
	err := r.db.GetContext(ctx, &notification, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotificationNotFound
		}
		r.logger.Error("Failed to get notification", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &notification, nil
}

// MarkRead marks a notification as read. The row must match both id and
// owning user; marking an already-read notification is a no-op success.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID int) (*model.Notification, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		r.logger.Error("Failed to mark notification as read", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, model.ErrNotificationNotFound
	}

	return r.GetByID(ctx, id, userID)
}

// MarkAllRead marks every unread notification for a user as read and
// returns the number of rows mutated
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) (int, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to mark all notifications as read", zap.Error(err), zap.Int("userID", userID))
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(affected), nil
}
