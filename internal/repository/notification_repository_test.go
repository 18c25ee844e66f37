package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"services/notification-service/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func setupTestRepository(t *testing.T) *NotificationRepository {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))

	return NewNotificationRepository(db, zap.NewNop())
}

func createTestNotification(t *testing.T, repo *NotificationRepository, userID int) *model.Notification {
	t.Helper()

	notification, err := repo.Create(context.Background(), &model.NotificationCreate{
		UserID:  userID,
		Kind:    model.KindChat,
		Title:   "Nova mensagem",
		Message: "alguém enviou uma mensagem",
		Link:    "/chat/alguem/",
	})
	require.NoError(t, err)
	return notification
}

// insertNotificationAt inserts a row with an explicit creation time so
// ordering tests do not depend on the clock.
func insertNotificationAt(t *testing.T, repo *NotificationRepository, userID int, title string, createdAt time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := repo.db.Exec(`
		INSERT INTO notifications (
			id, user_id, kind, title, message, link,
			is_read, created_at, related_object_id, related_object_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, userID, model.KindOther, title, "mensagem", "",
		false, createdAt, "", "",
	)
	require.NoError(t, err)
	return id
}

func TestCreate(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	notification, err := repo.Create(ctx, &model.NotificationCreate{
		UserID:            1,
		Kind:              model.KindBudget,
		Title:             "Orçamento aceito",
		Message:           `Ana aceitou seu orçamento para "Buffet X"`,
		Link:              "/servicos/minhas-solicitacoes-organizador/",
		RelatedObjectID:   "42",
		RelatedObjectType: "orcamento",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, notification.ID)
	assert.False(t, notification.IsRead)
	assert.WithinDuration(t, time.Now().UTC(), notification.CreatedAt, 5*time.Second)

	// Round trip through the database
	stored, err := repo.GetByID(ctx, notification.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, notification.ID, stored.ID)
	assert.Equal(t, 1, stored.UserID)
	assert.Equal(t, model.KindBudget, stored.Kind)
	assert.Equal(t, "Orçamento aceito", stored.Title)
	assert.Equal(t, `Ana aceitou seu orçamento para "Buffet X"`, stored.Message)
	assert.Equal(t, "/servicos/minhas-solicitacoes-organizador/", stored.Link)
	assert.False(t, stored.IsRead)
	assert.Equal(t, "42", stored.RelatedObjectID)
	assert.Equal(t, "orcamento", stored.RelatedObjectType)
}

func TestGetByIDOwnership(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	notification := createTestNotification(t, repo, 1)

	_, err := repo.GetByID(ctx, notification.ID, 2)
	assert.ErrorIs(t, err, model.ErrNotificationNotFound)

	_, err = repo.GetByID(ctx, "no-such-id", 1)
	assert.ErrorIs(t, err, model.ErrNotificationNotFound)
}

func TestCountUnread(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	first := createTestNotification(t, repo, 1)
	createTestNotification(t, repo, 1)
	createTestNotification(t, repo, 1)
	createTestNotification(t, repo, 2)

	count, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = repo.MarkRead(ctx, first.ID, 1)
	require.NoError(t, err)

	count, err = repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountUnread(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListRecent(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		insertNotificationAt(t, repo, 1, fmt.Sprintf("notificacao %d", i), base.Add(time.Duration(i)*time.Second))
	}
	insertNotificationAt(t, repo, 2, "de outro usuário", base.Add(time.Hour))

	notifications, err := repo.ListRecent(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 10)

	// Newest first, truncated to the limit
	assert.Equal(t, "notificacao 11", notifications[0].Title)
	assert.Equal(t, "notificacao 2", notifications[9].Title)
	for i := 1; i < len(notifications); i++ {
		assert.False(t, notifications[i].CreatedAt.After(notifications[i-1].CreatedAt))
	}

	// Only the owner's rows
	for _, n := range notifications {
		assert.Equal(t, 1, n.UserID)
	}
}

func TestMarkRead(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	notification := createTestNotification(t, repo, 1)

	t.Run("marks the notification as read", func(t *testing.T) {
		updated, err := repo.MarkRead(ctx, notification.ID, 1)
		require.NoError(t, err)
		assert.True(t, updated.IsRead)
	})

	t.Run("is idempotent", func(t *testing.T) {
		updated, err := repo.MarkRead(ctx, notification.ID, 1)
		require.NoError(t, err)
		assert.True(t, updated.IsRead)
	})

	t.Run("rejects another user's notification", func(t *testing.T) {
		_, err := repo.MarkRead(ctx, notification.ID, 2)
		assert.ErrorIs(t, err, model.ErrNotificationNotFound)
	})

	t.Run("rejects an unknown id", func(t *testing.T) {
		_, err := repo.MarkRead(ctx, "no-such-id", 1)
		assert.ErrorIs(t, err, model.ErrNotificationNotFound)
	})
}

func TestMarkAllRead(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	createTestNotification(t, repo, 1)
	createTestNotification(t, repo, 1)
	createTestNotification(t, repo, 1)
	other := createTestNotification(t, repo, 2)

	count, err := repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	unread, err := repo.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// Other users are untouched
	stored, err := repo.GetByID(ctx, other.ID, 2)
	require.NoError(t, err)
	assert.False(t, stored.IsRead)

	// Idempotent: nothing left to mark
	count, err = repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
