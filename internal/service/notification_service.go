package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"services/notification-service/internal/model"
	"services/notification-service/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const defaultUnreadCountTTL = 30 * time.Second

// NotificationService handles notification operations. The Redis client
// and Kafka writer are optional; with both nil every operation is a single
// synchronous database round trip.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	validate         *validator.Validate
	redisClient      *redis.Client
	kafkaWriter      *kafka.Writer
	cacheTTL         time.Duration
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	redisClient *redis.Client,
	kafkaWriter *kafka.Writer,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *NotificationService {
	if cacheTTL <= 0 {
		cacheTTL = defaultUnreadCountTTL
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		validate:         validator.New(),
		redisClient:      redisClient,
		kafkaWriter:      kafkaWriter,
		cacheTTL:         cacheTTL,
		logger:           logger,
	}
}

// Create validates and persists a new notification
func (s *NotificationService) Create(ctx context.Context, create *model.NotificationCreate) (*model.Notification, error) {
	if err := s.validate.Struct(create); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidNotification, err)
	}

	notification, err := s.notificationRepo.Create(ctx, create)
	if err != nil {
		return nil, err
	}

	s.invalidateUnreadCount(ctx, create.UserID)
	s.publishCreated(ctx, notification)

	return notification, nil
}

// CountUnread retrieves the count of unread notifications for a user
func (s *NotificationService) CountUnread(ctx context.Context, userID int) (int, error) {
	if s.redisClient != nil {
		count, err := s.redisClient.Get(ctx, unreadCountKey(userID)).Int()
		if err == nil {
			return count, nil
		}
		if err != redis.Nil {
			s.logger.Warn("Failed to read unread count from cache", zap.Error(err))
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Set(ctx, unreadCountKey(userID), count, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache unread count", zap.Error(err))
		}
	}

	return count, nil
}

// ListRecent retrieves the most recent notifications for a user
func (s *NotificationService) ListRecent(ctx context.Context, userID, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.notificationRepo.ListRecent(ctx, userID, limit)
}

// MarkRead marks a single notification as read if it is owned by the user
func (s *NotificationService) MarkRead(ctx context.Context, id string, userID int) (*model.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	s.invalidateUnreadCount(ctx, userID)

	return notification, nil
}

// MarkAllRead marks every unread notification for a user as read and
// returns the number of notifications mutated
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) (int, error) {
	count, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.invalidateUnreadCount(ctx, userID)

	return count, nil
}

// publishCreated emits a notification-created event for other platform
// services. Delivery is best effort and never fails the create.
func (s *NotificationService) publishCreated(ctx context.Context, notification *model.Notification) {
	if s.kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		s.logger.Warn("Failed to marshal notification event", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(notification.UserID)),
		Value: payload,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish notification event",
			zap.Error(err),
			zap.String("notificationID", notification.ID))
	}
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, userID int) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("Failed to invalidate unread count cache", zap.Error(err), zap.Int("userID", userID))
	}
}

func unreadCountKey(userID int) string {
	return fmt.Sprintf("notification-unread:%d", userID)
}
