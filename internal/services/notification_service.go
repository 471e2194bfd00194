package services

import (
	"context"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type NotificationService struct {
	Repo  repository.NotificationRepository
	Users repository.UserRepository
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository) *NotificationService {
	return &NotificationService{Repo: repo, Users: users}
}

// GetUserNotifications возвращает уведомления пользователя, новые первыми.
func (s *NotificationService) GetUserNotifications(ctx context.Context, username, limitStr, offsetStr string) ([]models.Notification, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetUserNotifications(ctx, user.ID, limit, offset)
}

// MarkRead помечает уведомление прочитанным и возвращает оставшееся количество непрочитанных.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, username string) (*models.UnreadCount, error) {
	if notificationID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: notificationId")
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}

	notification, err := s.Repo.GetNotificationByID(ctx, notificationID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch notification")
	}
	if notification == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "notification not found")
	}
	if notification.UserID != user.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you are not authorized to read this notification")
	}

	if err = s.Repo.MarkRead(ctx, notificationID); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to mark notification as read")
	}

	unread, err := s.Repo.CountUnread(ctx, user.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to count unread notifications")
	}
	return &models.UnreadCount{Unread: unread}, nil
}

// ClearNotifications удаляет все уведомления пользователя, операция идемпотентна.
func (s *NotificationService) ClearNotifications(ctx context.Context, username string) error {
	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return err
	}
	if err := s.Repo.ClearAll(ctx, user.ID); err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to clear notifications")
	}
	return nil
}
