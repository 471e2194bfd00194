package repository

import (
	"context"
	"errors"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository - интерфейс для работы с уведомлениями.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, userID, message string) (*models.Notification, error)
	GetNotificationByID(ctx context.Context, notificationID string) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
	ClearAll(ctx context.Context, userID string) error
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresNotificationRepository создает новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// CreateNotification создает новое уведомление.
func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, userID, message string) (*models.Notification, error) {
	newNotification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}
	insertQuery := `INSERT INTO notification (id, user_id, message, is_read, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newNotification.ID,
		newNotification.UserID,
		newNotification.Message,
		newNotification.IsRead,
		newNotification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newNotification, nil
}

// GetNotificationByID возвращает уведомление по его ID.
func (r *PostgresNotificationRepository) GetNotificationByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	var notification models.Notification
	query := `SELECT id, user_id, message, is_read, created_at FROM notification WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, notificationID).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Message,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetUserNotifications возвращает список уведомлений пользователя.
func (r *PostgresNotificationRepository) GetUserNotifications(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at
	          FROM notification WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var notification models.Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	updateQuery := `UPDATE notification SET is_read = TRUE WHERE id = $1`
	_, err := r.DB.Exec(ctx, updateQuery, notificationID)
	return err
}

// CountUnread возвращает количество непрочитанных уведомлений пользователя.
func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notification WHERE user_id = $1 AND is_read = FALSE`
	err := r.DB.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

// ClearAll удаляет все уведомления пользователя.
func (r *PostgresNotificationRepository) ClearAll(ctx context.Context, userID string) error {
	deleteQuery := `DELETE FROM notification WHERE user_id = $1`
	_, err := r.DB.Exec(ctx, deleteQuery, userID)
	return err
}
