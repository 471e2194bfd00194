package repository

import (
	"context"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository - интерфейс для работы с сообщениями чата контракта.
type MessageRepository interface {
	CreateMessage(ctx context.Context, contractID, senderID, content string) (*models.Message, error)
	GetContractMessages(ctx context.Context, contractID, userID string, limit, offset int) ([]models.Message, error)
	ClearChat(ctx context.Context, contractID, userID string) error
}

// PostgresMessageRepository - реализация MessageRepository для базы данных.
type PostgresMessageRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresMessageRepository создает новый экземпляр PostgresMessageRepository.
func NewPostgresMessageRepository(db *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{DB: db}
}

// CreateMessage создает новое сообщение в чате контракта.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, contractID, senderID, content string) (*models.Message, error) {
	newMessage := models.Message{
		ID:         uuid.New().String(),
		ContractID: contractID,
		SenderID:   senderID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	insertQuery := `INSERT INTO message (id, contract_id, sender_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newMessage.ID,
		newMessage.ContractID,
		newMessage.SenderID,
		newMessage.Content,
		newMessage.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newMessage, nil
}

// GetContractMessages возвращает сообщения чата, скрывая очищенные пользователем.
func (r *PostgresMessageRepository) GetContractMessages(ctx context.Context, contractID, userID string, limit, offset int) ([]models.Message, error) {
	query := `
		SELECT m.id, m.contract_id, m.sender_id, m.content, m.created_at
		FROM message m
		WHERE m.contract_id = $1
		AND m.created_at > COALESCE(
			(SELECT cleared_at FROM chat_clear WHERE user_id = $2 AND contract_id = $1),
			'epoch'::timestamp)
		ORDER BY m.created_at
		LIMIT $3 OFFSET $4`
	rows, err := r.DB.Query(ctx, query, contractID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chatMessages []models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(
			&message.ID,
			&message.ContractID,
			&message.SenderID,
			&message.Content,
			&message.CreatedAt); err != nil {
			return nil, err
		}
		chatMessages = append(chatMessages, message)
	}
	return chatMessages, nil
}

// ClearChat запоминает момент очистки чата для пользователя.
func (r *PostgresMessageRepository) ClearChat(ctx context.Context, contractID, userID string) error {
	upsertQuery := `
		INSERT INTO chat_clear (user_id, contract_id, cleared_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, contract_id) DO UPDATE SET cleared_at = EXCLUDED.cleared_at`
	_, err := r.DB.Exec(ctx, upsertQuery, userID, contractID, time.Now().UTC())
	return err
}
