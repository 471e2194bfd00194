package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type MessageService struct {
	Repo          repository.MessageRepository
	Contracts     repository.ContractRepository
	Projects      repository.ProjectRepository
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
}

// NewMessageService создает новый экземпляр MessageService.
func NewMessageService(
	repo repository.MessageRepository,
	contracts repository.ContractRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository) *MessageService {
	return &MessageService{
		Repo:          repo,
		Contracts:     contracts,
		Projects:      projects,
		Users:         users,
		Notifications: notifications,
	}
}

// loadContractForParty загружает контракт и проверяет, что пользователь является его стороной.
func (s *MessageService) loadContractForParty(ctx context.Context, contractID, username string) (*models.Contract, *models.User, error) {
	if contractID == "" {
		return nil, nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: contractId")
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, nil, err
	}

	contract, err := s.Contracts.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch contract")
	}
	if contract == nil {
		return nil, nil, models.NewErrorResponse(http.StatusNotFound, "contract not found")
	}
	if contract.ClientID != user.ID && contract.FreelancerID != user.ID {
		return nil, nil, models.NewErrorResponse(http.StatusForbidden, "only contract parties can access this chat")
	}
	return contract, user, nil
}

// SendMessage отправляет сообщение в чат контракта и уведомляет вторую сторону.
func (s *MessageService) SendMessage(ctx context.Context, contractID string, messageReq models.MessageRequest) (*models.Message, error) {
	if messageReq.Content == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "message content must not be empty")
	}

	contract, user, err := s.loadContractForParty(ctx, contractID, messageReq.SenderUsername)
	if err != nil {
		return nil, err
	}

	message, err := s.Repo.CreateMessage(ctx, contract.ID, user.ID, messageReq.Content)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create message")
	}

	counterparty := contract.FreelancerID
	if user.ID == contract.FreelancerID {
		counterparty = contract.ClientID
	}

	project, err := s.Projects.GetProjectByID(ctx, contract.ProjectID)
	projectTitle := contract.ProjectID
	if err == nil && project != nil {
		projectTitle = project.Title
	}

	notificationText := fmt.Sprintf("New message in the contract chat for '%s'.", projectTitle)
	if _, err = s.Notifications.CreateNotification(ctx, counterparty, notificationText); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create notification")
	}
	return message, nil
}

// GetContractMessages возвращает сообщения чата контракта без очищенных пользователем.
func (s *MessageService) GetContractMessages(ctx context.Context, contractID, username, limitStr, offsetStr string) ([]models.Message, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	contract, user, err := s.loadContractForParty(ctx, contractID, username)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetContractMessages(ctx, contract.ID, user.ID, limit, offset)
}

// ClearChat скрывает текущие сообщения чата для пользователя.
func (s *MessageService) ClearChat(ctx context.Context, contractID, username string) error {
	contract, user, err := s.loadContractForParty(ctx, contractID, username)
	if err != nil {
		return err
	}
	if err := s.Repo.ClearChat(ctx, contract.ID, user.ID); err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to clear chat")
	}
	return nil
}
