package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type ContractService struct {
	Repo          repository.ContractRepository
	Projects      repository.ProjectRepository
	Users         repository.UserRepository
	Notifications repository.NotificationRepository
}

// NewContractService создает новый экземпляр ContractService.
func NewContractService(
	repo repository.ContractRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository) *ContractService {
	return &ContractService{
		Repo:          repo,
		Projects:      projects,
		Users:         users,
		Notifications: notifications,
	}
}

// loadContractForParty загружает контракт и проверяет, что пользователь является его стороной.
func (s *ContractService) loadContractForParty(ctx context.Context, contractID, username string) (*models.Contract, *models.User, error) {
	if contractID == "" {
		return nil, nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: contractId")
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, nil, err
	}

	contract, err := s.Repo.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch contract")
	}
	if contract == nil {
		return nil, nil, models.NewErrorResponse(http.StatusNotFound, "contract not found")
	}

	if contract.ClientID != user.ID && contract.FreelancerID != user.ID {
		return nil, nil, models.NewErrorResponse(http.StatusForbidden, "only contract parties can access this contract")
	}
	return contract, user, nil
}

// UpdateContractStatus переводит контракт в новый статус по правилам переходов.
func (s *ContractService) UpdateContractStatus(ctx context.Context, contractID, username string, newStatus models.ContractStatus) (*models.Contract, error) {
	contract, user, err := s.loadContractForParty(ctx, contractID, username)
	if err != nil {
		return nil, err
	}

	allowedStatusTransition := map[models.ContractStatus][]models.ContractStatus{
		models.ActiveContract:    {models.CompletedContract, models.CancelledContract},
		models.CompletedContract: {},
		models.CancelledContract: {},
	}

	validTransition := allowedStatusTransition[contract.Status]
	if !utils.ContainsContract(validTransition, newStatus) {
		return nil, models.NewErrorResponse(http.StatusConflict, fmt.Sprintf("contract in status %s cannot transition to %s", contract.Status, newStatus))
	}

	updated, err := s.Repo.UpdateContractStatus(ctx, contractID, newStatus)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			return nil, errorResponse
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to update contract status")
	}

	// Уведомляется вторая сторона контракта.
	counterparty := contract.FreelancerID
	if user.ID == contract.FreelancerID {
		counterparty = contract.ClientID
	}

	project, err := s.Projects.GetProjectByID(ctx, contract.ProjectID)
	projectTitle := contract.ProjectID
	if err == nil && project != nil {
		projectTitle = project.Title
	}

	message := fmt.Sprintf("Your contract for '%s' was %s.", projectTitle, strings.ToLower(string(newStatus)))
	if _, err = s.Notifications.CreateNotification(ctx, counterparty, message); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create notification")
	}
	return updated, nil
}

// CompleteContract завершает активный контракт.
func (s *ContractService) CompleteContract(ctx context.Context, contractID, username string) (*models.Contract, error) {
	return s.UpdateContractStatus(ctx, contractID, username, models.CompletedContract)
}

// CancelContract расторгает активный контракт.
func (s *ContractService) CancelContract(ctx context.Context, contractID, username string) (*models.Contract, error) {
	return s.UpdateContractStatus(ctx, contractID, username, models.CancelledContract)
}

// GetUserContracts возвращает контракты, где пользователь является стороной.
func (s *ContractService) GetUserContracts(ctx context.Context, username, limitStr, offsetStr string) ([]models.Contract, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetUserContracts(ctx, user.ID, limit, offset)
}

// GetContract возвращает контракт, доступно только его сторонам.
func (s *ContractService) GetContract(ctx context.Context, contractID, username string) (*models.Contract, error) {
	contract, _, err := s.loadContractForParty(ctx, contractID, username)
	if err != nil {
		return nil, err
	}
	return contract, nil
}
