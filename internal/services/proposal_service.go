package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type ProposalService struct {
	Repo          repository.ProposalRepository
	Projects      repository.ProjectRepository
	Users         repository.UserRepository
	Contracts     repository.ContractRepository
	Notifications repository.NotificationRepository
}

// NewProposalService создает новый экземпляр ProposalService.
func NewProposalService(
	repo repository.ProposalRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	contracts repository.ContractRepository,
	notifications repository.NotificationRepository) *ProposalService {
	return &ProposalService{
		Repo:          repo,
		Projects:      projects,
		Users:         users,
		Contracts:     contracts,
		Notifications: notifications,
	}
}

// SubmitProposal подает отклик на проект. Повторная подача обновляет
// существующий отклик и возвращает его в статус Pending.
func (s *ProposalService) SubmitProposal(ctx context.Context, proposalReq models.ProposalRequest) (*models.Proposal, error) {
	if proposalReq.ProjectID == "" || proposalReq.FreelancerUsername == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: projectId or freelancerUsername")
	}
	if proposalReq.BidAmount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "bidAmount must be a positive number")
	}

	user, err := resolveUser(ctx, s.Users, proposalReq.FreelancerUsername)
	if err != nil {
		return nil, err
	}

	profile, err := s.Users.GetProfile(ctx, user.ID)
	if err != nil || profile == nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load user profile")
	}
	if profile.Role != models.RoleFreelancer {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only freelancers can submit proposals")
	}

	project, err := s.Projects.GetProjectByID(ctx, proposalReq.ProjectID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}

	return s.Repo.UpsertProposal(ctx, project.ID, user.ID, proposalReq.CoverLetter, proposalReq.BidAmount)
}

// loadProposalForDecision загружает отклик и его проект и проверяет, что решение принимает владелец проекта.
func (s *ProposalService) loadProposalForDecision(ctx context.Context, proposalID, username string) (*models.Proposal, *models.Project, error) {
	if proposalID == "" {
		return nil, nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: proposalId")
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, nil, err
	}

	proposal, err := s.Repo.GetProposalByID(ctx, proposalID)
	if err != nil {
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch proposal")
	}
	if proposal == nil {
		return nil, nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}

	project, err := s.Projects.GetProjectByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return nil, nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}

	if project.ClientID != user.ID {
		return nil, nil, models.NewErrorResponse(http.StatusForbidden, "only the project owner can decide on proposals")
	}
	return proposal, project, nil
}

// AcceptProposal принимает отклик и возвращает контракт. Повторный вызов для уже
// принятого отклика возвращает существующий контракт без побочных эффектов.
func (s *ProposalService) AcceptProposal(ctx context.Context, proposalID, username string) (*models.Contract, error) {
	proposal, _, err := s.loadProposalForDecision(ctx, proposalID, username)
	if err != nil {
		return nil, err
	}

	if proposal.Status == models.AcceptedProposal {
		contract, err := s.Contracts.GetContractByProposal(ctx, proposalID)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch contract")
		}
		if contract != nil {
			return contract, nil
		}
		// Контракт мог не создаться из-за сбоя после принятия, транзакция ниже его восстановит.
	}

	if proposal.Status == models.RejectedProposal {
		return nil, models.NewErrorResponse(http.StatusConflict, "proposal has already been rejected")
	}

	return s.Repo.AcceptProposal(ctx, proposalID)
}

// RejectProposal отклоняет отклик и уведомляет исполнителя. Отклонение уже
// отклоненного отклика повторных эффектов не дает.
func (s *ProposalService) RejectProposal(ctx context.Context, proposalID, username string) (*models.Proposal, error) {
	proposal, project, err := s.loadProposalForDecision(ctx, proposalID, username)
	if err != nil {
		return nil, err
	}

	if proposal.Status == models.AcceptedProposal {
		return nil, models.NewErrorResponse(http.StatusConflict, "accepted proposal cannot be rejected")
	}
	if proposal.Status == models.RejectedProposal {
		return proposal, nil
	}

	rejected, err := s.Repo.RejectProposal(ctx, proposalID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			return nil, errorResponse
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to reject proposal")
	}

	message := fmt.Sprintf("Your proposal for '%s' was rejected.", project.Title)
	if _, err = s.Notifications.CreateNotification(ctx, proposal.FreelancerID, message); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create notification")
	}
	return rejected, nil
}

// GetProjectProposals возвращает отклики на проект, доступно только владельцу проекта.
func (s *ProposalService) GetProjectProposals(ctx context.Context, projectID, username, limitStr, offsetStr string) ([]models.Proposal, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}

	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}
	if project.ClientID != user.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you are not authorized to view proposals for this project")
	}

	return s.Repo.GetProjectProposals(ctx, projectID, limit, offset)
}

// GetUserProposals возвращает отклики исполнителя.
func (s *ProposalService) GetUserProposals(ctx context.Context, username, limitStr, offsetStr string) ([]models.Proposal, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetUserProposals(ctx, user.ID, limit, offset)
}
