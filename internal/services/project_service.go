package services

import (
	"context"
	"net/http"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type ProjectService struct {
	Repo  repository.ProjectRepository
	Users repository.UserRepository
}

// NewProjectService создает новый экземпляр ProjectService.
func NewProjectService(repo repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{Repo: repo, Users: users}
}

// resolveUser возвращает пользователя по имени или типизированную ошибку.
func resolveUser(ctx context.Context, users repository.UserRepository, username string) (*models.User, error) {
	if username == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: username")
	}
	user, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "user does not exist")
	}
	return user, nil
}

// CreateProject создает новый проект.
func (s *ProjectService) CreateProject(ctx context.Context, projectReq models.ProjectRequest) (*models.Project, error) {
	if projectReq.Title == "" || projectReq.Description == "" || projectReq.ClientUsername == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: title, description or clientUsername")
	}

	user, err := resolveUser(ctx, s.Users, projectReq.ClientUsername)
	if err != nil {
		return nil, err
	}

	profile, err := s.Users.GetProfile(ctx, user.ID)
	if err != nil || profile == nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to load user profile")
	}
	if profile.Role != models.RoleClient {
		return nil, models.NewErrorResponse(http.StatusForbidden, "only clients can create projects")
	}

	var deadline *time.Time
	if projectReq.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", projectReq.Deadline)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid deadline, expected YYYY-MM-DD")
		}
		deadline = &parsed
	}

	return s.Repo.CreateProject(ctx, projectReq, user.ID, deadline)
}

// GetProject возвращает проект по его ID.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	if projectID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameter: projectId")
	}
	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}
	return project, nil
}

// SearchProjects возвращает список проектов по текстовому запросу и навыкам.
func (s *ProjectService) SearchProjects(ctx context.Context, q string, skills []string, limitStr, offsetStr string) ([]models.Project, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	return s.Repo.SearchProjects(ctx, q, skills, limit, offset)
}

// GetUserProjects возвращает список проектов заказчика.
func (s *ProjectService) GetUserProjects(ctx context.Context, username, limitStr, offsetStr string) ([]models.Project, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetUserProjects(ctx, user.ID, limit, offset)
}

// EditProject меняет поля проекта, доступно только владельцу.
func (s *ProjectService) EditProject(ctx context.Context, projectID, username string, updateFields map[string]interface{}) (*models.Project, error) {
	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != user.ID {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you are not authorized to edit this project")
	}

	if deadlineStr, ok := updateFields["deadline"].(string); ok && deadlineStr != "" {
		parsed, err := time.Parse("2006-01-02", deadlineStr)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid deadline, expected YYYY-MM-DD")
		}
		updateFields["deadline"] = parsed
	}

	return s.Repo.EditProject(ctx, projectID, updateFields)
}

// DeleteProject удаляет проект, доступно только владельцу.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, username string) error {
	user, err := resolveUser(ctx, s.Users, username)
	if err != nil {
		return err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.ClientID != user.ID {
		return models.NewErrorResponse(http.StatusForbidden, "you are not authorized to delete this project")
	}
	if err := s.Repo.DeleteProject(ctx, projectID); err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to delete project")
	}
	return nil
}
