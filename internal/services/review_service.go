package services

import (
	"context"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/utils"
)

type ReviewService struct {
	Repo     repository.ReviewRepository
	Projects repository.ProjectRepository
	Users    repository.UserRepository
}

// NewReviewService создает новый экземпляр ReviewService.
func NewReviewService(repo repository.ReviewRepository, projects repository.ProjectRepository, users repository.UserRepository) *ReviewService {
	return &ReviewService{Repo: repo, Projects: projects, Users: users}
}

// SubmitReview создает отзыв по проекту.
func (s *ReviewService) SubmitReview(ctx context.Context, projectID string, reviewReq models.ReviewRequest) (*models.Review, error) {
	if reviewReq.Rating < 1 || reviewReq.Rating > 5 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rating must be an integer in [1:5]")
	}

	user, err := resolveUser(ctx, s.Users, reviewReq.ReviewerUsername)
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

	return s.Repo.CreateReview(ctx, project.ID, user.ID, reviewReq.Rating, reviewReq.Comment)
}

// GetProjectReviews возвращает отзывы по проекту.
func (s *ReviewService) GetProjectReviews(ctx context.Context, projectID, limitStr, offsetStr string) ([]models.Review, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	project, err := s.Projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch project")
	}
	if project == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}
	return s.Repo.GetProjectReviews(ctx, project.ID, limit, offset)
}
