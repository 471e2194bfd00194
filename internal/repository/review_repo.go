package repository

import (
	"context"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewRepository - интерфейс для работы с отзывами.
type ReviewRepository interface {
	CreateReview(ctx context.Context, projectID, reviewerID string, rating int, comment string) (*models.Review, error)
	GetProjectReviews(ctx context.Context, projectID string, limit, offset int) ([]models.Review, error)
}

// PostgresReviewRepository - реализация ReviewRepository для базы данных.
type PostgresReviewRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresReviewRepository создает новый экземпляр PostgresReviewRepository.
func NewPostgresReviewRepository(db *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{DB: db}
}

// CreateReview создает новый отзыв по проекту.
func (r *PostgresReviewRepository) CreateReview(ctx context.Context, projectID, reviewerID string, rating int, comment string) (*models.Review, error) {
	newReview := models.Review{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	}
	insertQuery := `INSERT INTO review (id, project_id, reviewer_id, rating, comment, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newReview.ID,
		newReview.ProjectID,
		newReview.ReviewerID,
		newReview.Rating,
		newReview.Comment,
		newReview.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newReview, nil
}

// GetProjectReviews возвращает список отзывов по проекту.
func (r *PostgresReviewRepository) GetProjectReviews(ctx context.Context, projectID string, limit, offset int) ([]models.Review, error) {
	query := `SELECT id, project_id, reviewer_id, rating, comment, created_at
	          FROM review WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.ProjectID,
			&review.ReviewerID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}
