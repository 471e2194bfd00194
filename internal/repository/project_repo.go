package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ProjectRepository - интерфейс для работы с проектами.
type ProjectRepository interface {
	CreateProject(ctx context.Context, projectReq models.ProjectRequest, clientID string, deadline *time.Time) (*models.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
	SearchProjects(ctx context.Context, q string, skills []string, limit, offset int) ([]models.Project, error)
	GetUserProjects(ctx context.Context, clientID string, limit, offset int) ([]models.Project, error)
	EditProject(ctx context.Context, projectID string, updateFields map[string]interface{}) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// PostgresProjectRepository - реализация ProjectRepository для базы данных.
type PostgresProjectRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProjectRepository создает новый экземпляр PostgresProjectRepository.
func NewPostgresProjectRepository(db *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `id, client_id, title, description, budget, deadline, duration_days, skills_required, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.ClientID,
		&project.Title,
		&project.Description,
		&project.Budget,
		&project.Deadline,
		&project.DurationDays,
		&project.SkillsRequired,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject создает новый проект.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, projectReq models.ProjectRequest, clientID string, deadline *time.Time) (*models.Project, error) {
	newProject := models.Project{
		ID:             uuid.New().String(),
		ClientID:       clientID,
		Title:          projectReq.Title,
		Description:    projectReq.Description,
		Budget:         projectReq.Budget,
		Deadline:       deadline,
		DurationDays:   projectReq.DurationDays,
		SkillsRequired: projectReq.SkillsRequired,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	if newProject.SkillsRequired == nil {
		newProject.SkillsRequired = []string{}
	}
	insertQuery := `INSERT INTO project (id, client_id, title, description, budget, deadline, duration_days, skills_required, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newProject.ID,
		newProject.ClientID,
		newProject.Title,
		newProject.Description,
		newProject.Budget,
		newProject.Deadline,
		newProject.DurationDays,
		newProject.SkillsRequired,
		newProject.CreatedAt,
		newProject.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return &newProject, nil
}

// GetProjectByID возвращает проект по его ID.
func (r *PostgresProjectRepository) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE id = $1`
	project, err := scanProject(r.DB.QueryRow(ctx, query, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// SearchProjects возвращает список проектов с фильтрами по тексту и навыкам.
func (r *PostgresProjectRepository) SearchProjects(ctx context.Context, q string, skills []string, limit, offset int) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project`
	var filters []string
	var args []interface{}
	argIndex := 1

	if q != "" {
		filters = append(filters, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+q+"%")
		argIndex++
	}

	if len(skills) > 0 {
		filters = append(filters, fmt.Sprintf("skills_required && $%d", argIndex))
		args = append(args, pq.Array(skills))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, nil
}

// GetUserProjects возвращает список проектов заказчика.
func (r *PostgresProjectRepository) GetUserProjects(ctx context.Context, clientID string, limit, offset int) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, nil
}

// EditProject меняет поля проекта.
func (r *PostgresProjectRepository) EditProject(ctx context.Context, projectID string, updateFields map[string]interface{}) (*models.Project, error) {
	var updates []string
	args := []interface{}{projectID} // Первый аргумент всегда будет projectID
	argIndex := 2

	if title, ok := updateFields["title"].(string); ok && title != "" {
		updates = append(updates, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, title)
		argIndex++
	}

	if description, ok := updateFields["description"].(string); ok && description != "" {
		updates = append(updates, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, description)
		argIndex++
	}

	if budget, ok := updateFields["budget"].(float64); ok && budget > 0 {
		updates = append(updates, fmt.Sprintf("budget = $%d", argIndex))
		args = append(args, budget)
		argIndex++
	}

	if deadline, ok := updateFields["deadline"].(time.Time); ok {
		updates = append(updates, fmt.Sprintf("deadline = $%d", argIndex))
		args = append(args, deadline)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "no valid fields to update")
	}

	updates = append(updates, "updated_at = now()")
	updateQuery := fmt.Sprintf("UPDATE project SET %s WHERE id = $1 RETURNING %s", strings.Join(updates, ", "), projectColumns)

	updatedProject, err := scanProject(r.DB.QueryRow(ctx, updateQuery, args...))
	if err != nil {
		return nil, err
	}
	return updatedProject, nil
}

// DeleteProject удаляет проект вместе с откликами и контрактами.
func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	deleteQuery := `DELETE FROM project WHERE id = $1`
	_, err := r.DB.Exec(ctx, deleteQuery, projectID)
	return err
}
