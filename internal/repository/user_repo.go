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

// UserRepository - интерфейс для работы с пользователями и профилями.
type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	CreateProfile(ctx context.Context, profile models.Profile) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser создает нового пользователя.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	newUser := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	insertQuery := `INSERT INTO users (id, username, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(ctx, insertQuery, newUser.ID, newUser.Username, newUser.PasswordHash, newUser.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

// CreateProfile создает профиль пользователя.
func (r *PostgresUserRepository) CreateProfile(ctx context.Context, profile models.Profile) error {
	insertQuery := `INSERT INTO profile (user_id, name, role, bio, skills, portfolio, hourly_rate, availability, location)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		profile.UserID,
		profile.Name,
		profile.Role,
		profile.Bio,
		profile.Skills,
		profile.Portfolio,
		profile.HourlyRate,
		profile.Availability,
		profile.Location)
	return err
}

// GetUserByUsername возвращает пользователя по его имени.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := r.DB.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID возвращает пользователя по его ID.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile возвращает профиль пользователя.
func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT user_id, name, role, bio, skills, portfolio, hourly_rate, availability, location
	          FROM profile WHERE user_id = $1`
	err := r.DB.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Role,
		&profile.Bio,
		&profile.Skills,
		&profile.Portfolio,
		&profile.HourlyRate,
		&profile.Availability,
		&profile.Location,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
