package services

import (
	"context"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Repo repository.UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

// Register регистрирует пользователя: сначала создается пользователь, затем его профиль.
func (s *UserService) Register(ctx context.Context, registerReq models.RegisterRequest) (*models.User, error) {
	if registerReq.Username == "" || registerReq.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: username or password")
	}

	role := registerReq.Role
	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidProfileRole(role) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid role, must be 'client' or 'freelancer'")
	}

	existing, err := s.Repo.GetUserByUsername(ctx, registerReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if existing != nil {
		return nil, models.NewErrorResponse(http.StatusConflict, "username already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to hash password")
	}

	user, err := s.Repo.CreateUser(ctx, registerReq.Username, string(passwordHash))
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create user")
	}

	profile := models.Profile{
		UserID:       user.ID,
		Name:         registerReq.Name,
		Role:         role,
		Skills:       []string{},
		Availability: true,
	}
	if err = s.Repo.CreateProfile(ctx, profile); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create profile")
	}
	return user, nil
}

// Login проверяет учетные данные пользователя.
func (s *UserService) Login(ctx context.Context, loginReq models.LoginRequest) (*models.User, error) {
	if loginReq.Username == "" || loginReq.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: username or password")
	}

	user, err := s.Repo.GetUserByUsername(ctx, loginReq.Username)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check user existence")
	}
	if user == nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid credentials")
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginReq.Password)); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid credentials")
	}
	return user, nil
}
