package models

import "time"

type ProfileRole string // Роль профиля пользователя

const (
	RoleClient     ProfileRole = "client"     // Заказчик, размещает проекты
	RoleFreelancer ProfileRole = "freelancer" // Исполнитель, откликается на проекты
)

// ValidProfileRole проверяет, что роль входит в закрытый список.
func ValidProfileRole(role ProfileRole) bool {
	switch role {
	case RoleClient, RoleFreelancer:
		return true
	default:
		return false
	}
}

// User представляет модель пользователя.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile представляет модель профиля пользователя.
type Profile struct {
	UserID       string      `json:"userId"`
	Name         string      `json:"name"`
	Role         ProfileRole `json:"role"`
	Bio          string      `json:"bio"`
	Skills       []string    `json:"skills"`
	Portfolio    string      `json:"portfolio"`
	HourlyRate   float64     `json:"hourlyRate"`
	Availability bool        `json:"availability"`
	Location     string      `json:"location"`
}

// RegisterRequest представляет структуру запроса для регистрации пользователя.
type RegisterRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     ProfileRole `json:"role"`
	Name     string      `json:"name"`
}

// LoginRequest представляет структуру запроса для входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
