package models

import "time"

// Project представляет модель проекта заказчика.
type Project struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Budget         float64    `json:"budget"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	DurationDays   int        `json:"durationDays"`
	SkillsRequired []string   `json:"skillsRequired"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProjectRequest представляет структуру запроса для создания или обновления проекта.
type ProjectRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Budget         float64  `json:"budget"`
	Deadline       string   `json:"deadline"`
	DurationDays   int      `json:"durationDays"`
	SkillsRequired []string `json:"skillsRequired"`
	ClientUsername string   `json:"clientUsername"`
}
