package models

import "time"

// Review представляет модель отзыва по проекту.
type Review struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	ReviewerID string    `json:"reviewerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReviewRequest представляет структуру запроса для отправки отзыва.
type ReviewRequest struct {
	ReviewerUsername string `json:"reviewerUsername"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
}
