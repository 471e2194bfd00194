package models

import "time"

type ProposalStatus string // Статус отклика

const (
	PendingProposal  ProposalStatus = "Pending"  // Отклик ожидает решения заказчика
	AcceptedProposal ProposalStatus = "Accepted" // Отклик принят, терминальный статус
	RejectedProposal ProposalStatus = "Rejected" // Отклик отклонён, терминальный статус
)

// Proposal представляет модель отклика исполнителя на проект.
type Proposal struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	FreelancerID string         `json:"freelancerId"`
	CoverLetter  string         `json:"coverLetter"`
	BidAmount    float64        `json:"bidAmount"`
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ProposalRequest представляет структуру запроса для подачи отклика.
type ProposalRequest struct {
	ProjectID          string  `json:"projectId"`
	FreelancerUsername string  `json:"freelancerUsername"`
	CoverLetter        string  `json:"coverLetter"`
	BidAmount          float64 `json:"bidAmount"`
}
