package models

import "time"

type ContractStatus string // Статус контракта

const (
	ActiveContract    ContractStatus = "Active"    // Контракт действует
	CompletedContract ContractStatus = "Completed" // Контракт завершён, терминальный статус
	CancelledContract ContractStatus = "Cancelled" // Контракт расторгнут, терминальный статус
)

// Contract представляет модель контракта между заказчиком и исполнителем.
type Contract struct {
	ID           string         `json:"id"`
	ProposalID   string         `json:"proposalId"`
	ProjectID    string         `json:"projectId"`
	ClientID     string         `json:"clientId"`
	FreelancerID string         `json:"freelancerId"`
	Status       ContractStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}
