package repository

import (
	"context"
	"errors"
	"net/http"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractRepository - интерфейс для работы с контрактами.
type ContractRepository interface {
	GetContractByID(ctx context.Context, contractID string) (*models.Contract, error)
	GetContractByProposal(ctx context.Context, proposalID string) (*models.Contract, error)
	GetUserContracts(ctx context.Context, userID string, limit, offset int) ([]models.Contract, error)
	UpdateContractStatus(ctx context.Context, contractID string, status models.ContractStatus) (*models.Contract, error)
}

// PostgresContractRepository - реализация ContractRepository для базы данных.
type PostgresContractRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresContractRepository создает новый экземпляр PostgresContractRepository.
func NewPostgresContractRepository(db *pgxpool.Pool) *PostgresContractRepository {
	return &PostgresContractRepository{DB: db}
}

const contractColumns = `id, proposal_id, project_id, client_id, freelancer_id, status, created_at`

func scanContract(row pgx.Row) (*models.Contract, error) {
	var contract models.Contract
	err := row.Scan(
		&contract.ID,
		&contract.ProposalID,
		&contract.ProjectID,
		&contract.ClientID,
		&contract.FreelancerID,
		&contract.Status,
		&contract.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// GetContractByID возвращает контракт по его ID.
func (r *PostgresContractRepository) GetContractByID(ctx context.Context, contractID string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contract WHERE id = $1`
	contract, err := scanContract(r.DB.QueryRow(ctx, query, contractID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// GetContractByProposal возвращает контракт по ID отклика.
func (r *PostgresContractRepository) GetContractByProposal(ctx context.Context, proposalID string) (*models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contract WHERE proposal_id = $1`
	contract, err := scanContract(r.DB.QueryRow(ctx, query, proposalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// GetUserContracts возвращает список контрактов, где пользователь является стороной.
func (r *PostgresContractRepository) GetUserContracts(ctx context.Context, userID string, limit, offset int) ([]models.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contract WHERE client_id = $1 OR freelancer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *contract)
	}
	return contracts, nil
}

// UpdateContractStatus меняет статус контракта. Переход возможен только из Active:
// условие в SQL не дает конкурентным complete и cancel перезаписать терминальный статус.
func (r *PostgresContractRepository) UpdateContractStatus(ctx context.Context, contractID string, status models.ContractStatus) (*models.Contract, error) {
	updateQuery := `UPDATE contract SET status = $1 WHERE id = $2 AND status = $3 RETURNING ` + contractColumns
	contract, err := scanContract(r.DB.QueryRow(ctx, updateQuery, status, contractID, models.ActiveContract))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusConflict, "contract is no longer active")
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}
