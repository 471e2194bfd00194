package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProposalRepository - интерфейс для работы с откликами.
type ProposalRepository interface {
	UpsertProposal(ctx context.Context, projectID, freelancerID, coverLetter string, bidAmount float64) (*models.Proposal, error)
	GetProposalByID(ctx context.Context, proposalID string) (*models.Proposal, error)
	GetProjectProposals(ctx context.Context, projectID string, limit, offset int) ([]models.Proposal, error)
	GetUserProposals(ctx context.Context, freelancerID string, limit, offset int) ([]models.Proposal, error)
	AcceptProposal(ctx context.Context, proposalID string) (*models.Contract, error)
	RejectProposal(ctx context.Context, proposalID string) (*models.Proposal, error)
}

// PostgresProposalRepository - реализация ProposalRepository для базы данных.
type PostgresProposalRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProposalRepository создает новый экземпляр PostgresProposalRepository.
func NewPostgresProposalRepository(db *pgxpool.Pool) *PostgresProposalRepository {
	return &PostgresProposalRepository{DB: db}
}

const proposalColumns = `id, project_id, freelancer_id, cover_letter, bid_amount, status, created_at`

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var proposal models.Proposal
	err := row.Scan(
		&proposal.ID,
		&proposal.ProjectID,
		&proposal.FreelancerID,
		&proposal.CoverLetter,
		&proposal.BidAmount,
		&proposal.Status,
		&proposal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpsertProposal создает отклик или обновляет существующий для пары (проект, исполнитель).
// Принятый отклик терминален и повторной подачей не перезаписывается.
func (r *PostgresProposalRepository) UpsertProposal(ctx context.Context, projectID, freelancerID, coverLetter string, bidAmount float64) (*models.Proposal, error) {
	upsertQuery := `
		INSERT INTO proposal (id, project_id, freelancer_id, cover_letter, bid_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (project_id, freelancer_id) DO UPDATE
		SET cover_letter = EXCLUDED.cover_letter, bid_amount = EXCLUDED.bid_amount, status = $6
		WHERE proposal.status <> $8
		RETURNING ` + proposalColumns

	proposal, err := scanProposal(r.DB.QueryRow(
		ctx,
		upsertQuery,
		uuid.New().String(),
		projectID,
		freelancerID,
		coverLetter,
		bidAmount,
		models.PendingProposal,
		time.Now().UTC(),
		models.AcceptedProposal))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusConflict, "proposal has already been accepted and cannot be resubmitted")
	}
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// GetProposalByID возвращает отклик по его ID.
func (r *PostgresProposalRepository) GetProposalByID(ctx context.Context, proposalID string) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal WHERE id = $1`
	proposal, err := scanProposal(r.DB.QueryRow(ctx, query, proposalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// GetProjectProposals возвращает список откликов на проект.
func (r *PostgresProposalRepository) GetProjectProposals(ctx context.Context, projectID string, limit, offset int) ([]models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *proposal)
	}
	return proposals, nil
}

// GetUserProposals возвращает список откликов исполнителя.
func (r *PostgresProposalRepository) GetUserProposals(ctx context.Context, freelancerID string, limit, offset int) ([]models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposal WHERE freelancer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, freelancerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []models.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *proposal)
	}
	return proposals, nil
}

// AcceptProposal принимает отклик одной транзакцией: блокирует строку проекта,
// отклоняет остальные ожидающие отклики, создает контракт и уведомление исполнителю.
// Повторный вызов для принятого отклика возвращает уже существующий контракт.
func (r *PostgresProposalRepository) AcceptProposal(ctx context.Context, proposalID string) (*models.Contract, error) {
	contract, err := r.acceptProposalTx(ctx, proposalID)
	if err != nil && isSerializationFailure(err) {
		// Одна повторная попытка при конфликте сериализации, дальше отдаем ошибку вызывающему.
		contract, err = r.acceptProposalTx(ctx, proposalID)
	}
	if err != nil && isSerializationFailure(err) {
		return nil, models.NewErrorResponse(http.StatusConflict, "proposal decision conflicts with a concurrent update, try again")
	}
	return contract, err
}

func (r *PostgresProposalRepository) acceptProposalTx(ctx context.Context, proposalID string) (*models.Contract, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Блокировка строки проекта сериализует конкурирующие решения по его откликам.
	var projectID, projectTitle, clientID string
	lockQuery := `
		SELECT p.id, p.title, p.client_id
		FROM project p
		JOIN proposal pr ON pr.project_id = p.id
		WHERE pr.id = $1
		FOR UPDATE OF p`
	if err = tx.QueryRow(ctx, lockQuery, proposalID).Scan(&projectID, &projectTitle, &clientID); err != nil {
		return nil, err
	}

	// Статус перечитывается под блокировкой: параллельный accept мог уже отклонить этот отклик.
	var freelancerID string
	var status models.ProposalStatus
	statusQuery := `SELECT freelancer_id, status FROM proposal WHERE id = $1`
	if err = tx.QueryRow(ctx, statusQuery, proposalID).Scan(&freelancerID, &status); err != nil {
		return nil, err
	}

	if status == models.RejectedProposal {
		return nil, models.NewErrorResponse(http.StatusConflict, "proposal has already been rejected")
	}

	// У проекта может быть только один принятый отклик: переподанный после
	// автоотклонения отклик не должен привести ко второму контракту.
	var siblingAccepted bool
	siblingQuery := `SELECT EXISTS (SELECT 1 FROM proposal WHERE project_id = $1 AND id <> $2 AND status = $3)`
	if err = tx.QueryRow(ctx, siblingQuery, projectID, proposalID, models.AcceptedProposal).Scan(&siblingAccepted); err != nil {
		return nil, err
	}
	if siblingAccepted {
		return nil, models.NewErrorResponse(http.StatusConflict, "project already has an accepted proposal")
	}

	if status == models.PendingProposal {
		updateQuery := `UPDATE proposal SET status = $1 WHERE id = $2`
		if _, err = tx.Exec(ctx, updateQuery, models.AcceptedProposal, proposalID); err != nil {
			return nil, err
		}

		rejectSiblingsQuery := `UPDATE proposal SET status = $1 WHERE project_id = $2 AND id <> $3 AND status = $4`
		if _, err = tx.Exec(ctx, rejectSiblingsQuery, models.RejectedProposal, projectID, proposalID, models.PendingProposal); err != nil {
			return nil, err
		}
	}

	insertContractQuery := `
		INSERT INTO contract (id, proposal_id, project_id, client_id, freelancer_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (proposal_id) DO NOTHING`
	_, err = tx.Exec(
		ctx,
		insertContractQuery,
		uuid.New().String(),
		proposalID,
		projectID,
		clientID,
		freelancerID,
		models.ActiveContract,
		time.Now().UTC())
	if err != nil {
		return nil, err
	}

	var contract models.Contract
	contractQuery := `SELECT ` + contractColumns + ` FROM contract WHERE proposal_id = $1`
	err = tx.QueryRow(ctx, contractQuery, proposalID).Scan(
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

	if status == models.PendingProposal {
		notifyQuery := `INSERT INTO notification (id, user_id, message, is_read, created_at) VALUES ($1, $2, $3, $4, $5)`
		message := fmt.Sprintf("Your proposal for '%s' was ACCEPTED.", projectTitle)
		if _, err = tx.Exec(ctx, notifyQuery, uuid.New().String(), freelancerID, message, false, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &contract, nil
}

// RejectProposal переводит отклик в статус Rejected. Статусное условие в SQL
// не дает отклонить отклик, принятый конкурентным запросом после проверки в сервисе.
func (r *PostgresProposalRepository) RejectProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	updateQuery := `UPDATE proposal SET status = $1 WHERE id = $2 AND status <> $3 RETURNING ` + proposalColumns
	proposal, err := scanProposal(r.DB.QueryRow(ctx, updateQuery, models.RejectedProposal, proposalID, models.AcceptedProposal))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusConflict, "accepted proposal cannot be rejected")
	}
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// isSerializationFailure распознает конфликт сериализации или взаимную блокировку.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
