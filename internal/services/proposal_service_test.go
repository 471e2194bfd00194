package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/talentlink/marketplace-service/internal/models"
)

func newProposalService(store *fakeStore) *ProposalService {
	return NewProposalService(store, store, store, store, store)
}

func TestSubmitProposalValidation(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")

	service := newProposalService(store)

	tests := []struct {
		name       string
		req        models.ProposalRequest
		wantStatus int
	}{
		{
			name:       "missing project id",
			req:        models.ProposalRequest{FreelancerUsername: "freelancer", BidAmount: 100},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-positive bid",
			req:        models.ProposalRequest{ProjectID: project.ID, FreelancerUsername: "freelancer", BidAmount: 0},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown user",
			req:        models.ProposalRequest{ProjectID: project.ID, FreelancerUsername: "nobody", BidAmount: 100},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "client cannot submit",
			req:        models.ProposalRequest{ProjectID: project.ID, FreelancerUsername: "client", BidAmount: 100},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "project not found",
			req:        models.ProposalRequest{ProjectID: "missing", FreelancerUsername: "freelancer", BidAmount: 100},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.SubmitProposal(context.Background(), tt.req)
			if got := statusCode(err); got != tt.wantStatus {
				t.Errorf("expected status %d, got %d (err=%v)", tt.wantStatus, got, err)
			}
		})
	}
}

func TestSubmitProposalResubmissionUpdatesExisting(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")

	service := newProposalService(store)

	first, err := service.SubmitProposal(context.Background(), models.ProposalRequest{
		ProjectID:          project.ID,
		FreelancerUsername: "freelancer",
		CoverLetter:        "first attempt",
		BidAmount:          100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := service.SubmitProposal(context.Background(), models.ProposalRequest{
		ProjectID:          project.ID,
		FreelancerUsername: "freelancer",
		CoverLetter:        "second attempt",
		BidAmount:          150,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("resubmission must update the existing proposal, got new id %s", second.ID)
	}
	if second.CoverLetter != "second attempt" || second.BidAmount != 150 {
		t.Errorf("resubmission did not update fields: %+v", second)
	}
	if second.Status != models.PendingProposal {
		t.Errorf("expected status %s, got %s", models.PendingProposal, second.Status)
	}
}

func TestSubmitProposalOverAcceptedConflicts(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	if _, err := service.AcceptProposal(context.Background(), proposal.ID, "client"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.SubmitProposal(context.Background(), models.ProposalRequest{
		ProjectID:          project.ID,
		FreelancerUsername: "freelancer",
		BidAmount:          200,
	})
	if got := statusCode(err); got != http.StatusConflict {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusConflict, got, err)
	}
}

func TestAcceptProposalRejectsSiblingsAndCreatesContract(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	first := store.addUser("freelancer1", models.RoleFreelancer)
	second := store.addUser("freelancer2", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	accepted := store.addProposal(project.ID, first.ID)
	sibling := store.addProposal(project.ID, second.ID)

	service := newProposalService(store)

	contract, err := service.AcceptProposal(context.Background(), accepted.ID, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if contract.ProposalID != accepted.ID {
		t.Errorf("contract references proposal %s, want %s", contract.ProposalID, accepted.ID)
	}
	if contract.Status != models.ActiveContract {
		t.Errorf("expected contract status %s, got %s", models.ActiveContract, contract.Status)
	}
	if contract.ClientID != client.ID || contract.FreelancerID != first.ID {
		t.Errorf("contract parties are wrong: %+v", contract)
	}

	if store.proposals[accepted.ID].Status != models.AcceptedProposal {
		t.Errorf("accepted proposal has status %s", store.proposals[accepted.ID].Status)
	}
	if store.proposals[sibling.ID].Status != models.RejectedProposal {
		t.Errorf("sibling proposal has status %s, want %s", store.proposals[sibling.ID].Status, models.RejectedProposal)
	}
	if len(store.contracts) != 1 {
		t.Errorf("expected exactly one contract, got %d", len(store.contracts))
	}

	notifications, _ := store.GetUserNotifications(context.Background(), first.ID, 10, 0)
	if len(notifications) != 1 {
		t.Fatalf("expected one notification for the freelancer, got %d", len(notifications))
	}
	if !strings.Contains(notifications[0].Message, "ACCEPTED") {
		t.Errorf("notification does not mention acceptance: %q", notifications[0].Message)
	}
}

func TestAcceptProposalIsIdempotent(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	first, err := service.AcceptProposal(context.Background(), proposal.ID, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.AcceptProposal(context.Background(), proposal.ID, "client")
	if err != nil {
		t.Fatalf("unexpected error on repeat accept: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("repeat accept returned a different contract: %s vs %s", second.ID, first.ID)
	}
	if len(store.contracts) != 1 {
		t.Errorf("expected exactly one contract, got %d", len(store.contracts))
	}

	notifications, _ := store.GetUserNotifications(context.Background(), freelancer.ID, 10, 0)
	if len(notifications) != 1 {
		t.Errorf("repeat accept must not duplicate notifications, got %d", len(notifications))
	}
}

func TestAcceptRejectedProposalConflicts(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	if _, err := service.RejectProposal(context.Background(), proposal.ID, "client"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.AcceptProposal(context.Background(), proposal.ID, "client")
	if got := statusCode(err); got != http.StatusConflict {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusConflict, got, err)
	}
	if len(store.contracts) != 0 {
		t.Errorf("no contract must be created for a rejected proposal")
	}
}

func TestAcceptAfterSiblingResubmissionConflicts(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	first := store.addUser("freelancer1", models.RoleFreelancer)
	second := store.addUser("freelancer2", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	winner := store.addProposal(project.ID, first.ID)
	store.addProposal(project.ID, second.ID)

	service := newProposalService(store)

	if _, err := service.AcceptProposal(context.Background(), winner.ID, "client"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Автоотклоненный отклик подается заново и возвращается в Pending.
	resubmitted, err := service.SubmitProposal(context.Background(), models.ProposalRequest{
		ProjectID:          project.ID,
		FreelancerUsername: "freelancer2",
		BidAmount:          90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resubmitted.Status != models.PendingProposal {
		t.Fatalf("expected resubmitted proposal to be %s, got %s", models.PendingProposal, resubmitted.Status)
	}

	// Но принять его нельзя, пока у проекта есть принятый отклик.
	_, err = service.AcceptProposal(context.Background(), resubmitted.ID, "client")
	if got := statusCode(err); got != http.StatusConflict {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusConflict, got, err)
	}

	var accepted int
	for _, proposal := range store.proposals {
		if proposal.Status == models.AcceptedProposal {
			accepted++
		}
	}
	if accepted != 1 {
		t.Errorf("expected exactly one accepted proposal, got %d", accepted)
	}
	if len(store.contracts) != 1 {
		t.Errorf("expected exactly one contract, got %d", len(store.contracts))
	}
}

// staleProposalRepo отдает сервису устаревший статус Pending, имитируя
// конкурентное принятие между чтением в сервисе и записью в репозитории.
type staleProposalRepo struct {
	*fakeStore
}

func (r *staleProposalRepo) GetProposalByID(ctx context.Context, proposalID string) (*models.Proposal, error) {
	proposal, err := r.fakeStore.GetProposalByID(ctx, proposalID)
	if proposal == nil || err != nil {
		return proposal, err
	}
	stale := *proposal
	stale.Status = models.PendingProposal
	return &stale, nil
}

func TestRejectProposalGuardedAgainstConcurrentAccept(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	if _, err := store.AcceptProposal(context.Background(), proposal.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	service := NewProposalService(&staleProposalRepo{store}, store, store, store, store)

	_, err := service.RejectProposal(context.Background(), proposal.ID, "client")
	if got := statusCode(err); got != http.StatusConflict {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusConflict, got, err)
	}
	if store.proposals[proposal.ID].Status != models.AcceptedProposal {
		t.Errorf("accepted proposal was flipped to %s", store.proposals[proposal.ID].Status)
	}
}

func TestAcceptProposalOnlyByProjectOwner(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	store.addUser("other", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	_, err := service.AcceptProposal(context.Background(), proposal.ID, "other")
	if got := statusCode(err); got != http.StatusForbidden {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusForbidden, got, err)
	}

	_, err = service.RejectProposal(context.Background(), proposal.ID, "other")
	if got := statusCode(err); got != http.StatusForbidden {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusForbidden, got, err)
	}
}

func TestRejectProposal(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	rejected, err := service.RejectProposal(context.Background(), proposal.ID, "client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != models.RejectedProposal {
		t.Errorf("expected status %s, got %s", models.RejectedProposal, rejected.Status)
	}

	notifications, _ := store.GetUserNotifications(context.Background(), freelancer.ID, 10, 0)
	if len(notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifications))
	}
	if !strings.Contains(notifications[0].Message, "rejected") {
		t.Errorf("notification does not mention rejection: %q", notifications[0].Message)
	}

	// Повторное отклонение ничего не меняет и не дублирует уведомления.
	again, err := service.RejectProposal(context.Background(), proposal.ID, "client")
	if err != nil {
		t.Fatalf("unexpected error on repeat reject: %v", err)
	}
	if again.Status != models.RejectedProposal {
		t.Errorf("expected status %s, got %s", models.RejectedProposal, again.Status)
	}
	notifications, _ = store.GetUserNotifications(context.Background(), freelancer.ID, 10, 0)
	if len(notifications) != 1 {
		t.Errorf("repeat reject must not duplicate notifications, got %d", len(notifications))
	}
}

func TestRejectAcceptedProposalConflicts(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	proposal := store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	if _, err := service.AcceptProposal(context.Background(), proposal.ID, "client"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := service.RejectProposal(context.Background(), proposal.ID, "client")
	if got := statusCode(err); got != http.StatusConflict {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusConflict, got, err)
	}
}

func TestGetProjectProposalsOwnerOnly(t *testing.T) {
	store := newFakeStore()
	client := store.addUser("client", models.RoleClient)
	freelancer := store.addUser("freelancer", models.RoleFreelancer)
	project := store.addProject(client.ID, "Build a website")
	store.addProposal(project.ID, freelancer.ID)

	service := newProposalService(store)

	proposals, err := service.GetProjectProposals(context.Background(), project.ID, "client", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(proposals) != 1 {
		t.Errorf("expected one proposal, got %d", len(proposals))
	}

	_, err = service.GetProjectProposals(context.Background(), project.ID, "freelancer", "", "")
	if got := statusCode(err); got != http.StatusForbidden {
		t.Errorf("expected status %d, got %d (err=%v)", http.StatusForbidden, got, err)
	}
}
