package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"
)

// fakeStore - общее хранилище в памяти, реализующее все интерфейсы репозиториев.
// Поведение методов повторяет контракт Postgres-реализаций.
type fakeStore struct {
	users         map[string]*models.User    // username -> user
	profiles      map[string]*models.Profile // userID -> profile
	projects      map[string]*models.Project
	proposals     map[string]*models.Proposal
	contracts     map[string]*models.Contract
	notifications map[string]*models.Notification
	messages      []*models.Message
	reviews       []*models.Review
	cleared       map[string]time.Time // userID+"/"+contractID -> cleared_at
	seq           int
	clock         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[string]*models.User),
		profiles:      make(map[string]*models.Profile),
		projects:      make(map[string]*models.Project),
		proposals:     make(map[string]*models.Proposal),
		contracts:     make(map[string]*models.Contract),
		notifications: make(map[string]*models.Notification),
		cleared:       make(map[string]time.Time),
		clock:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// --- UserRepository ---

func (s *fakeStore) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	user := &models.User{
		ID:           s.nextID("user"),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    s.tick(),
	}
	s.users[username] = user
	return user, nil
}

func (s *fakeStore) CreateProfile(_ context.Context, profile models.Profile) error {
	s.profiles[profile.UserID] = &profile
	return nil
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.users[username], nil
}

func (s *fakeStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	return s.profiles[userID], nil
}

// --- ProjectRepository ---

func (s *fakeStore) CreateProject(_ context.Context, projectReq models.ProjectRequest, clientID string, deadline *time.Time) (*models.Project, error) {
	project := &models.Project{
		ID:             s.nextID("project"),
		ClientID:       clientID,
		Title:          projectReq.Title,
		Description:    projectReq.Description,
		Budget:         projectReq.Budget,
		Deadline:       deadline,
		DurationDays:   projectReq.DurationDays,
		SkillsRequired: projectReq.SkillsRequired,
		CreatedAt:      s.tick(),
		UpdatedAt:      s.clock,
	}
	s.projects[project.ID] = project
	return project, nil
}

func (s *fakeStore) GetProjectByID(_ context.Context, projectID string) (*models.Project, error) {
	return s.projects[projectID], nil
}

func (s *fakeStore) SearchProjects(_ context.Context, q string, skills []string, limit, offset int) ([]models.Project, error) {
	var projects []models.Project
	for _, project := range s.projects {
		projects = append(projects, *project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	return projects, nil
}

func (s *fakeStore) GetUserProjects(_ context.Context, clientID string, limit, offset int) ([]models.Project, error) {
	var projects []models.Project
	for _, project := range s.projects {
		if project.ClientID == clientID {
			projects = append(projects, *project)
		}
	}
	return projects, nil
}

func (s *fakeStore) EditProject(_ context.Context, projectID string, updateFields map[string]interface{}) (*models.Project, error) {
	project := s.projects[projectID]
	if title, ok := updateFields["title"].(string); ok && title != "" {
		project.Title = title
	}
	if description, ok := updateFields["description"].(string); ok && description != "" {
		project.Description = description
	}
	project.UpdatedAt = s.tick()
	return project, nil
}

func (s *fakeStore) DeleteProject(_ context.Context, projectID string) error {
	delete(s.projects, projectID)
	return nil
}

// --- ProposalRepository ---

func (s *fakeStore) UpsertProposal(_ context.Context, projectID, freelancerID, coverLetter string, bidAmount float64) (*models.Proposal, error) {
	for _, proposal := range s.proposals {
		if proposal.ProjectID == projectID && proposal.FreelancerID == freelancerID {
			if proposal.Status == models.AcceptedProposal {
				return nil, models.NewErrorResponse(http.StatusConflict, "proposal has already been accepted and cannot be resubmitted")
			}
			proposal.CoverLetter = coverLetter
			proposal.BidAmount = bidAmount
			proposal.Status = models.PendingProposal
			return proposal, nil
		}
	}
	proposal := &models.Proposal{
		ID:           s.nextID("proposal"),
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		CoverLetter:  coverLetter,
		BidAmount:    bidAmount,
		Status:       models.PendingProposal,
		CreatedAt:    s.tick(),
	}
	s.proposals[proposal.ID] = proposal
	return proposal, nil
}

func (s *fakeStore) GetProposalByID(_ context.Context, proposalID string) (*models.Proposal, error) {
	return s.proposals[proposalID], nil
}

func (s *fakeStore) GetProjectProposals(_ context.Context, projectID string, limit, offset int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	for _, proposal := range s.proposals {
		if proposal.ProjectID == projectID {
			proposals = append(proposals, *proposal)
		}
	}
	return proposals, nil
}

func (s *fakeStore) GetUserProposals(_ context.Context, freelancerID string, limit, offset int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	for _, proposal := range s.proposals {
		if proposal.FreelancerID == freelancerID {
			proposals = append(proposals, *proposal)
		}
	}
	return proposals, nil
}

func (s *fakeStore) AcceptProposal(ctx context.Context, proposalID string) (*models.Contract, error) {
	proposal := s.proposals[proposalID]
	if proposal == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "proposal not found")
	}
	if proposal.Status == models.RejectedProposal {
		return nil, models.NewErrorResponse(http.StatusConflict, "proposal has already been rejected")
	}
	for _, sibling := range s.proposals {
		if sibling.ProjectID == proposal.ProjectID && sibling.ID != proposal.ID && sibling.Status == models.AcceptedProposal {
			return nil, models.NewErrorResponse(http.StatusConflict, "project already has an accepted proposal")
		}
	}
	project := s.projects[proposal.ProjectID]

	if proposal.Status == models.PendingProposal {
		proposal.Status = models.AcceptedProposal
		for _, sibling := range s.proposals {
			if sibling.ProjectID == proposal.ProjectID && sibling.ID != proposal.ID && sibling.Status == models.PendingProposal {
				sibling.Status = models.RejectedProposal
			}
		}
	}

	contract, _ := s.GetContractByProposal(ctx, proposalID)
	if contract == nil {
		contract = &models.Contract{
			ID:           s.nextID("contract"),
			ProposalID:   proposal.ID,
			ProjectID:    proposal.ProjectID,
			ClientID:     project.ClientID,
			FreelancerID: proposal.FreelancerID,
			Status:       models.ActiveContract,
			CreatedAt:    s.tick(),
		}
		s.contracts[contract.ID] = contract
		message := fmt.Sprintf("Your proposal for '%s' was ACCEPTED.", project.Title)
		if _, err := s.CreateNotification(ctx, proposal.FreelancerID, message); err != nil {
			return nil, err
		}
	}
	return contract, nil
}

func (s *fakeStore) RejectProposal(_ context.Context, proposalID string) (*models.Proposal, error) {
	proposal := s.proposals[proposalID]
	if proposal.Status == models.AcceptedProposal {
		return nil, models.NewErrorResponse(http.StatusConflict, "accepted proposal cannot be rejected")
	}
	proposal.Status = models.RejectedProposal
	return proposal, nil
}

// --- ContractRepository ---

func (s *fakeStore) GetContractByID(_ context.Context, contractID string) (*models.Contract, error) {
	return s.contracts[contractID], nil
}

func (s *fakeStore) GetContractByProposal(_ context.Context, proposalID string) (*models.Contract, error) {
	for _, contract := range s.contracts {
		if contract.ProposalID == proposalID {
			return contract, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetUserContracts(_ context.Context, userID string, limit, offset int) ([]models.Contract, error) {
	var contracts []models.Contract
	for _, contract := range s.contracts {
		if contract.ClientID == userID || contract.FreelancerID == userID {
			contracts = append(contracts, *contract)
		}
	}
	return contracts, nil
}

func (s *fakeStore) UpdateContractStatus(_ context.Context, contractID string, status models.ContractStatus) (*models.Contract, error) {
	contract := s.contracts[contractID]
	if contract.Status != models.ActiveContract {
		return nil, models.NewErrorResponse(http.StatusConflict, "contract is no longer active")
	}
	contract.Status = status
	return contract, nil
}

// --- NotificationRepository ---

func (s *fakeStore) CreateNotification(_ context.Context, userID, message string) (*models.Notification, error) {
	notification := &models.Notification{
		ID:        s.nextID("notification"),
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: s.tick(),
	}
	s.notifications[notification.ID] = notification
	return notification, nil
}

func (s *fakeStore) GetNotificationByID(_ context.Context, notificationID string) (*models.Notification, error) {
	return s.notifications[notificationID], nil
}

func (s *fakeStore) GetUserNotifications(_ context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification
	for _, notification := range s.notifications {
		if notification.UserID == userID {
			notifications = append(notifications, *notification)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *fakeStore) MarkRead(_ context.Context, notificationID string) error {
	s.notifications[notificationID].IsRead = true
	return nil
}

func (s *fakeStore) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, notification := range s.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) ClearAll(_ context.Context, userID string) error {
	for id, notification := range s.notifications {
		if notification.UserID == userID {
			delete(s.notifications, id)
		}
	}
	return nil
}

// --- MessageRepository ---

func (s *fakeStore) CreateMessage(_ context.Context, contractID, senderID, content string) (*models.Message, error) {
	message := &models.Message{
		ID:         s.nextID("message"),
		ContractID: contractID,
		SenderID:   senderID,
		Content:    content,
		CreatedAt:  s.tick(),
	}
	s.messages = append(s.messages, message)
	return message, nil
}

func (s *fakeStore) GetContractMessages(_ context.Context, contractID, userID string, limit, offset int) ([]models.Message, error) {
	clearedAt := s.cleared[userID+"/"+contractID]
	var chatMessages []models.Message
	for _, message := range s.messages {
		if message.ContractID == contractID && message.CreatedAt.After(clearedAt) {
			chatMessages = append(chatMessages, *message)
		}
	}
	return chatMessages, nil
}

func (s *fakeStore) ClearChat(_ context.Context, contractID, userID string) error {
	s.cleared[userID+"/"+contractID] = s.tick()
	return nil
}

// --- ReviewRepository ---

func (s *fakeStore) CreateReview(_ context.Context, projectID, reviewerID string, rating int, comment string) (*models.Review, error) {
	review := &models.Review{
		ID:         s.nextID("review"),
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  s.tick(),
	}
	s.reviews = append(s.reviews, review)
	return review, nil
}

func (s *fakeStore) GetProjectReviews(_ context.Context, projectID string, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	for _, review := range s.reviews {
		if review.ProjectID == projectID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, nil
}

// --- хелперы для тестов ---

func (s *fakeStore) addUser(username string, role models.ProfileRole) *models.User {
	user, _ := s.CreateUser(context.Background(), username, "hash")
	_ = s.CreateProfile(context.Background(), models.Profile{UserID: user.ID, Role: role, Skills: []string{}, Availability: true})
	return user
}

func (s *fakeStore) addProject(clientID, title string) *models.Project {
	project, _ := s.CreateProject(context.Background(), models.ProjectRequest{Title: title, Description: "test project"}, clientID, nil)
	return project
}

func (s *fakeStore) addProposal(projectID, freelancerID string) *models.Proposal {
	proposal, _ := s.UpsertProposal(context.Background(), projectID, freelancerID, "cover", 100)
	return proposal
}

// statusCode достает код из типизированной ошибки сервиса.
func statusCode(err error) int {
	if err == nil {
		return 0
	}
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		return errorResponse.StatusCode
	}
	return -1
}
