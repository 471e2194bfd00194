package router

import (
	"net/http"

	"github.com/talentlink/marketplace-service/internal/handlers"
)

func InitRoutes(
	userHandler *handlers.UserHandler,
	projectHandler *handlers.ProjectHandler,
	proposalHandler *handlers.ProposalHandler,
	contractHandler *handlers.ContractHandler,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
	reviewHandler *handlers.ReviewHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/auth/register", userHandler.Register)
	mux.HandleFunc("POST /api/auth/login", userHandler.Login)

	mux.HandleFunc("GET /api/projects", projectHandler.SearchProjects)
	mux.HandleFunc("POST /api/projects/new", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/my", projectHandler.GetUserProjects)
	mux.HandleFunc("GET /api/projects/{projectId}", projectHandler.GetProject)
	mux.HandleFunc("PATCH /api/projects/{projectId}/edit", projectHandler.EditProject)
	mux.HandleFunc("DELETE /api/projects/{projectId}", projectHandler.DeleteProject)
	mux.HandleFunc("GET /api/projects/{projectId}/proposals", proposalHandler.GetProjectProposals)
	mux.HandleFunc("GET /api/projects/{projectId}/reviews", reviewHandler.GetProjectReviews)
	mux.HandleFunc("POST /api/projects/{projectId}/reviews", reviewHandler.SubmitReview)

	mux.HandleFunc("POST /api/proposals/new", proposalHandler.SubmitProposal)
	mux.HandleFunc("GET /api/proposals/my", proposalHandler.GetUserProposals)
	mux.HandleFunc("POST /api/proposals/{proposalId}/accept", proposalHandler.AcceptProposal)
	mux.HandleFunc("POST /api/proposals/{proposalId}/reject", proposalHandler.RejectProposal)

	mux.HandleFunc("GET /api/contracts/my", contractHandler.GetUserContracts)
	mux.HandleFunc("GET /api/contracts/{contractId}", contractHandler.GetContract)
	mux.HandleFunc("POST /api/contracts/{contractId}/complete", contractHandler.CompleteContract)
	mux.HandleFunc("POST /api/contracts/{contractId}/cancel", contractHandler.CancelContract)
	mux.HandleFunc("GET /api/contracts/{contractId}/messages", messageHandler.GetContractMessages)
	mux.HandleFunc("POST /api/contracts/{contractId}/messages", messageHandler.SendMessage)
	mux.HandleFunc("POST /api/contracts/{contractId}/messages/clear", messageHandler.ClearChat)

	mux.HandleFunc("GET /api/notifications", notificationHandler.GetUserNotifications)
	mux.HandleFunc("POST /api/notifications/clear", notificationHandler.ClearNotifications)
	mux.HandleFunc("POST /api/notifications/{notificationId}/read", notificationHandler.MarkRead)

	return mux
}
