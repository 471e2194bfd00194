package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/talentlink/marketplace-service/internal/models"
	"github.com/talentlink/marketplace-service/internal/services"
	"github.com/talentlink/marketplace-service/internal/utils"
)

// ProposalHandler - структура для обработки HTTP-запросов.
type ProposalHandler struct {
	Service *services.ProposalService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewProposalHandler создает новый экземпляр ProposalHandler.
func NewProposalHandler(service *services.ProposalService, logger *log.Logger, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SubmitProposal обрабатывает запросы для подачи отклика.
func (h *ProposalHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var proposalReq models.ProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&proposalReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.Service.SubmitProposal(ctx, proposalReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit proposal")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(proposal); err != nil {
		h.Logger.Println(err)
	}
}

// AcceptProposal обрабатывает запросы для принятия отклика.
func (h *ProposalHandler) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")

	contract, err := h.Service.AcceptProposal(ctx, proposalId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to accept proposal")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contract); err != nil {
		h.Logger.Println(err)
	}
}

// RejectProposal обрабатывает запросы для отклонения отклика.
func (h *ProposalHandler) RejectProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	proposalId := r.PathValue("proposalId")
	username := r.URL.Query().Get("username")

	proposal, err := h.Service.RejectProposal(ctx, proposalId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to reject proposal")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(proposal); err != nil {
		h.Logger.Println(err)
	}
}

// GetProjectProposals обрабатывает запросы для получения откликов на проект.
func (h *ProposalHandler) GetProjectProposals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")
	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	proposals, err := h.Service.GetProjectProposals(ctx, projectId, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve proposals")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(proposals); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserProposals обрабатывает запросы для получения откликов исполнителя.
func (h *ProposalHandler) GetUserProposals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	proposals, err := h.Service.GetUserProposals(ctx, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve proposals")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(proposals); err != nil {
		h.Logger.Println(err)
	}
}
