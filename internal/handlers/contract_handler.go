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

// ContractHandler - структура для обработки HTTP-запросов.
type ContractHandler struct {
	Service *services.ContractService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewContractHandler создает новый экземпляр ContractHandler.
func NewContractHandler(service *services.ContractService, logger *log.Logger, timeout time.Duration) *ContractHandler {
	return &ContractHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetUserContracts обрабатывает запросы для получения контрактов пользователя.
func (h *ContractHandler) GetUserContracts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	contracts, err := h.Service.GetUserContracts(ctx, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve contracts")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contracts); err != nil {
		h.Logger.Println(err)
	}
}

// GetContract обрабатывает запросы для получения контракта.
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	username := r.URL.Query().Get("username")

	contract, err := h.Service.GetContract(ctx, contractId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contract); err != nil {
		h.Logger.Println(err)
	}
}

// CompleteContract обрабатывает запросы для завершения контракта.
func (h *ContractHandler) CompleteContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	username := r.URL.Query().Get("username")

	contract, err := h.Service.CompleteContract(ctx, contractId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to complete contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contract); err != nil {
		h.Logger.Println(err)
	}
}

// CancelContract обрабатывает запросы для расторжения контракта.
func (h *ContractHandler) CancelContract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	username := r.URL.Query().Get("username")

	contract, err := h.Service.CancelContract(ctx, contractId, username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to cancel contract")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(contract); err != nil {
		h.Logger.Println(err)
	}
}
