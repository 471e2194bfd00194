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

// MessageHandler - структура для обработки HTTP-запросов чата контракта.
type MessageHandler struct {
	Service *services.MessageService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewMessageHandler создает новый экземпляр MessageHandler.
func NewMessageHandler(service *services.MessageService, logger *log.Logger, timeout time.Duration) *MessageHandler {
	return &MessageHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SendMessage обрабатывает запросы для отправки сообщения в чат контракта.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")

	var messageReq models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&messageReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.Service.SendMessage(ctx, contractId, messageReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(message); err != nil {
		h.Logger.Println(err)
	}
}

// GetContractMessages обрабатывает запросы для получения сообщений чата контракта.
func (h *MessageHandler) GetContractMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	chatMessages, err := h.Service.GetContractMessages(ctx, contractId, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve messages")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(chatMessages); err != nil {
		h.Logger.Println(err)
	}
}

// ClearChat обрабатывает запросы для очистки чата контракта для пользователя.
func (h *MessageHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	contractId := r.PathValue("contractId")
	username := r.URL.Query().Get("username")

	if err := h.Service.ClearChat(ctx, contractId, username); err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to clear chat")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
