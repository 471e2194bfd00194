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

// ReviewHandler - структура для обработки HTTP-запросов.
type ReviewHandler struct {
	Service *services.ReviewService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewReviewHandler создает новый экземпляр ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger *log.Logger, timeout time.Duration) *ReviewHandler {
	return &ReviewHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SubmitReview обрабатывает запросы для отправки отзыва по проекту.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")

	var reviewReq models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.Service.SubmitReview(ctx, projectId, reviewReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit review")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(review); err != nil {
		h.Logger.Println(err)
	}
}

// GetProjectReviews обрабатывает запросы для получения отзывов по проекту.
func (h *ReviewHandler) GetProjectReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	reviews, err := h.Service.GetProjectReviews(ctx, projectId, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve reviews")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(reviews); err != nil {
		h.Logger.Println(err)
	}
}
