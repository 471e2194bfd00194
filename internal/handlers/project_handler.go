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

// ProjectHandler - структура для обработки HTTP-запросов.
type ProjectHandler struct {
	Service *services.ProjectService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewProjectHandler создает новый экземпляр ProjectHandler.
func NewProjectHandler(service *services.ProjectService, logger *log.Logger, timeout time.Duration) *ProjectHandler {
	return &ProjectHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SearchProjects обрабатывает запросы для поиска проектов.
func (h *ProjectHandler) SearchProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	q := r.URL.Query().Get("q")
	skills := r.URL.Query()["skill"]
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	projects, err := h.Service.SearchProjects(ctx, q, skills, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to search projects")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(projects); err != nil {
		h.Logger.Println(err)
	}
}

// CreateProject обрабатывает запросы для создания проекта.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var projectReq models.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&projectReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.CreateProject(ctx, projectReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(project); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserProjects обрабатывает запросы для получения проектов заказчика.
func (h *ProjectHandler) GetUserProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	username := r.URL.Query().Get("username")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	projects, err := h.Service.GetUserProjects(ctx, username, limitStr, offsetStr)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve projects")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(projects); err != nil {
		h.Logger.Println(err)
	}
}

// GetProject обрабатывает запросы для получения проекта.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")

	project, err := h.Service.GetProject(ctx, projectId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch project")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(project); err != nil {
		h.Logger.Println(err)
	}
}

// EditProject обрабатывает запросы для изменения проекта.
func (h *ProjectHandler) EditProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")
	username := r.URL.Query().Get("username")

	var updateFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updateFields); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.Service.EditProject(ctx, projectId, username, updateFields)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to edit project")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(project); err != nil {
		h.Logger.Println(err)
	}
}

// DeleteProject обрабатывает запросы для удаления проекта.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	projectId := r.PathValue("projectId")
	username := r.URL.Query().Get("username")

	if err := h.Service.DeleteProject(ctx, projectId, username); err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
