package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/export"
	"github.com/taskenda/taskenda-backend/internal/middleware"
	"github.com/taskenda/taskenda-backend/internal/models"
	"github.com/taskenda/taskenda-backend/internal/service"
)

// Handler exposes the HTTP surface of the service
type Handler struct {
	authSvc *service.AuthService
	taskSvc *service.TaskService
	log     *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(authSvc *service.AuthService, taskSvc *service.TaskService, log *logrus.Logger) *Handler {
	return &Handler{authSvc: authSvc, taskSvc: taskSvc, log: log}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := validateRegister(req); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	resp, err := h.authSvc.Register(req)
	if err != nil {
		// All auth failures render as 400, matching the public contract
		if errors.Is(err, service.ErrDuplicateCredential) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	resp, err := h.authSvc.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTasks handles GET /api/tasks and its finished/unfinished/important
// variants
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var (
		tasks []models.Task
		err   error
	)
	switch mux.Vars(r)["state"] {
	case "":
		tasks, err = h.taskSvc.List(identity.UserID)
	case "finished":
		tasks, err = h.taskSvc.ListFinished(identity.UserID)
	case "unfinished":
		tasks, err = h.taskSvc.ListUnfinished(identity.UserID)
	case "important":
		tasks, err = h.taskSvc.ListImportant(identity.UserID)
	default:
		writeError(w, http.StatusNotFound, "unknown task listing")
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ExportTasks handles GET /api/tasks/export, returning the caller's tasks as
// an XML document
func (h *Handler) ExportTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	tasks, err := h.taskSvc.List(identity.UserID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	out, err := export.TasksXML(identity.Username, tasks)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// CreateTask handles POST /api/tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var input models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskSvc.Create(identity.UserID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTask) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	taskID, ok := taskIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var input models.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.taskSvc.Update(identity.UserID, taskID, input)
	if err != nil {
		h.taskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ToggleTaskFinished handles PATCH /api/tasks/{id}/finished
func (h *Handler) ToggleTaskFinished(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	taskID, ok := taskIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.taskSvc.ToggleFinished(identity.UserID, taskID)
	if err != nil {
		h.taskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	taskID, ok := taskIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.taskSvc.Delete(identity.UserID, taskID); err != nil {
		h.taskError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) taskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTask):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.serverError(w, r, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func validateRegister(req models.RegisterRequest) (string, bool) {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return "username is required", false
	case strings.TrimSpace(req.Email) == "":
		return "email is required", false
	case req.Password == "":
		return "password is required", false
	}
	return "", true
}

func taskIDFrom(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message, Status: status})
}
