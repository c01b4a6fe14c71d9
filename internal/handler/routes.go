package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the route table. authMW guards everything under /api except
// the auth endpoints themselves.
func (h *Handler) Routes(authMW func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/api/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(authMW)
	authRouter.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks/export", h.ExportTasks).Methods("GET")
	authRouter.HandleFunc("/tasks/{state:finished|unfinished|important}", h.ListTasks).Methods("GET")
	authRouter.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.UpdateTask).Methods("PUT")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}/finished", h.ToggleTaskFinished).Methods("PATCH")
	authRouter.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods("DELETE")
	return r
}
