package models

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both auth endpoints
type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
