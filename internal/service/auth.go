package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/taskenda/taskenda-backend/internal/auth"
	"github.com/taskenda/taskenda-backend/internal/models"
	"github.com/taskenda/taskenda-backend/internal/repository"
)

var (
	// ErrDuplicateCredential means the username or email is already registered
	ErrDuplicateCredential = errors.New("username or email already registered")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so a caller cannot tell which part was wrong
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserStore is the persistence surface AuthService needs
type UserStore interface {
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
}

// AuthService handles registration and login
type AuthService struct {
	store  UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	log    *logrus.Logger
}

// NewAuthService initializes a new auth service
func NewAuthService(store UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenService, log *logrus.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new user with a hashed password and returns a token for
// it. The pre-checks on email and username are best effort; the store's
// unique constraint settles the race between concurrent registrations.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if _, err := s.store.FindUserByEmail(req.Email); err == nil {
		return nil, ErrDuplicateCredential
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.store.FindUserByUsername(req.Username); err == nil {
		return nil, ErrDuplicateCredential
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Role:         models.RoleUser,
	}

	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCredential
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return &models.AuthResponse{Token: token, User: user.View()}, nil
}

// Login authenticates a user and returns a fresh token
func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.store.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return &models.AuthResponse{Token: token, User: user.View()}, nil
}
