package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenfields/internal/model"
	"greenfields/internal/repository"
	"greenfields/internal/utils"
)

var (
	ErrUserAlreadyExists   = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidRole         = errors.New("role must be buyer, seller or both")
	ErrWrongSecurityAnswer = errors.New("incorrect security answer")
)

// securityQuestions maps the stored question keys to their display text
var securityQuestions = map[string]string{
	"pet":    "What is your pet's name?",
	"school": "What was your first school name?",
	"mother": "What is your mother's maiden name?",
}

// AuthService provides signup, login and password recovery
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	SecurityQuestion(ctx context.Context, username string) (string, error)
	RecoverPassword(ctx context.Context, req model.RecoverPasswordRequest) error
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Signup creates a new account. The role is normalized at write time and is
// immutable afterwards.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if !model.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:         req.Username,
		PasswordHash:     hashedPassword,
		Role:             model.NormalizeRole(req.Role),
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		Email:            req.Email,
		Phone:            req.Phone,
		CreatedAt:        time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Login authenticates a user. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SecurityQuestion returns the display text of a user's recovery question
func (s *authService) SecurityQuestion(ctx context.Context, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if text, ok := securityQuestions[user.SecurityQuestion]; ok {
		return text, nil
	}
	return "Security question", nil
}

// RecoverPassword resets a password after checking the security answer
func (s *authService) RecoverPassword(ctx context.Context, req model.RecoverPasswordRequest) error {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.SecurityAnswer != req.SecurityAnswer {
		return ErrWrongSecurityAnswer
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}
	return nil
}
