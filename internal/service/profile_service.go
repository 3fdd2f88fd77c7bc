package service

import (
	"context"
	"errors"
	"fmt"

	"greenfields/internal/model"
	"greenfields/internal/repository"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService manages farmer profile pages
type ProfileService interface {
	SaveProfile(ctx context.Context, req model.SaveProfileRequest) (*model.Profile, error)
	GetProfile(ctx context.Context, username string) (*model.Profile, error)
	GetFarmer(ctx context.Context, id int) (*model.Profile, error)
	ListFarmers(ctx context.Context) ([]model.FarmerDirectoryEntry, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{profileRepo: profileRepo, userRepo: userRepo}
}

// SaveProfile creates or replaces the profile for a username. When an account
// with that username exists the profile is linked to it.
func (s *profileService) SaveProfile(ctx context.Context, req model.SaveProfileRequest) (*model.Profile, error) {
	profile := &model.Profile{
		Username:  req.Username,
		Name:      req.Name,
		Role:      req.Role,
		Location:  req.Location,
		Summary:   req.Summary,
		Products:  req.Products,
		FPO:       req.FPO,
		Cert:      req.Cert,
		Payment:   req.Payment,
		Languages: req.Languages,
		Contact:   req.Contact,
		Image:     req.Image,
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account for profile: %w", err)
	}
	if user != nil {
		profile.UserID = &user.ID
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// GetProfile fetches a profile by username
func (s *profileService) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetFarmer fetches a single farmer profile by its ID
func (s *profileService) GetFarmer(ctx context.Context, id int) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get farmer profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// ListFarmers lists all seller profiles merged with account contact fields
func (s *profileService) ListFarmers(ctx context.Context) ([]model.FarmerDirectoryEntry, error) {
	entries, err := s.profileRepo.FindFarmers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmers: %w", err)
	}
	return entries, nil
}
