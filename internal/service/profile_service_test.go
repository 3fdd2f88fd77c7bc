package service

import (
	"context"
	"testing"

	"greenfields/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_SaveProfile_LinksAccount(t *testing.T) {
	profileRepo := newStubProfileRepo()
	userRepo := newStubUserRepo(&model.User{ID: 2, Username: "farmer1", Role: "seller"})
	svc := NewProfileService(profileRepo, userRepo)

	location := "Punjab"
	profile, err := svc.SaveProfile(context.Background(), model.SaveProfileRequest{
		Username: "farmer1",
		Role:     "farmer",
		Location: &location,
	})

	require.NoError(t, err)
	require.NotNil(t, profile.UserID)
	assert.Equal(t, 2, *profile.UserID)
	assert.NotNil(t, profileRepo.byUsername["farmer1"])
}

func TestProfileService_SaveProfile_NoAccount(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), newStubUserRepo())

	profile, err := svc.SaveProfile(context.Background(), model.SaveProfileRequest{
		Username: "ghost",
		Role:     "farmer",
	})

	require.NoError(t, err)
	assert.Nil(t, profile.UserID, "profiles may exist without a registered account")
}

func TestProfileService_SaveProfile_ReplacesExisting(t *testing.T) {
	profileRepo := newStubProfileRepo()
	svc := NewProfileService(profileRepo, newStubUserRepo())

	first, err := svc.SaveProfile(context.Background(), model.SaveProfileRequest{Username: "farmer1", Role: "farmer"})
	require.NoError(t, err)

	summary := "grows wheat"
	second, err := svc.SaveProfile(context.Background(), model.SaveProfileRequest{
		Username: "farmer1",
		Role:     "farmer",
		Summary:  &summary,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "resaving a username keeps one profile row")
	stored, err := svc.GetProfile(context.Background(), "farmer1")
	require.NoError(t, err)
	require.NotNil(t, stored.Summary)
	assert.Equal(t, "grows wheat", *stored.Summary)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), newStubUserRepo())

	_, err := svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_GetFarmer_NotFound(t *testing.T) {
	svc := NewProfileService(newStubProfileRepo(), newStubUserRepo())

	_, err := svc.GetFarmer(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileService_ListFarmers(t *testing.T) {
	profileRepo := newStubProfileRepo()
	profileRepo.farmers = []model.FarmerDirectoryEntry{
		{Profile: model.Profile{ID: 1, Username: "farmer1", Role: "farmer"}, Email: "f@x.com", Phone: "111"},
	}
	svc := NewProfileService(profileRepo, newStubUserRepo())

	entries, err := svc.ListFarmers(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "farmer1", entries[0].Username)
	assert.Equal(t, "f@x.com", entries[0].Email)
}
