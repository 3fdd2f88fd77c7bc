package service

import (
	"context"
	"testing"

	"greenfields/internal/model"
	"greenfields/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest() model.SignupRequest {
	return model.SignupRequest{
		Username:         "farmer1",
		Password:         "secret123",
		Role:             "Seller",
		SecurityQuestion: "pet",
		SecurityAnswer:   "rex",
	}
}

func TestAuthService_Signup(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Signup(context.Background(), signupRequest())

	require.NoError(t, err)
	assert.Equal(t, "seller", user.Role, "role should be normalized at write time")
	assert.True(t, utils.CheckPasswordHash("secret123", user.PasswordHash))
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), signupRequest())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, repo.created, 1, "no second user must be created")
}

func TestAuthService_Signup_InvalidRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo())

	req := signupRequest()
	req.Role = "admin"
	_, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthService_LoginAfterSignup(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "farmer1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "seller", user.Role, "login returns the stored role")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "farmer1", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo())

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and wrong password must be indistinguishable")
}

func TestAuthService_SecurityQuestion(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	question, err := svc.SecurityQuestion(context.Background(), "farmer1")
	require.NoError(t, err)
	assert.Equal(t, "What is your pet's name?", question)

	_, err = svc.SecurityQuestion(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RecoverPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), signupRequest())
	require.NoError(t, err)

	err = svc.RecoverPassword(context.Background(), model.RecoverPasswordRequest{
		Username: "farmer1", SecurityAnswer: "wrong", NewPassword: "newpass123",
	})
	assert.ErrorIs(t, err, ErrWrongSecurityAnswer)

	err = svc.RecoverPassword(context.Background(), model.RecoverPasswordRequest{
		Username: "farmer1", SecurityAnswer: "rex", NewPassword: "newpass123",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("newpass123", repo.newHash))
}
