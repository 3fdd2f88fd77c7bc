package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"greenfields/internal/middleware"
	"greenfields/internal/model"
	"greenfields/internal/service"
	"greenfields/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login, logout and password recovery
type AuthHandler struct {
	service    service.AuthService
	sessions   *session.Store
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, sessions *session.Store, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: s, sessions: sessions, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	_, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Username already exists"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			log.Printf("Error during signup: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signup successful!"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid username or password"})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login error"})
		return
	}

	token := h.sessions.Create(user.ID, user.Username, user.Role)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "role": model.NormalizeRole(user.Role)})
}

// Logout destroys the session server-side; destroying an absent session is
// fine, so repeated logouts behave the same.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		h.sessions.Destroy(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login.html")
}

// SessionUser reports the caller's session identity for the frontend
func (h *AuthHandler) SessionUser(c *gin.Context) {
	nameVal, exists := c.Get(middleware.AuthNameKey)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": true,
		"name":     nameVal,
		"role":     c.GetString(middleware.AuthRoleKey),
	})
}

func (h *AuthHandler) RecoverQuestion(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username is required"})
		return
	}

	question, err := h.service.SecurityQuestion(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "User not found"})
			return
		}
		log.Printf("Error fetching security question: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req model.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	if err := h.service.RecoverPassword(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "User not found"})
		case errors.Is(err, service.ErrWrongSecurityAnswer):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Incorrect security answer"})
		default:
			log.Printf("Password recovery error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successful!"})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/session-user", h.SessionUser)
	r.GET("/recover-question", h.RecoverQuestion)
	r.POST("/recover-password", h.RecoverPassword)
}
