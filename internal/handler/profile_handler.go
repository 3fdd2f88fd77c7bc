package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"greenfields/internal/model"
	"greenfields/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles farmer profile requests
type ProfileHandler struct {
	service service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req model.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and role are required"})
		return
	}

	profile, err := h.service.SaveProfile(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error saving profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved successfully", "profile": profile})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		log.Printf("Error fetching profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.service.ListFarmers(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching farmers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, farmers)
}

func (h *ProfileHandler) GetFarmer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid farmer ID"})
		return
	}

	farmer, err := h.service.GetFarmer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farmer not found"})
			return
		}
		log.Printf("Error fetching farmer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while fetching farmer"})
		return
	}
	c.JSON(http.StatusOK, farmer)
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(r *gin.Engine) {
	r.POST("/api/profile", h.SaveProfile)
	r.GET("/api/profile/:username", h.GetProfile)
	r.GET("/api/farmers", h.ListFarmers)
	r.GET("/api/farmers/:id", h.GetFarmer)
}
