package handler

import (
	"errors"
	"log"
	"net/http"

	"greenfields/internal/service"

	"github.com/gin-gonic/gin"
)

// AdvisorHandler exposes the two crop-recommendation proxies
type AdvisorHandler struct {
	recommender *service.CropRecommender
	advice      *service.AdviceClient
}

// NewAdvisorHandler creates a new AdvisorHandler
func NewAdvisorHandler(recommender *service.CropRecommender, advice *service.AdviceClient) *AdvisorHandler {
	return &AdvisorHandler{recommender: recommender, advice: advice}
}

// RecommendCrop forwards to the ML model service
func (h *AdvisorHandler) RecommendCrop(c *gin.Context) {
	var query service.CropQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	crop, err := h.recommender.Recommend(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrAdvisorUnavailable) {
			log.Printf("Crop model unreachable: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Error connecting to ML model"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recommended_crop": crop})
}

// RecommendCrops asks the generative API for free-form advice
func (h *AdvisorHandler) RecommendCrops(c *gin.Context) {
	var query service.AdviceQuery
	if err := c.ShouldBindJSON(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
		return
	}

	text, err := h.advice.Advise(c.Request.Context(), query)
	if err != nil {
		log.Printf("Advice recommendation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch crop recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": text})
}

// RegisterAdvisorRoutes registers advisor routes
func (h *AdvisorHandler) RegisterAdvisorRoutes(r *gin.Engine) {
	r.POST("/api/recommend-crop", h.RecommendCrop)
	r.POST("/api/recommend-crops", h.RecommendCrops)
}
