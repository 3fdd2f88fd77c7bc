package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"greenfields/internal/middleware"
	"greenfields/internal/model"
	"greenfields/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (int, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var form model.AddProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid form data: " + err.Error()})
		return
	}

	// Image is optional; listings without one are allowed
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	_, err = h.service.AddProduct(c.Request.Context(), userID, form, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrNegativeValues),
			errors.Is(err, service.ErrInvalidFileFormat), errors.Is(err, service.ErrFileSizeExceeded):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			log.Printf("Error saving product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error saving product"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added successfully!"})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	listings, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *ProductHandler) MyProducts(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	products, err := h.service.MyProducts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error fetching seller products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch farmer products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	err = h.service.DeleteProduct(c.Request.Context(), productID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the listing owner can delete it"})
		default:
			log.Printf("Error deleting product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while deleting product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// RegisterProductRoutes registers product routes
func (h *ProductHandler) RegisterProductRoutes(r *gin.Engine, authMW gin.HandlerFunc) {
	r.GET("/products", h.ListProducts)
	r.POST("/add-product", authMW, h.AddProduct)
	r.GET("/my-products", authMW, h.MyProducts)
	r.DELETE("/products/:id", authMW, h.DeleteProduct)
}
