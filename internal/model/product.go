package model

import (
	"strings"
	"time"
	"unicode"
)

const DefaultCategory = "Others"

// Product represents a listing owned by a seller
type Product struct {
	ID           int64     `json:"id"`
	SellerID     int       `json:"seller_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	Phone        string    `json:"phone"`
	ContactEmail string    `json:"contactEmail"`
	ImagePath    *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProductListing is the public view of a product, with the seller's
// display name resolved from the owning user where possible.
type ProductListing struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	SellerName  string  `json:"sellerName"`
	SellerEmail string  `json:"sellerEmail"`
	SellerPhone string  `json:"sellerPhone"`
}

// ProductWithSeller is a product row joined with its owner's username.
// The username is a pointer because the owning account may be gone.
type ProductWithSeller struct {
	Product
	SellerUsername *string
}

// AddProductForm carries the multipart form fields of POST /add-product.
// The image file is handled separately by the handler.
type AddProductForm struct {
	Name         string  `form:"name"`
	Price        float64 `form:"price"`
	Quantity     int     `form:"quantity"`
	Description  string  `form:"description"`
	Category     string  `form:"category"`
	Phone        string  `form:"phone"`
	ContactEmail string  `form:"contactEmail"`
}

// NormalizeCategory capitalizes a category name, defaulting to "Others"
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	runes := []rune(strings.ToLower(category))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
