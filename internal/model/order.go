package model

import "time"

const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
)

// Order links a buyer, a seller and a product. The product and seller fields
// are denormalized snapshots taken at purchase time: later edits or deletions
// of the product or the seller's account must not change the historical
// record, so only Status is ever updated after creation.
type Order struct {
	ID           int64     `json:"id"`
	ProductID    *int64    `json:"product_id,omitempty"` // nil once the product is deleted
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	SellerID     *int      `json:"seller_id,omitempty"`
	SellerName   string    `json:"sellerName"`
	SellerEmail  string    `json:"sellerEmail"`
	SellerPhone  string    `json:"sellerPhone"`
	BuyerID      int       `json:"buyer_id"`
	BuyerName    string    `json:"buyerName"`
	BuyerEmail   string    `json:"buyerEmail"`
	BuyerPhone   string    `json:"buyerPhone"`
	BuyerAddress string    `json:"buyerAddress"`
	Quantity     int       `json:"quantity"`
	PaymentMode  string    `json:"paymentMode"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrderWithLive is an order row joined with whatever still resolves of its
// live product and seller references. Nil live fields mean the referenced
// record is gone and the order's own snapshot columns must be used instead.
type OrderWithLive struct {
	Order
	LiveProductName  *string
	LiveProductPrice *float64
	LiveSellerName   *string
	LiveSellerEmail  *string
	LiveSellerPhone  *string
}

// PlaceOrderRequest is the payload for POST /api/place-order
type PlaceOrderRequest struct {
	ProductID   int64  `json:"productId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Address     string `json:"address"`
	BuyerName   string `json:"buyerName"`
	BuyerEmail  string `json:"buyerEmail"`
	BuyerPhone  string `json:"buyerPhone"`
	PaymentMode string `json:"paymentMode"`
}

// UpdateOrderStatusRequest is the payload for PUT /api/orders/:id/status
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// BuyerOrderView is an order as shown on the buyer's order list. Fields are
// resolved from the live product/seller records where those still exist and
// fall back to the order's own snapshot columns otherwise.
type BuyerOrderView struct {
	ID           int64     `json:"_id"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	SellerName   string    `json:"sellerName"`
	SellerEmail  string    `json:"sellerEmail"`
	SellerPhone  string    `json:"sellerPhone"`
	Quantity     int       `json:"quantity"`
	PaymentMode  string    `json:"paymentMode"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SellerOrderView is an order as shown on the seller's received-orders list
type SellerOrderView struct {
	ID           int64     `json:"id"`
	ProductName  string    `json:"productName"`
	ProductPrice float64   `json:"productPrice"`
	BuyerName    string    `json:"buyerName"`
	BuyerEmail   string    `json:"buyerEmail"`
	BuyerPhone   string    `json:"buyerPhone"`
	BuyerAddress string    `json:"buyerAddress"`
	Quantity     int       `json:"quantity"`
	PaymentMode  string    `json:"paymentMode"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}
