package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greenfields/internal/model"
	"greenfields/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService orchestrates order placement and lookup
type OrderService interface {
	PlaceOrder(ctx context.Context, buyerID int, req model.PlaceOrderRequest) (*model.Order, error)
	BuyerOrders(ctx context.Context, buyerID int) ([]model.BuyerOrderView, error)
	SellerOrders(ctx context.Context, sellerID int) ([]model.SellerOrderView, error)
	UpdateStatus(ctx context.Context, orderID int64, callerID int, status string) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) OrderService {
	return &orderService{orderRepo: orderRepo, productRepo: productRepo, userRepo: userRepo}
}

// PlaceOrder looks up the product, snapshots its facts and the seller's
// contact at this instant, then persists the order and the clamped stock
// decrement in one transaction. Later edits to the product or the seller's
// account do not retroactively change the order.
func (s *orderService) PlaceOrder(ctx context.Context, buyerID int, req model.PlaceOrderRequest) (*model.Order, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for order: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	order := &model.Order{
		ProductID:    &product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		SellerName:   "Unknown",
		SellerEmail:  "Not Provided",
		SellerPhone:  "Not Provided",
		BuyerID:      buyerID,
		BuyerName:    req.BuyerName,
		BuyerEmail:   req.BuyerEmail,
		BuyerPhone:   req.BuyerPhone,
		BuyerAddress: req.Address,
		Quantity:     req.Quantity,
		PaymentMode:  req.PaymentMode,
		Status:       model.OrderStatusPending,
		CreatedAt:    time.Now(),
	}

	seller, err := s.userRepo.FindByID(ctx, product.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find seller for order: %w", err)
	}
	if seller != nil {
		order.SellerID = &seller.ID
		order.SellerName = seller.Username
		if seller.Email != "" {
			order.SellerEmail = seller.Email
		}
		if seller.Phone != "" {
			order.SellerPhone = seller.Phone
		}
	}

	if err := s.orderRepo.CreateWithStockDecrement(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return order, nil
}

// BuyerOrders returns a buyer's orders, newest first. Product and seller
// fields are resolved from the live records where those still exist and fall
// back to the order's snapshot columns otherwise; this fallback is what keeps
// orders readable after the product or seller is gone.
func (s *orderService) BuyerOrders(ctx context.Context, buyerID int) ([]model.BuyerOrderView, error) {
	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer orders: %w", err)
	}

	views := make([]model.BuyerOrderView, 0, len(orders))
	for _, o := range orders {
		view := model.BuyerOrderView{
			ID:           o.ID,
			ProductName:  fallback(o.LiveProductName, o.ProductName, "Unnamed Product"),
			ProductPrice: o.ProductPrice,
			SellerName:   fallback(o.LiveSellerName, o.SellerName, "Unknown"),
			SellerEmail:  fallback(o.LiveSellerEmail, o.SellerEmail, "Not Provided"),
			SellerPhone:  fallback(o.LiveSellerPhone, o.SellerPhone, "Not Provided"),
			Quantity:     o.Quantity,
			PaymentMode:  o.PaymentMode,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		}
		if o.LiveProductPrice != nil {
			view.ProductPrice = *o.LiveProductPrice
		}
		if view.Status == "" {
			view.Status = model.OrderStatusConfirmed
		}
		views = append(views, view)
	}
	return views, nil
}

// fallback picks the live value, then the snapshot, then the placeholder
func fallback(live *string, snapshot, placeholder string) string {
	if live != nil && *live != "" {
		return *live
	}
	if snapshot != "" {
		return snapshot
	}
	return placeholder
}

// SellerOrders returns the orders received by a seller, newest first.
// The role gate is enforced at the route level.
func (s *orderService) SellerOrders(ctx context.Context, sellerID int) ([]model.SellerOrderView, error) {
	orders, err := s.orderRepo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller orders: %w", err)
	}

	views := make([]model.SellerOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, model.SellerOrderView{
			ID:           o.ID,
			ProductName:  o.ProductName,
			ProductPrice: o.ProductPrice,
			BuyerName:    o.BuyerName,
			BuyerEmail:   o.BuyerEmail,
			BuyerPhone:   o.BuyerPhone,
			BuyerAddress: o.BuyerAddress,
			Quantity:     o.Quantity,
			PaymentMode:  o.PaymentMode,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	return views, nil
}

// UpdateStatus sets an order's status, defaulting to Confirmed when empty.
// Only the order's seller may change it.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, callerID int, status string) (*model.Order, error) {
	if status == "" {
		status = model.OrderStatusConfirmed
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order for status update: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.SellerID == nil || *order.SellerID != callerID {
		return nil, ErrForbidden
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}
