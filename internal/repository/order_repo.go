package repository

import (
	"context"
	"errors"
	"fmt"

	"greenfields/internal/model"

	"github.com/jackc/pgx/v5"
)

// OrderRepository defines operations for the order ledger
type OrderRepository interface {
	// CreateWithStockDecrement persists a new order and decrements the
	// product's available quantity (clamped at zero) in one transaction,
	// so a failure of either write leaves neither applied.
	CreateWithStockDecrement(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id int64) (*model.Order, error)
	FindByBuyer(ctx context.Context, buyerID int) ([]model.OrderWithLive, error)
	FindBySeller(ctx context.Context, sellerID int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, product_id, product_name, product_price, seller_id, seller_name, seller_email, seller_phone,
            buyer_id, buyer_name, buyer_email, buyer_phone, buyer_address, quantity, payment_mode, status, created_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.ProductID, &o.ProductName, &o.ProductPrice,
		&o.SellerID, &o.SellerName, &o.SellerEmail, &o.SellerPhone,
		&o.BuyerID, &o.BuyerName, &o.BuyerEmail, &o.BuyerPhone, &o.BuyerAddress,
		&o.Quantity, &o.PaymentMode, &o.Status, &o.CreatedAt,
	)
}

// CreateWithStockDecrement inserts the order and decrements stock atomically
func (r *orderRepository) CreateWithStockDecrement(ctx context.Context, o *model.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertSQL := `INSERT INTO orders (product_id, product_name, product_price, seller_id, seller_name, seller_email, seller_phone,
            buyer_id, buyer_name, buyer_email, buyer_phone, buyer_address, quantity, payment_mode, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id, created_at`
	err = tx.QueryRow(ctx, insertSQL,
		o.ProductID, o.ProductName, o.ProductPrice,
		o.SellerID, o.SellerName, o.SellerEmail, o.SellerPhone,
		o.BuyerID, o.BuyerName, o.BuyerEmail, o.BuyerPhone, o.BuyerAddress,
		o.Quantity, o.PaymentMode, o.Status, o.CreatedAt,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	// GREATEST clamps the remaining stock at zero
	decrementSQL := `UPDATE products SET quantity = GREATEST(quantity - $1, 0) WHERE id = $2`
	if _, err := tx.Exec(ctx, decrementSQL, o.Quantity, o.ProductID); err != nil {
		return fmt.Errorf("failed to decrement product quantity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return nil
}

// FindByID retrieves an order by its ID
func (r *orderRepository) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	o := &model.Order{}
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := scanOrder(r.db.QueryRow(ctx, sql, id), o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

// FindByBuyer retrieves a buyer's orders, newest first, joined with whatever
// still resolves of the live product and seller records.
func (r *orderRepository) FindByBuyer(ctx context.Context, buyerID int) ([]model.OrderWithLive, error) {
	sql := `SELECT o.id, o.product_id, o.product_name, o.product_price, o.seller_id, o.seller_name, o.seller_email, o.seller_phone,
                   o.buyer_id, o.buyer_name, o.buyer_email, o.buyer_phone, o.buyer_address, o.quantity, o.payment_mode, o.status, o.created_at,
                   p.name, p.price, u.username, u.email, u.phone
            FROM orders o
            LEFT JOIN products p ON o.product_id = p.id
            LEFT JOIN users u ON o.seller_id = u.id
            WHERE o.buyer_id = $1
            ORDER BY o.created_at DESC`
	rows, err := r.db.Query(ctx, sql, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by buyer: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderWithLive
	for rows.Next() {
		var o model.OrderWithLive
		if err := rows.Scan(
			&o.ID, &o.ProductID, &o.ProductName, &o.ProductPrice,
			&o.SellerID, &o.SellerName, &o.SellerEmail, &o.SellerPhone,
			&o.BuyerID, &o.BuyerName, &o.BuyerEmail, &o.BuyerPhone, &o.BuyerAddress,
			&o.Quantity, &o.PaymentMode, &o.Status, &o.CreatedAt,
			&o.LiveProductName, &o.LiveProductPrice,
			&o.LiveSellerName, &o.LiveSellerEmail, &o.LiveSellerPhone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan buyer order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating buyer order rows: %w", err)
	}
	return orders, nil
}

// FindBySeller retrieves the orders received by a seller, newest first
func (r *orderRepository) FindBySeller(ctx context.Context, sellerID int) ([]model.Order, error) {
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE seller_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by seller: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan seller order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller order rows: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status and returns the updated row.
// Snapshot columns are never touched after creation.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	o := &model.Order{}
	sql := `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns
	if err := scanOrder(r.db.QueryRow(ctx, sql, status, id), o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return o, nil
}
