package repository

import (
	"context"
	"errors"
	"fmt"

	"greenfields/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product listings
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAllWithSellers(ctx context.Context) ([]model.ProductWithSeller, error)
	FindBySeller(ctx context.Context, sellerID int) ([]model.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product listing
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (seller_id, name, price, quantity, description, category, phone, contact_email, image_path, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql,
		p.SellerID, p.Name, p.Price, p.Quantity, p.Description,
		p.Category, p.Phone, p.ContactEmail, p.ImagePath, p.CreatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, seller_id, name, price, quantity, description, category, phone, contact_email, image_path, created_at
            FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Quantity, &p.Description,
		&p.Category, &p.Phone, &p.ContactEmail, &p.ImagePath, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindAllWithSellers retrieves every listing joined with the owner's username
func (r *productRepository) FindAllWithSellers(ctx context.Context) ([]model.ProductWithSeller, error) {
	sql := `SELECT p.id, p.seller_id, p.name, p.price, p.quantity, p.description, p.category,
                   p.phone, p.contact_email, p.image_path, p.created_at, u.username
            FROM products p
            LEFT JOIN users u ON p.seller_id = u.id
            ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductWithSeller
	for rows.Next() {
		var p model.ProductWithSeller
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Quantity, &p.Description,
			&p.Category, &p.Phone, &p.ContactEmail, &p.ImagePath, &p.CreatedAt,
			&p.SellerUsername,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindBySeller retrieves a seller's own listings, newest first
func (r *productRepository) FindBySeller(ctx context.Context, sellerID int) ([]model.Product, error) {
	sql := `SELECT id, seller_id, name, price, quantity, description, category, phone, contact_email, image_path, created_at
            FROM products WHERE seller_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by seller: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Price, &p.Quantity, &p.Description,
			&p.Category, &p.Phone, &p.ContactEmail, &p.ImagePath, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// Delete removes a product. Returns false when no such product exists.
// Orders referencing it keep their snapshot columns; the FK is SET NULL.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
