package repository

import (
	"context"
	"errors"
	"fmt"

	"greenfields/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProfileRepository defines operations for farmer profiles
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)
	FindByID(ctx context.Context, id int) (*model.Profile, error)
	FindFarmers(ctx context.Context) ([]model.FarmerDirectoryEntry, error)
}

type profileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, username, name, role, location, summary, products, fpo, cert, payment, languages, contact, image, updated_at`

func scanProfile(row pgx.Row, p *model.Profile) error {
	return row.Scan(
		&p.ID, &p.UserID, &p.Username, &p.Name, &p.Role, &p.Location, &p.Summary,
		&p.Products, &p.FPO, &p.Cert, &p.Payment, &p.Languages, &p.Contact, &p.Image, &p.UpdatedAt,
	)
}

// Upsert creates or replaces the profile for a username
func (r *profileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	sql := `INSERT INTO profiles (user_id, username, name, role, location, summary, products, fpo, cert, payment, languages, contact, image, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
            ON CONFLICT (username) DO UPDATE SET
                name = EXCLUDED.name, role = EXCLUDED.role, location = EXCLUDED.location,
                summary = EXCLUDED.summary, products = EXCLUDED.products, fpo = EXCLUDED.fpo,
                cert = EXCLUDED.cert, payment = EXCLUDED.payment, languages = EXCLUDED.languages,
                contact = EXCLUDED.contact, image = EXCLUDED.image, updated_at = NOW()
            RETURNING id, updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.UserID, p.Username, p.Name, p.Role, p.Location, p.Summary,
		p.Products, p.FPO, p.Cert, p.Payment, p.Languages, p.Contact, p.Image,
	).Scan(&p.ID, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// FindByUsername retrieves a profile by username
func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	p := &model.Profile{}
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	if err := scanProfile(r.db.QueryRow(ctx, sql, username), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by username: %w", err)
	}
	return p, nil
}

// FindByID retrieves a profile by its ID
func (r *profileRepository) FindByID(ctx context.Context, id int) (*model.Profile, error) {
	p := &model.Profile{}
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if err := scanProfile(r.db.QueryRow(ctx, sql, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}
	return p, nil
}

// FindFarmers lists seller profiles merged with the account's contact fields
func (r *profileRepository) FindFarmers(ctx context.Context) ([]model.FarmerDirectoryEntry, error) {
	sql := `SELECT p.id, p.user_id, p.username, p.name, p.role, p.location, p.summary, p.products,
                   p.fpo, p.cert, p.payment, p.languages, p.contact, p.image, p.updated_at,
                   COALESCE(u.email, ''), COALESCE(u.phone, '')
            FROM profiles p
            LEFT JOIN users u ON u.username = p.username
            WHERE LOWER(p.role) IN ('farmer', 'seller', 'both')
            ORDER BY p.updated_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query farmer profiles: %w", err)
	}
	defer rows.Close()

	var entries []model.FarmerDirectoryEntry
	for rows.Next() {
		var e model.FarmerDirectoryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Username, &e.Name, &e.Role, &e.Location, &e.Summary,
			&e.Products, &e.FPO, &e.Cert, &e.Payment, &e.Languages, &e.Contact, &e.Image, &e.UpdatedAt,
			&e.Email, &e.Phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan farmer profile row: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating farmer profile rows: %w", err)
	}
	return entries, nil
}
