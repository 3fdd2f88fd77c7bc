package model

import "time"

// Profile is a farmer's public profile page, keyed by username
type Profile struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	Username  string    `json:"username"`
	Name      *string   `json:"name,omitempty"`
	Role      string    `json:"role"`
	Location  *string   `json:"location,omitempty"`
	Summary   *string   `json:"summary,omitempty"`
	Products  *string   `json:"products,omitempty"`
	FPO       *string   `json:"fpo,omitempty"`
	Cert      *string   `json:"cert,omitempty"`
	Payment   *string   `json:"payment,omitempty"`
	Languages *string   `json:"languages,omitempty"`
	Contact   *string   `json:"contact,omitempty"`
	Image     *string   `json:"image,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveProfileRequest is the payload for POST /api/profile
type SaveProfileRequest struct {
	Username  string  `json:"username" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Name      *string `json:"name"`
	Location  *string `json:"location"`
	Summary   *string `json:"summary"`
	Products  *string `json:"products"`
	FPO       *string `json:"fpo"`
	Cert      *string `json:"cert"`
	Payment   *string `json:"payment"`
	Languages *string `json:"languages"`
	Contact   *string `json:"contact"`
	Image     *string `json:"image"`
}

// FarmerDirectoryEntry is a profile merged with the account's contact fields
// for the public farmer directory.
type FarmerDirectoryEntry struct {
	Profile
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
