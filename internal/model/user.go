package model

import "time"

// User represents an account as stored in the `users` table. MairieID is
// nil only for super administrators; the pairing is checked on write.
type User struct {
	ID           uint64     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Telephone    *string    `json:"telephone"`
	Role         Role       `json:"role"`
	MairieID     *uint64    `json:"mairieId"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	Avatar       *string    `json:"avatar"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	Mairie       *Mairie    `json:"mairie,omitempty"`
}

// IsSuperAdmin reports whether the user has the global role.
func (u *User) IsSuperAdmin() bool { return u.Role == RoleSuperAdmin }

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the token handed to the client is stored.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
