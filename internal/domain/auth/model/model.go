package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	GoogleID     string
	IsGoogleUser bool
	Avatar       string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is what a successful login returns: a signed identity token and
// the user it was issued for.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
