package models

import "github.com/google/uuid"

// Role is the access role attached to every user. Admin capability is a role
// claim on the identity record, never a hardcoded account.
type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`
}

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)
