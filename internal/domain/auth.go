package domain

import "time"

// Role identifies what a token holder may do.
type Role string

// RoleAdmin may read and answer contacts.
const RoleAdmin Role = "admin"

// Token is the metadata of an issued admin token.
type Token struct {
	ID        string
	SubjectID string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}
