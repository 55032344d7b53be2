// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Role represents an account's permission level in the system.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleStaff    Role = "Staff"
	RoleLecturer Role = "Lecturer"
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleStaff, RoleLecturer}

// Valid reports whether r is one of the assignable roles. Matching is exact.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Account is a system account that can sign in and author articles.
type Account struct {
	ID           int64      `json:"accountId"`
	Name         string     `json:"accountName"`
	Email        string     `json:"accountEmail"`
	Role         Role       `json:"accountRole"`
	PasswordHash string     `json:"-"` // Never serialize the hash
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
	IsDeleted    bool       `json:"-"`
}

// IsAdmin returns true if the account has the Admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
