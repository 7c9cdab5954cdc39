package domain

import (
	"strings"
	"time"
)

// StaffRole enumerates operator roles.
type StaffRole string

const (
	StaffRoleAdmin StaffRole = "admin"
	StaffRoleStaff StaffRole = "staff"
)

// Normalize lowercases and trims the role tag.
func (r StaffRole) Normalize() StaffRole {
	return StaffRole(strings.ToLower(strings.TrimSpace(string(r))))
}

// Valid reports whether the role is one of the known roles.
func (r StaffRole) Valid() bool {
	switch r.Normalize() {
	case StaffRoleAdmin, StaffRoleStaff:
		return true
	}
	return false
}

// StaffMember models an operator account.
type StaffMember struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StaffPatch carries a partial update; nil fields are left untouched.
type StaffPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *StaffRole
	Active   *bool
}

// Empty reports whether the patch changes nothing.
func (p StaffPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Role == nil && p.Active == nil
}
