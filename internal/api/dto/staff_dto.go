package dto

import (
	"strings"
	"time"

	"github.com/staffdesk/staff-service/internal/domain"
)

// SignupRequest creates a staff account.
type SignupRequest struct {
	Name     string           `json:"name" validate:"required,min=2,max=100"`
	Email    string           `json:"email" validate:"required,email,max=254"`
	Password string           `json:"password" validate:"required,min=8,max=72"`
	Role     domain.StaffRole `json:"role" validate:"omitempty,oneof=admin staff"`
}

// Normalize trims free-text fields and lower-cases the role so validation sees stored values.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = r.Role.Normalize()
}

// UpdateStaffRequest is a partial update; omitted fields are left unchanged.
type UpdateStaffRequest struct {
	Name     *string           `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string           `json:"email" validate:"omitempty,email,max=254"`
	Password *string           `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *domain.StaffRole `json:"role" validate:"omitempty,oneof=admin staff"`
	Active   *bool             `json:"active"`
}

// Normalize applies the SignupRequest rules to the fields that are present.
func (r *UpdateStaffRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		r.Email = &email
	}
	if r.Role != nil {
		role := r.Role.Normalize()
		r.Role = &role
	}
}

// Patch converts the request into a domain patch.
func (r UpdateStaffRequest) Patch() domain.StaffPatch {
	return domain.StaffPatch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Active:   r.Active,
	}
}

// StaffResponse is the public projection of a staff member.
type StaffResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.StaffRole `json:"role"`
	Active    bool             `json:"active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewStaffResponse projects a staff member, dropping the password hash.
func NewStaffResponse(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:        staff.ID,
		Name:      staff.Name,
		Email:     staff.Email,
		Role:      staff.Role,
		Active:    staff.Active,
		CreatedAt: staff.CreatedAt,
		UpdatedAt: staff.UpdatedAt,
	}
}
