package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk/staff-service/internal/domain"
)

// memoryStaffRepository keeps staff in process memory. It mirrors the Postgres
// repository's error contract: pgx.ErrNoRows for missing rows and a 23505
// PgError for duplicate e-mails.
type memoryStaffRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.StaffMember
}

// NewMemoryStaffRepository returns a StaffRepository that does not need a database.
func NewMemoryStaffRepository() StaffRepository {
	return &memoryStaffRepository{rows: make(map[int64]domain.StaffMember)}
}

func (r *memoryStaffRepository) Create(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(staff.Email, 0) {
		return uniqueEmailViolation()
	}
	r.nextID++
	now := time.Now().UTC()
	staff.ID = r.nextID
	staff.CreatedAt = now
	staff.UpdatedAt = now
	r.rows[staff.ID] = *staff
	return nil
}

func (r *memoryStaffRepository) Update(_ context.Context, staff *domain.StaffMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[staff.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if r.emailTaken(staff.Email, staff.ID) {
		return uniqueEmailViolation()
	}
	staff.CreatedAt = existing.CreatedAt
	staff.UpdatedAt = time.Now().UTC()
	r.rows[staff.ID] = *staff
	return nil
}

func (r *memoryStaffRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryStaffRepository) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	staff, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &staff, nil
}

func (r *memoryStaffRepository) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, staff := range r.rows {
		if strings.EqualFold(staff.Email, email) {
			found := staff
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryStaffRepository) List(_ context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []domain.StaffMember{}
	for _, staff := range r.rows {
		if filter.Role != nil && staff.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && staff.Active != *filter.Active {
			continue
		}
		result = append(result, staff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= len(result) {
			return []domain.StaffMember{}, nil
		}
		end := offset + filter.Limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, nil
}

func (r *memoryStaffRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func (r *memoryStaffRepository) emailTaken(email string, selfID int64) bool {
	for id, staff := range r.rows {
		if id != selfID && strings.EqualFold(staff.Email, email) {
			return true
		}
	}
	return false
}

func uniqueEmailViolation() error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "staff_members_email_key",
	}
}
