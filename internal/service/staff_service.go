package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/staffdesk/staff-service/internal/auth"
	"github.com/staffdesk/staff-service/internal/config"
	"github.com/staffdesk/staff-service/internal/domain"
	"github.com/staffdesk/staff-service/internal/events"
	"github.com/staffdesk/staff-service/internal/repository"
	apperrors "github.com/staffdesk/staff-service/pkg/util/errorutil"
)

// StaffService manages staff member records.
type StaffService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// StaffDependencies encapsulates collaborators required for staff management.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// SignupInput describes a new staff account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.StaffRole
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// FindAll returns every staff member ordered by id.
func (s *StaffService) FindAll(ctx context.Context) ([]domain.StaffMember, error) {
	list, err := s.staff.List(ctx, repository.StaffFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// FindOne fetches a single staff member.
func (s *StaffService) FindOne(ctx context.Context, id int64) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, staffLookupError(err, id)
	}
	return staff, nil
}

// Create adds a new staff account.
func (s *StaffService) Create(ctx context.Context, input SignupInput) (*domain.StaffMember, error) {
	email := normalizeEmail(input.Email)
	role := input.Role.Normalize()
	if role == "" {
		role = domain.StaffRoleStaff
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	name, err := requireName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffCreated, staff.ID, events.StaffPayload{Email: staff.Email, Role: staff.Role})
	return staff, nil
}

// Update applies the non-nil fields of patch to the staff member.
func (s *StaffService) Update(ctx context.Context, id int64, patch domain.StaffPatch) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, staffLookupError(err, id)
	}

	var changed []string
	if patch.Name != nil {
		name, err := requireName(*patch.Name)
		if err != nil {
			return nil, err
		}
		staff.Name = name
		changed = append(changed, "name")
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != staff.Email {
			if err := s.ensureEmailFree(ctx, email, staff.ID); err != nil {
				return nil, err
			}
		}
		staff.Email = email
		changed = append(changed, "email")
	}
	if patch.Role != nil {
		role := patch.Role.Normalize()
		if !role.Valid() {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": *patch.Role})
		}
		staff.Role = role
		changed = append(changed, "role")
	}
	if patch.Active != nil {
		staff.Active = *patch.Active
		changed = append(changed, "active")
	}
	if patch.Password != nil {
		hash, err := s.hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
		changed = append(changed, "password")
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, staffLookupError(err, id)
	}

	s.publish(ctx, events.EventStaffUpdated, staff.ID, events.StaffUpdatedPayload{
		StaffPayload:  events.StaffPayload{Email: staff.Email, Role: staff.Role},
		ChangedFields: changed,
	})
	return staff, nil
}

// Remove deletes the staff member.
func (s *StaffService) Remove(ctx context.Context, id int64) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		return staffLookupError(err, id)
	}
	s.publish(ctx, events.EventStaffDeleted, id, nil)
	return nil
}

func (s *StaffService) hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("password too long", map[string]any{"password": "max_bytes=72"})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}

func requireName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.NewValidationError("name is required", map[string]any{"name": "required"})
	}
	return name, nil
}

func (s *StaffService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	if existing != nil && existing.ID != selfID {
		return apperrors.NewConflict("staff email already exists", map[string]any{"email": email})
	}
	return nil
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, staffID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	var actorID *int64
	if id, ok := ActorFromContext(ctx); ok {
		actorID = &id
	}
	if err := s.dispatcher.Publish(ctx, events.NewEvent(eventType, staffID, actorID, payload)); err != nil {
		s.logger.Warn("staff event handlers failed",
			zap.String("event_type", string(eventType)),
			zap.Int64("staff_id", staffID),
			zap.Error(err))
	}
}

func staffLookupError(err error, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("staff", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
