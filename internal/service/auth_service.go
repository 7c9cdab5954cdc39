package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/staffdesk/staff-service/internal/auth"
	"github.com/staffdesk/staff-service/internal/config"
	"github.com/staffdesk/staff-service/internal/domain"
	"github.com/staffdesk/staff-service/internal/repository"
	apperrors "github.com/staffdesk/staff-service/pkg/util/errorutil"
)

const invalidCredentials = "invalid credentials"

// AuthService coordinates staff login, logout and first-admin bootstrap.
type AuthService struct {
	staff    repository.StaffRepository
	revoked  auth.RevocationStore
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
	now      func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	StaffRepo  repository.StaffRepository
	Revocation auth.RevocationStore
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		staff:    deps.StaffRepo,
		revoked:  deps.Revocation,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:   logger,
		now:      time.Now,
	}
}

// Login authenticates staff and returns a role-bearing token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.StaffMember, string, *domain.Token, error) {
	staff, err := s.staff.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if !staff.Active {
		return nil, "", nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, meta, err := s.tokenMgr.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, "", nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("staff logged in", zap.Int64("staff_id", staff.ID), zap.String("role", string(staff.Role)))
	return staff, token, meta, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || s.revoked == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// BootstrapAdmin seeds the first admin account when the store is empty.
func (s *AuthService) BootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig, staffService *StaffService) (*domain.StaffMember, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	count, err := s.staff.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}
	admin, err := staffService.Create(ctx, SignupInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     domain.StaffRoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("bootstrap admin created", zap.Int64("staff_id", admin.ID), zap.String("email", admin.Email))
	return admin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
