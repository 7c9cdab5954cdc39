package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/staffdesk/staff-service/internal/auth"
	"github.com/staffdesk/staff-service/internal/config"
	"github.com/staffdesk/staff-service/internal/domain"
	"github.com/staffdesk/staff-service/internal/repository"
)

type memoryRevocations struct {
	ttls map[string]time.Duration
}

func (m *memoryRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.ttls[id] = ttl
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m.ttls[id]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *StaffService, repository.StaffRepository, *memoryRevocations) {
	t.Helper()
	repo := repository.NewMemoryStaffRepository()
	rev := &memoryRevocations{ttls: map[string]time.Duration{}}
	staffSvc := NewStaffService(testConfig(), StaffDependencies{StaffRepo: repo})
	authSvc := NewAuthService(testConfig(), AuthDependencies{StaffRepo: repo, Revocation: rev})
	return authSvc, staffSvc, repo, rev
}

func TestLoginIssuesTokenForStoredRole(t *testing.T) {
	authSvc, staffSvc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	created, err := staffSvc.Create(ctx, SignupInput{Name: "Ada", Email: "ada@x.io", Password: "s3cretpass", Role: domain.StaffRoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	staff, token, meta, err := authSvc.Login(ctx, "ADA@x.io", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if staff.ID != created.ID || token == "" || meta.ExpiresAt.IsZero() {
		t.Fatalf("unexpected login result %+v %q %+v", staff, token, meta)
	}
	claims, err := authSvc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != domain.StaffRoleAdmin {
		t.Fatalf("unexpected role claim %s", claims.Role)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	authSvc, staffSvc, _, _ := newAuthFixture(t)
	ctx := context.Background()
	created, _ := staffSvc.Create(ctx, SignupInput{Name: "Bob", Email: "bob@x.io", Password: "s3cretpass"})

	_, _, _, err := authSvc.Login(ctx, "nobody@x.io", "s3cretpass")
	assertStatus(t, err, http.StatusUnauthorized)

	_, _, _, err = authSvc.Login(ctx, "bob@x.io", "wrongpass")
	assertStatus(t, err, http.StatusUnauthorized)

	inactive := false
	if _, err := staffSvc.Update(ctx, created.ID, domain.StaffPatch{Active: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, _, _, err = authSvc.Login(ctx, "bob@x.io", "s3cretpass")
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestLogoutRevokesForRemainingLifetime(t *testing.T) {
	authSvc, staffSvc, _, rev := newAuthFixture(t)
	ctx := context.Background()
	staffSvc.Create(ctx, SignupInput{Name: "Ada", Email: "ada@x.io", Password: "s3cretpass"})

	_, token, meta, err := authSvc.Login(ctx, "ada@x.io", "s3cretpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, _ := authSvc.TokenManager().ParseToken(token)
	if err := authSvc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ttl, ok := rev.ttls[meta.ID]
	if !ok {
		t.Fatal("token was not revoked")
	}
	if ttl <= 0 || ttl > 5*time.Minute {
		t.Fatalf("unexpected revocation ttl %v", ttl)
	}

	if err := authSvc.Logout(ctx, nil); err != nil {
		t.Fatalf("logout without claims must be a no-op: %v", err)
	}
	if err := authSvc.Logout(ctx, &auth.Claims{}); err != nil {
		t.Fatalf("logout without jti must be a no-op: %v", err)
	}
}

func TestBootstrapAdminOnlySeedsEmptyStore(t *testing.T) {
	authSvc, staffSvc, repo, _ := newAuthFixture(t)
	ctx := context.Background()
	boot := config.BootstrapConfig{AdminName: "Root", AdminEmail: "root@x.io", AdminPassword: "changeme123"}

	if admin, err := authSvc.BootstrapAdmin(ctx, config.BootstrapConfig{}, staffSvc); err != nil || admin != nil {
		t.Fatalf("disabled bootstrap must be a no-op, got %+v, %v", admin, err)
	}

	admin, err := authSvc.BootstrapAdmin(ctx, boot, staffSvc)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if admin == nil || admin.Role != domain.StaffRoleAdmin {
		t.Fatalf("unexpected admin %+v", admin)
	}

	again, err := authSvc.BootstrapAdmin(ctx, boot, staffSvc)
	if err != nil || again != nil {
		t.Fatalf("second bootstrap must be a no-op, got %+v, %v", again, err)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("expected one staff member, got %d", n)
	}
}
