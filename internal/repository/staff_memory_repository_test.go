package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffdesk/staff-service/internal/domain"
)

func seed(t *testing.T, repo StaffRepository, emails ...string) []domain.StaffMember {
	t.Helper()
	out := make([]domain.StaffMember, 0, len(emails))
	for _, email := range emails {
		s := domain.StaffMember{Name: email, Email: email, Role: domain.StaffRoleStaff, Active: true}
		if err := repo.Create(context.Background(), &s); err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
		out = append(out, s)
	}
	return out
}

func TestMemoryRepositoryAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryStaffRepository()
	rows := seed(t, repo, "a@x.io", "b@x.io", "c@x.io")
	for i, s := range rows {
		if s.ID != int64(i+1) {
			t.Fatalf("row %d: expected id %d, got %d", i, i+1, s.ID)
		}
		if s.CreatedAt.IsZero() {
			t.Fatalf("row %d: created_at not set", i)
		}
	}

	list, err := repo.List(context.Background(), StaffFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != 1 || list[2].ID != 3 {
		t.Fatalf("unexpected list order: %+v", list)
	}

	page, _ := repo.List(context.Background(), StaffFilter{Limit: 2, Offset: 2})
	if len(page) != 1 || page[0].ID != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestMemoryRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo := NewMemoryStaffRepository()
	seed(t, repo, "jane@x.io")

	dup := domain.StaffMember{Email: "JANE@x.io"}
	err := repo.Create(context.Background(), &dup)
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestMemoryRepositoryMissingRows(t *testing.T) {
	repo := NewMemoryStaffRepository()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("GetByID: expected ErrNoRows, got %v", err)
	}
	if err := repo.Delete(ctx, 42); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("Delete: expected ErrNoRows, got %v", err)
	}
	if err := repo.Update(ctx, &domain.StaffMember{ID: 42}); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("Update: expected ErrNoRows, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@x.io"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("GetByEmail: expected ErrNoRows, got %v", err)
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryStaffRepository()
	rows := seed(t, repo, "jane@x.io")

	got, _ := repo.GetByID(context.Background(), rows[0].ID)
	got.Name = "mutated"

	again, _ := repo.GetByID(context.Background(), rows[0].ID)
	if again.Name == "mutated" {
		t.Fatal("repository leaked internal state")
	}
	if n, _ := repo.Count(context.Background()); n != 1 {
		t.Fatalf("expected count 1, got %d", n)
	}
}
