package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/staffdesk/staff-service/internal/config"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := migrationFiles(dir)
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) != 2 || files[0] != "001_a.sql" || files[1] != "002_b.sql" {
		t.Fatalf("unexpected files %v", files)
	}

	if _, err := migrationFiles(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestRunMigrationsWithoutPoolIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, "does-not-matter", zap.NewNop()); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestNewPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.PoolHandle() != nil {
		t.Fatal("expected nil pool")
	}
	if err := pg.Ping(context.Background()); err == nil {
		t.Fatal("ping must fail without a pool")
	}
	pg.Close()
}

func TestApplyPoolLimits(t *testing.T) {
	poolCfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/staff")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	applyPoolLimits(poolCfg, config.PostgresConfig{MaxConns: 8, MinConns: 20, ConnMaxIdleSec: 5, ConnMaxLifeSec: 60})
	if poolCfg.MaxConns != 8 {
		t.Fatalf("unexpected max conns %d", poolCfg.MaxConns)
	}
	if poolCfg.MinConns == 20 {
		t.Fatal("min conns above max must be ignored")
	}
	if poolCfg.MaxConnIdleTime != 5*time.Second || poolCfg.MaxConnLifetime != time.Minute {
		t.Fatalf("unexpected durations %v %v", poolCfg.MaxConnIdleTime, poolCfg.MaxConnLifetime)
	}
}
