package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEKOHOUSE_ADMIN_KEY", "")
	t.Setenv("NEKOHOUSE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("NEKOHOUSE_PORT", "")
	t.Setenv("NEKOHOUSE_RECORD_RETENTION_HOURS", "")
	t.Setenv("NEKOHOUSE_SUPER_ADMIN_IDS", "")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.RecordRetentionHours != 72 {
		t.Fatalf("expected default retention 72h, got %d", cfg.RecordRetentionHours)
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.ListenAddr())
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("NEKOHOUSE_ADMIN_KEY", "135792")
	t.Setenv("NEKOHOUSE_PORT", "9090")
	t.Setenv("NEKOHOUSE_RECORD_RETENTION_HOURS", "24")
	t.Setenv("NEKOHOUSE_SUPER_ADMIN_IDS", "1, 2,3")

	cfg := Load()

	if cfg.AdminKey != "135792" {
		t.Fatalf("expected admin key to be loaded, got %q", cfg.AdminKey)
	}
	if cfg.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.RecordRetentionHours != 24 {
		t.Fatalf("expected retention 24h, got %d", cfg.RecordRetentionHours)
	}
	if len(cfg.SuperAdminIDs) != 3 {
		t.Fatalf("expected 3 super admins, got %v", cfg.SuperAdminIDs)
	}
}

func TestLoadFallsBackToPlainDatabaseURL(t *testing.T) {
	t.Setenv("NEKOHOUSE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "postgres://example")

	cfg := Load()

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected fallback DATABASE_URL, got %q", cfg.DatabaseURL)
	}
}

func TestIsSuperAdmin(t *testing.T) {
	cfg := Config{SuperAdminIDs: []int64{10, 20}}

	if !cfg.IsSuperAdmin(10) {
		t.Fatalf("expected 10 to be a super admin")
	}
	if cfg.IsSuperAdmin(99) {
		t.Fatalf("expected 99 to not be a super admin")
	}
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("NEKOHOUSE_PORT", "not-a-number")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Fatalf("expected default port on invalid input, got %d", cfg.Port)
	}
}

func TestLoadAdminAPISettings(t *testing.T) {
	t.Setenv("NEKOHOUSE_ADMIN_API_PORT", "9091")
	t.Setenv("NEKOHOUSE_OPERATORS_FILE", "/etc/nekohouse/operators.yaml")
	t.Setenv("NEKOHOUSE_ADMIN_JWT_SECRET", "shh")

	cfg := Load()

	if cfg.AdminAPIPort != 9091 {
		t.Fatalf("expected admin API port 9091, got %d", cfg.AdminAPIPort)
	}
	if cfg.AdminAPIListenAddr() != ":9091" {
		t.Fatalf("expected :9091, got %s", cfg.AdminAPIListenAddr())
	}
	if cfg.OperatorsFile != "/etc/nekohouse/operators.yaml" {
		t.Fatalf("expected operators file to be loaded, got %q", cfg.OperatorsFile)
	}
	if cfg.AdminJWTSecret != "shh" {
		t.Fatalf("expected admin JWT secret to be loaded, got %q", cfg.AdminJWTSecret)
	}
}
