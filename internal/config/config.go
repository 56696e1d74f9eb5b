// Package config loads runtime settings from the environment, the way the
// teacher's coordinator does: plain os.Getenv/strconv, no config file
// parser, sane defaults baked into Load.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port int

	// AdminKey is the decimal admin key keyderiv.Derive turns into the
	// cipher key. It is required; the process refuses to start without it.
	AdminKey string

	DatabaseURL string

	// BotToken is the Telegram bot token used to call the Bot HTTP API.
	BotToken string
	// WebhookSecret, if set, is checked against
	// X-Telegram-Bot-Api-Secret-Token on every webhook delivery.
	WebhookSecret string
	// SuperAdminIDs are Telegram user IDs allowed to issue Period codes.
	// Temporary, Times and Limited codes are open to every user, with no
	// per-user cap.
	SuperAdminIDs []int64

	RecordRetentionHours int

	// AdminAPIPort, when non-zero, starts the operator-facing admin API
	// (login, list/revoke records) on its own listener.
	AdminAPIPort int
	// OperatorsFile points at the YAML roster adminapi authenticates
	// against. Empty means the admin API has no operators and every login
	// attempt fails closed.
	OperatorsFile string
	// AdminJWTSecret signs admin API session tokens. Empty means a random
	// per-process key is generated, so existing sessions do not survive a
	// restart.
	AdminJWTSecret string
}

func Load() Config {
	cfg := Config{
		Port:                 8080,
		AdminKey:             os.Getenv("NEKOHOUSE_ADMIN_KEY"),
		DatabaseURL:          os.Getenv("NEKOHOUSE_DATABASE_URL"),
		BotToken:             os.Getenv("NEKOHOUSE_BOT_TOKEN"),
		WebhookSecret:        os.Getenv("NEKOHOUSE_WEBHOOK_SECRET"),
		RecordRetentionHours: 72,
		OperatorsFile:        os.Getenv("NEKOHOUSE_OPERATORS_FILE"),
		AdminJWTSecret:       os.Getenv("NEKOHOUSE_ADMIN_JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if v := os.Getenv("NEKOHOUSE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}

	if v := os.Getenv("NEKOHOUSE_RECORD_RETENTION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RecordRetentionHours = n
		}
	}

	if v := os.Getenv("NEKOHOUSE_ADMIN_API_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.AdminAPIPort = p
		}
	}

	if v := os.Getenv("NEKOHOUSE_SUPER_ADMIN_IDS"); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if id, err := strconv.ParseInt(part, 10, 64); err == nil {
				cfg.SuperAdminIDs = append(cfg.SuperAdminIDs, id)
			}
		}
	}

	return cfg
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) AdminAPIListenAddr() string {
	return ":" + strconv.Itoa(c.AdminAPIPort)
}

func (c Config) IsSuperAdmin(userID int64) bool {
	for _, id := range c.SuperAdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
