package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies CWATCH_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known CWATCH_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Supabase ──
	setStr(&cfg.Supabase.DSN, "CWATCH_SUPABASE_DSN")
	setStr(&cfg.Supabase.DSN, "CWATCH_SUPABASE_URL") // compatibility alias
	setStr(&cfg.Supabase.Host, "CWATCH_SUPABASE_HOST")
	setInt(&cfg.Supabase.Port, "CWATCH_SUPABASE_PORT")
	setStr(&cfg.Supabase.Database, "CWATCH_SUPABASE_DATABASE")
	setStr(&cfg.Supabase.User, "CWATCH_SUPABASE_USER")
	setStr(&cfg.Supabase.Password, "CWATCH_SUPABASE_PASSWORD")
	setStr(&cfg.Supabase.SSLMode, "CWATCH_SUPABASE_SSL_MODE")
	setInt(&cfg.Supabase.PoolMaxConns, "CWATCH_SUPABASE_POOL_MAX_CONNS")
	setInt(&cfg.Supabase.PoolMinConns, "CWATCH_SUPABASE_POOL_MIN_CONNS")
	setBool(&cfg.Supabase.RunMigrations, "CWATCH_SUPABASE_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "CWATCH_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "CWATCH_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "CWATCH_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "CWATCH_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "CWATCH_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "CWATCH_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "CWATCH_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "CWATCH_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "CWATCH_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "CWATCH_S3_REGION")
	setStr(&cfg.S3.Bucket, "CWATCH_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "CWATCH_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "CWATCH_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "CWATCH_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "CWATCH_S3_FORCE_PATH_STYLE")

	// ── Sources ──
	setStr(&cfg.Sources.GovTrackBaseURL, "CWATCH_SOURCES_GOVTRACK_BASE_URL")
	setStr(&cfg.Sources.StockWatcherFeedURL, "CWATCH_SOURCES_STOCK_WATCHER_FEED_URL")

	// ── Sync ──
	setInt(&cfg.Sync.MemberLimit, "CWATCH_SYNC_MEMBER_LIMIT")
	setDuration(&cfg.Sync.RosterTimeout, "CWATCH_SYNC_ROSTER_TIMEOUT")
	setDuration(&cfg.Sync.TradesTimeout, "CWATCH_SYNC_TRADES_TIMEOUT")
	setDuration(&cfg.Sync.RunDeadline, "CWATCH_SYNC_RUN_DEADLINE")
	setDuration(&cfg.Sync.Interval, "CWATCH_SYNC_INTERVAL")
	setDuration(&cfg.Sync.LockTTL, "CWATCH_SYNC_LOCK_TTL")
	setDuration(&cfg.Sync.ReportTTL, "CWATCH_SYNC_REPORT_TTL")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "CWATCH_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "CWATCH_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "CWATCH_SERVER_CORS_ORIGINS")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "CWATCH_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "CWATCH_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "CWATCH_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "CWATCH_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "CWATCH_MODE")
	setStr(&cfg.LogLevel, "CWATCH_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
