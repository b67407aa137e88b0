// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HackHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: HACKHUB_MONGO_URI, HACKHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hackhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "hackhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "ticket_block_key", Default: "", Desc: "Optional 16/24/32-byte key to encrypt websocket tickets"},

	{Name: "login_ip_attempts", Default: 10, Desc: "Login attempts allowed per client IP per minute"},
	{Name: "login_email_attempts", Default: 5, Desc: "Login attempts allowed per account per five minutes"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for links in notifications"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config
// files, environment variables (WAFFLE_* for core, HACKHUB_* for app),
// and command-line flags, merged with precedence:
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HACKHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		TicketBlockKey: appValues.String("ticket_block_key"),

		LoginIPAttempts:    appValues.Int("login_ip_attempts"),
		LoginEmailAttempts: appValues.Int("login_email_attempts"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. The MongoDB
// URI format is checked up front so configuration errors surface before
// any connection attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must not be empty")
	}

	switch n := len(appCfg.TicketBlockKey); n {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("ticket_block_key must be 16, 24, or 32 bytes, got %d", n)
	}

	if appCfg.LoginIPAttempts <= 0 || appCfg.LoginEmailAttempts <= 0 {
		return fmt.Errorf("login attempt budgets must be positive, got ip=%d email=%d",
			appCfg.LoginIPAttempts, appCfg.LoginEmailAttempts)
	}

	return nil
}
