// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS); AppConfig is everything specific to HackHub. Values
// come from environment variables, config files, or flags, loaded in
// LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: hackhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Websocket ticket configuration. Blank block key means tickets are
	// signed but not encrypted, which is fine: they carry no secrets.
	TicketBlockKey string

	// Login throttling budgets. The window shapes are fixed (per minute
	// by IP, per five minutes by account); only the attempt counts move.
	LoginIPAttempts    int
	LoginEmailAttempts int

	// Base URL for links in notifications
	BaseURL string
}
