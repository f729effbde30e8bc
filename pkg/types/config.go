package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Admin back-office auth
	AdminPassword      string `envconfig:"ADMIN_PASSWORD"`
	AdminSessionSecret string `envconfig:"ADMIN_SESSION_SECRET"`
	// Development escape hatch. Must never be set in production; the
	// server resolves it once at startup, never per request.
	AdminAuthDisabled bool `envconfig:"ADMIN_AUTH_DISABLED" default:"false"`

	// End-user auth (bearer tokens, separate from admin sessions)
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Notification dispatcher
	SMTPHost    string   `envconfig:"SMTP_HOST"`
	SMTPPort    uint     `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser    string   `envconfig:"SMTP_USER"`
	SMTPPass    string   `envconfig:"SMTP_PASS"`
	EmailMode   string   `envconfig:"EMAIL_MODE"` // "development" simulates sends
	AdminEmails []string `envconfig:"ADMIN_EMAILS" default:"admin@adra.org.br"`

	AdminDashboardURL string `envconfig:"ADMIN_DASHBOARD_URL" default:"http://localhost:5173/admin"`
	FrontendURL       string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`
}
