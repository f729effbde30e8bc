package internal

const (
	// COOKIE_ADMIN_SESSION_NAME carries the signed admin session token.
	COOKIE_ADMIN_SESSION_NAME = "admin_session"

	// ADMIN_SESSION_EXPIRES_HOURS bounds the lifetime of an admin
	// session token. There is no server-side revocation list; the token
	// stays valid until natural expiry.
	ADMIN_SESSION_EXPIRES_HOURS = 12

	// USER_TOKEN_EXPIRES_HOURS bounds end-user bearer tokens.
	USER_TOKEN_EXPIRES_HOURS = 24
)
