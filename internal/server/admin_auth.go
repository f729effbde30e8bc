package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"adra/internal"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Service) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(clientIP(r)) {
		s.respondError(w, http.StatusTooManyRequests, "too many login attempts, wait a few minutes and try again")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	if req.Password != s.config.AdminPassword {
		s.respondError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	signedToken, err := s.signAdminToken()
	if err != nil {
		s.logger.WithError(err).Error("failed to sign admin session token")
		s.internalServerError(w)
		return
	}

	encoded, err := s.cookie.Encode(internal.COOKIE_ADMIN_SESSION_NAME, signedToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode admin session cookie")
		s.internalServerError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ADMIN_SESSION_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.isProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   internal.ADMIN_SESSION_EXPIRES_HOURS * 60 * 60,
		Path:     "/",
	})

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleAdminLogout clears the cookie. There is no server-side
// revocation list; the token stays cryptographically valid until its
// natural expiry.
func (s *Service) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ADMIN_SESSION_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   s.isProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) signAdminToken() (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(internal.ADMIN_SESSION_EXPIRES_HOURS * time.Hour)).
		Claim("role", "admin").
		Build()
	if err != nil {
		return "", fmt.Errorf("build admin token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.sessionSecret))
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}

	return string(signed), nil
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
