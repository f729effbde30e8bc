package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"adra/internal"
	"adra/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUser contextKey = "user"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the admin surface behind a valid, unexpired admin
// session token. The dev bypass is decided once at startup.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminAuthDisabled {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(internal.COOKIE_ADMIN_SESSION_NAME)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "no session")
			return
		}

		var signedToken string
		if err := s.cookie.Decode(internal.COOKIE_ADMIN_SESSION_NAME, cookie.Value, &signedToken); err != nil {
			s.logger.WithError(err).Debug("failed to decode admin session cookie")
			s.respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		token, err := jwt.Parse(
			[]byte(signedToken),
			jwt.WithKey(jwa.HS256(), s.sessionSecret),
			jwt.WithValidate(true),
		)
		if err != nil {
			s.logger.WithError(err).Debug("failed to parse admin session token")
			s.respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		var role string
		if err := token.Get("role", &role); err != nil || role != "admin" {
			s.respondError(w, http.StatusUnauthorized, "invalid session")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// OptionalUser resolves a Bearer token into a user and attaches it to
// the context. Invalid or absent tokens just leave the request
// unauthenticated.
func (s *Service) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.Parse(
			[]byte(strings.TrimPrefix(authHeader, "Bearer ")),
			jwt.WithKey(jwa.HS256(), s.jwtSecret),
			jwt.WithValidate(true),
		)
		if err != nil {
			s.logger.WithError(err).Debug("failed to parse bearer token")
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := token.Subject()
		if !ok || userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.users.User(r.Context(), userID)
		if err != nil {
			s.logger.WithError(err).Debug("bearer token references unknown user")
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) userFromContext(ctx context.Context) *types.User {
	user, _ := ctx.Value(contextKeyUser).(*types.User)
	return user
}
