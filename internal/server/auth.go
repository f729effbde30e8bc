package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adra/internal"
	"adra/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
}

func (s *Service) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	required := map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"senha":    req.Senha,
		"telefone": req.Telefone,
		"endereco": req.Endereco,
		"cidade":   req.Cidade,
		"estado":   req.Estado,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("missing required field: %s", field))
			return
		}
	}

	if _, err := s.users.UserByEmail(r.Context(), req.Email); err == nil {
		s.respondError(w, http.StatusConflict, types.ErrDuplicateEmail.Error())
		return
	} else if !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).Error("failed to check for existing user")
		s.respondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.respondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	user := &types.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Senha:    string(hashed),
		Telefone: req.Telefone,
		Endereco: req.Endereco,
		Cidade:   req.Cidade,
		Estado:   req.Estado,
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		s.logger.WithError(err).Error("failed to create user")
		s.respondError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	// types.User never serializes the senha hash.
	s.respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Senha == "" {
		s.respondError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := s.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			s.logger.WithError(err).Error("failed to fetch user for login")
		}
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(req.Senha)); err != nil {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.signUserToken(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to sign user token")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

func (s *Service) handleMe(w http.ResponseWriter, r *http.Request) {
	user := s.userFromContext(r.Context())
	if user == nil {
		s.respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	s.respondJSON(w, http.StatusOK, user)
}

func (s *Service) signUserToken(userID string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(internal.USER_TOKEN_EXPIRES_HOURS * time.Hour)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build user token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign user token: %w", err)
	}

	return string(signed), nil
}
