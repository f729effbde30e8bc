package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"adra/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var queryDecoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	beneficiaries BeneficiaryStore
	donations     DonationStore
	schedules     ScheduleStore
	necessidades  NecessidadeStore
	users         UserStore
	notifier      Notifier

	cookie       *securecookie.SecureCookie
	loginLimiter *loginLimiter

	// Resolved once at startup from ADMIN_AUTH_DISABLED, never from
	// request data.
	adminAuthDisabled bool

	sessionSecret []byte
	jwtSecret     []byte

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	notifier Notifier,
	beneficiaries BeneficiaryStore,
	donations DonationStore,
	schedules ScheduleStore,
	necessidades NecessidadeStore,
	users UserStore,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:   logger,
		config:   config,
		notifier: notifier,

		beneficiaries: beneficiaries,
		donations:     donations,
		schedules:     schedules,
		necessidades:  necessidades,
		users:         users,

		cookie:       securecookie.New(hashKey, blockKey),
		loginLimiter: newLoginLimiter(5*time.Minute, 5),

		adminAuthDisabled: config.AdminAuthDisabled,
		sessionSecret:     []byte(config.AdminSessionSecret),
		jwtSecret:         []byte(config.JWTSecret),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	if s.adminAuthDisabled && config.Environment == "production" {
		return nil, fmt.Errorf("ADMIN_AUTH_DISABLED must not be set in production")
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.OptionalUser)

	r.HandleFunc("/health", s.handleHealth, http.MethodGet)

	// End-user auth (bearer tokens, distinct from the admin session)
	r.HandleFunc("/auth/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/auth/me", s.handleMe, http.MethodGet)

	// Public intake
	r.HandleFunc("/api/beneficiaries", s.handleCreateBeneficiary, http.MethodPost)
	r.HandleFunc("/api/beneficiaries/status", s.handleBeneficiaryStatus, http.MethodGet)
	r.HandleFunc("/coletas/agendar", s.handleSchedulePickup, http.MethodPost)
	r.HandleFunc("/api/necessidades", s.handleCreateNecessidades, http.MethodPost)

	r.HandleFunc("/api/admin/login", s.handleAdminLogin, http.MethodPost)
	r.HandleFunc("/api/admin/logout", s.handleAdminLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/api/admin/beneficiaries", s.handleAdminListBeneficiaries, http.MethodGet)
		r.HandleFunc("/api/admin/beneficiaries/export.csv", s.handleAdminExportBeneficiariesCSV, http.MethodGet)
		r.HandleFunc("/api/admin/beneficiaries/:id", s.handleAdminGetBeneficiary, http.MethodGet)
		r.HandleFunc("/api/admin/beneficiaries/:id/validate", s.handleAdminValidateBeneficiary, http.MethodPatch)

		r.HandleFunc("/api/admin/donations", s.handleAdminListDonations, http.MethodGet)
		r.HandleFunc("/api/admin/donations/export.csv", s.handleAdminExportDonationsCSV, http.MethodGet)
		r.HandleFunc("/api/admin/donations/:id", s.handleAdminGetDonation, http.MethodGet)
		r.HandleFunc("/api/admin/donations/:id", s.handleAdminPatchDonation, http.MethodPatch)

		r.HandleFunc("/api/admin/coletas", s.handleAdminListSchedules, http.MethodGet)

		r.HandleFunc("/api/admin/necessidades", s.handleAdminListNecessidades, http.MethodGet)
		r.HandleFunc("/api/admin/necessidades/export.csv", s.handleAdminExportNecessidadesCSV, http.MethodGet)
		r.HandleFunc("/api/admin/necessidades/:id", s.handleAdminPatchNecessidade, http.MethodPatch)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) isProduction() bool {
	return s.config.Environment == "production"
}
