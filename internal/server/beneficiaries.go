package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"adra/pkg/types"
)

// beneficiaryIntakeRequest accepts both the Portuguese and English field
// names the registration forms send.
type beneficiaryIntakeRequest struct {
	Name     string          `json:"name"`
	Nome     string          `json:"nome"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Telefone string          `json:"telefone"`
	City     string          `json:"city"`
	Cidade   string          `json:"cidade"`
	State    string          `json:"state"`
	Estado   string          `json:"estado"`
	Document *types.Document `json:"document"`
	CPF      string          `json:"cpf"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (s *Service) handleCreateBeneficiary(w http.ResponseWriter, r *http.Request) {
	var req beneficiaryIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	name := firstNonEmpty(req.Nome, req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		s.respondError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	// Duplicate emails are rejected outright; registrations are never
	// silently merged into an existing record.
	_, err := s.beneficiaries.FindByEmail(r.Context(), email)
	if err == nil {
		s.respondError(w, http.StatusConflict, types.ErrDuplicateEmail.Error())
		return
	}
	if !errors.Is(err, types.ErrBeneficiaryNotFound) {
		s.logger.WithError(err).Error("failed to check for existing beneficiary")
		s.respondError(w, http.StatusInternalServerError, "failed to register beneficiary")
		return
	}

	document := req.Document
	if document == nil && req.CPF != "" {
		document = &types.Document{Type: "CPF", Value: req.CPF}
	}

	beneficiary := &types.Beneficiary{
		Name:  name,
		Email: email,
		Phone: firstNonEmpty(req.Telefone, req.Phone),
		Address: types.Address{
			City:  firstNonEmpty(req.Cidade, req.City),
			State: firstNonEmpty(req.Estado, req.State),
		},
		Document: document,
		Status:   types.BeneficiaryStatusPending,
		History: []types.HistoryEntry{
			{At: time.Now(), By: "system", Action: "create"},
		},
	}

	if err := s.beneficiaries.Insert(r.Context(), beneficiary); err != nil {
		s.logger.WithError(err).Error("failed to insert beneficiary")
		s.respondError(w, http.StatusInternalServerError, "failed to register beneficiary")
		return
	}

	// Best-effort notification; a send failure never fails the request
	// or rolls back the write.
	if err := s.notifier.SendNewBeneficiaryNotification(beneficiary); err != nil {
		s.logger.WithError(err).Warn("failed to send new beneficiary notification")
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": beneficiary.ID})
}

// handleBeneficiaryStatus is the unauthenticated projection behind the
// applicant-facing waiting page.
func (s *Service) handleBeneficiaryStatus(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		s.respondError(w, http.StatusBadRequest, "email parameter is required")
		return
	}

	beneficiary, err := s.beneficiaries.FindByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, types.ErrBeneficiaryNotFound) {
			s.logger.WithError(err).Error("failed to query beneficiary status, degrading to unknown")
		}
		s.respondJSON(w, http.StatusOK, types.BeneficiaryStatusView{
			Exists: false,
			Status: types.BeneficiaryStatusUnknown,
		})
		return
	}

	status := beneficiary.Status
	if status == "" {
		status = types.BeneficiaryStatusPending
	}

	s.respondJSON(w, http.StatusOK, types.BeneficiaryStatusView{
		Exists: true,
		Status: status,
		Reason: beneficiary.Notes,
	})
}
