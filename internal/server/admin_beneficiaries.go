package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"adra/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleAdminListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	var q types.ListQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.logger.WithError(err).Debug("failed to decode beneficiary list query")
	}
	if q.Status == "" {
		q.Status = string(types.BeneficiaryStatusPending)
	}
	q.Normalize()

	items, total, err := s.beneficiaries.List(r.Context(), q)
	if err != nil {
		// Availability over correctness signaling: a storage failure on
		// a list degrades to an empty result set.
		s.logger.WithError(err).Error("failed to list beneficiaries, returning empty page")
		items, total = []*types.Beneficiary{}, 0
	}

	s.respondJSON(w, http.StatusOK, types.BeneficiaryPage{
		Items:    items,
		PageMeta: types.NewPageMeta(total, q.Page, q.PageSize),
	})
}

func (s *Service) handleAdminGetBeneficiary(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	beneficiary, err := s.beneficiaries.Beneficiary(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrBeneficiaryNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch beneficiary")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, beneficiary)
}

type validateBeneficiaryRequest struct {
	Approved *bool  `json:"approved"`
	Reason   string `json:"reason"`
}

func (s *Service) handleAdminValidateBeneficiary(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var req validateBeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Approved == nil {
		s.respondError(w, http.StatusBadRequest, "approved field is required")
		return
	}
	if !*req.Approved && strings.TrimSpace(req.Reason) == "" {
		s.respondError(w, http.StatusBadRequest, "reason is required for rejection")
		return
	}

	beneficiary, err := s.beneficiaries.Beneficiary(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrBeneficiaryNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch beneficiary for validation")
		s.internalServerError(w)
		return
	}

	status := types.BeneficiaryStatusRejected
	action := "rejected"
	if *req.Approved {
		status = types.BeneficiaryStatusValidated
		action = "validated"
	}

	entry := types.HistoryEntry{
		At:      time.Now(),
		By:      "admin",
		Action:  action,
		Details: req.Reason,
	}

	if err := s.beneficiaries.ApplyValidation(r.Context(), id, status, req.Reason, entry); err != nil {
		if errors.Is(err, types.ErrBeneficiaryNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to apply validation decision")
		s.internalServerError(w)
		return
	}

	// The decision is committed; a notification failure is logged and
	// never undoes the status change.
	if err := s.notifier.SendBeneficiaryStatusUpdate(beneficiary.Email, *req.Approved, req.Reason); err != nil {
		s.logger.WithError(err).Warn("failed to send status update notification")
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) handleAdminExportBeneficiariesCSV(w http.ResponseWriter, r *http.Request) {
	// Exports the whole collection regardless of any on-screen filter.
	beneficiaries, err := s.beneficiaries.All(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to export beneficiaries, exporting empty csv")
		beneficiaries = []*types.Beneficiary{}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="beneficiaries.csv"`)

	if err := writeBeneficiariesCSV(w, beneficiaries); err != nil {
		s.logger.WithError(err).Error("failed to write beneficiaries csv")
	}
}
