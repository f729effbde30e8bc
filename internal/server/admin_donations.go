package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"adra/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleAdminListDonations(w http.ResponseWriter, r *http.Request) {
	var q types.ListQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.logger.WithError(err).Debug("failed to decode donation list query")
	}
	// Donations are unfiltered by default; no implicit status.
	q.Normalize()

	items, total, err := s.donations.List(r.Context(), q)
	if err != nil {
		s.logger.WithError(err).Error("failed to list donations, returning empty page")
		items, total = []*types.Donation{}, 0
	}

	s.respondJSON(w, http.StatusOK, types.DonationPage{
		Items:    items,
		PageMeta: types.NewPageMeta(total, q.Page, q.PageSize),
	})
}

func (s *Service) handleAdminGetDonation(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	donation, err := s.donations.Donation(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrDonationNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch donation")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, donation)
}

func (s *Service) handleAdminPatchDonation(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var patch types.DonationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	// Only a status change appends a timeline entry.
	var entry *types.TimelineEntry
	if patch.Status != "" {
		entry = &types.TimelineEntry{
			At:     time.Now(),
			By:     "admin",
			Status: patch.Status,
			Note:   patch.Notes,
		}
	}

	if err := s.donations.ApplyPatch(r.Context(), id, patch, entry); err != nil {
		if errors.Is(err, types.ErrDonationNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to patch donation")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Service) handleAdminExportDonationsCSV(w http.ResponseWriter, r *http.Request) {
	donations, err := s.donations.All(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to export donations, exporting empty csv")
		donations = []*types.Donation{}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="donations.csv"`)

	if err := writeDonationsCSV(w, donations); err != nil {
		s.logger.WithError(err).Error("failed to write donations csv")
	}
}
