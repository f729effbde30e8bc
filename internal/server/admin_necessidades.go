package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"adra/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleAdminListNecessidades(w http.ResponseWriter, r *http.Request) {
	var q types.NecessidadeListQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.logger.WithError(err).Debug("failed to decode necessidade list query")
	}
	q.Normalize()

	items, total, err := s.necessidades.List(r.Context(), q)
	if err != nil {
		s.logger.WithError(err).Error("failed to list necessidades, returning empty page")
		items, total = []*types.Necessidade{}, 0
	}

	s.respondJSON(w, http.StatusOK, types.NecessidadePage{
		Items:    items,
		PageMeta: types.NewPageMeta(total, q.Page, q.PageSize),
	})
}

type necessidadePatchRequest struct {
	Status            types.NecessidadeStatus `json:"status"`
	ObservacaoInterna string                  `json:"observacaoInterna"`
}

func (s *Service) handleAdminPatchNecessidade(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var req necessidadePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Status != "" && !validNecessidadeStatus(req.Status) {
		s.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.Status == "" && strings.TrimSpace(req.ObservacaoInterna) == "" {
		s.respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := s.necessidades.ApplyPatch(r.Context(), id, req.Status, req.ObservacaoInterna); err != nil {
		if errors.Is(err, types.ErrNecessidadeNotFound) {
			s.respondError(w, http.StatusNotFound, "not found")
			return
		}
		s.logger.WithError(err).Error("failed to patch necessidade")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func validNecessidadeStatus(status types.NecessidadeStatus) bool {
	switch status {
	case types.NecessidadeStatusPendente,
		types.NecessidadeStatusEmAnalise,
		types.NecessidadeStatusParcial,
		types.NecessidadeStatusAtendida:
		return true
	}
	return false
}

func (s *Service) handleAdminExportNecessidadesCSV(w http.ResponseWriter, r *http.Request) {
	necessidades, err := s.necessidades.All(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to export necessidades, exporting empty csv")
		necessidades = []*types.Necessidade{}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="necessidades.csv"`)

	if err := writeNecessidadesCSV(w, necessidades); err != nil {
		s.logger.WithError(err).Error("failed to write necessidades csv")
	}
}
