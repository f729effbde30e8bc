package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"adra/internal/utils"
	"adra/pkg/types"
)

type schedulePickupRequest struct {
	Nome             string              `json:"nome"`
	Telefone         string              `json:"telefone"`
	Email            string              `json:"email"`
	Endereco         string              `json:"endereco"`
	Complemento      string              `json:"complemento"`
	Cidade           string              `json:"cidade"`
	Estado           string              `json:"estado"`
	CEP              string              `json:"cep"`
	Origem           *types.PickupOrigin `json:"origem"`
	Disponibilidade  string              `json:"disponibilidade"`
	Itens            []types.PickupItem  `json:"itens"`
	Observacoes      string              `json:"observacoes"`
	UnidadePreferida string              `json:"unidadePreferida"`
}

func (s *Service) handleSchedulePickup(w http.ResponseWriter, r *http.Request) {
	var req schedulePickupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	required := []struct{ name, value string }{
		{"nome", req.Nome},
		{"telefone", req.Telefone},
		{"endereco", req.Endereco},
		{"disponibilidade", req.Disponibilidade},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("missing required field: %s", field.name))
			return
		}
	}

	schedule := &types.PickupSchedule{
		Nome:             req.Nome,
		Telefone:         req.Telefone,
		Email:            utils.NullableString(req.Email),
		Endereco:         req.Endereco,
		Complemento:      utils.NullableString(req.Complemento),
		Cidade:           utils.NullableString(req.Cidade),
		Estado:           utils.NullableString(req.Estado),
		CEP:              utils.NullableString(req.CEP),
		Origem:           req.Origem,
		Disponibilidade:  req.Disponibilidade,
		Itens:            req.Itens,
		Observacoes:      utils.NullableString(req.Observacoes),
		UnidadePreferida: utils.NullableString(req.UnidadePreferida),
		Status:           types.ScheduleStatusNovo,
	}

	if user := s.userFromContext(r.Context()); user != nil {
		schedule.UsuarioID = &user.ID
	}

	if err := s.schedules.Insert(r.Context(), schedule); err != nil {
		s.logger.WithError(err).Error("failed to insert pickup schedule")
		s.respondError(w, http.StatusInternalServerError, "failed to create schedule")
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": schedule.ID})
}

func (s *Service) handleAdminListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.schedules.All(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to list schedules, returning empty list")
		schedules = []*types.PickupSchedule{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"items": schedules})
}
