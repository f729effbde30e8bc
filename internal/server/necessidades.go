package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"adra/pkg/types"
)

type needRequestItem struct {
	Item       string `json:"item"`
	Categoria  string `json:"categoria"`
	Quantidade int    `json:"quantidade"`
	Unidade    string `json:"unidade"`
	Prioridade string `json:"prioridade"`
}

type needRequestInput struct {
	Nome            string                 `json:"nome"`
	Email           string                 `json:"email"`
	Telefone        string                 `json:"telefone"`
	EnderecoEntrega *types.EnderecoEntrega `json:"enderecoEntrega"`
	Itens           []needRequestItem      `json:"itens"`
}

// handleCreateNecessidades stores one record per requested item of a
// submitted need-request.
func (s *Service) handleCreateNecessidades(w http.ResponseWriter, r *http.Request) {
	var req needRequestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if strings.TrimSpace(req.Nome) == "" {
		s.respondError(w, http.StatusBadRequest, "missing required field: nome")
		return
	}

	items := make([]needRequestItem, 0, len(req.Itens))
	for _, item := range req.Itens {
		if strings.TrimSpace(item.Item) != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		s.respondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	var userID *string
	if user := s.userFromContext(r.Context()); user != nil {
		userID = &user.ID
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantidade < 1 {
			item.Quantidade = 1
		}
		if item.Unidade == "" {
			item.Unidade = "unidade"
		}
		if item.Prioridade == "" {
			item.Prioridade = "media"
		}

		necessidade := &types.Necessidade{
			UserID:          userID,
			Nome:            strings.TrimSpace(req.Nome),
			Email:           strings.TrimSpace(req.Email),
			Telefone:        req.Telefone,
			Item:            strings.TrimSpace(item.Item),
			Categoria:       item.Categoria,
			Quantidade:      item.Quantidade,
			Unidade:         item.Unidade,
			Prioridade:      item.Prioridade,
			EnderecoEntrega: req.EnderecoEntrega,
			Status:          types.NecessidadeStatusPendente,
		}

		if err := s.necessidades.Insert(r.Context(), necessidade); err != nil {
			s.logger.WithError(err).Error("failed to insert necessidade")
			s.respondError(w, http.StatusInternalServerError, "failed to create need request")
			return
		}

		ids = append(ids, necessidade.ID)
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{"ok": true, "ids": ids})
}
