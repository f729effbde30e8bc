package server

import (
	"net/http"
	"strings"
	"testing"

	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNecessidades(env *testEnv) {
	env.necessidades.records = []*types.Necessidade{
		{ID: "n1", Nome: "Rosa", Item: "cesta básica", Categoria: "alimentos", Quantidade: 2, Unidade: "unidade", Prioridade: "alta", Status: types.NecessidadeStatusPendente},
		{ID: "n2", Nome: "Rosa", Item: "cobertor", Categoria: "vestuario", Quantidade: 1, Unidade: "unidade", Prioridade: "media", Status: types.NecessidadeStatusAtendida},
	}
}

func TestAdminListNecessidades(t *testing.T) {
	env := adminEnv(t)
	seedNecessidades(env)

	rec := env.do(t, http.MethodGet, "/api/admin/necessidades", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.NecessidadePage
	decodeBody(t, rec, &page)
	assert.Len(t, page.Items, 2)

	filtered := env.do(t, http.MethodGet, "/api/admin/necessidades?status=pendente&prioridade=alta", nil, nil)
	require.Equal(t, http.StatusOK, filtered.Code)
	decodeBody(t, filtered, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "n1", page.Items[0].ID)
}

func TestAdminPatchNecessidade(t *testing.T) {
	env := adminEnv(t)
	seedNecessidades(env)

	rec := env.do(t, http.MethodPatch, "/api/admin/necessidades/n1", map[string]string{
		"status":            "em_analise",
		"observacaoInterna": "verificar endereço de entrega",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	record := env.necessidades.records[0]
	assert.Equal(t, types.NecessidadeStatusEmAnalise, record.Status)
	assert.Equal(t, "verificar endereço de entrega", record.ObservacaoInterna)
}

func TestAdminPatchNecessidadeInvalidStatus(t *testing.T) {
	env := adminEnv(t)
	seedNecessidades(env)

	rec := env.do(t, http.MethodPatch, "/api/admin/necessidades/n1", map[string]string{
		"status": "cancelada",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, types.NecessidadeStatusPendente, env.necessidades.records[0].Status)
}

func TestAdminPatchNecessidadeNothingToUpdate(t *testing.T) {
	env := adminEnv(t)
	seedNecessidades(env)

	rec := env.do(t, http.MethodPatch, "/api/admin/necessidades/n1", map[string]string{}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminPatchNecessidadeNotFound(t *testing.T) {
	env := adminEnv(t)

	rec := env.do(t, http.MethodPatch, "/api/admin/necessidades/nope", map[string]string{
		"status": "atendida",
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminExportNecessidadesCSV(t *testing.T) {
	env := adminEnv(t)
	seedNecessidades(env)

	rec := env.do(t, http.MethodGet, "/api/admin/necessidades/export.csv", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "necessidades.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "cesta básica")
}
