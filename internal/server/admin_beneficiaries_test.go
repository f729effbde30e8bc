package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// adminEnv returns a test environment with the session check bypassed so
// handler behavior can be exercised directly.
func adminEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnv(t, func(c *types.Config) { c.AdminAuthDisabled = true })
}

func TestAdminApproveBeneficiary(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{
			ID:     "b1",
			Name:   "Maria",
			Email:  "maria@example.com",
			Status: types.BeneficiaryStatusPending,
			History: []types.HistoryEntry{
				{By: "system", Action: "create"},
			},
		},
	}

	rec := env.do(t, http.MethodPatch, "/api/admin/beneficiaries/b1/validate", map[string]any{
		"approved": true,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	record := env.beneficiaries.records[0]
	assert.Equal(t, types.BeneficiaryStatusValidated, record.Status)
	require.Len(t, record.History, 2)
	assert.Equal(t, "admin", record.History[1].By)
	assert.Equal(t, "validated", record.History[1].Action)

	require.Len(t, env.notifier.statusUpdates, 1)
	assert.Equal(t, "maria@example.com", env.notifier.statusUpdates[0].Email)
	assert.True(t, env.notifier.statusUpdates[0].Approved)
}

func TestAdminRejectBeneficiaryRequiresReason(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{ID: "b1", Name: "Maria", Email: "maria@example.com", Status: types.BeneficiaryStatusPending},
	}

	rec := env.do(t, http.MethodPatch, "/api/admin/beneficiaries/b1/validate", map[string]any{
		"approved": false,
		"reason":   "   ",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Nothing written, nothing sent.
	assert.Equal(t, types.BeneficiaryStatusPending, env.beneficiaries.records[0].Status)
	assert.Empty(t, env.notifier.statusUpdates)
}

func TestAdminRejectBeneficiary(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{ID: "b1", Name: "Maria", Email: "maria@example.com", Status: types.BeneficiaryStatusPending},
	}

	rec := env.do(t, http.MethodPatch, "/api/admin/beneficiaries/b1/validate", map[string]any{
		"approved": false,
		"reason":   "documento ilegível",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	record := env.beneficiaries.records[0]
	assert.Equal(t, types.BeneficiaryStatusRejected, record.Status)
	assert.Equal(t, "documento ilegível", record.Notes)

	require.Len(t, env.notifier.statusUpdates, 1)
	assert.False(t, env.notifier.statusUpdates[0].Approved)
	assert.Equal(t, "documento ilegível", env.notifier.statusUpdates[0].Reason)
}

func TestAdminValidateRequiresApprovedField(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{ID: "b1", Status: types.BeneficiaryStatusPending},
	}

	rec := env.do(t, http.MethodPatch, "/api/admin/beneficiaries/b1/validate", map[string]any{
		"reason": "sem decisão",
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminValidateUnknownBeneficiary(t *testing.T) {
	env := adminEnv(t)

	rec := env.do(t, http.MethodPatch, "/api/admin/beneficiaries/missing/validate", map[string]any{
		"approved": true,
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminGetBeneficiary(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{ID: "b1", Name: "Maria", Email: "maria@example.com", Status: types.BeneficiaryStatusPending},
	}

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries/b1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.Beneficiary
	decodeBody(t, rec, &got)
	assert.Equal(t, "Maria", got.Name)

	missing := env.do(t, http.MethodGet, "/api/admin/beneficiaries/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestAdminListBeneficiariesPagination(t *testing.T) {
	env := adminEnv(t)
	for i := 1; i <= 3; i++ {
		env.beneficiaries.records = append(env.beneficiaries.records, &types.Beneficiary{
			ID:     fmt.Sprintf("b%d", i),
			Name:   fmt.Sprintf("Pessoa %d", i),
			Email:  fmt.Sprintf("p%d@example.com", i),
			Status: types.BeneficiaryStatusPending,
		})
	}

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries?page=2&pageSize=1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.BeneficiaryPage
	decodeBody(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b2", page.Items[0].ID)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 3, page.Pages)
}

func TestAdminListBeneficiariesClampsQuery(t *testing.T) {
	env := adminEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries?page=0&pageSize=1000", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.BeneficiaryPage
	decodeBody(t, rec, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, types.MaxPageSize, page.PageSize)
}

func TestAdminListBeneficiariesDefaultsToPending(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{ID: "b1", Status: types.BeneficiaryStatusPending},
		{ID: "b2", Status: types.BeneficiaryStatusValidated},
	}

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.BeneficiaryPage
	decodeBody(t, rec, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b1", page.Items[0].ID)
}

func TestAdminListBeneficiariesDegradesOnStoreError(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.listErr = errors.New("connection refused")

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page types.BeneficiaryPage
	decodeBody(t, rec, &page)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestAdminExportBeneficiariesCSV(t *testing.T) {
	env := adminEnv(t)
	env.beneficiaries.records = []*types.Beneficiary{
		{
			ID:     "b1",
			Name:   `Ana "Nana" Lima`,
			Email:  "ana@example.com",
			Status: types.BeneficiaryStatusValidated,
			Address: types.Address{
				City:  "Recife",
				State: "PE",
			},
		},
	}

	rec := env.do(t, http.MethodGet, "/api/admin/beneficiaries/export.csv", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "beneficiaries.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	// Embedded quotes come out doubled inside a quoted field.
	assert.Contains(t, lines[1], `"Ana ""Nana"" Lima"`)
	assert.Contains(t, lines[1], "Recife/PE")
}
