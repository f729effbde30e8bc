package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adra/internal/store"
	"adra/pkg/types"

	"github.com/k0kubun/pp/v3"
)

type seedBeneficiary struct {
	Name  string
	Email string
	Phone string
	City  string
	State string
	CPF   string
}

var seedBeneficiaries = []seedBeneficiary{
	{Name: "Maria Souza", Email: "maria.souza+seed1@example.com", Phone: "11988880001", City: "São Paulo", State: "SP", CPF: "11111111111"},
	{Name: "João Pereira", Email: "joao.pereira+seed2@example.com", Phone: "11988880002", City: "Campinas", State: "SP", CPF: "22222222222"},
	{Name: "Ana Lima", Email: "ana.lima+seed3@example.com", Phone: "21988880003", City: "Rio de Janeiro", State: "RJ", CPF: "33333333333"},
	{Name: "Carlos Santos", Email: "carlos.santos+seed4@example.com", Phone: "31988880004", City: "Belo Horizonte", State: "MG", CPF: "44444444444"},
}

// SeedBeneficiaries inserts demo pending registrations, skipping any
// email already present.
func SeedBeneficiaries(ctx context.Context, repo *store.BeneficiaryRepository) error {
	seeded := 0
	for _, sb := range seedBeneficiaries {
		_, err := repo.FindByEmail(ctx, sb.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrBeneficiaryNotFound) {
			return fmt.Errorf("failed to check seed beneficiary %s: %w", sb.Email, err)
		}

		beneficiary := &types.Beneficiary{
			Name:     sb.Name,
			Email:    sb.Email,
			Phone:    sb.Phone,
			Address:  types.Address{City: sb.City, State: sb.State},
			Document: &types.Document{Type: "CPF", Value: sb.CPF},
			Status:   types.BeneficiaryStatusPending,
			History: []types.HistoryEntry{
				{At: time.Now(), By: "system", Action: "create", Details: "seed"},
			},
		}

		if err := repo.Insert(ctx, beneficiary); err != nil {
			return fmt.Errorf("failed to insert seed beneficiary %s: %w", sb.Email, err)
		}

		pp.Println(beneficiary.ID, beneficiary.Email)
		seeded++
	}

	fmt.Printf("seeded %d beneficiaries\n", seeded)
	return nil
}
