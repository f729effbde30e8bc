package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adra/internal/store"
	"adra/pkg/types"
)

var seedDonations = []*types.Donation{
	{
		ID:      "seed-donation-0000000001",
		Donor:   types.Donor{Name: "Paulo Mendes", Email: "paulo.mendes+seed@example.com", Phone: "11977770001"},
		Address: types.Address{City: "São Paulo", State: "SP"},
		Type:    "itens",
		Items: []types.DonationItem{
			{Name: "Arroz 5kg", Qty: 2},
			{Name: "Feijão 1kg", Qty: 4},
		},
		Status: "novo",
	},
	{
		ID:      "seed-donation-0000000002",
		Donor:   types.Donor{Name: "Fernanda Alves", Email: "fernanda.alves+seed@example.com", Phone: "21977770002"},
		Address: types.Address{City: "Niterói", State: "RJ"},
		Type:    "transferencia",
		Items:   []types.DonationItem{},
		Status:  "novo",
	},
}

func SeedDonations(ctx context.Context, repo *store.DonationRepository) error {
	seeded := 0
	for _, donation := range seedDonations {
		_, err := repo.Donation(ctx, donation.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrDonationNotFound) {
			return fmt.Errorf("failed to check seed donation %s: %w", donation.ID, err)
		}

		donation.Timeline = []types.TimelineEntry{
			{At: time.Now(), By: "system", Status: donation.Status, Note: "seed"},
		}

		if err := repo.Insert(ctx, donation); err != nil {
			return fmt.Errorf("failed to insert seed donation %s: %w", donation.ID, err)
		}
		seeded++
	}

	fmt.Printf("seeded %d donations\n", seeded)
	return nil
}
