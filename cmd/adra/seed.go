package main

import (
	"context"
	"fmt"

	"adra/internal/db"
	"adra/internal/seed"
	"adra/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo data for local development",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		beneficiaryRepo := store.NewBeneficiaryRepository(pool)
		donationRepo := store.NewDonationRepository(pool)

		logrus.Info("Seeding beneficiaries...")
		if err := seed.SeedBeneficiaries(ctx, beneficiaryRepo); err != nil {
			return fmt.Errorf("failed to seed beneficiaries: %w", err)
		}

		logrus.Info("Seeding donations...")
		if err := seed.SeedDonations(ctx, donationRepo); err != nil {
			return fmt.Errorf("failed to seed donations: %w", err)
		}

		logrus.Info("Seed data in place")

		return nil
	},
}
