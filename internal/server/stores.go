package server

import (
	"context"

	"adra/pkg/types"
)

// Storage interfaces consumed by the handlers. The pgx-backed
// repositories in internal/store satisfy them; tests substitute
// in-memory fakes.

type BeneficiaryStore interface {
	Beneficiary(ctx context.Context, id string) (*types.Beneficiary, error)
	FindByEmail(ctx context.Context, email string) (*types.Beneficiary, error)
	Insert(ctx context.Context, beneficiary *types.Beneficiary) error
	ApplyValidation(ctx context.Context, id string, status types.BeneficiaryStatus, reason string, entry types.HistoryEntry) error
	List(ctx context.Context, q types.ListQuery) ([]*types.Beneficiary, int, error)
	All(ctx context.Context) ([]*types.Beneficiary, error)
}

type DonationStore interface {
	Donation(ctx context.Context, id string) (*types.Donation, error)
	ApplyPatch(ctx context.Context, id string, patch types.DonationPatch, entry *types.TimelineEntry) error
	List(ctx context.Context, q types.ListQuery) ([]*types.Donation, int, error)
	All(ctx context.Context) ([]*types.Donation, error)
}

type ScheduleStore interface {
	Insert(ctx context.Context, schedule *types.PickupSchedule) error
	All(ctx context.Context) ([]*types.PickupSchedule, error)
}

type NecessidadeStore interface {
	Insert(ctx context.Context, necessidade *types.Necessidade) error
	ApplyPatch(ctx context.Context, id string, status types.NecessidadeStatus, observacaoInterna string) error
	List(ctx context.Context, q types.NecessidadeListQuery) ([]*types.Necessidade, int, error)
	All(ctx context.Context) ([]*types.Necessidade, error)
}

type UserStore interface {
	User(ctx context.Context, id string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
}

// Notifier is the best-effort email side-effect invoked after state
// changes. Errors are logged by the caller and never surfaced.
type Notifier interface {
	SendNewBeneficiaryNotification(beneficiary *types.Beneficiary) error
	SendBeneficiaryStatusUpdate(email string, approved bool, reason string) error
}
