package store

import (
	"adra/internal/utils"
	"adra/pkg/types"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donationTableName = "adra.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

const donationSearchExpr = `concat_ws(' ', id, donor->>'name', donor->>'email', donor->>'phone', address->>'city', address->>'state', type)`

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Donation(ctx context.Context, id string) (*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var donation types.Donation
	err = pgxscan.Get(ctx, r.pool, &donation, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}

	return &donation, nil
}

func (r *DonationRepository) Insert(ctx context.Context, donation *types.Donation) error {
	now := time.Now()
	if donation.ID == "" {
		donation.ID = utils.NanoID()
	}
	donation.CreatedAt = now
	donation.UpdatedAt = now

	query, args, err := psql().
		Insert(donationTableName).
		SetMap(utils.StructToMap(donation)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert donation")
}

// ApplyPatch applies an admin status patch. A status change appends one
// timeline entry; a patch without a status only touches updated_at and
// notes via the timeline note.
func (r *DonationRepository) ApplyPatch(ctx context.Context, id string, patch types.DonationPatch, entry *types.TimelineEntry) error {
	builder := psql().
		Update(donationTableName).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	if patch.Status != "" {
		builder = builder.Set("status", patch.Status)
	}

	if entry != nil {
		entryJSON, err := json.Marshal([]types.TimelineEntry{*entry})
		if err != nil {
			return fmt.Errorf("failed to marshal timeline entry: %w", err)
		}
		builder = builder.Set("timeline", sq.Expr("timeline || ?::jsonb", string(entryJSON)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate patch donation query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch donation %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDonationNotFound
	}

	return nil
}

func (r *DonationRepository) List(ctx context.Context, q types.ListQuery) ([]*types.Donation, int, error) {
	conds := sq.And{}
	if q.Status != "" {
		conds = append(conds, sq.Eq{"status": q.Status})
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		conds = append(conds, sq.Expr(donationSearchExpr+" ILIKE ?", "%"+strings.ToLower(search)+"%"))
	}

	countBuilder := psql().Select("count(*)").From(donationTableName)
	listBuilder := psql().Select(donationColumns...).From(donationTableName)
	if len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
		listBuilder = listBuilder.Where(conds)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate donation count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, r.pool, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	query, args, err := listBuilder.
		OrderBy("created_at desc").
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list donations query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}

	return donations, total, nil
}

func (r *DonationRepository) All(ctx context.Context) ([]*types.Donation, error) {
	query, args, err := psql().
		Select(donationColumns...).
		From(donationTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all donations query: %w", err)
	}

	donations := make([]*types.Donation, 0)
	if err := pgxscan.Select(ctx, r.pool, &donations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch all donations: %w", err)
	}

	return donations, nil
}
