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

const beneficiaryTableName = "adra.beneficiaries"

var beneficiaryColumns = utils.StructTagValues(types.Beneficiary{})

// beneficiarySearchExpr concatenates the fixed set of searchable fields;
// the admin list search is a case-insensitive substring match over it.
const beneficiarySearchExpr = `concat_ws(' ', id, name, email, phone, address->>'city', address->>'state', document->>'value')`

type BeneficiaryRepository struct {
	pool *pgxpool.Pool
}

func NewBeneficiaryRepository(pool *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{pool: pool}
}

func (r *BeneficiaryRepository) Beneficiary(ctx context.Context, id string) (*types.Beneficiary, error) {
	query, args, err := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate beneficiary query: %w", err)
	}

	var beneficiary types.Beneficiary
	err = pgxscan.Get(ctx, r.pool, &beneficiary, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("failed to fetch beneficiary: %w", err)
	}

	return &beneficiary, nil
}

// FindByEmail matches case-insensitively; it backs both the duplicate
// check at intake and the public status query.
func (r *BeneficiaryRepository) FindByEmail(ctx context.Context, email string) (*types.Beneficiary, error) {
	query, args, err := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		Where(sq.Expr("lower(email) = ?", strings.ToLower(strings.TrimSpace(email)))).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate beneficiary-by-email query: %w", err)
	}

	var beneficiary types.Beneficiary
	err = pgxscan.Get(ctx, r.pool, &beneficiary, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("failed to fetch beneficiary by email: %w", err)
	}

	return &beneficiary, nil
}

func (r *BeneficiaryRepository) Insert(ctx context.Context, beneficiary *types.Beneficiary) error {
	now := time.Now()
	if beneficiary.ID == "" {
		beneficiary.ID = utils.NanoID()
	}
	beneficiary.CreatedAt = now
	beneficiary.UpdatedAt = now

	query, args, err := psql().
		Insert(beneficiaryTableName).
		SetMap(utils.StructToMap(beneficiary)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert beneficiary query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert beneficiary")
}

// ApplyValidation records an admin decision: sets the status, overwrites
// notes only when a reason was given, and appends one history entry.
func (r *BeneficiaryRepository) ApplyValidation(ctx context.Context, id string, status types.BeneficiaryStatus, reason string, entry types.HistoryEntry) error {
	entryJSON, err := json.Marshal([]types.HistoryEntry{entry})
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	builder := psql().
		Update(beneficiaryTableName).
		Set("status", status).
		Set("history", sq.Expr("history || ?::jsonb", string(entryJSON))).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id})

	if strings.TrimSpace(reason) != "" {
		builder = builder.Set("notes", reason)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate validate beneficiary query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to apply validation to beneficiary %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrBeneficiaryNotFound
	}

	return nil
}

func (r *BeneficiaryRepository) List(ctx context.Context, q types.ListQuery) ([]*types.Beneficiary, int, error) {
	conds := sq.And{sq.Eq{"status": q.Status}}
	if search := strings.TrimSpace(q.Search); search != "" {
		conds = append(conds, sq.Expr(beneficiarySearchExpr+" ILIKE ?", "%"+strings.ToLower(search)+"%"))
	}

	countQuery, countArgs, err := psql().
		Select("count(*)").
		From(beneficiaryTableName).
		Where(conds).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate beneficiary count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, r.pool, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count beneficiaries: %w", err)
	}

	query, args, err := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		Where(conds).
		OrderBy("created_at desc").
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list beneficiaries query: %w", err)
	}

	beneficiaries := make([]*types.Beneficiary, 0)
	if err := pgxscan.Select(ctx, r.pool, &beneficiaries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list beneficiaries: %w", err)
	}

	return beneficiaries, total, nil
}

// All returns the whole collection for CSV export, ignoring any
// on-screen filter.
func (r *BeneficiaryRepository) All(ctx context.Context) ([]*types.Beneficiary, error) {
	query, args, err := psql().
		Select(beneficiaryColumns...).
		From(beneficiaryTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all beneficiaries query: %w", err)
	}

	beneficiaries := make([]*types.Beneficiary, 0)
	if err := pgxscan.Select(ctx, r.pool, &beneficiaries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch all beneficiaries: %w", err)
	}

	return beneficiaries, nil
}
