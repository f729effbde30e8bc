package store

import (
	"adra/internal/utils"
	"adra/pkg/types"
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const necessidadeTableName = "adra.necessidades"

var necessidadeColumns = utils.StructTagValues(types.Necessidade{})

const necessidadeSearchExpr = `concat_ws(' ', id, nome, email, telefone, item, categoria)`

type NecessidadeRepository struct {
	pool *pgxpool.Pool
}

func NewNecessidadeRepository(pool *pgxpool.Pool) *NecessidadeRepository {
	return &NecessidadeRepository{pool: pool}
}

// Insert stores one row per requested item of a need-request.
func (r *NecessidadeRepository) Insert(ctx context.Context, necessidade *types.Necessidade) error {
	now := time.Now()
	if necessidade.ID == "" {
		necessidade.ID = utils.NanoID()
	}
	if necessidade.Status == "" {
		necessidade.Status = types.NecessidadeStatusPendente
	}
	necessidade.CriadoEm = now
	necessidade.AtualizadoEm = now

	query, args, err := psql().
		Insert(necessidadeTableName).
		SetMap(utils.StructToMap(necessidade)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert necessidade query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert necessidade")
}

// ApplyPatch records an admin triage decision on a single row.
func (r *NecessidadeRepository) ApplyPatch(ctx context.Context, id string, status types.NecessidadeStatus, observacaoInterna string) error {
	builder := psql().
		Update(necessidadeTableName).
		Set("atualizado_em", time.Now()).
		Where(sq.Eq{"id": id})

	if status != "" {
		builder = builder.Set("status", status)
	}
	if strings.TrimSpace(observacaoInterna) != "" {
		builder = builder.Set("observacao_interna", observacaoInterna)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate patch necessidade query for %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to patch necessidade %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrNecessidadeNotFound
	}

	return nil
}

func (r *NecessidadeRepository) List(ctx context.Context, q types.NecessidadeListQuery) ([]*types.Necessidade, int, error) {
	conds := sq.And{}
	if q.Status != "" {
		conds = append(conds, sq.Eq{"status": q.Status})
	}
	if q.Prioridade != "" {
		conds = append(conds, sq.Eq{"prioridade": q.Prioridade})
	}
	if q.Categoria != "" {
		conds = append(conds, sq.Eq{"categoria": q.Categoria})
	}
	if search := strings.TrimSpace(q.Query); search != "" {
		conds = append(conds, sq.Expr(necessidadeSearchExpr+" ILIKE ?", "%"+strings.ToLower(search)+"%"))
	}

	countBuilder := psql().Select("count(*)").From(necessidadeTableName)
	listBuilder := psql().Select(necessidadeColumns...).From(necessidadeTableName)
	if len(conds) > 0 {
		countBuilder = countBuilder.Where(conds)
		listBuilder = listBuilder.Where(conds)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate necessidade count query: %w", err)
	}

	var total int
	if err := pgxscan.Get(ctx, r.pool, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count necessidades: %w", err)
	}

	query, args, err := listBuilder.
		OrderBy("criado_em desc").
		Limit(uint64(q.PageSize)).
		Offset(uint64(q.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate list necessidades query: %w", err)
	}

	necessidades := make([]*types.Necessidade, 0)
	if err := pgxscan.Select(ctx, r.pool, &necessidades, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list necessidades: %w", err)
	}

	return necessidades, total, nil
}

func (r *NecessidadeRepository) All(ctx context.Context) ([]*types.Necessidade, error) {
	query, args, err := psql().
		Select(necessidadeColumns...).
		From(necessidadeTableName).
		OrderBy("criado_em desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all necessidades query: %w", err)
	}

	necessidades := make([]*types.Necessidade, 0)
	if err := pgxscan.Select(ctx, r.pool, &necessidades, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch all necessidades: %w", err)
	}

	return necessidades, nil
}
