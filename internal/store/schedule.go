package store

import (
	"adra/internal/utils"
	"adra/pkg/types"
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduleTableName = "adra.schedules"

var scheduleColumns = utils.StructTagValues(types.PickupSchedule{})

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) Insert(ctx context.Context, schedule *types.PickupSchedule) error {
	if schedule.ID == "" {
		schedule.ID = utils.NanoID()
	}
	if schedule.Status == "" {
		schedule.Status = types.ScheduleStatusNovo
	}
	schedule.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(scheduleTableName).
		SetMap(utils.StructToMap(schedule)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert schedule query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert schedule")
}

func (r *ScheduleRepository) All(ctx context.Context) ([]*types.PickupSchedule, error) {
	query, args, err := psql().
		Select(scheduleColumns...).
		From(scheduleTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate all schedules query: %w", err)
	}

	schedules := make([]*types.PickupSchedule, 0)
	if err := pgxscan.Select(ctx, r.pool, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch all schedules: %w", err)
	}

	return schedules, nil
}
