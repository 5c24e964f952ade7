package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/qsdiary/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUserNotFound = errors.New("user not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	var (
		u             User
		schedulesJson []byte
	)
	err = r.db.QueryRow(
		ctx,
		`SELECT id, time_zone, exercise_schedules FROM app_user WHERE id = $1;`,
		id,
	).Scan(&u.ID, &u.TimeZone, &schedulesJson)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(schedulesJson, &u.ExerciseSchedules); err != nil {
		return nil, fmt.Errorf("unmarshal exercise schedules: %w", err)
	}
	return &u, nil
}

// Save creates the user or replaces its time zone and schedules.
func (r *Repo) Save(ctx context.Context, u User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", u.ID))

	if u.ExerciseSchedules == nil {
		u.ExerciseSchedules = []ExerciseSchedule{}
	}
	schedulesJson, err := json.Marshal(u.ExerciseSchedules)
	if err != nil {
		return fmt.Errorf("marshal exercise schedules: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO app_user (id, time_zone, exercise_schedules) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET time_zone = EXCLUDED.time_zone, exercise_schedules = EXCLUDED.exercise_schedules;`,
		u.ID, u.TimeZone, schedulesJson,
	)
	return err
}

// IDs lists every known user, ordered by id.
func (r *Repo) IDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.ids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id FROM app_user ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
