package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrWorkoutExists   = errors.New("workout already exists")
	ErrUnknownUser     = errors.New("unknown user")
)

// Filter narrows Find/FindOne. Zero values mean "no constraint"; soft deleted
// workouts are left out unless IncludeDeleted is set.
type Filter struct {
	UserID     string
	ExerciseID int
	Sources    []Source
	// From and To bound worked_out_at as [From, To).
	From *time.Time
	To   *time.Time
	// Before keeps workouts strictly older than the given time.
	Before *time.Time
	// AtOrBefore keeps workouts logged at or before the given time.
	AtOrBefore     *time.Time
	IncludeDeleted bool
	Ascending      bool
	Limit          int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const selectWorkoutColumns = `id, user_id, source, location_id, exercises, worked_out_at, created_at, updated_at, deleted_at`

func (r *Repo) Add(ctx context.Context, w Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Source == "" {
		w.Source = SourceSelf
	}
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout
				(id, user_id, source, location_id, exercises, exercise_ids, worked_out_at, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		w.ID, w.UserID, string(w.Source), w.LocationID, exercisesJson, w.ExerciseIDs(), w.WorkedOutAt, w.CreatedAt, w.UpdatedAt,
	)
	switch {
	case pkg.IsUniqueViolationError(err):
		return nil, fmt.Errorf("%w: %s", ErrWorkoutExists, w.ID)
	case pkg.IsForeignKeyViolationError(err):
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, w.UserID)
	case err != nil:
		return nil, err
	}

	span.SetAttributes(attribute.String("workout.id", w.ID))
	return &w, nil
}

// Upsert stores a workout under its stable id, replacing the previous version
// when the same source record is ingested again. A soft deleted workout stays
// deleted.
func (r *Repo) Upsert(ctx context.Context, w Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", w.ID), attribute.String("workout.source", string(w.Source)))

	if w.ID == "" {
		return fmt.Errorf("%w: upsert without id", ErrInvalidWorkout)
	}
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout
				(id, user_id, source, location_id, exercises, exercise_ids, worked_out_at, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				location_id = EXCLUDED.location_id,
				exercises = EXCLUDED.exercises,
				exercise_ids = EXCLUDED.exercise_ids,
				worked_out_at = EXCLUDED.worked_out_at,
				updated_at = EXCLUDED.updated_at;`,
		w.ID, w.UserID, string(w.Source), w.LocationID, exercisesJson, w.ExerciseIDs(), w.WorkedOutAt, w.CreatedAt, now,
	)
	return err
}

func (r *Repo) Update(ctx context.Context, w *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", w.ID))

	exercisesJson, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	w.UpdatedAt = time.Now()
	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET location_id = $1, exercises = $2, exercise_ids = $3, worked_out_at = $4, updated_at = $5
			WHERE id = $6 AND user_id = $7 AND deleted_at IS NULL;`,
		w.LocationID, exercisesJson, w.ExerciseIDs(), w.WorkedOutAt, w.UpdatedAt, w.ID, w.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) SoftDelete(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.softDelete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET deleted_at = $1 WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;`,
		time.Now(), id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, userID, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+selectWorkoutColumns+` FROM workout
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrWorkoutNotFound
	}
	return &found[0], nil
}

func (r *Repo) Find(ctx context.Context, filter Filter) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", filter.UserID),
		attribute.Int("exercise.id", filter.ExerciseID),
	)

	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}

	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	sources := make([]string, 0, len(filter.Sources))
	for _, s := range filter.Sources {
		sources = append(sources, string(s))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+selectWorkoutColumns+` FROM workout
			WHERE ($1::text = '' OR user_id = $1)
				AND ($2::int = 0 OR $2 = ANY(exercise_ids))
				AND (cardinality($3::text[]) = 0 OR source = ANY($3))
				AND ($4::timestamptz IS NULL OR worked_out_at >= $4)
				AND ($5::timestamptz IS NULL OR worked_out_at < $5)
				AND ($6::timestamptz IS NULL OR worked_out_at < $6)
				AND ($7::timestamptz IS NULL OR worked_out_at <= $7)
				AND ($8::boolean OR deleted_at IS NULL)
			ORDER BY worked_out_at `+order+`, id
			LIMIT $9::int;`,
		filter.UserID,
		filter.ExerciseID,
		sources,
		filter.From,
		filter.To,
		filter.Before,
		filter.AtOrBefore,
		filter.IncludeDeleted,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := scanWorkouts(rows)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("workouts.found", len(found)))
	return found, nil
}

// FindOne returns the latest workout matching filter, or nil when there is
// none.
func (r *Repo) FindOne(ctx context.Context, filter Filter) (*Workout, error) {
	filter.Limit = 1
	filter.Ascending = false
	found, err := r.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func scanWorkouts(rows pgx.Rows) ([]Workout, error) {
	var found []Workout
	for rows.Next() {
		var (
			w             Workout
			source        string
			locationID    *string
			exercisesJson []byte
		)
		if err := rows.Scan(
			&w.ID, &w.UserID, &source, &locationID, &exercisesJson,
			&w.WorkedOutAt, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Source = Source(source)
		if locationID != nil {
			w.LocationID = *locationID
		}
		if err := json.Unmarshal(exercisesJson, &w.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of workout %s: %w", w.ID, err)
		}
		found = append(found, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
