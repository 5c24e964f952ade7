package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/catalog"
	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Add(ctx context.Context, w Workout) (*Workout, error)
	Get(ctx context.Context, userID, id string) (*Workout, error)
	Update(ctx context.Context, w *Workout) error
	SoftDelete(ctx context.Context, userID, id string) error
	Find(ctx context.Context, filter Filter) ([]Workout, error)
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

type DeleteWorkoutResponse struct {
	DeletedID string `json:"deletedId"`
}

type Handler struct {
	repo    workoutsRepo
	catalog *catalog.Catalog
}

func NewHandler(repo workoutsRepo, cat *catalog.Catalog) *Handler {
	return &Handler{
		repo:    repo,
		catalog: cat,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}
	workout.ID = ""
	workout.UserID = userID
	workout.DeletedAt = nil
	if workout.Source == "" {
		workout.Source = SourceSelf
	}
	if workout.WorkedOutAt.IsZero() {
		workout.WorkedOutAt = time.Now()
	}

	if err := Validate(handler.catalog, workout); err != nil {
		log.Debugf("new workout for user [%s] rejected: %s", userID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, workout)
	if errors.Is(err, ErrUnknownUser) {
		http.Error(w, "error, unknown user", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to add new workout for user [%s]: %s", userID, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", added.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get workout [%s]: %s", id, err)
		http.Error(w, "error, failed to get workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("marshal workout [%s]: %s", id, err)
		http.Error(w, "error, failed to get workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(workoutJson))
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("update workout, unmarshal json: %s", err)
		http.Error(w, "update workout failed", http.StatusBadRequest)
		return
	}
	workout.ID = id
	workout.UserID = userID
	if workout.Source == "" {
		workout.Source = SourceSelf
	}

	if err := Validate(handler.catalog, workout); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := handler.repo.Update(ctx, &workout)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update workout [%s]: %s", id, err)
		http.Error(w, "error, failed to update workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"updatedId":"`+id+`"}`)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.SoftDelete(ctx, userID, id)
	if errors.Is(err, ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete workout [%s]: %s", id, err)
		http.Error(w, "error, failed to delete workout", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteWorkoutResponse{DeletedID: id})
	if err != nil {
		log.Errorf("marshal delete workout response: %s", err)
		http.Error(w, "error, failed to delete workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}

// HandleList lists the user's workouts in [from, to), newest first. Dates are
// YYYY-MM-DD, the range defaults to the last 30 days.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	to := dates.StartOfDay(now, time.UTC).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -30)
	var err error
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if from, err = dates.ParseDate(fromStr, time.UTC); err != nil {
			http.Error(w, "error, invalid from date", http.StatusBadRequest)
			return
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if to, err = dates.ParseDate(toStr, time.UTC); err != nil {
			http.Error(w, "error, invalid to date", http.StatusBadRequest)
			return
		}
	}

	var sources []Source
	for _, s := range r.URL.Query()["source"] {
		src, err := ParseSource(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sources = append(sources, src)
	}

	found, err := handler.repo.Find(ctx, Filter{
		UserID:  userID,
		Sources: sources,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		log.Errorf("list workouts for user [%s]: %s", userID, err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}
	if found == nil {
		found = []Workout{}
	}

	respJson, err := json.Marshal(ListResponse{
		Workouts: found,
		Total:    len(found),
	})
	if err != nil {
		log.Errorf("marshal workouts list: %s", err)
		http.Error(w, "error, failed to list workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}
