package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"
	"github.com/2beens/qsdiary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type recordsService interface {
	WorkoutRecords(ctx context.Context, userID, workoutID string) (*WorkoutRecords, error)
}

type Handler struct {
	service recordsService
}

func NewHandler(service recordsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts/{id}/records", handler.HandleWorkoutRecords).Methods("GET", "OPTIONS").Name("workout-records")
}

func (handler *Handler) HandleWorkoutRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.workout")
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

	res, err := handler.service.WorkoutRecords(ctx, userID, id)
	if errors.Is(err, workouts.ErrWorkoutNotFound) {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get records of workout [%s]: %s", id, err)
		http.Error(w, "error, failed to get workout records", http.StatusInternalServerError)
		return
	}

	resJson, err := json.Marshal(res)
	if err != nil {
		log.Errorf("marshal records of workout [%s]: %s", id, err)
		http.Error(w, "error, failed to get workout records", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(resJson))
}
