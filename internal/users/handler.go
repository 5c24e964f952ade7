package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Get(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, u User) error
}

type Handler struct {
	repo usersRepo
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-user")
	r.HandleFunc("/users/{id}", handler.HandleSave).Methods("PUT", "OPTIONS").Name("save-user")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	u, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get user [%s]: %s", id, err)
		http.Error(w, "error, failed to get user", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(u)
	if err != nil {
		log.Errorf("marshal user [%s]: %s", id, err)
		http.Error(w, "error, failed to get user", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(userJson))
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.save")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var u User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		log.Tracef("save user, unmarshal json: %s", err)
		http.Error(w, "error, invalid user json", http.StatusBadRequest)
		return
	}
	u.ID = id

	if u.TimeZone != "" {
		if _, err := time.LoadLocation(u.TimeZone); err != nil {
			http.Error(w, "error, unknown time zone", http.StatusBadRequest)
			return
		}
	}
	for _, s := range u.ExerciseSchedules {
		if err := s.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := handler.repo.Save(ctx, u); err != nil {
		log.Errorf("save user [%s]: %s", id, err)
		http.Error(w, "error, failed to save user", http.StatusInternalServerError)
		return
	}

	log.Debugf("user [%s] saved with %d schedules", id, len(u.ExerciseSchedules))
	pkg.WriteJSONResponseOK(w, `{"status":"ok"}`)
}
