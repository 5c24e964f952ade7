package nextsets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nextsets_test

type usersRepo interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type nextSetsService interface {
	ComputeNextSets(ctx context.Context, user users.User, asOf time.Time) ([]Prescription, error)
}

type Response struct {
	AsOf          time.Time      `json:"asOf"`
	Prescriptions []Prescription `json:"prescriptions"`
}

type Handler struct {
	usersRepo usersRepo
	service   nextSetsService
}

func NewHandler(usersRepo usersRepo, service nextSetsService) *Handler {
	return &Handler{
		usersRepo: usersRepo,
		service:   service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/nextsets", handler.HandleNextSets).Methods("GET", "OPTIONS").Name("next-sets")
}

// HandleNextSets answers with the prescriptions as of the optional asOf query
// param (RFC3339), now by default.
func (handler *Handler) HandleNextSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nextsets.get")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	asOf := time.Now()
	if asOfStr := r.URL.Query().Get("asOf"); asOfStr != "" {
		parsed, err := time.Parse(time.RFC3339, asOfStr)
		if err != nil {
			http.Error(w, "error, invalid asOf", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	user, err := handler.usersRepo.Get(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("next sets, get user [%s]: %s", userID, err)
		http.Error(w, "error, failed to compute next sets", http.StatusInternalServerError)
		return
	}

	prescriptions, err := handler.service.ComputeNextSets(ctx, *user, asOf)
	if err != nil {
		log.Errorf("compute next sets for user [%s]: %s", userID, err)
		http.Error(w, "error, failed to compute next sets", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(Response{
		AsOf:          asOf,
		Prescriptions: prescriptions,
	})
	if err != nil {
		log.Errorf("marshal next sets: %s", err)
		http.Error(w, "error, failed to compute next sets", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}
