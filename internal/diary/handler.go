package diary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=diary_test

const (
	defaultRangeDays = 7
	maxRangeDays     = 366
)

type usersRepo interface {
	Get(ctx context.Context, id string) (*users.User, error)
}

type entriesAggregator interface {
	Entries(ctx context.Context, user users.User, from, to time.Time) ([]Day, error)
}

type Response struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Days []Day     `json:"days"`
}

type Handler struct {
	usersRepo  usersRepo
	aggregator entriesAggregator
}

func NewHandler(usersRepo usersRepo, aggregator entriesAggregator) *Handler {
	return &Handler{
		usersRepo:  usersRepo,
		aggregator: aggregator,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/diary", handler.HandleGetEntries).Methods("GET", "OPTIONS").Name("diary")
}

// HandleGetEntries serves the diary between the from and to days (YYYY-MM-DD,
// both included) in the user's time zone. Without params, the last week.
func (handler *Handler) HandleGetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.entries")
	defer span.End()

	userID, ok := users.RequestUserID(r)
	if !ok {
		http.Error(w, "error, user id missing", http.StatusUnauthorized)
		return
	}

	user, err := handler.usersRepo.Get(ctx, userID)
	if errors.Is(err, users.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("diary, get user [%s]: %s", userID, err)
		http.Error(w, "error, failed to get diary", http.StatusInternalServerError)
		return
	}

	loc := user.Location()
	to := dates.StartOfDay(time.Now(), loc).AddDate(0, 0, 1)
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		toDay, err := dates.ParseDate(toStr, loc)
		if err != nil {
			http.Error(w, "error, invalid to date", http.StatusBadRequest)
			return
		}
		to = toDay.AddDate(0, 0, 1)
	}
	from := to.AddDate(0, 0, -defaultRangeDays)
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err = dates.ParseDate(fromStr, loc)
		if err != nil {
			http.Error(w, "error, invalid from date", http.StatusBadRequest)
			return
		}
	}
	if !from.Before(to) {
		http.Error(w, "error, from must not be after to", http.StatusBadRequest)
		return
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour+time.Hour {
		http.Error(w, "error, date range too long", http.StatusBadRequest)
		return
	}

	days, err := handler.aggregator.Entries(ctx, *user, from, to)
	if err != nil {
		log.Errorf("diary entries for user [%s]: %s", userID, err)
		http.Error(w, "error, failed to get diary", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(Response{
		From: from,
		To:   to,
		Days: days,
	})
	if err != nil {
		log.Errorf("marshal diary: %s", err)
		http.Error(w, "error, failed to get diary", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(respJson))
}
