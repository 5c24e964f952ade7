//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/dates"
	"github.com/2beens/qsdiary/internal/diary"
	"github.com/2beens/qsdiary/internal/middleware"
	"github.com/2beens/qsdiary/internal/nextsets"
	"github.com/2beens/qsdiary/internal/records"
	"github.com/2beens/qsdiary/internal/users"
	"github.com/2beens/qsdiary/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, userID string, body any) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.APITokenHeader, testAPIToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(users.UserIDHeader, userID)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) newUser(ctx context.Context, schedules ...users.ExerciseSchedule) string {
	userID := "e2e-" + gofakeit.UUID()
	status, body := s.doRequest(ctx, "PUT", "/users/"+userID, userID, users.User{
		TimeZone:          "Europe/Berlin",
		ExerciseSchedules: schedules,
	})
	require.Equal(s.T(), http.StatusOK, status, string(body))
	return userID
}

func squat(at time.Time, kilos ...float64) workouts.Workout {
	sets := make([]workouts.Set, 0, len(kilos))
	for _, k := range kilos {
		sets = append(sets, workouts.Set{Inputs: []workouts.Input{{Value: 5}, {Value: k, Unit: "kg"}}})
	}
	return workouts.Workout{
		WorkedOutAt: at,
		Exercises:   []workouts.Exercise{{ExerciseID: 1, Sets: sets}},
	}
}

func (s *IntegrationTestSuite) TestAuthRequired() {
	t := s.T()

	req, err := http.NewRequest("GET", serverEndpoint+"/diary", nil)
	require.NoError(t, err)
	req.Header.Set(users.UserIDHeader, diaryUserID)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestUsers() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	userID := s.newUser(ctx)

	status, body := s.doRequest(ctx, "GET", "/users/"+userID, userID, nil)
	require.Equal(t, http.StatusOK, status)
	var u users.User
	require.NoError(t, json.Unmarshal(body, &u))
	assert.Equal(t, userID, u.ID)
	assert.Equal(t, "Europe/Berlin", u.TimeZone)

	status, _ = s.doRequest(ctx, "GET", "/users/nobody-"+gofakeit.UUID(), userID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, "PUT", "/users/"+userID, userID, users.User{TimeZone: "Mars/Olympus"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestWorkoutsAndRecords() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	userID := s.newUser(ctx)
	now := time.Now().UTC().Truncate(time.Second)

	status, body := s.doRequest(ctx, "POST", "/workouts", userID, squat(now.Add(-48*time.Hour), 100))
	require.Equal(t, http.StatusCreated, status, string(body))
	var first workouts.Workout
	require.NoError(t, json.Unmarshal(body, &first))
	require.NotEmpty(t, first.ID)

	status, body = s.doRequest(ctx, "POST", "/workouts", userID, squat(now, 90, 110))
	require.Equal(t, http.StatusCreated, status, string(body))
	var second workouts.Workout
	require.NoError(t, json.Unmarshal(body, &second))

	status, body = s.doRequest(ctx, "GET", fmt.Sprintf("/workouts/%s/records", second.ID), userID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var recs records.WorkoutRecords
	require.NoError(t, json.Unmarshal(body, &recs))
	assert.Equal(t, second.ID, recs.WorkoutID)
	require.Len(t, recs.Exercises, 1)
	require.Len(t, recs.Exercises[0].Sets, 2)
	assert.False(t, recs.Exercises[0].Sets[0].Any())
	assert.True(t, recs.Exercises[0].Sets[1].AllTimePR)

	// another user cannot see the workout
	status, _ = s.doRequest(ctx, "GET", "/workouts/"+second.ID, diaryUserID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.doRequest(ctx, "DELETE", "/workouts/"+first.ID, userID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.doRequest(ctx, "GET", "/workouts/"+first.ID, userID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	invalid := squat(now, 100)
	invalid.Exercises[0].ExerciseID = 999999
	status, _ = s.doRequest(ctx, "POST", "/workouts", userID, invalid)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestNextSets() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	userID := s.newUser(ctx, users.ExerciseSchedule{
		ExerciseID:   1,
		Enabled:      true,
		WorkingSets:  1,
		WorkingReps:  5,
		BaseWeight:   40,
		Increment:    2.5,
		DeloadFactor: 0.9,
		Frequency:    dates.Duration{Days: 2},
	})

	status, body := s.doRequest(ctx, "GET", "/nextsets", userID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var resp nextsets.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Prescriptions, 1)
	assert.True(t, resp.Prescriptions[0].Due)
	assert.Equal(t, 40.0, resp.Prescriptions[0].NextWorkingSetsWeight)

	status, body = s.doRequest(ctx, "POST", "/workouts", userID, squat(time.Now().Add(-time.Hour), 60))
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = s.doRequest(ctx, "GET", "/nextsets", userID, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Prescriptions, 1)
	assert.True(t, resp.Prescriptions[0].Successful)
	assert.False(t, resp.Prescriptions[0].Due)
	assert.Equal(t, 62.5, resp.Prescriptions[0].NextWorkingSetsWeight)
}

func (s *IntegrationTestSuite) TestDiary() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := s.T()

	collect := func() diary.Entry {
		status, body := s.doRequest(ctx, "GET", "/diary", diaryUserID, nil)
		require.Equal(t, http.StatusOK, status, string(body))
		var resp diary.Response
		require.NoError(t, json.Unmarshal(body, &resp))

		var all diary.Entry
		for _, day := range resp.Days {
			all.Workouts = append(all.Workouts, day.Entry.Workouts...)
			all.Food = append(all.Food, day.Entry.Food...)
			all.Ascends = append(all.Ascends, day.Entry.Ascends...)
			all.Runs = append(all.Runs, day.Entry.Runs...)
		}
		return all
	}

	// the fitocracy workout shows up once the first ingestion run is done
	var entry diary.Entry
	require.Eventually(t, func() bool {
		entry = collect()
		return len(entry.Workouts) > 0
	}, 10*time.Second, 200*time.Millisecond)

	require.Len(t, entry.Workouts, 1)
	assert.Equal(t, workouts.SourceFitocracy, entry.Workouts[0].Source)
	require.Len(t, entry.Food, 1)
	assert.Equal(t, "Oats", entry.Food[0].Name)
	require.Len(t, entry.Ascends, 1)
	assert.True(t, entry.Ascends[0].Flash)
	assert.Equal(t, "yellow", entry.Ascends[0].Climb.Color)
	require.Len(t, entry.Runs, 1)
	assert.Equal(t, 5.0, entry.Runs[0].DistanceKm)

	status, _ := s.doRequest(ctx, "GET", "/diary?from=2024-02-10&to=2024-02-01", diaryUserID, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
