//go:build integration_test || all_tests

package internal_test

import (
	"bytes"
	"context"
	"net/http"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/checkin"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/dashboard"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/middleware"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/profile"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) signUp() string {
	password := gofakeit.Password(true, true, true, false, false, 10)
	req := profile.SignUpRequest{
		Name:            gofakeit.Name(),
		Email:           gofakeit.Email(),
		Password:        password,
		ConfirmPassword: password,
	}

	var resp profile.AuthResponse
	s.requestJSON(http.MethodPost, "/a/signup", "", req, http.StatusCreated, &resp)
	require.NotEmpty(s.T(), resp.Token)
	return resp.Token
}

func (s *IntegrationTestSuite) TestPublicRoutes() {
	t := s.T()

	var questions checkin.QuestionsResponse
	s.requestJSON(http.MethodGet, "/readiness/questions?mode=checklist", "", nil, http.StatusOK, &questions)
	assert.Equal(t, readiness.VariantBase, questions.Variant)
	assert.Len(t, questions.Questions, 8)

	var options map[string][]profile.Option
	s.requestJSON(http.MethodGet, "/onboarding/options", "", nil, http.StatusOK, &options)
	assert.Len(t, options["mainGoals"], 5)

	s.requestJSON(http.MethodGet, "/exercises", "", nil, http.StatusOK, nil)
	s.requestJSON(http.MethodGet, "/tips/categories", "", nil, http.StatusOK, nil)

	s.requestJSON(http.MethodGet, "/dashboard", "", nil, http.StatusUnauthorized, nil)
	s.requestJSON(http.MethodGet, "/readiness/history", "bad-token", nil, http.StatusUnauthorized, nil)
}

func (s *IntegrationTestSuite) TestCheckinToDashboard() {
	t := s.T()
	token := s.signUp()

	var summary dashboard.Summary
	s.requestJSON(http.MethodGet, "/dashboard", token, nil, http.StatusOK, &summary)
	assert.False(t, summary.HasCompletedCheckin)
	assert.Nil(t, summary.Score)
	assert.NotEmpty(t, summary.Name)

	var view checkin.View
	s.requestJSON(http.MethodPost, "/readiness/checkin", token, map[string]string{"mode": "checklist"}, http.StatusCreated, &view)
	require.NotEmpty(t, view.ID)
	assert.Equal(t, checkin.ModeChecklist, view.Mode)

	s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/submit", token, nil, http.StatusUnprocessableEntity, nil)

	answers := map[string]int{
		readiness.QuestionSleepHours:          8,
		readiness.QuestionSleepQuality:        5,
		readiness.QuestionEnergyLevel:         5,
		readiness.QuestionOverallSoreness:     1,
		readiness.QuestionStressLevel:         1,
		readiness.QuestionMotivation:          5,
		readiness.QuestionPreviousDayTraining: 1,
	}
	for questionID, value := range answers {
		s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/answer", token, map[string]any{
			"questionId": questionID,
			"value":      value,
		}, http.StatusOK, &view)
	}
	require.True(t, view.Complete)

	s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/submit", token, nil, http.StatusOK, &view)
	require.NotNil(t, view.Result)
	assert.Equal(t, 100, view.Result.Score.Overall)
	assert.Equal(t, readiness.LevelExcellent, view.Result.Levels.Overall)

	// exactly once
	s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/submit", token, nil, http.StatusConflict, nil)

	s.requestJSON(http.MethodGet, "/dashboard", token, nil, http.StatusOK, &summary)
	assert.True(t, summary.HasCompletedCheckin)
	require.NotNil(t, summary.Score)
	assert.Equal(t, 100, summary.Score.Overall)
	assert.Equal(t, readiness.Recommend(100), summary.Recommendation)

	var history checkin.HistoryResponse
	s.requestJSON(http.MethodGet, "/readiness/history", token, nil, http.StatusOK, &history)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, 100, history.Entries[0].Score.Overall)

	var count int
	require.NoError(t, s.DB.QueryRow(`SELECT count(*) FROM readiness_checkin`).Scan(&count))
	assert.GreaterOrEqual(t, count, 1)
}

// submitChecklist answers a checklist check-in with the best values and submits it.
func (s *IntegrationTestSuite) submitChecklist(token string) checkin.View {
	var view checkin.View
	s.requestJSON(http.MethodPost, "/readiness/checkin", token, map[string]string{"mode": "checklist"}, http.StatusCreated, &view)
	for questionID, value := range map[string]int{
		readiness.QuestionSleepHours:          8,
		readiness.QuestionSleepQuality:        5,
		readiness.QuestionEnergyLevel:         5,
		readiness.QuestionOverallSoreness:     1,
		readiness.QuestionStressLevel:         1,
		readiness.QuestionMotivation:          5,
		readiness.QuestionPreviousDayTraining: 1,
	} {
		s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/answer", token, map[string]any{
			"questionId": questionID,
			"value":      value,
		}, http.StatusOK, &view)
	}
	s.requestJSON(http.MethodPost, "/readiness/checkin/"+view.ID+"/submit", token, nil, http.StatusOK, &view)
	return view
}

func (s *IntegrationTestSuite) TestEmailChangeKeepsReadinessData() {
	t := s.T()
	token := s.signUp()

	submitted := s.submitChecklist(token)
	require.NotNil(t, submitted.Result)

	var open checkin.View
	s.requestJSON(http.MethodPost, "/readiness/checkin", token, map[string]string{"mode": "wizard"}, http.StatusCreated, &open)

	newEmail := "moved." + gofakeit.Email()
	var renamed profile.AuthResponse
	s.requestJSON(http.MethodPut, "/profile/user", token, profile.UpdateUserRequest{
		Name:  gofakeit.Name(),
		Email: newEmail,
	}, http.StatusOK, &renamed)
	require.NotEmpty(t, renamed.Token)
	token = renamed.Token

	var summary dashboard.Summary
	s.requestJSON(http.MethodGet, "/dashboard", token, nil, http.StatusOK, &summary)
	assert.True(t, summary.HasCompletedCheckin)
	require.NotNil(t, summary.Score)
	assert.Equal(t, 100, summary.Score.Overall)

	var history checkin.HistoryResponse
	s.requestJSON(http.MethodGet, "/readiness/history", token, nil, http.StatusOK, &history)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, submitted.ID, history.Entries[0].SessionID)

	// the check-in in progress follows the user
	var view checkin.View
	s.requestJSON(http.MethodGet, "/readiness/checkin/"+open.ID, token, nil, http.StatusOK, &view)
	assert.Equal(t, open.ID, view.ID)
	s.requestJSON(http.MethodGet, "/readiness/checkin/"+submitted.ID, token, nil, http.StatusOK, nil)
}

func (s *IntegrationTestSuite) TestMCPEndpoint() {
	t := s.T()
	ctx := context.Background()

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`)
	newRequest := func(secret string) *http.Request {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverEndpoint+"/mcp", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		if secret != "" {
			req.Header.Set(middleware.MCPSecretHeader, secret)
		}
		return req
	}

	resp, err := s.httpClient.Do(newRequest(""))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = s.httpClient.Do(newRequest(testMCPSecret))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
