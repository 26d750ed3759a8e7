package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/auth"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/middleware"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/profile"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(context.Context, string, redis_rate.Limit) (*redis_rate.Result, error) {
	return &redis_rate.Result{Allowed: 1}, nil
}

func newTestRouter(t *testing.T) (*mux.Router, *MocksessionService, *profile.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := NewMocksessionService(ctrl)
	service, metricsManager := newTestService(t)

	r := mux.NewRouter()
	profile.NewHandler(service, sessions).SetupRoutes(r, allowAllLimiter{}, 10, metricsManager)
	return r, sessions, service
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.1.1.1:4000"
	return req
}

func asUser(req *http.Request, email string) *http.Request {
	return req.WithContext(auth.WithUser(req.Context(), email))
}

func TestHandler_SignUpLoginLogout(t *testing.T) {
	r, sessions, _ := newTestRouter(t)
	signUp := newSignUpRequest()

	sessions.EXPECT().Login(gomock.Any(), signUp.Email, gomock.Any()).Return("token-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/signup", signUp))
	require.Equal(t, http.StatusCreated, rec.Code)

	var signUpResp profile.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signUpResp))
	assert.Equal(t, "token-1", signUpResp.Token)
	assert.Equal(t, profile.StepPersonalInfo, signUpResp.NextStep)
	assert.Equal(t, signUp.Email, signUpResp.Profile.Email)
	assert.NotContains(t, rec.Body.String(), "hashed:")

	// same email again
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/signup", signUp))
	assert.Equal(t, http.StatusConflict, rec.Code)

	sessions.EXPECT().Login(gomock.Any(), signUp.Email, gomock.Any()).Return("token-2", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/login", map[string]string{
		"email":    signUp.Email,
		"password": signUp.Password,
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	var loginResp profile.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	assert.Equal(t, "token-2", loginResp.Token)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/login", map[string]string{
		"email":    signUp.Email,
		"password": "nope-nope",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/login", map[string]string{
		"email":    "ghost@align.test",
		"password": "whatever",
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	sessions.EXPECT().Logout(gomock.Any(), "token-2").Return(true, nil)
	req := jsonRequest(t, "GET", "/a/logout", nil)
	req.Header.Set(middleware.AuthTokenHeader, "token-2")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged-out", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "GET", "/a/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SignUp_ValidationErrors(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "POST", "/a/signup", profile.SignUpRequest{Name: "Jane"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp profile.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Email is required", resp.Errors["email"])
	assert.NotContains(t, resp.Errors, "name")

	req, err := http.NewRequest("POST", "/a/signup", bytes.NewReader([]byte("name=jane")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SignUp_CharsetContentType(t *testing.T) {
	r, sessions, _ := newTestRouter(t)
	signUp := newSignUpRequest()

	sessions.EXPECT().Login(gomock.Any(), signUp.Email, gomock.Any()).Return("token-1", nil)
	req := jsonRequest(t, "POST", "/a/signup", signUp)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestHandler_OnboardingAndProfile(t *testing.T) {
	r, _, service := newTestRouter(t)
	signUp := newSignUpRequest()
	_, err := service.SignUp(context.Background(), signUp)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, asUser(jsonRequest(t, "POST", "/onboarding/fitness-goals", profile.GoalsData{
		MainGoals: []string{"lose-fat"},
	}), signUp.Email))
	require.Equal(t, http.StatusOK, rec.Code)
	var stepResp profile.StepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stepResp))
	assert.Equal(t, profile.StepActivityLevel, stepResp.NextStep)
	assert.Equal(t, []string{"lose-fat"}, stepResp.Profile.Goals.MainGoals)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asUser(jsonRequest(t, "POST", "/onboarding/activity-level", profile.GoalsData{}), signUp.Email))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select your activity level")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asUser(jsonRequest(t, "POST", "/onboarding/checkin", profile.GoalsData{}), signUp.Email))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asUser(jsonRequest(t, "PUT", "/profile/goals", completeGoals()), signUp.Email))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, asUser(jsonRequest(t, "GET", "/profile", nil), signUp.Email))
	require.Equal(t, http.StatusOK, rec.Code)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.HasCompletedOnboarding)
	assert.Equal(t, completeGoals(), p.Goals)

	// no user in context
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "GET", "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_UpdateUser_EmailChangeRenewsSession(t *testing.T) {
	r, sessions, service := newTestRouter(t)
	signUp := newSignUpRequest()
	_, err := service.SignUp(context.Background(), signUp)
	require.NoError(t, err)

	sessions.EXPECT().Logout(gomock.Any(), "old-token").Return(true, nil)
	sessions.EXPECT().Login(gomock.Any(), "moved@align.test", gomock.Any()).Return("new-token", nil)

	req := asUser(jsonRequest(t, "PUT", "/profile/user", profile.UpdateUserRequest{
		Name:  "Moved User",
		Email: "moved@align.test",
	}), signUp.Email)
	req.Header.Set(middleware.AuthTokenHeader, "old-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp profile.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-token", resp.Token)
	assert.Equal(t, "moved@align.test", resp.Profile.Email)
}

func TestHandler_Options(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, jsonRequest(t, "GET", "/onboarding/options", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var options map[string][]profile.Option
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &options))
	assert.Len(t, options["workoutFrequency"], 7)
	assert.Len(t, options["mainGoals"], 5)
}
