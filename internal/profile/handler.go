package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/auth"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/middleware"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/metrics"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type sessionService interface {
	Login(ctx context.Context, email string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type AuthResponse struct {
	Token    string  `json:"token"`
	NextStep Step    `json:"nextStep"`
	Profile  Profile `json:"profile"`
}

type StepResponse struct {
	NextStep Step    `json:"nextStep"`
	Profile  Profile `json:"profile"`
}

type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

type Handler struct {
	service  *Service
	sessions sessionService
}

func NewHandler(service *Service, sessions sessionService) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/profile", handler.HandleGet).Methods("GET").Name("profile-get")
	mainRouter.HandleFunc("/profile/user", handler.HandleUpdateUser).Methods("PUT").Name("profile-update-user")
	mainRouter.HandleFunc("/profile/goals", handler.HandleUpdateGoals).Methods("PUT").Name("profile-update-goals")
	mainRouter.HandleFunc("/onboarding/options", handler.HandleOptions).Methods("GET").Name("onboarding-options")
	mainRouter.HandleFunc("/onboarding/{step}", handler.HandleSubmitStep).Methods("POST").Name("onboarding-step")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/signup", handler.HandleSignUp).
		Methods("POST", "OPTIONS").Name("signup")
	loginSubrouter.
		HandleFunc("/login", handler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/logout", handler.HandleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the account endpoints to prevent credentials guessing
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

func (handler *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.signUp")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var req SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := handler.service.SignUp(ctx, req)
	if err != nil {
		handler.writeServiceErr(w, "sign up", err)
		return
	}

	token, err := handler.sessions.Login(ctx, p.UserData.Email, time.Now())
	if err != nil {
		log.Errorf("sign up, login [%s]: %s", p.UserData.Email, err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, AuthResponse{
		Token:    token,
		NextStep: StepPersonalInfo,
		Profile:  p.Public(),
	})
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}
	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	p, next, err := handler.service.SignIn(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		log.Tracef("failed login attempt for user [%s]: %s", loginReq.Email, err)
		handler.writeServiceErr(w, "login", err)
		return
	}

	token, err := handler.sessions.Login(ctx, p.UserData.Email, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success: %s", p.UserData.Email)
	pkg.WriteJSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		NextStep: next,
		Profile:  p.Public(),
	})
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	p, err := handler.service.Get(ctx, email)
	if err != nil {
		handler.writeServiceErr(w, "get profile", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, p.Public())
}

func (handler *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.updateUser")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := handler.service.UpdateUserData(ctx, email, req)
	if err != nil {
		handler.writeServiceErr(w, "update user", err)
		return
	}

	if p.UserData.Email == email {
		pkg.WriteJSON(w, http.StatusOK, p.Public())
		return
	}

	// the session points to the old email, so it is replaced by a fresh one
	if _, err := handler.sessions.Logout(ctx, r.Header.Get(middleware.AuthTokenHeader)); err != nil {
		log.Errorf("update user, logout old session: %s", err)
	}
	token, err := handler.sessions.Login(ctx, p.UserData.Email, time.Now())
	if err != nil {
		log.Errorf("update user, login [%s]: %s", p.UserData.Email, err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, AuthResponse{
		Token:    token,
		NextStep: StepDashboard,
		Profile:  p.Public(),
	})
}

func (handler *Handler) HandleUpdateGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.updateGoals")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var goals GoalsData
	if !decodeJSON(w, r, &goals) {
		return
	}

	p, err := handler.service.UpdateGoals(ctx, email, goals)
	if err != nil {
		handler.writeServiceErr(w, "update goals", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, p.Public())
}

func (handler *Handler) HandleSubmitStep(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.submitStep")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	step, err := ParseStep(mux.Vars(r)["step"])
	if err != nil {
		http.Error(w, "error, unknown onboarding step", http.StatusNotFound)
		return
	}

	var patch GoalsData
	if !decodeJSON(w, r, &patch) {
		return
	}

	p, next, err := handler.service.SubmitStep(ctx, email, step, patch)
	if err != nil {
		handler.writeServiceErr(w, "submit onboarding step", err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, StepResponse{
		NextStep: next,
		Profile:  p.Public(),
	})
}

func (handler *Handler) HandleOptions(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, Options())
}

func (handler *Handler) writeServiceErr(w http.ResponseWriter, op string, err error) {
	if fields := FieldErrors(err); fields != nil {
		pkg.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: fields})
		return
	}

	switch {
	case errors.Is(err, ErrUserExists):
		http.Error(w, "user already exists, please sign in instead", http.StatusConflict)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, "user not found, please sign up first", http.StatusNotFound)
	case errors.Is(err, ErrWrongPassword):
		http.Error(w, "error, wrong credentials", http.StatusUnauthorized)
	case errors.Is(err, ErrUnknownStep):
		http.Error(w, "error, unknown onboarding step", http.StatusNotFound)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if !pkg.IsJSONRequest(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("unmarshal json request [%s]: %s", r.URL.Path, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
