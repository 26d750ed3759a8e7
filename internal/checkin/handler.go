package checkin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/auth"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type QuestionsResponse struct {
	Variant   readiness.Variant    `json:"variant"`
	Mode      Mode                 `json:"mode"`
	Required  int                  `json:"required"`
	Questions []readiness.Question `json:"questions"`
}

type HistoryResponse struct {
	Entries []Entry `json:"entries"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	router := mainRouter.PathPrefix("/readiness").Subrouter()
	router.HandleFunc("/questions", handler.HandleQuestions).Methods("GET").Name("readiness-questions")
	router.HandleFunc("/history", handler.HandleHistory).Methods("GET").Name("readiness-history")

	router.HandleFunc("/checkin", handler.HandleStart).Methods("POST").Name("checkin-start")
	router.HandleFunc("/checkin/{id}", handler.HandleGet).Methods("GET").Name("checkin-get")
	router.HandleFunc("/checkin/{id}", handler.HandleDiscard).Methods("DELETE").Name("checkin-discard")
	router.HandleFunc("/checkin/{id}/answer", handler.HandleAnswer).Methods("POST").Name("checkin-answer")
	router.HandleFunc("/checkin/{id}/toggle", handler.HandleToggle).Methods("POST").Name("checkin-toggle")
	router.HandleFunc("/checkin/{id}/advance", handler.HandleAdvance).Methods("POST").Name("checkin-advance")
	router.HandleFunc("/checkin/{id}/retreat", handler.HandleRetreat).Methods("POST").Name("checkin-retreat")
	router.HandleFunc("/checkin/{id}/preview", handler.HandlePreview).Methods("GET").Name("checkin-preview")
	router.HandleFunc("/checkin/{id}/submit", handler.HandleSubmit).Methods("POST").Name("checkin-submit")
	router.HandleFunc("/checkin/{id}/reset", handler.HandleReset).Methods("POST").Name("checkin-reset")
}

// modeParam reads the optional check-in mode, accepting variant names as well.
func modeParam(value string) (Mode, error) {
	if value == "" {
		return "", nil
	}
	if mode, err := ParseMode(value); err == nil {
		return mode, nil
	}
	variant, err := readiness.ParseVariant(value)
	if err != nil {
		return "", ErrUnknownMode
	}
	return ModeOf(variant), nil
}

func (handler *Handler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.questions")
	defer span.End()

	mode, err := modeParam(r.URL.Query().Get("mode"))
	if err == nil && mode == "" {
		mode, err = modeParam(r.URL.Query().Get("variant"))
	}
	if err != nil {
		http.Error(w, "error, unknown mode", http.StatusBadRequest)
		return
	}

	engine := handler.service.Engine(mode)
	pkg.WriteJSON(w, http.StatusOK, QuestionsResponse{
		Variant:   engine.Variant(),
		Mode:      ModeOf(engine.Variant()),
		Required:  engine.Catalog().Required(),
		Questions: engine.Catalog().Questions(),
	})
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.start")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	mode, err := modeParam(req.Mode)
	if err != nil {
		http.Error(w, "error, unknown mode", http.StatusBadRequest)
		return
	}

	view, err := handler.service.Start(ctx, email, mode)
	if err != nil {
		writeServiceErr(w, "start check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, view)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.get")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	view, err := handler.service.Get(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "get check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.discard")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	if err := handler.service.Discard(ctx, email, id); err != nil {
		writeServiceErr(w, "discard check-in", err)
		return
	}
	pkg.WriteTextResponseOK(w, "discarded")
}

func (handler *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.answer")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	var req struct {
		QuestionID string           `json:"questionId"`
		Value      readiness.Answer `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == "" {
		http.Error(w, "error, question id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("question", req.QuestionID))

	view, err := handler.service.Answer(ctx, email, id, req.QuestionID, req.Value)
	if err != nil {
		writeServiceErr(w, "answer check-in question", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.toggle")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	var req struct {
		QuestionID string `json:"questionId"`
		Token      string `json:"token"`
		Checked    bool   `json:"checked"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuestionID == "" || req.Token == "" {
		http.Error(w, "error, question id or token empty", http.StatusBadRequest)
		return
	}

	view, err := handler.service.Toggle(ctx, email, id, req.QuestionID, req.Token, req.Checked)
	if err != nil {
		writeServiceErr(w, "toggle check-in option", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.advance")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	view, err := handler.service.Advance(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "advance check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleRetreat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.retreat")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	view, err := handler.service.Retreat(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "retreat check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.preview")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	preview, err := handler.service.Preview(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "preview check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, preview)
}

func (handler *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.submit")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	view, err := handler.service.Submit(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "submit check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.reset")
	defer span.End()

	email, id, ok := sessionParams(w, r)
	if !ok {
		return
	}

	view, err := handler.service.Reset(ctx, email, id)
	if err != nil {
		writeServiceErr(w, "reset check-in", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, view)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkin.history")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil || limit < 1 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
	}

	entries, err := handler.service.History(ctx, email, limit)
	if err != nil {
		writeServiceErr(w, "check-in history", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
}

func sessionParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	email, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", "", false
	}
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return "", "", false
	}
	return email, id, true
}

func writeServiceErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "check-in not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadySubmitted):
		http.Error(w, "check-in already submitted", http.StatusConflict)
	case errors.Is(err, readiness.ErrIncompleteResponse):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case IsClientErr(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
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
