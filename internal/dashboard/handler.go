package dashboard

import (
	"errors"
	"net/http"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/auth"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/profile"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/dashboard", handler.HandleGet).Methods("GET").Name("dashboard")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	email, ok := auth.UserFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	summary, err := handler.service.Summary(ctx, email)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get dashboard [%s]: %s", email, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, summary)
}
