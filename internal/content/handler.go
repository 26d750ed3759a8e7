package content

import (
	"net/http"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct {
	exercises *ExerciseBank
	tips      *Tips
}

func NewHandler(exercises *ExerciseBank, tips *Tips) *Handler {
	return &Handler{
		exercises: exercises,
		tips:      tips,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/exercises", handler.HandleExercises).Methods("GET").Name("exercises")
	mainRouter.HandleFunc("/tips/categories", handler.HandleCategories).Methods("GET").Name("tips-categories")
	mainRouter.HandleFunc("/tips", handler.HandleArticles).Methods("GET").Name("tips")
	mainRouter.HandleFunc("/tips/{id}", handler.HandleArticle).Methods("GET").Name("tips-article")
}

func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.content.exercises")
	defer span.End()

	query := r.URL.Query()
	params := ListParams{
		Mode:           ListMode(query.Get("mode")),
		MuscleCategory: MuscleCategory(query.Get("muscle")),
		Type:           ExerciseType(query.Get("type")),
	}
	span.SetAttributes(attribute.String("mode", string(params.Mode)))

	exercises, err := handler.exercises.List(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, exercises)
}

func (handler *Handler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, handler.tips.Categories())
}

func (handler *Handler) HandleArticles(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.content.articles")
	defer span.End()

	articles, err := handler.tips.Articles(r.URL.Query().Get("category"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, articles)
}

func (handler *Handler) HandleArticle(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.content.article")
	defer span.End()

	article, err := handler.tips.Article(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, article)
}
