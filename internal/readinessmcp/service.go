package readinessmcp

import (
	"encoding/json"
	"fmt"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
)

// readinessService provides the scoring used by the tools. Used by Handler for testability.
type readinessService interface {
	Questions(variant string) (readiness.Variant, []readiness.Question, error)
	Compute(variant string, answersJSON string) (*Computation, error)
	Recommendation(score int) (*RecommendationResult, error)
}

// Computation is a scored response together with its completeness.
type Computation struct {
	Variant readiness.Variant `json:"variant"`
	readiness.Result
	Complete  bool     `json:"complete"`
	Remaining int      `json:"remaining"`
	Missing   []string `json:"missing,omitempty"`
}

type RecommendationResult struct {
	Score          int             `json:"score"`
	Level          readiness.Level `json:"level"`
	Recommendation string          `json:"recommendation"`
}

// Service scores readiness answers for both question sets.
type Service struct {
	engines        map[readiness.Variant]*readiness.Engine
	defaultVariant readiness.Variant
}

// NewService builds the engines of both variants. An empty default variant selects the extended one.
func NewService(defaultVariant readiness.Variant) (*Service, error) {
	if defaultVariant == "" {
		defaultVariant = readiness.VariantExtended
	}

	engines := make(map[readiness.Variant]*readiness.Engine, 2)
	for _, v := range []readiness.Variant{readiness.VariantBase, readiness.VariantExtended} {
		engine, err := readiness.NewEngine(v)
		if err != nil {
			return nil, err
		}
		engines[v] = engine
	}
	if _, ok := engines[defaultVariant]; !ok {
		return nil, fmt.Errorf("%w: %q", readiness.ErrUnknownVariant, defaultVariant)
	}

	return &Service{
		engines:        engines,
		defaultVariant: defaultVariant,
	}, nil
}

func (s *Service) engine(variant string) (*readiness.Engine, error) {
	if variant == "" {
		return s.engines[s.defaultVariant], nil
	}
	v, err := readiness.ParseVariant(variant)
	if err != nil {
		return nil, err
	}
	return s.engines[v], nil
}

func (s *Service) Questions(variant string) (readiness.Variant, []readiness.Question, error) {
	engine, err := s.engine(variant)
	if err != nil {
		return "", nil, err
	}
	return engine.Variant(), engine.Catalog().Questions(), nil
}

// Compute scores the answers, given as a JSON object of question id to value.
// Every answer is validated; a partial response is scored as a preview.
func (s *Service) Compute(variant string, answersJSON string) (*Computation, error) {
	engine, err := s.engine(variant)
	if err != nil {
		return nil, err
	}

	var response readiness.Response
	if answersJSON != "" {
		if err := json.Unmarshal([]byte(answersJSON), &response); err != nil {
			return nil, fmt.Errorf("%w: answers must be a JSON object of question id to value: %s", readiness.ErrInvalidAnswer, err)
		}
	}

	collector, err := readiness.RestoreCollector(engine.Catalog(), response)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, q := range engine.Catalog().Questions() {
		if !q.IsMultiSelect() && !collector.IsAnswered(q.ID) {
			missing = append(missing, q.ID)
		}
	}

	return &Computation{
		Variant:   engine.Variant(),
		Result:    engine.Preview(collector),
		Complete:  collector.IsComplete(),
		Remaining: collector.Remaining(),
		Missing:   missing,
	}, nil
}

func (s *Service) Recommendation(score int) (*RecommendationResult, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score must be within [0, 100], got %d", score)
	}
	return &RecommendationResult{
		Score:          score,
		Level:          readiness.LevelOf(score),
		Recommendation: readiness.Recommend(score),
	}, nil
}
