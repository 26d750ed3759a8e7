package readiness

import (
	"fmt"
	"strings"
)

// Variant selects a question set and its matching recovery terms.
type Variant string

const (
	// VariantBase is the single page checklist: eight questions, two recovery terms.
	VariantBase Variant = "base"
	// VariantExtended is the wizard: workout focus and recency are folded into recovery.
	VariantExtended Variant = "extended"
)

func (v Variant) String() string {
	return string(v)
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base", "checklist":
		return VariantBase, nil
	case "extended", "wizard":
		return VariantExtended, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Engine bundles a catalog with its calculator.
type Engine struct {
	variant    Variant
	catalog    *Catalog
	calculator Calculator
}

func NewEngine(variant Variant) (*Engine, error) {
	switch variant {
	case VariantBase:
		return &Engine{
			variant:    variant,
			catalog:    MustNewCatalog(BaseQuestions()...),
			calculator: NewCalculator(BaseRecoveryTerms()...),
		}, nil
	case VariantExtended:
		return &Engine{
			variant:    variant,
			catalog:    MustNewCatalog(ExtendedQuestions()...),
			calculator: NewCalculator(ExtendedRecoveryTerms()...),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

func (e *Engine) Variant() Variant {
	return e.variant
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

func (e *Engine) Calculator() Calculator {
	return e.calculator
}

func (e *Engine) NewCollector() *Collector {
	return NewCollector(e.catalog)
}

func (e *Engine) NewWizard() *Wizard {
	return NewWizard(e.NewCollector())
}

// Compute scores any response, complete or not.
func (e *Engine) Compute(r Response) Score {
	return e.calculator.Compute(r)
}

type Result struct {
	Score          Score      `json:"score"`
	Levels         Levels     `json:"levels"`
	Recommendation string     `json:"recommendation"`
	Breakdown      []SubScore `json:"breakdown"`
}

func (e *Engine) result(r Response) Result {
	score := e.calculator.Compute(r)
	return Result{
		Score:          score,
		Levels:         score.Levels(),
		Recommendation: score.Recommendation(),
		Breakdown:      e.calculator.Breakdown(r),
	}
}

// Preview scores a partial response. Its result must not be presented as final.
func (e *Engine) Preview(c *Collector) Result {
	return e.result(c.response)
}

// Final scores a complete response and fails with ErrIncompleteResponse otherwise.
func (e *Engine) Final(c *Collector) (Result, error) {
	if !c.IsComplete() {
		return Result{}, fmt.Errorf("%w: %d questions remaining", ErrIncompleteResponse, c.Remaining())
	}
	return e.result(c.response), nil
}
