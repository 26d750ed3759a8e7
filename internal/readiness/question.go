package readiness

import (
	"fmt"
	"slices"
)

// Category can be one of:
//   - physical
//   - mental
//   - recovery
type Category string

const (
	CategoryPhysical Category = "physical"
	CategoryMental   Category = "mental"
	CategoryRecovery Category = "recovery"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPhysical, CategoryMental, CategoryRecovery:
		return true
	default:
		return false
	}
}

// AnswerType decides both how a question is rendered and how its answers are validated.
type AnswerType string

const (
	AnswerTypeSingleSelect AnswerType = "single-select"
	AnswerTypeScale        AnswerType = "scale"
	AnswerTypeMultiSelect  AnswerType = "multi-select"
)

func (t AnswerType) String() string {
	return string(t)
}

func (t AnswerType) IsValid() bool {
	switch t {
	case AnswerTypeSingleSelect, AnswerTypeScale, AnswerTypeMultiSelect:
		return true
	default:
		return false
	}
}

type Option struct {
	Value Answer `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Category Category   `json:"category"`
	Icon     string     `json:"icon"`
	Type     AnswerType `json:"type"`
	// Min and Max bound scale questions only.
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Options []Option `json:"options,omitempty"`
}

func (q Question) IsMultiSelect() bool {
	return q.Type == AnswerTypeMultiSelect
}

// Validate checks the answer against the question domain.
func (q Question) Validate(a Answer) error {
	switch q.Type {
	case AnswerTypeScale:
		n, ok := a.Int()
		if !ok {
			return fmt.Errorf("%w: %s expects a number, got %s", ErrInvalidAnswer, q.ID, a)
		}
		if n < q.Min || n > q.Max {
			return fmt.Errorf("%w: %s expects a value in [%d, %d], got %d", ErrInvalidAnswer, q.ID, q.Min, q.Max, n)
		}
		return nil
	case AnswerTypeSingleSelect:
		if a.IsZero() || a.IsTokens() {
			return fmt.Errorf("%w: %s expects a single option, got %s", ErrInvalidAnswer, q.ID, a)
		}
		if !q.hasOption(a) {
			return fmt.Errorf("%w: %s has no option %s", ErrInvalidAnswer, q.ID, a)
		}
		return nil
	case AnswerTypeMultiSelect:
		if !a.IsTokens() {
			return fmt.Errorf("%w: %s expects a set of tokens, got %s", ErrInvalidAnswer, q.ID, a)
		}
		for _, t := range a.tokens {
			if !q.hasOption(Token(t)) {
				return fmt.Errorf("%w: %s has no option %q", ErrInvalidAnswer, q.ID, t)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s has unsupported answer type %q", ErrInvalidAnswer, q.ID, q.Type)
	}
}

func (q Question) hasOption(a Answer) bool {
	return slices.ContainsFunc(q.Options, func(o Option) bool {
		return o.Value.Equal(a)
	})
}

// optionOrder returns the declared position of token t, or -1.
func (q Question) optionOrder(t string) int {
	return slices.IndexFunc(q.Options, func(o Option) bool {
		return o.Value.Equal(Token(t))
	})
}

func (q Question) check() error {
	if q.ID == "" {
		return fmt.Errorf("question without id")
	}
	if !q.Category.IsValid() {
		return fmt.Errorf("question %s: invalid category %q", q.ID, q.Category)
	}
	switch q.Type {
	case AnswerTypeScale:
		if q.Min > q.Max {
			return fmt.Errorf("question %s: empty scale [%d, %d]", q.ID, q.Min, q.Max)
		}
	case AnswerTypeSingleSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: no options", q.ID)
		}
		for _, o := range q.Options {
			if !o.Value.IsNumber() && !o.Value.IsToken() {
				return fmt.Errorf("question %s: option %q must be a number or a token", q.ID, o.Label)
			}
		}
	case AnswerTypeMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: no options", q.ID)
		}
		for _, o := range q.Options {
			if !o.Value.IsToken() {
				return fmt.Errorf("question %s: option %q must be a token", q.ID, o.Label)
			}
		}
	default:
		return fmt.Errorf("question %s: invalid answer type %q", q.ID, q.Type)
	}
	return nil
}
