package readiness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

type answerKind int

const (
	kindNone answerKind = iota
	kindNumber
	kindToken
	kindTokens
)

// Answer is a single recorded value: a number, a string token or a set of tokens.
// The zero value is an empty answer and is never accepted by a question.
type Answer struct {
	kind   answerKind
	number int
	token  string
	tokens []string
}

func Number(n int) Answer {
	return Answer{kind: kindNumber, number: n}
}

func Token(t string) Answer {
	return Answer{kind: kindToken, token: t}
}

// Tokens builds a token set answer. Tokens() with no arguments is an explicitly empty set.
func Tokens(tokens ...string) Answer {
	set := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !slices.Contains(set, t) {
			set = append(set, t)
		}
	}
	return Answer{kind: kindTokens, tokens: set}
}

func (a Answer) IsZero() bool {
	return a.kind == kindNone
}

func (a Answer) IsNumber() bool {
	return a.kind == kindNumber
}

func (a Answer) IsToken() bool {
	return a.kind == kindToken
}

func (a Answer) IsTokens() bool {
	return a.kind == kindTokens
}

func (a Answer) Int() (int, bool) {
	if a.kind != kindNumber {
		return 0, false
	}
	return a.number, true
}

func (a Answer) Str() (string, bool) {
	if a.kind != kindToken {
		return "", false
	}
	return a.token, true
}

// TokenSet returns a copy of the selected tokens.
func (a Answer) TokenSet() []string {
	if a.kind != kindTokens {
		return nil
	}
	return slices.Clone(a.tokens)
}

func (a Answer) Equal(other Answer) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case kindNumber:
		return a.number == other.number
	case kindToken:
		return a.token == other.token
	case kindTokens:
		return slices.Equal(a.tokens, other.tokens)
	default:
		return true
	}
}

func (a Answer) String() string {
	switch a.kind {
	case kindNumber:
		return strconv.Itoa(a.number)
	case kindToken:
		return a.token
	case kindTokens:
		return fmt.Sprintf("%v", a.tokens)
	default:
		return "<none>"
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case kindNumber:
		return json.Marshal(a.number)
	case kindToken:
		return json.Marshal(a.token)
	case kindTokens:
		if a.tokens == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.tokens)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}

	switch data[0] {
	case '"':
		var t string
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		*a = Token(t)
	case '[':
		var tokens []string
		if err := json.Unmarshal(data, &tokens); err != nil {
			return fmt.Errorf("%w: token set must be an array of strings", ErrInvalidAnswer)
		}
		*a = Tokens(tokens...)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: unsupported value %s", ErrInvalidAnswer, data)
		}
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return fmt.Errorf("%w: %s is not a whole number", ErrInvalidAnswer, data)
		}
		*a = Number(int(f))
	}

	return nil
}
