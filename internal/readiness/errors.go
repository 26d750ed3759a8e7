package readiness

import "errors"

var (
	// ErrInvalidAnswer is returned when a value falls outside the question's declared domain.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrIncompleteResponse is returned when a final score is requested before every
	// non multi-select question has been answered.
	ErrIncompleteResponse = errors.New("incomplete response")
	ErrUnknownQuestion    = errors.New("unknown question")
	ErrUnknownVariant     = errors.New("unknown variant")
)
