package readiness

import "fmt"

// Wizard walks the catalog one question at a time.
// The cursor always stays within [0, Len()-1].
type Wizard struct {
	*Collector
	cursor int
}

func NewWizard(collector *Collector) *Wizard {
	return &Wizard{Collector: collector}
}

// RestoreWizard places a wizard over an existing collector at the given cursor, clamped to the catalog bounds.
func RestoreWizard(collector *Collector, cursor int) *Wizard {
	w := NewWizard(collector)
	w.cursor = max(0, min(cursor, collector.catalog.Len()-1))
	return w
}

func (w *Wizard) Current() Question {
	return w.catalog.At(w.cursor)
}

func (w *Wizard) Cursor() int {
	return w.cursor
}

// Position returns the 1-based position of the current question and the question count.
func (w *Wizard) Position() (int, int) {
	return w.cursor + 1, w.catalog.Len()
}

func (w *Wizard) IsLast() bool {
	return w.cursor == w.catalog.Len()-1
}

// CanAdvance reports whether the current question allows moving on.
// Multi-select questions never block.
func (w *Wizard) CanAdvance() bool {
	q := w.Current()
	return q.IsMultiSelect() || w.IsAnswered(q.ID)
}

// Advance moves to the next question. From the last question it returns done=true
// and leaves the cursor in place.
func (w *Wizard) Advance() (done bool, err error) {
	if !w.CanAdvance() {
		return false, fmt.Errorf("%w: %s is not answered", ErrIncompleteResponse, w.Current().ID)
	}
	if w.IsLast() {
		if !w.IsComplete() {
			return false, fmt.Errorf("%w: %d questions remaining", ErrIncompleteResponse, w.Remaining())
		}
		return true, nil
	}
	w.cursor++
	return false, nil
}

// Retreat moves to the previous question. It is a no-op on the first one.
func (w *Wizard) Retreat() {
	if w.cursor > 0 {
		w.cursor--
	}
}

// Reset clears all answers and rewinds to the first question.
func (w *Wizard) Reset() {
	w.Clear()
	w.cursor = 0
}
