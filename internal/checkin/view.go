package checkin

import (
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
)

// View is what a client renders for a check-in session.
type View struct {
	ID        string             `json:"id"`
	Mode      Mode               `json:"mode"`
	Variant   readiness.Variant  `json:"variant"`
	Answers   readiness.Response `json:"answers"`
	Complete  bool               `json:"complete"`
	Remaining int                `json:"remaining"`
	Submitted bool               `json:"submitted"`

	// wizard only
	Position   int                 `json:"position,omitempty"`
	Total      int                 `json:"total"`
	Current    *readiness.Question `json:"current,omitempty"`
	CanAdvance bool                `json:"canAdvance,omitempty"`
	IsLast     bool                `json:"isLast,omitempty"`
	// Done is set when advancing past the last wizard question.
	Done bool `json:"done,omitempty"`

	// checklist only
	Questions []readiness.Question `json:"questions,omitempty"`

	// set once submitted
	Result *readiness.Result `json:"result,omitempty"`
}

// Preview is the score of a possibly partial response. It is final only when Complete is set.
type Preview struct {
	readiness.Result
	Complete  bool `json:"complete"`
	Remaining int  `json:"remaining"`
}

func newView(session *Session, engine *readiness.Engine, collector *readiness.Collector) View {
	v := View{
		ID:        session.ID,
		Mode:      session.Mode,
		Variant:   engine.Variant(),
		Answers:   collector.Response(),
		Complete:  collector.IsComplete(),
		Remaining: collector.Remaining(),
		Submitted: session.IsSubmitted(),
		Total:     engine.Catalog().Len(),
	}

	switch session.Mode {
	case ModeWizard:
		w := readiness.RestoreWizard(collector, session.Cursor)
		current := w.Current()
		v.Position, _ = w.Position()
		v.Current = &current
		v.CanAdvance = w.CanAdvance()
		v.IsLast = w.IsLast()
	case ModeChecklist:
		v.Questions = engine.Catalog().Questions()
	}

	if v.Submitted {
		result := engine.Preview(collector)
		v.Result = &result
	}
	return v
}
