package readiness

import (
	"fmt"
	"maps"
	"slices"
)

// Response maps question ids to recorded answers.
type Response map[string]Answer

func (r Response) Clone() Response {
	if r == nil {
		return Response{}
	}
	return maps.Clone(r)
}

// number returns the numeric answer for id, or def when the question was not answered.
func (r Response) number(id string, def int) int {
	if n, ok := r[id].Int(); ok {
		return n
	}
	return def
}

func (r Response) tokenCount(id string) int {
	return len(r[id].tokens)
}

// Collector accumulates one check-in's answers, validating every write against the catalog.
type Collector struct {
	catalog  *Catalog
	response Response
}

func NewCollector(catalog *Catalog) *Collector {
	return &Collector{
		catalog:  catalog,
		response: Response{},
	}
}

// RestoreCollector rebuilds a collector from previously recorded answers.
// Every answer is revalidated.
func RestoreCollector(catalog *Catalog, response Response) (*Collector, error) {
	c := NewCollector(catalog)
	for id, a := range response {
		if err := c.Record(id, a); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) Catalog() *Catalog {
	return c.catalog
}

// Record stores the answer for the given question. A rejected write leaves the collector untouched.
func (c *Collector) Record(questionID string, a Answer) error {
	q, ok := c.catalog.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if err := q.Validate(a); err != nil {
		return err
	}

	if a.IsTokens() {
		a = Tokens(c.ordered(q, a.tokens)...)
	}
	c.response[questionID] = a

	return nil
}

// Toggle adds or removes a single token of a multi-select question.
func (c *Collector) Toggle(questionID, token string, checked bool) error {
	q, ok := c.catalog.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !q.IsMultiSelect() {
		return fmt.Errorf("%w: %s is not a multi-select question", ErrInvalidAnswer, questionID)
	}
	if q.optionOrder(token) < 0 {
		return fmt.Errorf("%w: %s has no option %q", ErrInvalidAnswer, questionID, token)
	}

	current := c.response[questionID].tokens
	var next []string
	if checked {
		next = append(slices.Clone(current), token)
	} else {
		next = slices.DeleteFunc(slices.Clone(current), func(t string) bool { return t == token })
	}

	return c.Record(questionID, Tokens(next...))
}

// ordered sorts tokens by their declared option position.
func (c *Collector) ordered(q Question, tokens []string) []string {
	sorted := slices.Clone(tokens)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return q.optionOrder(a) - q.optionOrder(b)
	})
	return sorted
}

func (c *Collector) Answer(questionID string) (Answer, bool) {
	a, ok := c.response[questionID]
	return a, ok
}

func (c *Collector) IsAnswered(questionID string) bool {
	_, ok := c.response[questionID]
	return ok
}

// IsComplete reports whether every non multi-select question has an answer.
func (c *Collector) IsComplete() bool {
	return c.Remaining() == 0
}

// Remaining returns the number of non multi-select questions still unanswered.
func (c *Collector) Remaining() int {
	remaining := 0
	for _, q := range c.catalog.questions {
		if q.IsMultiSelect() {
			continue
		}
		if _, ok := c.response[q.ID]; !ok {
			remaining++
		}
	}
	return remaining
}

// Response returns a snapshot of the recorded answers.
func (c *Collector) Response() Response {
	return c.response.Clone()
}

func (c *Collector) Clear() {
	c.response = Response{}
}
