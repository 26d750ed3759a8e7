package readiness

import (
	"fmt"
	"slices"
)

const (
	QuestionSleepHours          = "sleep_hours"
	QuestionSleepQuality        = "sleep_quality"
	QuestionEnergyLevel         = "energy_level"
	QuestionOverallSoreness     = "overall_soreness"
	QuestionSoreMuscleGroups    = "sore_muscle_groups"
	QuestionStressLevel         = "stress_level"
	QuestionMotivation          = "motivation"
	QuestionPreviousDayTraining = "previous_day_training"
	QuestionWorkoutFocus        = "workout_focus"
	QuestionLastWorkout         = "last_workout"
)

// Catalog is an ordered, non-empty and read-only list of questions.
type Catalog struct {
	questions []Question
	index     map[string]int
}

func NewCatalog(questions ...Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog needs at least one question")
	}

	index := make(map[string]int, len(questions))
	for i, q := range questions {
		if err := q.check(); err != nil {
			return nil, err
		}
		if _, ok := index[q.ID]; ok {
			return nil, fmt.Errorf("duplicate question id: %s", q.ID)
		}
		index[q.ID] = i
	}

	return &Catalog{
		questions: slices.Clone(questions),
		index:     index,
	}, nil
}

func MustNewCatalog(questions ...Question) *Catalog {
	c, err := NewCatalog(questions...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the i-th question in presentation order.
func (c *Catalog) At(i int) Question {
	return c.questions[i]
}

func (c *Catalog) Question(id string) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of all questions in presentation order.
func (c *Catalog) Questions() []Question {
	return slices.Clone(c.questions)
}

// Required returns the number of non multi-select questions.
func (c *Catalog) Required() int {
	n := 0
	for _, q := range c.questions {
		if !q.IsMultiSelect() {
			n++
		}
	}
	return n
}

func scaleQuestion(id, text string, category Category, icon string) Question {
	return Question{
		ID:       id,
		Text:     text,
		Category: category,
		Icon:     icon,
		Type:     AnswerTypeScale,
		Min:      1,
		Max:      5,
	}
}

func numberOptions(labels map[int]string, values ...int) []Option {
	options := make([]Option, 0, len(values))
	for _, v := range values {
		options = append(options, Option{Value: Number(v), Label: labels[v]})
	}
	return options
}

func tokenOptions(pairs ...string) []Option {
	options := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		options = append(options, Option{Value: Token(pairs[i]), Label: pairs[i+1]})
	}
	return options
}

func commonQuestions(sleepHours Question) []Question {
	return []Question{
		sleepHours,
		scaleQuestion(QuestionSleepQuality, "Rate your sleep quality (1 = very poor, 5 = excellent)", CategoryRecovery, "moon"),
		scaleQuestion(QuestionEnergyLevel, "Rate your current energy level (1 = completely drained, 5 = fully energized)", CategoryPhysical, "zap"),
		scaleQuestion(QuestionOverallSoreness, "Rate your overall muscle soreness (1 = no soreness, 5 = severe soreness)", CategoryPhysical, "activity"),
		{
			ID:       QuestionSoreMuscleGroups,
			Text:     "Which muscle groups are sore?",
			Category: CategoryPhysical,
			Icon:     "activity",
			Type:     AnswerTypeMultiSelect,
			Options: tokenOptions(
				"upper-body", "Upper body",
				"lower-body", "Lower body",
				"core", "Core",
			),
		},
		scaleQuestion(QuestionStressLevel, "Rate your current stress level (1 = very relaxed, 5 = very stressed)", CategoryMental, "brain"),
		scaleQuestion(QuestionMotivation, "Rate your motivation to train today (1 = not motivated, 5 = highly motivated)", CategoryMental, "target"),
		{
			ID:       QuestionPreviousDayTraining,
			Text:     "How intense was your training yesterday?",
			Category: CategoryRecovery,
			Icon:     "dumbbell",
			Type:     AnswerTypeSingleSelect,
			Options: numberOptions(map[int]string{
				1: "Rest day/no training",
				2: "Light activity",
				3: "Moderate training",
				4: "High intensity training",
				5: "Very intense/competition",
			}, 1, 2, 3, 4, 5),
		},
	}
}

// BaseQuestions is the single page checklist question set.
func BaseQuestions() []Question {
	return commonQuestions(Question{
		ID:       QuestionSleepHours,
		Text:     "How many hours of sleep did you get last night?",
		Category: CategoryRecovery,
		Icon:     "moon",
		Type:     AnswerTypeSingleSelect,
		Options: numberOptions(map[int]string{
			3:  "3 hours or less",
			4:  "4 hours",
			5:  "5 hours",
			6:  "6 hours",
			7:  "7 hours",
			8:  "8 hours",
			9:  "9 hours",
			10: "10+ hours",
		}, 3, 4, 5, 6, 7, 8, 9, 10),
	})
}

// ExtendedQuestions is the wizard question set, with workout focus and recency appended.
func ExtendedQuestions() []Question {
	questions := commonQuestions(Question{
		ID:       QuestionSleepHours,
		Text:     "How many hours of sleep did you get last night?",
		Category: CategoryRecovery,
		Icon:     "moon",
		Type:     AnswerTypeSingleSelect,
		Options: numberOptions(map[int]string{
			3: "4 hours or less",
			5: "5 hours",
			6: "6 hours",
			7: "7 hours",
			8: "8+ hours",
		}, 3, 5, 6, 7, 8),
	})

	return append(questions,
		Question{
			ID:       QuestionWorkoutFocus,
			Text:     "What was the focus of your last workout?",
			Category: CategoryRecovery,
			Icon:     "dumbbell",
			Type:     AnswerTypeMultiSelect,
			Options: tokenOptions(
				"upper-body", "Upper body strength",
				"lower-body", "Lower body strength",
				"cardio", "Cardiovascular training",
				"full-body", "Full body workout",
				"flexibility", "Flexibility/mobility",
				"sport-specific", "Sport-specific training",
				"no-workout", "No previous workout",
			),
		},
		Question{
			ID:       QuestionLastWorkout,
			Text:     "When was your last workout?",
			Category: CategoryRecovery,
			Icon:     "calendar",
			Type:     AnswerTypeSingleSelect,
			Options: numberOptions(map[int]string{
				0: "Today",
				1: "Yesterday",
				2: "2 days ago",
				3: "3 days ago",
				4: "More than 3 days ago",
			}, 0, 1, 2, 3, 4),
		},
	)
}
