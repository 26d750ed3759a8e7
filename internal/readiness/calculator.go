package readiness

import "math"

// Defaults for unanswered questions. Negative signals default to their worst value.
const (
	DefaultOverallSoreness     = 5
	DefaultStressLevel         = 5
	DefaultPreviousDayTraining = 3
	DefaultLastWorkout         = 2
)

const muscleGroupCount = 3

type Score struct {
	Physical int `json:"physical"`
	Mental   int `json:"mental"`
	Recovery int `json:"recovery"`
	Overall  int `json:"overall"`
}

// Term is one 0-100 sub-score derived from raw answers.
type Term struct {
	Name     string
	Category Category
	Value    func(r Response) float64
}

type SubScore struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Value    float64  `json:"value"`
}

var (
	SleepTerm = Term{Name: "sleep", Category: CategoryPhysical, Value: func(r Response) float64 {
		return math.Min(100, float64(r.number(QuestionSleepHours, 0))/8*100)
	}}
	EnergyTerm = Term{Name: "energy", Category: CategoryPhysical, Value: func(r Response) float64 {
		return float64(r.number(QuestionEnergyLevel, 0)) / 5 * 100
	}}
	SorenessTerm = Term{Name: "soreness", Category: CategoryPhysical, Value: func(r Response) float64 {
		return float64(5-r.number(QuestionOverallSoreness, DefaultOverallSoreness)+1) / 5 * 100
	}}
	MuscleGroupTerm = Term{Name: "muscle_groups", Category: CategoryPhysical, Value: func(r Response) float64 {
		count := min(r.tokenCount(QuestionSoreMuscleGroups), muscleGroupCount)
		if count == 0 {
			return 100
		}
		return float64(muscleGroupCount-count) / muscleGroupCount * 100
	}}

	StressTerm = Term{Name: "stress", Category: CategoryMental, Value: func(r Response) float64 {
		return float64(5-r.number(QuestionStressLevel, DefaultStressLevel)+1) / 5 * 100
	}}
	MotivationTerm = Term{Name: "motivation", Category: CategoryMental, Value: func(r Response) float64 {
		return float64(r.number(QuestionMotivation, 0)) / 5 * 100
	}}

	SleepQualityTerm = Term{Name: "sleep_quality", Category: CategoryRecovery, Value: func(r Response) float64 {
		return float64(r.number(QuestionSleepQuality, 0)) / 5 * 100
	}}
	TrainingLoadTerm = Term{Name: "training_load", Category: CategoryRecovery, Value: func(r Response) float64 {
		return float64(5-r.number(QuestionPreviousDayTraining, DefaultPreviousDayTraining)+1) / 5 * 100
	}}
	WorkoutRecencyTerm = Term{Name: "workout_recency", Category: CategoryRecovery, Value: func(r Response) float64 {
		return float64(4-r.number(QuestionLastWorkout, DefaultLastWorkout)+1) / 4 * 100
	}}
	WorkoutFocusTerm = Term{Name: "workout_focus", Category: CategoryRecovery, Value: func(r Response) float64 {
		count := r.tokenCount(QuestionWorkoutFocus)
		if count == 0 {
			return 100
		}
		return math.Max(50, 100-float64(count)*10)
	}}
)

var (
	physicalTerms = []Term{SleepTerm, EnergyTerm, SorenessTerm, MuscleGroupTerm}
	mentalTerms   = []Term{StressTerm, MotivationTerm}
)

func BaseRecoveryTerms() []Term {
	return []Term{SleepQualityTerm, TrainingLoadTerm}
}

func ExtendedRecoveryTerms() []Term {
	return []Term{SleepQualityTerm, TrainingLoadTerm, WorkoutRecencyTerm, WorkoutFocusTerm}
}

// Calculator turns a response into a readiness score. It is total over partial
// responses: unanswered questions fall back to their defaults.
type Calculator struct {
	recovery []Term
}

// NewCalculator averages the given recovery terms uniformly. With no terms the base set is used.
func NewCalculator(recoveryTerms ...Term) Calculator {
	if len(recoveryTerms) == 0 {
		recoveryTerms = BaseRecoveryTerms()
	}
	return Calculator{recovery: recoveryTerms}
}

func (c Calculator) Compute(r Response) Score {
	physical := roundScore(average(r, physicalTerms))
	mental := roundScore(average(r, mentalTerms))
	recovery := roundScore(average(r, c.recovery))

	return Score{
		Physical: physical,
		Mental:   mental,
		Recovery: recovery,
		Overall:  Overall(physical, mental, recovery),
	}
}

// Breakdown lists every sub-score that went into Compute, clamped to [0, 100].
func (c Calculator) Breakdown(r Response) []SubScore {
	terms := append(append(append([]Term{}, physicalTerms...), mentalTerms...), c.recovery...)
	subScores := make([]SubScore, 0, len(terms))
	for _, t := range terms {
		subScores = append(subScores, SubScore{
			Name:     t.Name,
			Category: t.Category,
			Value:    clamp(t.Value(r)),
		})
	}
	return subScores
}

// Overall weighs the category scores 0.4/0.3/0.3, rounding half away from zero.
// Integer arithmetic keeps x.5 cases exact.
func Overall(physical, mental, recovery int) int {
	return (4*physical + 3*mental + 3*recovery + 5) / 10
}

func average(r Response, terms []Term) float64 {
	if len(terms) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range terms {
		sum += clamp(t.Value(r))
	}
	return sum / float64(len(terms))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
