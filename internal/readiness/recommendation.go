package readiness

// Level can be one of:
//   - excellent (80 and above)
//   - good (60 to 79)
//   - moderate (40 to 59)
//   - low (below 40)
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
	LevelLow       Level = "low"
)

const (
	thresholdExcellent = 80
	thresholdGood      = 60
	thresholdModerate  = 40
)

var recommendations = map[Level]string{
	LevelExcellent: "You're in an excellent state today! This is your optimal performance window. Go ahead and engage in high-intensity training protocols.",
	LevelGood:      "You're showing solid readiness today! Your body is prepared for moderate to high intensity training.",
	LevelModerate:  "You're in a moderate readiness state today. Focus on technique refinement and active recovery protocols.",
	LevelLow:       "Your body is asking for recovery today. Prioritize restoration, hydration, and system reset.",
}

func (l Level) String() string {
	return string(l)
}

// LevelOf labels any of the four scores.
func LevelOf(score int) Level {
	switch {
	case score >= thresholdExcellent:
		return LevelExcellent
	case score >= thresholdGood:
		return LevelGood
	case score >= thresholdModerate:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Recommend returns the training advice for an overall score.
func Recommend(overall int) string {
	return recommendations[LevelOf(overall)]
}

// Levels labels each score of s.
type Levels struct {
	Physical Level `json:"physical"`
	Mental   Level `json:"mental"`
	Recovery Level `json:"recovery"`
	Overall  Level `json:"overall"`
}

func (s Score) Levels() Levels {
	return Levels{
		Physical: LevelOf(s.Physical),
		Mental:   LevelOf(s.Mental),
		Recovery: LevelOf(s.Recovery),
		Overall:  LevelOf(s.Overall),
	}
}

func (s Score) Recommendation() string {
	return Recommend(s.Overall)
}
