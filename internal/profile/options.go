package profile

const (
	HeightUnitFeet = "feet"
	HeightUnitCm   = "cm"

	WeightUnitLbs = "lbs"
	WeightUnitKg  = "kg"

	maxMainGoals = 2
)

type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

var Genders = []Option{
	{Value: "male", Label: "Male"},
	{Value: "female", Label: "Female"},
	{Value: "other", Label: "Other"},
	{Value: "prefer-not-to-say", Label: "Prefer not to say"},
}

var MainGoals = []Option{
	{Value: "build-muscle", Label: "Build Muscle", Description: "Increase strength and muscle mass"},
	{Value: "lose-fat", Label: "Lose Fat", Description: "Reduce body fat percentage"},
	{Value: "improve-endurance", Label: "Improve Endurance", Description: "Boost cardiovascular fitness"},
	{Value: "increase-speed", Label: "Increase Speed", Description: "Enhance agility and quickness"},
	{Value: "enhance-flexibility", Label: "Enhance Flexibility", Description: "Improve mobility and range of motion"},
}

var ActivityLevels = []Option{
	{Value: "not-very-active", Label: "Not Very Active", Description: "Mostly sitting, little exercise"},
	{Value: "moderately-active", Label: "Moderately Active", Description: "Light exercise 1-3 days a week"},
	{Value: "active", Label: "Active", Description: "Moderate exercise 3-5 days a week"},
	{Value: "very-active", Label: "Very Active", Description: "Hard exercise 6-7 days a week"},
}

var WorkoutFrequencies = []Option{
	{Value: "1x", Label: "1x per week"},
	{Value: "2x", Label: "2x per week"},
	{Value: "3x", Label: "3x per week"},
	{Value: "4x", Label: "4x per week"},
	{Value: "5x", Label: "5x per week"},
	{Value: "6x", Label: "6x per week"},
	{Value: "7x", Label: "7x per week"},
}

var WorkoutDurations = []Option{
	{Value: "30-45", Label: "30-45 minutes"},
	{Value: "45-60", Label: "45-60 minutes"},
	{Value: "60-90", Label: "60-90 minutes"},
	{Value: "90-120", Label: "90-120 minutes"},
}

// Options groups every selectable onboarding value, keyed by goals field.
func Options() map[string][]Option {
	return map[string][]Option{
		"gender":           Genders,
		"mainGoals":        MainGoals,
		"activityLevel":    ActivityLevels,
		"workoutFrequency": WorkoutFrequencies,
		"workoutDuration":  WorkoutDurations,
	}
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
