// Package profile keeps user accounts and the onboarding answers (goals) collected after sign-up.
package profile

import (
	"errors"
	"strings"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
	ErrUnknownStep   = errors.New("unknown onboarding step")
)

type Step string

const (
	StepPersonalInfo       Step = "personal-info"
	StepWeightGoals        Step = "weight-goals"
	StepFitnessGoals       Step = "fitness-goals"
	StepActivityLevel      Step = "activity-level"
	StepWorkoutPreferences Step = "workout-preferences"
	StepDashboard          Step = "dashboard"
)

// OnboardingSteps lists the onboarding steps in the order they are presented.
var OnboardingSteps = []Step{
	StepPersonalInfo,
	StepWeightGoals,
	StepFitnessGoals,
	StepActivityLevel,
	StepWorkoutPreferences,
}

func ParseStep(s string) (Step, error) {
	for _, step := range OnboardingSteps {
		if string(step) == s {
			return step, nil
		}
	}
	return "", ErrUnknownStep
}

// Next returns the step following s. The last onboarding step leads to the dashboard.
func (s Step) Next() Step {
	for i, step := range OnboardingSteps {
		if step == s && i+1 < len(OnboardingSteps) {
			return OnboardingSteps[i+1]
		}
	}
	return StepDashboard
}

type UserData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	// bcrypt hash, never the plain password
	PasswordHash string `json:"passwordHash"`
}

type GoalsData struct {
	Birthday         string   `json:"birthday"`
	Gender           string   `json:"gender"`
	HeightUnit       string   `json:"heightUnit"`
	HeightFeet       string   `json:"heightFeet"`
	HeightInches     string   `json:"heightInches"`
	HeightCm         string   `json:"heightCm"`
	CurrentWeight    string   `json:"currentWeight"`
	GoalWeight       string   `json:"goalWeight"`
	WeightUnit       string   `json:"weightUnit"`
	MainGoals        []string `json:"mainGoals"`
	ActivityLevel    string   `json:"activityLevel"`
	WorkoutFrequency string   `json:"workoutFrequency"`
	WorkoutDuration  string   `json:"workoutDuration"`
}

func DefaultGoals() GoalsData {
	return GoalsData{
		HeightUnit: HeightUnitFeet,
		WeightUnit: WeightUnitLbs,
		MainGoals:  []string{},
	}
}

// Merge overwrites the fields of g that are set in patch.
func (g GoalsData) Merge(patch GoalsData) GoalsData {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&g.Birthday, patch.Birthday)
	set(&g.Gender, patch.Gender)
	set(&g.HeightUnit, patch.HeightUnit)
	set(&g.HeightFeet, patch.HeightFeet)
	set(&g.HeightInches, patch.HeightInches)
	set(&g.HeightCm, patch.HeightCm)
	set(&g.CurrentWeight, patch.CurrentWeight)
	set(&g.GoalWeight, patch.GoalWeight)
	set(&g.WeightUnit, patch.WeightUnit)
	set(&g.ActivityLevel, patch.ActivityLevel)
	set(&g.WorkoutFrequency, patch.WorkoutFrequency)
	set(&g.WorkoutDuration, patch.WorkoutDuration)
	if patch.MainGoals != nil {
		g.MainGoals = append([]string{}, patch.MainGoals...)
	}
	return g
}

type StoredProfile struct {
	UserData               UserData  `json:"userData"`
	GoalsData              GoalsData `json:"goalsData"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
}

// Profile is the public view of a stored profile.
type Profile struct {
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Goals                  GoalsData `json:"goals"`
	HasCompletedOnboarding bool      `json:"hasCompletedOnboarding"`
}

func (p *StoredProfile) Public() Profile {
	return Profile{
		Name:                   p.UserData.Name,
		Email:                  p.UserData.Email,
		Goals:                  p.GoalsData,
		HasCompletedOnboarding: p.HasCompletedOnboarding,
	}
}

// DisplayName is used in greetings: the first word of the name, or the email if no name is set.
func (p *StoredProfile) DisplayName() string {
	if fields := strings.Fields(p.UserData.Name); len(fields) > 0 {
		return fields[0]
	}
	return p.UserData.Email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
