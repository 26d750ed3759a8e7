package profile

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

const (
	minPasswordLength = 6
	birthdayLayout    = "2006-01-02"
)

var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldError is a validation failure of a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func fieldErr(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}

// FieldErrors unpacks the field errors of a validation error, keyed by field.
// It returns nil if err carries none.
func FieldErrors(err error) map[string]string {
	var fields map[string]string
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if !errors.As(e, &fe) {
			continue
		}
		if fields == nil {
			fields = make(map[string]string)
		}
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Message
		}
	}
	return fields
}

type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func ValidateSignUp(req SignUpRequest) error {
	err := validateName(req.Name)
	err = multierr.Append(err, validateEmail(req.Email))
	err = multierr.Append(err, validatePassword(req.Password))

	switch {
	case strings.TrimSpace(req.ConfirmPassword) == "":
		err = multierr.Append(err, fieldErr("confirmPassword", "Please confirm your password"))
	case req.Password != req.ConfirmPassword:
		err = multierr.Append(err, fieldErr("confirmPassword", "Passwords do not match"))
	}
	return err
}

// UpdateUserRequest changes account data. An empty password keeps the current one.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateUpdateUser(req UpdateUserRequest) error {
	err := validateName(req.Name)
	err = multierr.Append(err, validateEmail(req.Email))
	if req.Password != "" {
		err = multierr.Append(err, validatePassword(req.Password))
	}
	return err
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fieldErr("name", "Name is required")
	}
	return nil
}

func validateEmail(email string) error {
	switch {
	case strings.TrimSpace(email) == "":
		return fieldErr("email", "Email is required")
	case !emailRegex.MatchString(email):
		return fieldErr("email", "Email is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return fieldErr("password", "Password is required")
	case len(password) < minPasswordLength:
		return fieldErr("password", "Password must be at least 6 characters")
	}
	return nil
}

// ValidateStep checks the fields collected by a single onboarding step.
func ValidateStep(step Step, g GoalsData) error {
	switch step {
	case StepPersonalInfo:
		return validatePersonalInfo(g)
	case StepWeightGoals:
		return validateWeightGoals(g)
	case StepFitnessGoals:
		return validateFitnessGoals(g)
	case StepActivityLevel:
		return validateActivityLevel(g)
	case StepWorkoutPreferences:
		return validateWorkoutPreferences(g)
	default:
		return ErrUnknownStep
	}
}

// ValidateGoals checks the goals of every onboarding step at once.
func ValidateGoals(g GoalsData) error {
	var err error
	for _, step := range OnboardingSteps {
		err = multierr.Append(err, ValidateStep(step, g))
	}
	return err
}

func validatePersonalInfo(g GoalsData) error {
	var err error

	if g.Birthday == "" {
		err = multierr.Append(err, fieldErr("birthday", "Birthday is required"))
	} else if bd, parseErr := time.Parse(birthdayLayout, g.Birthday); parseErr != nil || bd.After(time.Now()) {
		err = multierr.Append(err, fieldErr("birthday", "Birthday is invalid"))
	}

	if g.Gender == "" {
		err = multierr.Append(err, fieldErr("gender", "Gender is required"))
	} else if !hasOption(Genders, g.Gender) {
		err = multierr.Append(err, fieldErr("gender", "Gender is invalid"))
	}

	switch g.HeightUnit {
	case HeightUnitFeet:
		err = multierr.Append(err, requireNumber("heightFeet", g.HeightFeet, "Height in feet is required", false))
		err = multierr.Append(err, requireNumber("heightInches", g.HeightInches, "Height in inches is required", true))
	case HeightUnitCm:
		err = multierr.Append(err, requireNumber("heightCm", g.HeightCm, "Height in cm is required", false))
	default:
		err = multierr.Append(err, fieldErr("heightUnit", "Height unit must be feet or cm"))
	}

	return err
}

func validateWeightGoals(g GoalsData) error {
	err := requireNumber("currentWeight", g.CurrentWeight, "Current weight is required", false)
	err = multierr.Append(err, requireNumber("goalWeight", g.GoalWeight, "Goal weight is required", false))
	if g.WeightUnit != WeightUnitLbs && g.WeightUnit != WeightUnitKg {
		err = multierr.Append(err, fieldErr("weightUnit", "Weight unit must be lbs or kg"))
	}
	return err
}

func validateFitnessGoals(g GoalsData) error {
	if len(g.MainGoals) == 0 {
		return fieldErr("mainGoals", "Please select at least one main goal")
	}
	if len(g.MainGoals) > maxMainGoals {
		return fieldErr("mainGoals", "Please select at most 2 main goals")
	}
	seen := make(map[string]bool, len(g.MainGoals))
	for _, goal := range g.MainGoals {
		if !hasOption(MainGoals, goal) || seen[goal] {
			return fieldErr("mainGoals", "Main goal is invalid")
		}
		seen[goal] = true
	}
	return nil
}

func validateActivityLevel(g GoalsData) error {
	if !hasOption(ActivityLevels, g.ActivityLevel) {
		return fieldErr("activityLevel", "Please select your activity level")
	}
	return nil
}

func validateWorkoutPreferences(g GoalsData) error {
	var err error
	if !hasOption(WorkoutFrequencies, g.WorkoutFrequency) {
		err = multierr.Append(err, fieldErr("workoutFrequency", "Please select workout frequency"))
	}
	if !hasOption(WorkoutDurations, g.WorkoutDuration) {
		err = multierr.Append(err, fieldErr("workoutDuration", "Please select workout duration"))
	}
	return err
}

// requireNumber checks that value holds a positive number (or zero, if allowZero is set).
func requireNumber(field, value, requiredMsg string, allowZero bool) error {
	if strings.TrimSpace(value) == "" {
		return fieldErr(field, requiredMsg)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || n < 0 || (n == 0 && !allowZero) {
		return fieldErr(field, "Please enter a valid number")
	}
	return nil
}
