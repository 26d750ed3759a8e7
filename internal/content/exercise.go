package content

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownListMode       = errors.New("unknown list mode")
	ErrUnknownExerciseType   = errors.New("unknown exercise type")
	ErrUnknownMuscleCategory = errors.New("unknown muscle category")
)

type ExerciseType string

const (
	ExerciseTypeStrength    ExerciseType = "strength"
	ExerciseTypeCardio      ExerciseType = "cardio"
	ExerciseTypeFlexibility ExerciseType = "flexibility"
	ExerciseTypePlyometric  ExerciseType = "plyometric"
	ExerciseTypeCore        ExerciseType = "core"
	ExerciseTypeWarmup      ExerciseType = "warmup"
)

var exerciseTypes = []ExerciseType{
	ExerciseTypeStrength,
	ExerciseTypeCardio,
	ExerciseTypeFlexibility,
	ExerciseTypePlyometric,
	ExerciseTypeCore,
	ExerciseTypeWarmup,
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// MuscleCategory is the coarse body region an exercise is filed under.
type MuscleCategory string

const (
	MuscleCategoryCore    MuscleCategory = "core"
	MuscleCategoryUpper   MuscleCategory = "upper-body"
	MuscleCategoryLower   MuscleCategory = "lower-body"
	MuscleCategoryGeneral MuscleCategory = "general"
)

var (
	upperBodyGroups = []string{
		"shoulders", "chest", "back", "arms", "biceps", "triceps", "lats",
		"rhomboids", "rear delts", "upper back", "rotator cuff", "forearms",
	}
	lowerBodyGroups = []string{
		"legs", "quads", "glutes", "hamstrings", "calves", "adductors",
		"hip flexors", "ankles", "knees",
	}
	coreGroups = []string{"core", "obliques"}
)

type Exercise struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ExerciseType `json:"type"`
	Difficulty   Difficulty   `json:"difficulty"`
	MuscleGroups []string     `json:"muscleGroups"`
	Equipment    []string     `json:"equipment"`
}

// MuscleCategory files the exercise under core, upper body or lower body, in that
// order of precedence. A muscle group matches a region if it contains one of its names.
func (e Exercise) MuscleCategory() MuscleCategory {
	switch {
	case e.worksAny(coreGroups):
		return MuscleCategoryCore
	case e.worksAny(upperBodyGroups):
		return MuscleCategoryUpper
	case e.worksAny(lowerBodyGroups):
		return MuscleCategoryLower
	default:
		return MuscleCategoryGeneral
	}
}

func (e Exercise) worksAny(groups []string) bool {
	for _, mg := range e.MuscleGroups {
		mg = strings.ToLower(mg)
		for _, g := range groups {
			if strings.Contains(mg, g) {
				return true
			}
		}
	}
	return false
}

// ExerciseView is an exercise with its derived muscle category.
type ExerciseView struct {
	Exercise
	MuscleCategory MuscleCategory `json:"muscleCategory"`
}

// ListMode can be one of:
//   - alphabetical: all exercises sorted by name
//   - muscle-group: bank order, optionally filtered by muscle category
//   - exercise-type: bank order, optionally filtered by type
type ListMode string

const (
	ListModeAlphabetical ListMode = "alphabetical"
	ListModeMuscleGroup  ListMode = "muscle-group"
	ListModeExerciseType ListMode = "exercise-type"
)

type ListParams struct {
	Mode           ListMode
	MuscleCategory MuscleCategory
	Type           ExerciseType
}

type ExerciseBank struct {
	exercises []Exercise
}

func NewExerciseBank(exercises []Exercise) *ExerciseBank {
	return &ExerciseBank{
		exercises: slices.Clone(exercises),
	}
}

// LoadExerciseBank reads the bundled exercise bank.
func LoadExerciseBank() (*ExerciseBank, error) {
	var exercises []Exercise
	if err := loadJSON("exercises.json", &exercises); err != nil {
		return nil, err
	}
	return NewExerciseBank(exercises), nil
}

func (b *ExerciseBank) Len() int {
	return len(b.exercises)
}

// List returns the exercises for the given mode. Empty filters, as well as "all", keep every exercise.
func (b *ExerciseBank) List(params ListParams) ([]ExerciseView, error) {
	mode := params.Mode
	if mode == "" {
		mode = ListModeAlphabetical
	}

	exercises := slices.Clone(b.exercises)
	switch mode {
	case ListModeAlphabetical:
		slices.SortStableFunc(exercises, func(a, b Exercise) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case ListModeMuscleGroup:
		if category := params.MuscleCategory; category != "" && category != "all" {
			if !isMuscleCategory(category) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownMuscleCategory, category)
			}
			exercises = slices.DeleteFunc(exercises, func(e Exercise) bool {
				return e.MuscleCategory() != category
			})
		}
	case ListModeExerciseType:
		if t := params.Type; t != "" && t != "all" {
			if !slices.Contains(exerciseTypes, t) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownExerciseType, t)
			}
			exercises = slices.DeleteFunc(exercises, func(e Exercise) bool {
				return e.Type != t
			})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownListMode, mode)
	}

	views := make([]ExerciseView, 0, len(exercises))
	for _, e := range exercises {
		views = append(views, ExerciseView{
			Exercise:       e,
			MuscleCategory: e.MuscleCategory(),
		})
	}
	return views, nil
}

func isMuscleCategory(c MuscleCategory) bool {
	switch c {
	case MuscleCategoryCore, MuscleCategoryUpper, MuscleCategoryLower, MuscleCategoryGeneral:
		return true
	}
	return false
}
