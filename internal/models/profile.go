package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Gender — внутренний enum.
type Gender int8

const (
	GenderMale Gender = iota
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderFemale:
		return "female"
	default:
		return "male"
	}
}

// ParseGender — единственная точка разбора строки в Gender.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	default:
		return GenderMale, fmt.Errorf("unknown gender %q: allowed values are male, female", s)
	}
}

// ActivityLevel — уровень физической активности пользователя.
type ActivityLevel int8

const (
	ActivityLow ActivityLevel = iota
	ActivityAverage
	ActivityHigh
)

func (a ActivityLevel) String() string {
	switch a {
	case ActivityAverage:
		return "average"
	case ActivityHigh:
		return "high"
	default:
		return "low"
	}
}

// ParseActivityLevel — единственная точка разбора строки в ActivityLevel.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch s {
	case "low":
		return ActivityLow, nil
	case "average":
		return ActivityAverage, nil
	case "high":
		return ActivityHigh, nil
	default:
		return ActivityLow, fmt.Errorf("unknown activity level %q: allowed values are low, average, high", s)
	}
}

// FitnessGoal — цель тренировок.
type FitnessGoal int8

const (
	GoalWeightLoss FitnessGoal = iota
	GoalWeightGain
	GoalFormMaintence
)

func (f FitnessGoal) String() string {
	switch f {
	case GoalWeightGain:
		return "weight_gain"
	case GoalFormMaintence:
		// Написание унаследовано от исходного API и видно на проводе.
		return "form_maintence"
	default:
		return "weight_loss"
	}
}

// ParseFitnessGoal — единственная точка разбора строки в FitnessGoal.
func ParseFitnessGoal(s string) (FitnessGoal, error) {
	switch s {
	case "weight_loss":
		return GoalWeightLoss, nil
	case "weight_gain":
		return GoalWeightGain, nil
	case "form_maintence":
		return GoalFormMaintence, nil
	default:
		return GoalWeightLoss, fmt.Errorf("unknown fitness goal %q: allowed values are weight_loss, weight_gain, form_maintence", s)
	}
}

// Profile — анкета пользователя, создаётся в одной единице работы с регистрацией.
type Profile struct {
	UserID        uuid.UUID
	Weight        int
	Height        int
	Age           int
	Gender        Gender
	ActivityLevel ActivityLevel
	FitnessGoal   FitnessGoal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
