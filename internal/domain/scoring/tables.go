package scoring

import "github.com/okian/lungrisk/internal/domain/model"

// Rule tables. Lookups of unmapped keys yield the zero value, so unknown
// inputs contribute nothing. These maps are never written after init.
var (
	workRisk = map[model.WorkEnvironment]int{
		model.WorkOffice:   0,
		model.WorkDusty:    10,
		model.WorkChemical: 15,
		model.WorkMining:   20,
		model.WorkOther:    5,
	}

	geneticRisk = map[model.GeneticHistory]int{
		model.GeneticNone:         0,
		model.GeneticSecondDegree: 10,
		model.GeneticFirstDegree:  15,
	}

	exerciseBonus = map[model.Exercise]int{
		model.ExerciseNone:          0,
		model.ExerciseOneToTwoDays:  -5,
		model.ExerciseThreePlusDays: -10,
	}

	dietBonus = map[model.Diet]int{
		model.DietPoor:     0,
		model.DietModerate: -4,
		model.DietGood:     -8,
	}
)

const (
	youngAgeLimit = 40
	youngAgeBonus = -5
)

// WorkRisk returns the points for a work environment, 0 if unknown.
func WorkRisk(w model.WorkEnvironment) int { return workRisk[w] }

// GeneticRisk returns the points for a genetic history, 0 if unknown.
func GeneticRisk(g model.GeneticHistory) int { return geneticRisk[g] }

// ExerciseBonus returns the reduction for an exercise frequency, 0 if unknown.
func ExerciseBonus(e model.Exercise) int { return exerciseBonus[e] }

// DietBonus returns the reduction for a diet quality, 0 if unknown.
func DietBonus(d model.Diet) int { return dietBonus[d] }
