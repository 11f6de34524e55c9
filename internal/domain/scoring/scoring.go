// Package scoring turns a questionnaire into a bounded lung-health risk score.
//
// Every function here is pure: the same inputs always produce the same
// Breakdown, and nothing is shared between calls.
package scoring

import (
	"github.com/okian/lungrisk/internal/domain/model"
)

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100

	cigarettesPerPack = 20
)

// Breakdown is the per-component result of one evaluation.
type Breakdown struct {
	PackYears          float64  `json:"pack_years"`
	BaseScore          int      `json:"base_score"`
	EnvironmentalScore int      `json:"environmental_score"`
	ProtectiveScore    int      `json:"protective_score"`
	TotalScore         int      `json:"total_score"`
	Category           Category `json:"category"`
}

// PackYears returns (daily/20) * years. Zero daily cigarettes always yields
// exactly zero, whatever the number of years.
func PackYears(dailyCigarettes, smokingYears int) float64 {
	if dailyCigarettes == 0 {
		return 0
	}
	return float64(dailyCigarettes) / cigarettesPerPack * float64(smokingYears)
}

// BaseScore maps smoking exposure to its tiered score.
func BaseScore(dailyCigarettes, smokingYears int) int {
	return BaseScoreForPackYears(PackYears(dailyCigarettes, smokingYears))
}

// BaseScoreForPackYears applies the pack-year tiers. Lower bounds are
// exclusive: exactly 30 pack-years scores 20, exactly 10 scores 10.
func BaseScoreForPackYears(packYears float64) int {
	switch {
	case packYears > 30:
		return 30
	case packYears > 20:
		return 20
	case packYears > 10:
		return 15
	case packYears > 5:
		return 10
	case packYears > 0:
		return 5
	default:
		return 0
	}
}

// EnvironmentalScore adds occupational and family-history risk points.
// Unknown values contribute nothing.
func EnvironmentalScore(work model.WorkEnvironment, genetic model.GeneticHistory) int {
	return workRisk[work] + geneticRisk[genetic]
}

// ProtectiveScore returns the (non-positive) reduction earned by exercise,
// diet and being younger than 40.
func ProtectiveScore(exercise model.Exercise, diet model.Diet, age int) int {
	score := exerciseBonus[exercise] + dietBonus[diet]
	if age < youngAgeLimit {
		score += youngAgeBonus
	}
	return score
}

// Classify sums the components, clamps the total to [0,100] and buckets it.
// The unclamped sum is not retained.
func Classify(base, environmental, protective int) Breakdown {
	total := clamp(base+environmental+protective, MinScore, MaxScore)
	return Breakdown{
		BaseScore:          base,
		EnvironmentalScore: environmental,
		ProtectiveScore:    protective,
		TotalScore:         total,
		Category:           CategoryFor(total),
	}
}

// Evaluate runs the full engine over validated inputs.
func Evaluate(in model.UserInputs) Breakdown {
	b := Classify(
		BaseScore(in.DailyCigarettes, in.SmokingYears),
		EnvironmentalScore(in.WorkEnvironment, in.GeneticHistory),
		ProtectiveScore(in.Exercise, in.Diet, in.Age),
	)
	b.PackYears = PackYears(in.DailyCigarettes, in.SmokingYears)
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
