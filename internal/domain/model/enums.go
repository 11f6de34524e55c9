package model

// WorkEnvironment is the occupational exposure category.
type WorkEnvironment string

// Work environments.
const (
	WorkOffice   WorkEnvironment = "office"
	WorkDusty    WorkEnvironment = "dusty"
	WorkChemical WorkEnvironment = "chemical"
	WorkMining   WorkEnvironment = "mining"
	WorkOther    WorkEnvironment = "other"
)

// GeneticHistory is the closest relative diagnosed with lung cancer.
type GeneticHistory string

// Genetic history values.
const (
	GeneticNone         GeneticHistory = "none"
	GeneticSecondDegree GeneticHistory = "second_degree"
	GeneticFirstDegree  GeneticHistory = "first_degree"
)

// Exercise is the weekly exercise frequency.
type Exercise string

// Exercise frequencies.
const (
	ExerciseNone          Exercise = "none"
	ExerciseOneToTwoDays  Exercise = "one_to_two_days"
	ExerciseThreePlusDays Exercise = "three_plus_days"
)

// Diet is the self-reported diet quality.
type Diet string

// Diet qualities.
const (
	DietPoor     Diet = "poor"
	DietModerate Diet = "moderate"
	DietGood     Diet = "good"
)

// WorkEnvironments lists every accepted WorkEnvironment in display order.
func WorkEnvironments() []WorkEnvironment {
	return []WorkEnvironment{WorkOffice, WorkDusty, WorkChemical, WorkMining, WorkOther}
}

// GeneticHistories lists every accepted GeneticHistory in display order.
func GeneticHistories() []GeneticHistory {
	return []GeneticHistory{GeneticNone, GeneticSecondDegree, GeneticFirstDegree}
}

// ExerciseFrequencies lists every accepted Exercise in display order.
func ExerciseFrequencies() []Exercise {
	return []Exercise{ExerciseNone, ExerciseOneToTwoDays, ExerciseThreePlusDays}
}

// Diets lists every accepted Diet in display order.
func Diets() []Diet {
	return []Diet{DietPoor, DietModerate, DietGood}
}

// Valid reports whether w is one of the listed work environments.
func (w WorkEnvironment) Valid() bool { return contains(WorkEnvironments(), w) }

// Valid reports whether g is one of the listed genetic history values.
func (g GeneticHistory) Valid() bool { return contains(GeneticHistories(), g) }

// Valid reports whether e is one of the listed exercise frequencies.
func (e Exercise) Valid() bool { return contains(ExerciseFrequencies(), e) }

// Valid reports whether d is one of the listed diet qualities.
func (d Diet) Valid() bool { return contains(Diets(), d) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Range is an inclusive numeric bound.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Accepted numeric ranges. They mirror the validate tags on UserInputs.
var (
	AgeRange             = Range{Min: 18, Max: 100}
	DailyCigarettesRange = Range{Min: 0, Max: 80}
	SmokingYearsRange    = Range{Min: 0, Max: 60}
	HeightRange          = Range{Min: 100, Max: 220}
	WeightRange          = Range{Min: 30, Max: 200}
)

// Reference describes the accepted input domain, keyed by JSON field name.
type Reference struct {
	Enums  map[string][]string `json:"enums"`
	Ranges map[string]Range    `json:"ranges"`
}

// NewReference builds the Reference for UserInputs.
func NewReference() Reference {
	return Reference{
		Enums: map[string][]string{
			"work_environment": toStrings(WorkEnvironments()),
			"genetic_history":  toStrings(GeneticHistories()),
			"exercise":         toStrings(ExerciseFrequencies()),
			"diet":             toStrings(Diets()),
		},
		Ranges: map[string]Range{
			"age":              AgeRange,
			"daily_cigarettes": DailyCigarettesRange,
			"smoking_years":    SmokingYearsRange,
			"height_cm":        HeightRange,
			"weight_kg":        WeightRange,
		},
	}
}

func toStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
