package cli

import (
	"flag"
	"io"
	"time"

	"github.com/okian/lungrisk/internal/domain/indicators"
	"github.com/okian/lungrisk/internal/domain/model"
)

// Default flag values.
const (
	defaultTimeout  = 10 * time.Second
	defaultAge      = 45
	defaultHeightCM = 170
	defaultWeightKG = 70
	defaultCurrency = "TL"
)

// ParseFlags builds a Config from command line arguments. It returns
// flag.ErrHelp when -h or -help is given.
func ParseFlags(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	in := &cfg.Inputs
	var work, genetic, exercise, diet string

	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { ShowHelp(output) }

	fs.StringVar(&cfg.BaseURL, "url", "", "Base URL of a running service; empty evaluates locally")
	fs.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the report as JSON")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.Float64Var(&cfg.PackPrice, "pack-price", indicators.DefaultPackPrice, "Price of one pack (local mode)")
	fs.StringVar(&cfg.Currency, "currency", defaultCurrency, "Currency label (local mode)")
	fs.StringVar(&cfg.BatchFile, "batch", "", "File of JSON questionnaires to score together; - for stdin")
	fs.IntVar(&cfg.Workers, "workers", 0, "Batch workers (local mode); 0 means one per CPU")

	fs.IntVar(&in.Age, "age", defaultAge, "Age in years")
	fs.IntVar(&in.DailyCigarettes, "daily", 0, "Cigarettes smoked per day")
	fs.IntVar(&in.SmokingYears, "years", 0, "Years of smoking")
	fs.StringVar(&work, "work", string(model.WorkOffice), "Work environment: office, dusty, chemical, mining, other")
	fs.StringVar(&genetic, "genetic", string(model.GeneticNone), "Family history: none, second_degree, first_degree")
	fs.StringVar(&exercise, "exercise", string(model.ExerciseNone), "Exercise: none, one_to_two_days, three_plus_days")
	fs.StringVar(&diet, "diet", string(model.DietModerate), "Diet: poor, moderate, good")
	fs.Float64Var(&in.HeightCM, "height", defaultHeightCM, "Height in cm")
	fs.Float64Var(&in.WeightKG, "weight", defaultWeightKG, "Weight in kg")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	in.WorkEnvironment = model.WorkEnvironment(work)
	in.GeneticHistory = model.GeneticHistory(genetic)
	in.Exercise = model.Exercise(exercise)
	in.Diet = model.Diet(diet)
	return cfg, nil
}

// ShowHelp prints usage information for the assess tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Lung Health Risk Assessment
===========================

Scores smoking history, environment and lifestyle into a 0-100 risk estimate
with recommendations. Numeric values outside the accepted ranges are clamped.

Usage:
  go run ./cmd/assess [options]

Options:
  -age int            Age in years, 18-100 (default 45)
  -daily int          Cigarettes per day, 0-80 (default 0)
  -years int          Years of smoking, 0-60 (default 0)
  -work string        office, dusty, chemical, mining, other (default office)
  -genetic string     none, second_degree, first_degree (default none)
  -exercise string    none, one_to_two_days, three_plus_days (default none)
  -diet string        poor, moderate, good (default moderate)
  -height float       Height in cm, 100-220 (default 170)
  -weight float       Weight in kg, 30-200 (default 70)
  -pack-price float   Price of one pack for the cost estimate (default 100)
  -currency string    Currency label (default TL)
  -batch file         Score a stream of JSON questionnaires (one per line); - for stdin
  -workers int        Batch workers in local mode; 0 means one per CPU
  -url string         Base URL of a running service; empty evaluates locally
  -timeout duration   HTTP request timeout (default 10s)
  -json               Print the report as JSON
  -verbose            Enable debug logging
  -help               Show this help message

Examples:
  # Evaluate locally
  go run ./cmd/assess -age 58 -daily 30 -years 25 -work chemical -genetic second_degree -diet poor

  # Score a file of questionnaires
  go run ./cmd/assess -batch people.jsonl

  # Ask a running server and print JSON
  go run ./cmd/assess -url http://localhost:9080 -daily 10 -years 5 -json
`)
}
