// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lungrisk/internal/domain/advice"
	"github.com/okian/lungrisk/internal/domain/indicators"
	"github.com/okian/lungrisk/internal/domain/model"
	"github.com/okian/lungrisk/internal/domain/scoring"
	"github.com/okian/lungrisk/pkg/logger"
	"github.com/okian/lungrisk/pkg/metrics"
)

// Disclaimer is attached to every report.
const Disclaimer = "This analysis is for information only. Please consult a healthcare professional for a diagnosis."

const nanosecondsPerMillisecond = 1e6

// Recommendation is one advisory line with its display emphasis.
type Recommendation struct {
	Text string      `json:"text"`
	Tone advice.Tone `json:"tone"`
}

// Cost is a monetary estimate.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Report is the full result of one assessment. It is built per request and
// never stored.
type Report struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	Inputs          model.UserInputs  `json:"inputs"`
	Breakdown       scoring.Breakdown `json:"breakdown"`
	CategoryLabel   string            `json:"category_label"`
	Marker          string            `json:"marker"`
	Severity        string            `json:"severity"`
	Recommendations []Recommendation  `json:"recommendations"`
	BMI             float64           `json:"bmi"`
	BMIBand         string            `json:"bmi_band,omitempty"`
	MonthlyCost     *Cost             `json:"monthly_cost,omitempty"`
	Disclaimer      string            `json:"disclaimer"`
}

// Texts returns the recommendation strings in order.
func (r Report) Texts() []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Text
	}
	return out
}

// Service assesses questionnaires. It holds configuration and observability
// counters only; assessments share no state.
type Service struct {
	packPrice float64
	currency  string
	now       func() time.Time
	logger    logger.Logger
	workers   int
	maxBatch  int

	startedAt  time.Time
	total      atomic.Int64
	rejected   atomic.Int64
	byCategory map[scoring.Category]*atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPackPrice sets the price of one pack used for cost estimates.
func WithPackPrice(price float64) Option {
	return func(s *Service) {
		if price > 0 {
			s.packPrice = price
		}
	}
}

// WithCurrency sets the currency label of cost estimates.
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// WithClock overrides the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		packPrice:  indicators.DefaultPackPrice,
		currency:   "TL",
		maxBatch:   defaultMaxBatch,
		now:        time.Now,
		byCategory: make(map[scoring.Category]*atomic.Int64, len(scoring.Categories())),
	}
	for _, c := range scoring.Categories() {
		s.byCategory[c] = new(atomic.Int64)
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.startedAt = s.now()
	return s
}

// Assess validates the inputs and produces a report. Validation failures
// are returned as errors wrapping model.ErrInvalidInput.
func (s *Service) Assess(ctx context.Context, in model.UserInputs) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("context cancelled: %w", err)
	}

	if err := in.Validate(); err != nil {
		s.recordRejected(ctx, err)
		return Report{}, err
	}

	start := time.Now()
	b := scoring.Evaluate(in)
	texts := advice.Generate(b.Category, in)

	recs := make([]Recommendation, len(texts))
	for i, t := range texts {
		recs[i] = Recommendation{Text: t, Tone: advice.ToneOf(t)}
	}

	bmi := round(indicators.BMI(in.WeightKG, in.HeightCM), 1)
	report := Report{
		ID:              uuid.NewString(),
		CreatedAt:       s.now().UTC(),
		Inputs:          in,
		Breakdown:       b,
		CategoryLabel:   b.Category.Label(),
		Marker:          b.Category.Marker(),
		Severity:        b.Category.Severity(),
		Recommendations: recs,
		BMI:             bmi,
		BMIBand:         indicators.BMIBand(bmi),
		Disclaimer:      Disclaimer,
	}
	if indicators.HasMonthlyCost(in.DailyCigarettes) {
		report.MonthlyCost = &Cost{
			Amount:   round(indicators.MonthlyCost(in.DailyCigarettes, s.packPrice), 2),
			Currency: s.currency,
		}
	}

	latencyMs := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	s.recordCompleted(b, latencyMs)

	s.logger.Debug(ctx, "assessment completed",
		logger.String("id", report.ID),
		logger.String("category", string(b.Category)),
		logger.Int("total", b.TotalScore),
		logger.Float64("packYears", b.PackYears),
		logger.Int("recommendations", len(recs)),
	)

	return report, nil
}

func (s *Service) recordCompleted(b scoring.Breakdown, latencyMs float64) {
	s.total.Add(1)
	if c, ok := s.byCategory[b.Category]; ok {
		c.Add(1)
	}
	metrics.RecordAssessment(string(b.Category), b.TotalScore)
	metrics.RecordComponents(b.BaseScore, b.EnvironmentalScore, b.ProtectiveScore)
	metrics.RecordPackYears(b.PackYears)
	metrics.RecordScoringLatency(latencyMs)
}

func (s *Service) recordRejected(ctx context.Context, err error) {
	s.rejected.Add(1)
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			metrics.RecordInvalidInput(f.Field, f.Rule)
		}
	}
	s.logger.Debug(ctx, "assessment rejected", logger.Error(err))
}

// Reference returns the accepted input domain.
func (s *Service) Reference(_ context.Context) model.Reference {
	return model.NewReference()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	byCategory := make(map[string]int64, len(s.byCategory))
	for c, n := range s.byCategory {
		byCategory[string(c)] = n.Load()
	}
	return map[string]any{
		"assessments":   s.total.Load(),
		"rejected":      s.rejected.Load(),
		"byCategory":    byCategory,
		"startedAt":     s.startedAt.UTC().Format(time.RFC3339),
		"uptimeSeconds": int64(s.now().Sub(s.startedAt).Seconds()),
		"packPrice":     s.packPrice,
		"currency":      s.currency,
		"maxBatch":      s.maxBatch,
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
