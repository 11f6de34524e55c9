package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	app "github.com/okian/lungrisk/internal/app"
	"github.com/okian/lungrisk/internal/domain/model"
	"github.com/okian/lungrisk/pkg/logger"
)

// Assessor produces reports for one or many questionnaires.
type Assessor interface {
	Assess(ctx context.Context, in model.UserInputs) (app.Report, error)
	AssessBatch(ctx context.Context, inputs []model.UserInputs) (app.BatchResult, error)
}

// NewAssessor returns the remote client when cfg names a server and an
// in-process service otherwise.
func NewAssessor(cfg *Config, log logger.Logger) Assessor {
	if cfg.BaseURL != "" {
		return NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	}
	return app.New(
		app.WithLogger(log),
		app.WithPackPrice(cfg.PackPrice),
		app.WithCurrency(cfg.Currency),
		app.WithWorkers(cfg.Workers),
	)
}

// Run clamps the collected inputs, assesses them and prints the report.
// With a batch file set it scores the file instead of the flag inputs.
func Run(ctx context.Context, cfg *Config, a Assessor, out io.Writer, log logger.Logger) error {
	if cfg.BatchFile != "" {
		return runBatch(ctx, cfg, a, out, log)
	}

	in := clamp(ctx, log, 0, cfg.Inputs)
	log.Debug(ctx, "assessing", logger.String("mode", mode(cfg)))
	report, err := a.Assess(ctx, in)
	if err != nil {
		return fmt.Errorf("assess: %w", err)
	}

	if cfg.JSON {
		return writeIndented(out, report)
	}
	return Render(out, report)
}

func runBatch(ctx context.Context, cfg *Config, a Assessor, out io.Writer, log logger.Logger) error {
	src, closeSrc, err := openBatch(cfg.BatchFile)
	if err != nil {
		return err
	}
	defer closeSrc()

	inputs, err := ReadBatch(src)
	if err != nil {
		return err
	}
	for i := range inputs {
		inputs[i] = clamp(ctx, log, i, inputs[i])
	}

	log.Debug(ctx, "assessing batch", logger.String("mode", mode(cfg)), logger.Int("items", len(inputs)))
	res, err := a.AssessBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("assess batch: %w", err)
	}

	if cfg.JSON {
		return writeIndented(out, res)
	}
	return RenderBatch(out, res)
}

// ReadBatch decodes a stream of JSON questionnaires, one value after another.
func ReadBatch(r io.Reader) ([]model.UserInputs, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var inputs []model.UserInputs
	for {
		var in model.UserInputs
		err := dec.Decode(&in)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", len(inputs), err)
		}
		inputs = append(inputs, in)
	}
	if len(inputs) == 0 {
		return nil, app.ErrEmptyBatch
	}
	return inputs, nil
}

func openBatch(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open batch: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// clamp applies the accepted ranges, logging when anything moved.
func clamp(ctx context.Context, log logger.Logger, index int, in model.UserInputs) model.UserInputs {
	clamped := in.Clamp()
	if clamped != in {
		log.Warn(ctx, "inputs clamped to accepted ranges",
			logger.Int("index", index),
			logger.Any("given", in),
			logger.Any("used", clamped),
		)
	}
	return clamped
}

func writeIndented(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mode(cfg *Config) string {
	if cfg.BaseURL != "" {
		return "remote"
	}
	return "local"
}
