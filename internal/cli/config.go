// Package cli implements the assess command: it collects a questionnaire
// from flags, scores it locally or against a running server and prints the
// report.
package cli

import (
	"errors"
	"time"

	"github.com/okian/lungrisk/internal/domain/model"
)

// Error constants.
var (
	ErrRemote = errors.New("remote assessment failed")
)

// Config holds everything one run needs.
type Config struct {
	BaseURL   string        // empty means evaluate in-process
	Timeout   time.Duration // HTTP request timeout
	JSON      bool          // print the raw report
	PackPrice float64       // local mode only
	Currency  string        // local mode only
	Verbose   bool
	BatchFile string // JSON stream of questionnaires; "-" reads stdin
	Workers   int    // local batch workers; 0 means one per CPU
	Inputs    model.UserInputs
}
