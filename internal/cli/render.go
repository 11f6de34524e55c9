package cli

import (
	"fmt"
	"io"
	"strings"

	app "github.com/okian/lungrisk/internal/app"
	"github.com/okian/lungrisk/internal/domain/scoring"
)

const (
	barWidth     = 20
	pointsPerBar = 100 / barWidth
)

// Render writes a human-readable report to w.
func Render(w io.Writer, r app.Report) error {
	var b strings.Builder
	bd := r.Breakdown

	b.WriteString("🫁 Lung Health Risk Analysis\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "%s %s\n", r.Marker, r.CategoryLabel)
	fmt.Fprintf(&b, "Risk score: %d/100 %s\n\n", bd.TotalScore, scoreBar(bd.TotalScore))

	b.WriteString("Breakdown\n")
	fmt.Fprintf(&b, "  Pack-years:          %.1f\n", bd.PackYears)
	fmt.Fprintf(&b, "  Smoking score:       %+d\n", bd.BaseScore)
	fmt.Fprintf(&b, "  Environmental score: %+d\n", bd.EnvironmentalScore)
	fmt.Fprintf(&b, "  Protective score:    %+d\n\n", bd.ProtectiveScore)

	b.WriteString("Indicators\n")
	if r.BMIBand != "" {
		fmt.Fprintf(&b, "  BMI: %.1f (%s)\n", r.BMI, r.BMIBand)
	} else {
		fmt.Fprintf(&b, "  BMI: %.1f\n", r.BMI)
	}
	if r.MonthlyCost != nil {
		fmt.Fprintf(&b, "  Monthly cigarette cost: %.0f %s\n", r.MonthlyCost.Amount, r.MonthlyCost.Currency)
	}
	b.WriteString("\n")

	b.WriteString("Recommendations\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec.Text)
	}
	b.WriteString("\n")

	if r.Disclaimer != "" {
		fmt.Fprintf(&b, "⚠️  %s\n", r.Disclaimer)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderBatch writes one report per item followed by a summary.
func RenderBatch(w io.Writer, res app.BatchResult) error {
	for _, it := range res.Items {
		if _, err := fmt.Fprintf(w, "#%d ", it.Index+1); err != nil {
			return err
		}
		if it.Report == nil {
			if _, err := fmt.Fprintf(w, "rejected: %s\n\n", it.Error); err != nil {
				return err
			}
			continue
		}
		if err := Render(w, *it.Report); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	var b strings.Builder
	b.WriteString("Summary\n")
	for _, c := range scoring.Categories() {
		fmt.Fprintf(&b, "  %s %-15s %d\n", c.Marker(), c.Label(), res.Summary[string(c)])
	}
	fmt.Fprintf(&b, "  ⛔ %-15s %d\n", "REJECTED", res.Summary[app.OutcomeRejected])
	_, err := io.WriteString(w, b.String())
	return err
}

// scoreBar draws score on a fixed-width bar, one cell per five points.
func scoreBar(score int) string {
	filled := min(max(score/pointsPerBar, 0), barWidth)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}
