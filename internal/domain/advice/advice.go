// Package advice builds the ordered recommendation list for an assessment.
package advice

import (
	"strings"

	"github.com/okian/lungrisk/internal/domain/model"
	"github.com/okian/lungrisk/internal/domain/scoring"
)

// Recommendation texts. The leading marker drives ToneOf.
const (
	UrgentReferral   = "🚨 Urgent: See a pulmonologist (chest diseases specialist)"
	AnnualScreening  = "📅 Screening: A yearly low-dose lung CT scan is recommended"
	CessationProgram = "🚭 Quit: Join a smoking cessation program"
	RegularCheckups  = "⚠️ Follow-up: Get regular health check-ups"
	GradualReduction = "📉 Reduce: Gradually cut down the number of cigarettes"
	StartExercise    = "🏃 Exercise: Start a regular exercise program"
	MaintainHabits   = "✅ Protect: Keep up your current healthy habits"
	RoutineCheckup   = "🔍 Prevention: Have a routine check-up"
	StayActive       = "💪 Exercise: Keep up your active lifestyle"
	ReductionTarget  = "📉 Target: Bring your daily cigarettes below 10"
	QuitPlan         = "🎯 Target: Make a plan to quit completely"
	StartWalking     = "🏃 Exercise: Walk for 30 minutes, 3 days a week"
	IncreaseExercise = "💪 Improve: Increase exercise to 3 days a week"
	AntioxidantFoods = "🥗 Nutrition: Eat foods rich in antioxidants"
)

const (
	reductionCutoff = 10
	baselineCount   = 3
	maxNudges       = 3
)

// Generate returns the baseline messages for the category followed by the
// input-specific nudges, in a fixed order. At most one cigarette nudge and
// one exercise nudge is added.
func Generate(category scoring.Category, in model.UserInputs) []string {
	out := make([]string, 0, baselineCount+maxNudges)

	switch {
	case category.Elevated():
		out = append(out, UrgentReferral, AnnualScreening, CessationProgram)
	case category == scoring.CategoryMedium:
		out = append(out, RegularCheckups, GradualReduction, StartExercise)
	default:
		out = append(out, MaintainHabits, RoutineCheckup, StayActive)
	}

	if in.DailyCigarettes > reductionCutoff {
		out = append(out, ReductionTarget)
	} else if in.DailyCigarettes > 0 {
		out = append(out, QuitPlan)
	}

	if in.Exercise == model.ExerciseNone {
		out = append(out, StartWalking)
	} else if in.Exercise == model.ExerciseOneToTwoDays {
		out = append(out, IncreaseExercise)
	}

	if in.Diet == model.DietPoor {
		out = append(out, AntioxidantFoods)
	}

	return out
}

// Tone is the display emphasis of a recommendation.
type Tone string

// Tones, strongest first.
const (
	ToneUrgent   Tone = "urgent"
	ToneCaution  Tone = "caution"
	TonePositive Tone = "positive"
	ToneInfo     Tone = "info"
)

// ToneOf picks the display emphasis from the message marker.
func ToneOf(msg string) Tone {
	switch {
	case strings.Contains(msg, "🚨") || strings.Contains(msg, "Urgent:"):
		return ToneUrgent
	case strings.Contains(msg, "⚠️"):
		return ToneCaution
	case strings.Contains(msg, "✅"):
		return TonePositive
	default:
		return ToneInfo
	}
}
