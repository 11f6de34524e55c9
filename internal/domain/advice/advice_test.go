package advice_test

import (
	"testing"

	"github.com/okian/lungrisk/internal/domain/advice"
	"github.com/okian/lungrisk/internal/domain/model"
	"github.com/okian/lungrisk/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a low-risk non-smoker with ideal habits", t, func() {
		in := model.UserInputs{DailyCigarettes: 0, Exercise: model.ExerciseThreePlusDays, Diet: model.DietGood}

		recs := advice.Generate(scoring.CategoryLow, in)

		Convey("Then only the three baseline messages are returned", func() {
			So(recs, ShouldResemble, []string{advice.MaintainHabits, advice.RoutineCheckup, advice.StayActive})
		})
	})

	Convey("Given a very-high-risk heavy smoker with no exercise and a poor diet", t, func() {
		in := model.UserInputs{DailyCigarettes: 15, Exercise: model.ExerciseNone, Diet: model.DietPoor}

		recs := advice.Generate(scoring.CategoryVeryHigh, in)

		Convey("Then all six messages appear in order", func() {
			So(recs, ShouldResemble, []string{
				advice.UrgentReferral, advice.AnnualScreening, advice.CessationProgram,
				advice.ReductionTarget, advice.StartWalking, advice.AntioxidantFoods,
			})
		})
	})

	Convey("Given the high and very-high categories", t, func() {
		in := model.UserInputs{Exercise: model.ExerciseThreePlusDays, Diet: model.DietGood}

		Convey("Then they share the same baseline", func() {
			So(advice.Generate(scoring.CategoryHigh, in), ShouldResemble, advice.Generate(scoring.CategoryVeryHigh, in))
		})
	})

	Convey("Given a medium-risk light smoker exercising once or twice a week", t, func() {
		in := model.UserInputs{DailyCigarettes: 10, Exercise: model.ExerciseOneToTwoDays, Diet: model.DietModerate}

		recs := advice.Generate(scoring.CategoryMedium, in)

		Convey("Then the quit plan and the exercise increase follow the medium baseline", func() {
			So(recs, ShouldResemble, []string{
				advice.RegularCheckups, advice.GradualReduction, advice.StartExercise,
				advice.QuitPlan, advice.IncreaseExercise,
			})
		})
	})

	Convey("Given the cigarette thresholds", t, func() {
		base := model.UserInputs{Exercise: model.ExerciseThreePlusDays, Diet: model.DietGood}

		Convey("Then 11 triggers only the reduction target", func() {
			base.DailyCigarettes = 11
			recs := advice.Generate(scoring.CategoryLow, base)
			So(recs, ShouldHaveLength, 4)
			So(recs[3], ShouldEqual, advice.ReductionTarget)
			So(recs, ShouldNotContain, advice.QuitPlan)
		})

		Convey("Then 1 triggers only the quit plan", func() {
			base.DailyCigarettes = 1
			recs := advice.Generate(scoring.CategoryLow, base)
			So(recs, ShouldHaveLength, 4)
			So(recs[3], ShouldEqual, advice.QuitPlan)
		})
	})

	Convey("Given unknown category and enum values", t, func() {
		recs := advice.Generate("bogus", model.UserInputs{Exercise: "daily", Diet: "keto"})

		Convey("Then the low-risk baseline is used and no nudges are added", func() {
			So(recs, ShouldResemble, []string{advice.MaintainHabits, advice.RoutineCheckup, advice.StayActive})
		})
	})
}

func TestToneOf(t *testing.T) {
	Convey("Given recommendation texts", t, func() {
		So(advice.ToneOf(advice.UrgentReferral), ShouldEqual, advice.ToneUrgent)
		So(advice.ToneOf(advice.RegularCheckups), ShouldEqual, advice.ToneCaution)
		So(advice.ToneOf(advice.MaintainHabits), ShouldEqual, advice.TonePositive)
		So(advice.ToneOf(advice.AntioxidantFoods), ShouldEqual, advice.ToneInfo)
		So(advice.ToneOf("plain text"), ShouldEqual, advice.ToneInfo)
	})
}
