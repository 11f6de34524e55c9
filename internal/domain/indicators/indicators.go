// Package indicators computes informational values shown next to a risk
// score. None of them influence the score.
package indicators

const (
	cigarettesPerPack = 20
	daysPerMonth      = 30

	// DefaultPackPrice is the price of one pack used when none is configured.
	DefaultPackPrice = 100.0
)

// BMI returns weight / (height in metres)^2, or 0 when height is not positive.
func BMI(weightKG, heightCM float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	m := heightCM / 100
	return weightKG / (m * m)
}

// BMIBand returns the WHO adult band for a BMI, or "" for a zero BMI.
func BMIBand(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// HasMonthlyCost reports whether a cost estimate should be shown.
func HasMonthlyCost(dailyCigarettes int) bool {
	return dailyCigarettes > 0
}

// MonthlyCost estimates (daily/20) * packPrice * 30. A non-positive
// packPrice falls back to DefaultPackPrice.
func MonthlyCost(dailyCigarettes int, packPrice float64) float64 {
	if packPrice <= 0 {
		packPrice = DefaultPackPrice
	}
	return float64(dailyCigarettes) / cigarettesPerPack * packPrice * daysPerMonth
}
