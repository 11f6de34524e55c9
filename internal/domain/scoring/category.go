package scoring

// Category is the risk tier derived from a clamped total score.
type Category string

// Risk tiers, lowest first.
const (
	CategoryLow      Category = "low"
	CategoryMedium   Category = "medium"
	CategoryHigh     Category = "high"
	CategoryVeryHigh Category = "very_high"
)

// CategoryFor buckets a total score. Upper bounds are inclusive.
func CategoryFor(total int) Category {
	switch {
	case total <= 20:
		return CategoryLow
	case total <= 40:
		return CategoryMedium
	case total <= 60:
		return CategoryHigh
	default:
		return CategoryVeryHigh
	}
}

// Categories lists the tiers in ascending severity.
func Categories() []Category {
	return []Category{CategoryLow, CategoryMedium, CategoryHigh, CategoryVeryHigh}
}

// Label is the fixed display label.
func (c Category) Label() string {
	switch c {
	case CategoryLow:
		return "LOW RISK"
	case CategoryMedium:
		return "MEDIUM RISK"
	case CategoryHigh:
		return "HIGH RISK"
	case CategoryVeryHigh:
		return "VERY HIGH RISK"
	default:
		return "UNKNOWN"
	}
}

// Marker is the severity marker shown next to the label.
func (c Category) Marker() string {
	switch c {
	case CategoryLow:
		return "🟢"
	case CategoryMedium:
		return "🟡"
	case CategoryHigh:
		return "🟠"
	case CategoryVeryHigh:
		return "🔴"
	default:
		return "⚪"
	}
}

// Severity is the display class used by renderers.
func (c Category) Severity() string {
	switch c {
	case CategoryLow:
		return "low"
	case CategoryMedium:
		return "medium"
	case CategoryHigh:
		return "high"
	case CategoryVeryHigh:
		return "very-high"
	default:
		return ""
	}
}

// Elevated reports whether the tier calls for a specialist referral.
func (c Category) Elevated() bool {
	return c == CategoryHigh || c == CategoryVeryHigh
}
