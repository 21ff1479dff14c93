package alerts

import "stock-alert-cockpit/internal/domain"

const (
	hotThreshold     = 80
	warningThreshold = 60
)

// Score is sentiment times the number of tags. It is not clamped.
func Score(tags []string, sentiment int) int {
	return sentiment * len(tags)
}

// Heatmap classifies a score. Each tier includes its lower edge.
func Heatmap(score int) domain.Severity {
	switch {
	case score >= hotThreshold:
		return domain.SeverityHot
	case score >= warningThreshold:
		return domain.SeverityWarning
	default:
		return domain.SeverityCold
	}
}
