package alerts

import (
	"sort"

	"stock-alert-cockpit/internal/domain"
)

// Rank returns a copy of alerts sorted by score, highest first. Equal scores
// keep their emission order.
func Rank(alerts []domain.AlertRecord) []domain.AlertRecord {
	out := append([]domain.AlertRecord(nil), alerts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
