package course

import "math"

// Aggregate folds a user's raw progress map against the catalog.
// The overall percentage is an unweighted mean over the entire catalog
// (absent entries count as 0), floored to an int.
func Aggregate(catalog Catalog, progress ProgressMap, threshold float64) Summary {
	summary := Summary{PerVideo: make(map[string]VideoState, len(catalog))}

	var sum float64
	for _, v := range catalog {
		pct := progress[v.ID]
		sum += pct
		switch {
		case pct >= threshold:
			summary.PerVideo[v.ID] = StateCompleted
			summary.CompletedCount++
		case pct > 0:
			summary.PerVideo[v.ID] = StateInProgress
		default:
			summary.PerVideo[v.ID] = StateNotStarted
		}
	}

	if len(catalog) > 0 {
		summary.OverallPercentage = int(math.Floor(sum / float64(len(catalog))))
		summary.AllCompleted = summary.CompletedCount == len(catalog)
	}
	return summary
}
