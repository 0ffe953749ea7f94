// Package analytics holds the in-memory aggregation core shared by the
// dashboard, report and matchmaking features: status breakdowns over demand
// and stock collections, and company rankings by listed volume. Everything
// here is a pure function over caller-supplied slices.
package analytics

import "math"

// StatusRow is one slice of a status breakdown.
type StatusRow struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatusBreakdown counts record statuses against the canonical declaration
// order. Every status in order yields a row even at count zero, so charts
// keep a fixed shape. Percentages are rounded to one decimal and are all
// zero when there are no records. The returned total lets callers tell an
// empty collection apart from all-zero counts.
func StatusBreakdown(order []string, statuses []string) ([]StatusRow, int) {
	counts := make(map[string]int, len(order))
	for _, status := range statuses {
		counts[status]++
	}

	total := len(statuses)
	rows := make([]StatusRow, 0, len(order))
	for _, status := range order {
		row := StatusRow{Status: status, Count: counts[status]}
		if total > 0 {
			row.Percentage = math.Round(float64(row.Count)/float64(total)*1000) / 10
		}
		rows = append(rows, row)
	}
	return rows, total
}
