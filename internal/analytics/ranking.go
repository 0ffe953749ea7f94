package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTopN is how many companies a ranking keeps when the caller does not
// say otherwise.
const DefaultTopN = 5

const maxLabelRunes = 15

// CompanyRef is the projection of a company a ranking needs.
type CompanyRef struct {
	ID   uuid.UUID
	Name string
}

// VolumeRecord carries the owning company of one listed item and its derived
// volume. A Nil company id means the item is unowned and never ranks.
type VolumeRecord struct {
	CompanyID   uuid.UUID
	CubicMeters decimal.Decimal
}

// RankedCompany is one bar of a top-companies chart.
type RankedCompany struct {
	CompanyID uuid.UUID       `json:"companyId"`
	Label     string          `json:"label"`
	Value     decimal.Decimal `json:"value"`
}

// TopCompaniesByVolume sums record volumes per company, drops companies with
// no positive volume, and returns the topN largest, values rounded to two
// decimals. Ties keep the companies' input order. Records owned by companies
// outside the given list are ignored, as are unowned records.
func TopCompaniesByVolume(companies []CompanyRef, records []VolumeRecord, topN int) []RankedCompany {
	if topN <= 0 {
		topN = DefaultTopN
	}

	sums := make(map[uuid.UUID]decimal.Decimal, len(companies))
	for _, record := range records {
		if record.CompanyID == uuid.Nil {
			continue
		}
		sums[record.CompanyID] = sums[record.CompanyID].Add(record.CubicMeters)
	}

	type entry struct {
		ref CompanyRef
		sum decimal.Decimal
	}
	entries := make([]entry, 0, len(companies))
	for _, company := range companies {
		sum, ok := sums[company.ID]
		if !ok || sum.Sign() <= 0 {
			continue
		}
		entries = append(entries, entry{ref: company, sum: sum})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].sum.GreaterThan(entries[j].sum)
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}

	ranked := make([]RankedCompany, 0, len(entries))
	for _, e := range entries {
		ranked = append(ranked, RankedCompany{
			CompanyID: e.ref.ID,
			Label:     truncateLabel(e.ref.Name),
			Value:     e.sum.Round(2),
		})
	}
	return ranked
}

func truncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= maxLabelRunes {
		return name
	}
	return string(runes[:maxLabelRunes]) + "…"
}
