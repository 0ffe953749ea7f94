package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func vol(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", raw, err)
	}
	return value
}

func TestTopCompaniesByVolume(t *testing.T) {
	alpha := CompanyRef{ID: uuid.New(), Name: "Alpha Timber"}
	beta := CompanyRef{ID: uuid.New(), Name: "Beta Forestry"}
	gamma := CompanyRef{ID: uuid.New(), Name: "Gamma Wood Trading International"}
	companies := []CompanyRef{alpha, beta, gamma}

	records := []VolumeRecord{
		{CompanyID: alpha.ID, CubicMeters: vol(t, "5")},
		{CompanyID: gamma.ID, CubicMeters: vol(t, "12")},
	}

	ranked := TopCompaniesByVolume(companies, records, 5)

	if len(ranked) != 2 {
		t.Fatalf("ranked = %d companies, want 2 (beta has zero volume)", len(ranked))
	}
	if ranked[0].CompanyID != gamma.ID || !ranked[0].Value.Equal(vol(t, "12")) {
		t.Fatalf("first = %+v, want gamma at 12", ranked[0])
	}
	if ranked[1].CompanyID != alpha.ID || !ranked[1].Value.Equal(vol(t, "5")) {
		t.Fatalf("second = %+v, want alpha at 5", ranked[1])
	}
	if ranked[0].Label != "Gamma Wood Trad…" {
		t.Fatalf("label = %q, want truncated to 15 runes plus ellipsis", ranked[0].Label)
	}
	if ranked[1].Label != "Alpha Timber" {
		t.Fatalf("label = %q, want untruncated name", ranked[1].Label)
	}
}

func TestTopCompaniesByVolumeSumsAndRounds(t *testing.T) {
	mill := CompanyRef{ID: uuid.New(), Name: "Mill"}
	records := []VolumeRecord{
		{CompanyID: mill.ID, CubicMeters: vol(t, "1.204")},
		{CompanyID: mill.ID, CubicMeters: vol(t, "2.403")},
		{CompanyID: uuid.Nil, CubicMeters: vol(t, "99")},
	}

	ranked := TopCompaniesByVolume([]CompanyRef{mill}, records, 0)

	if len(ranked) != 1 {
		t.Fatalf("ranked = %d companies, want 1", len(ranked))
	}
	if !ranked[0].Value.Equal(vol(t, "3.61")) {
		t.Fatalf("value = %s, want 3.61", ranked[0].Value)
	}
}

func TestTopCompaniesByVolumeTopNAndOrder(t *testing.T) {
	companies := make([]CompanyRef, 0, 7)
	records := make([]VolumeRecord, 0, 7)
	volumes := []string{"3", "8", "8", "1", "15", "6", "2"}
	for i, v := range volumes {
		ref := CompanyRef{ID: uuid.New(), Name: "Company " + string(rune('A'+i))}
		companies = append(companies, ref)
		records = append(records, VolumeRecord{CompanyID: ref.ID, CubicMeters: vol(t, v)})
	}

	ranked := TopCompaniesByVolume(companies, records, 5)

	if len(ranked) != 5 {
		t.Fatalf("ranked = %d companies, want 5", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Value.GreaterThan(ranked[i-1].Value) {
			t.Fatalf("ranking not non-increasing at %d: %s > %s", i, ranked[i].Value, ranked[i-1].Value)
		}
	}
	// Companies B and C tie at 8; B was listed first and must stay first.
	if ranked[1].CompanyID != companies[1].ID || ranked[2].CompanyID != companies[2].ID {
		t.Fatalf("tie between B and C not stable: got %q then %q", ranked[1].Label, ranked[2].Label)
	}
}

func TestTopCompaniesByVolumeIgnoresForeignRecords(t *testing.T) {
	customer := CompanyRef{ID: uuid.New(), Name: "Customer"}
	foreign := uuid.New()

	ranked := TopCompaniesByVolume(
		[]CompanyRef{customer},
		[]VolumeRecord{{CompanyID: foreign, CubicMeters: vol(t, "50")}},
		3,
	)
	if len(ranked) != 0 {
		t.Fatalf("ranked = %+v, want empty for records outside the company list", ranked)
	}
}
