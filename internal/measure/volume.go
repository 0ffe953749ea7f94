package measure

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var pi = decimal.NewFromFloat(math.Pi)

// ((diameterFrom+diameterTo)/2 cm -> m)/2 collapses to (from+to)/400.
var avgRadiusDivisor = decimal.NewFromInt(400)

// ParseDecimal reads a form value as a decimal. Empty or malformed input
// yields zero; half-filled forms are expected here, not errors.
func ParseDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParseQuantity reads a piece count. Empty or malformed input yields zero.
func ParseQuantity(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// LogVolume computes the total volume of a batch of logs in cubic meters
// using the cylinder approximation: the average of the two diameters (cm)
// halved gives the radius in meters, π·r²·length the per-piece volume, and
// the batch total is truncated to three decimals. Any non-positive input
// yields zero.
func LogVolume(diameterFrom, diameterTo, length decimal.Decimal, quantity int64) decimal.Decimal {
	if diameterFrom.Sign() <= 0 || diameterTo.Sign() <= 0 || length.Sign() <= 0 || quantity <= 0 {
		return decimal.Zero
	}
	avgRadius := diameterFrom.Add(diameterTo).Div(avgRadiusDivisor)
	perPiece := pi.Mul(avgRadius).Mul(avgRadius).Mul(length)
	return perPiece.Mul(decimal.NewFromInt(quantity)).RoundDown(3)
}

// LogVolumeStrings is LogVolume over raw form values.
func LogVolumeStrings(diameterFrom, diameterTo, length, quantity string) decimal.Decimal {
	return LogVolume(
		ParseDecimal(diameterFrom),
		ParseDecimal(diameterTo),
		ParseDecimal(length),
		ParseQuantity(quantity),
	)
}
