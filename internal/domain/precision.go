package domain

import "github.com/shopspring/decimal"

const (
	// FiatScale is the number of decimal places stored for fiat amounts.
	FiatScale = 2
	// GramScale is the number of decimal places stored for metal quantities.
	GramScale = 6
)

var (
	// CentTolerance is the base bound on |grams × quotation − fiat| for a posting.
	CentTolerance = decimal.New(1, -FiatScale)
	// GramTolerance is the residue under which a credit or lot counts as exhausted.
	GramTolerance = decimal.New(1, -3)

	halfGramUnit = decimal.New(5, -(GramScale + 1))
)

// RoundFiat rounds half away from zero to cents.
func RoundFiat(d decimal.Decimal) decimal.Decimal {
	return d.Round(FiatScale)
}

// RoundGrams rounds to the stored gram scale.
func RoundGrams(d decimal.Decimal) decimal.Decimal {
	return d.Round(GramScale)
}

// GramsAtQuotation converts a fiat amount to grams at the given price per gram.
func GramsAtQuotation(fiat, quotation decimal.Decimal) decimal.Decimal {
	return RoundGrams(fiat.Div(quotation))
}

// FiatAtQuotation values grams at the given price per gram, rounded to cents.
func FiatAtQuotation(grams, quotation decimal.Decimal) decimal.Decimal {
	return RoundFiat(grams.Abs().Mul(quotation))
}

// WithinQuotation reports whether grams valued at quotation matches fiat.
// The gap must be under one cent, or no larger than half a stored gram unit
// at that quotation: above 20000 per gram a 6 dp quantity cannot get closer.
func WithinQuotation(grams, quotation, fiat decimal.Decimal) bool {
	gap := grams.Abs().Mul(quotation).Sub(fiat).Abs()
	if gap.LessThan(CentTolerance) {
		return true
	}

	return gap.LessThanOrEqual(quotation.Abs().Mul(halfGramUnit))
}

// IsExhausted reports whether a remaining gram quantity counts as zero.
func IsExhausted(remaining decimal.Decimal) bool {
	return remaining.LessThanOrEqual(GramTolerance)
}
