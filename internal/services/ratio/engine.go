// Package ratio derives the six financial-health ratios from raw inputs.
package ratio

import (
	"math"
	"strconv"
	"strings"

	"financial-health-engine/internal/models"
)

// Compute derives the six ratios from the given inputs. It is pure and total:
// it never fails, and any ratio whose denominator is zero (or not a finite
// number) comes out as 0 rather than Inf or NaN. Downstream display code can
// rely on every value being finite.
//
// Ratios are not clamped here. Chart normalization is a presentation concern
// handled by RadarPoints; the persisted and scorecard values stay raw.
func Compute(in models.FinancialInputs) models.RatioSet {
	in = Normalize(in)

	var r models.RatioSet
	if in.NetMonthlyIncome > 0 {
		r.SavingsRatio = (in.NetMonthlyIncome - in.NetMonthlyExpenses) / in.NetMonthlyIncome * 100
		r.ExpenseRatio = in.NetMonthlyExpenses / in.NetMonthlyIncome * 100
		r.LiquidityRatio = in.TotalLiquidAssets / in.NetMonthlyIncome
		r.DebtToIncomeRatio = in.NetMonthlyEMIs / in.NetMonthlyIncome * 100
	}
	if in.TotalAssets > 0 {
		r.LeverageRatio = in.TotalLoans / in.TotalAssets * 100
		r.SolvencyRatio = (in.TotalAssets - in.TotalLoans) / in.TotalAssets * 100
	}
	return r
}

// Normalize is the single defaulting step applied before the formulas run:
// any field that is NaN or infinite becomes 0. Negative values pass through;
// non-negativity is a precondition owned by the input-collection layer.
func Normalize(in models.FinancialInputs) models.FinancialInputs {
	in.NetMonthlyIncome = finiteOrZero(in.NetMonthlyIncome)
	in.NetMonthlyExpenses = finiteOrZero(in.NetMonthlyExpenses)
	in.NetMonthlyEMIs = finiteOrZero(in.NetMonthlyEMIs)
	in.TotalAssets = finiteOrZero(in.TotalAssets)
	in.TotalLoans = finiteOrZero(in.TotalLoans)
	in.TotalLiquidAssets = finiteOrZero(in.TotalLiquidAssets)
	return in
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount converts raw textual input to a number. Absent or unparseable
// values fall back to 0, the same zero-default policy the formulas apply to
// zero denominators, so form input never has to be special-cased upstream.
// Common formatting noise (commas, currency symbols) is stripped first.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(v)
}
