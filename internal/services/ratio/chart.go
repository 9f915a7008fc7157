package ratio

import "financial-health-engine/internal/models"

// LiquidityChartScale maps the liquidity multiple onto the radar chart's
// 0–100 axis: 10 months of coverage fills the axis.
const LiquidityChartScale = 10

// RadarPoint is one axis of the radar chart.
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RadarPoints normalizes a RatioSet for radar-chart display: percentage
// ratios are clamped to [0,100], the liquidity multiple is scaled by
// LiquidityChartScale and then clamped. This is display-only; the stored
// ratios remain unclamped.
func RadarPoints(r models.RatioSet) []RadarPoint {
	return []RadarPoint{
		{Label: "Savings", Value: clampPercent(r.SavingsRatio)},
		{Label: "Expense", Value: clampPercent(r.ExpenseRatio)},
		{Label: "Leverage", Value: clampPercent(r.LeverageRatio)},
		{Label: "Solvency", Value: clampPercent(r.SolvencyRatio)},
		{Label: "Debt to Income", Value: clampPercent(r.DebtToIncomeRatio)},
		{Label: "Liquidity", Value: clampPercent(r.LiquidityRatio * LiquidityChartScale)},
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
