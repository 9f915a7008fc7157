package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-health-engine/internal/models"
)

func TestRadarPoints_ScalesAndLabels(t *testing.T) {
	r := models.RatioSet{
		SavingsRatio:      40,
		ExpenseRatio:      60,
		LeverageRatio:     40,
		SolvencyRatio:     60,
		LiquidityRatio:    2,
		DebtToIncomeRatio: 10,
	}

	points := RadarPoints(r)
	require.Len(t, points, 6)

	byLabel := make(map[string]float64, len(points))
	for _, p := range points {
		byLabel[p.Label] = p.Value
	}

	assert.Equal(t, 40.0, byLabel["Savings"])
	assert.Equal(t, 60.0, byLabel["Expense"])
	assert.Equal(t, 40.0, byLabel["Leverage"])
	assert.Equal(t, 60.0, byLabel["Solvency"])
	assert.Equal(t, 10.0, byLabel["Debt to Income"])
	// 2 months of coverage scales to 20 on the 0-100 axis.
	assert.Equal(t, 20.0, byLabel["Liquidity"])
}

func TestRadarPoints_ClampsOutOfRangeValues(t *testing.T) {
	r := models.RatioSet{
		SavingsRatio:      -50, // expenses above income
		ExpenseRatio:      150,
		LiquidityRatio:    24, // two years of coverage
		DebtToIncomeRatio: 10,
	}

	points := RadarPoints(r)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Value, 0.0, "axis %s", p.Label)
		assert.LessOrEqual(t, p.Value, 100.0, "axis %s", p.Label)
	}

	assert.Equal(t, 0.0, points[0].Value)   // Savings floored
	assert.Equal(t, 100.0, points[1].Value) // Expense capped
	assert.Equal(t, 100.0, points[5].Value) // Liquidity capped after scaling
}

func TestRadarPoints_ZeroSet(t *testing.T) {
	for _, p := range RadarPoints(models.RatioSet{}) {
		assert.Zero(t, p.Value)
	}
}
