package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-health-engine/internal/models"
)

func TestScorecards_OrderAndValues(t *testing.T) {
	r := models.RatioSet{
		SavingsRatio:      40,
		ExpenseRatio:      60,
		LeverageRatio:     40,
		SolvencyRatio:     60,
		LiquidityRatio:    2,
		DebtToIncomeRatio: 10,
	}

	cards := Scorecards(r)
	require.Len(t, cards, 6)

	keys := make([]string, 0, len(cards))
	for _, c := range cards {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"savings", "expense", "leverage", "solvency", "debt", "liquidity"}, keys)

	assert.Equal(t, 40.0, cards[0].Value)
	assert.Equal(t, UnitPercent, cards[0].Unit)
	assert.Equal(t, 2.0, cards[5].Value)
	assert.Equal(t, UnitMultiple, cards[5].Unit)
}

func TestScorecards_HealthyBands(t *testing.T) {
	tests := []struct {
		name    string
		ratios  models.RatioSet
		healthy map[string]bool
	}{
		{
			name: "comfortable profile",
			ratios: models.RatioSet{
				SavingsRatio:      40,
				ExpenseRatio:      60,
				LeverageRatio:     40,
				SolvencyRatio:     60,
				LiquidityRatio:    8,
				DebtToIncomeRatio: 10,
			},
			healthy: map[string]bool{
				"savings": true, "expense": true, "leverage": true,
				"solvency": true, "debt": true, "liquidity": true,
			},
		},
		{
			name: "stretched profile",
			ratios: models.RatioSet{
				SavingsRatio:      5,
				ExpenseRatio:      95,
				LeverageRatio:     70,
				SolvencyRatio:     30,
				LiquidityRatio:    1,
				DebtToIncomeRatio: 55,
			},
			healthy: map[string]bool{
				"savings": false, "expense": false, "leverage": false,
				"solvency": false, "debt": false, "liquidity": false,
			},
		},
		{
			name: "band boundaries are inclusive",
			ratios: models.RatioSet{
				SavingsRatio:      20,
				ExpenseRatio:      80,
				LeverageRatio:     50,
				SolvencyRatio:     50,
				LiquidityRatio:    6,
				DebtToIncomeRatio: 40,
			},
			healthy: map[string]bool{
				"savings": true, "expense": true, "leverage": true,
				"solvency": true, "debt": true, "liquidity": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, card := range Scorecards(tt.ratios) {
				assert.Equal(t, tt.healthy[card.Key], card.Healthy, "card %s", card.Key)
			}
		})
	}
}

func TestScorecards_GuidanceTextPresent(t *testing.T) {
	for _, card := range Scorecards(models.RatioSet{}) {
		assert.NotEmpty(t, card.Title)
		assert.NotEmpty(t, card.Description)
		assert.NotEmpty(t, card.Recommendation)
		assert.NotEmpty(t, card.Improvement)
	}
}

func TestScorecards_Descriptions(t *testing.T) {
	want := map[string]string{
		"savings":   "Percentage of income saved after expenses",
		"expense":   "Percentage of income spent on expenses",
		"leverage":  "Measure of assets financed by debt",
		"solvency":  "Ability to meet long-term financial obligations",
		"debt":      "Monthly debt payments relative to monthly income",
		"liquidity": "Ability to cover short-term obligations",
	}

	for _, card := range Scorecards(models.RatioSet{}) {
		assert.Equal(t, want[card.Key], card.Description, "card %s", card.Key)
	}
}
