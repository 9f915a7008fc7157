package ses

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-health-engine/internal/models"
	"financial-health-engine/internal/services/ratio"
)

func sampleProfile() *models.Profile {
	return &models.Profile{
		ID:    uuid.New(),
		Name:  "Asha Rao",
		Phone: "9876543210",
		Email: "asha@example.com",
		Inputs: &models.FinancialInputs{
			NetMonthlyIncome:   5000,
			NetMonthlyExpenses: 3000,
			NetMonthlyEMIs:     500,
			TotalAssets:        20000,
			TotalLoans:         8000,
			TotalLiquidAssets:  10000,
		},
		Ratios: &models.RatioSet{
			SavingsRatio:      40,
			ExpenseRatio:      60,
			LeverageRatio:     40,
			SolvencyRatio:     60,
			LiquidityRatio:    2,
			DebtToIncomeRatio: 10,
		},
	}
}

func TestBuildReportParams(t *testing.T) {
	params := BuildReportParams(sampleProfile(), "https://dashboard.example.com")

	assert.Equal(t, "Asha Rao", params.UserName)
	assert.Equal(t, "asha@example.com", params.UserEmail)
	assert.Equal(t, "https://dashboard.example.com", params.DashboardURL)
	require.Len(t, params.Cards, 6)
	assert.Equal(t, 40.0, params.Cards[0].Value)
}

func TestBuildReportParams_NoFinancials(t *testing.T) {
	profile := &models.Profile{Name: "Asha Rao", Email: "asha@example.com"}
	params := BuildReportParams(profile, "")
	assert.Empty(t, params.Cards)
}

func TestRenderReportHTML(t *testing.T) {
	params := BuildReportParams(sampleProfile(), "https://dashboard.example.com")

	html, err := renderReportHTML(params)
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Asha Rao")
	assert.Contains(t, html, "Savings Ratio")
	assert.Contains(t, html, "40.00%")
	assert.Contains(t, html, "2.0x")
	assert.Contains(t, html, `href="https://dashboard.example.com"`)
	// Healthy savings vs unhealthy liquidity styling.
	assert.Contains(t, html, "value healthy")
	assert.Contains(t, html, "value attention")
}

func TestRenderReportHTML_OmitsDashboardLinkWhenUnset(t *testing.T) {
	params := BuildReportParams(sampleProfile(), "")

	html, err := renderReportHTML(params)
	require.NoError(t, err)
	assert.NotContains(t, html, "cta-button")
}

func TestRenderReportText(t *testing.T) {
	params := BuildReportParams(sampleProfile(), "https://dashboard.example.com")

	text := renderReportText(params)
	assert.Contains(t, text, "Hi Asha Rao,")
	assert.Contains(t, text, "1. Savings Ratio: 40.00%")
	assert.Contains(t, text, "6. Liquidity Ratio: 2.0x")
	assert.Contains(t, text, "Open your dashboard: https://dashboard.example.com")
}

func TestFormatCardValue(t *testing.T) {
	assert.Equal(t, "12.50%", formatCardValue(ratio.Scorecard{Value: 12.5, Unit: ratio.UnitPercent}))
	assert.Equal(t, "2.5x", formatCardValue(ratio.Scorecard{Value: 2.5, Unit: ratio.UnitMultiple}))
}
