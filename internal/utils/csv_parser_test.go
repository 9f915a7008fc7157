package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-health-engine/internal/models"
)

func TestParseProfiles_ValidFile(t *testing.T) {
	content := `name,phone,email,net_monthly_income,net_monthly_expenses,net_monthly_emis,total_assets,total_loans,total_liquid_assets
Asha Rao,9876543210,asha@example.com,5000,3000,500,20000,8000,10000
Ben Ortiz,5551234567,ben@example.com,"6,000",2500,0,15000,0,4000`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	assert.Empty(t, errs)
	require.Len(t, imports, 2)

	assert.Equal(t, "Asha Rao", imports[0].Identity.Name)
	assert.Equal(t, "asha@example.com", imports[0].Identity.Email)
	assert.Equal(t, 5000.0, imports[0].Inputs.NetMonthlyIncome)
	assert.Equal(t, 10000.0, imports[0].Inputs.TotalLiquidAssets)

	// Quoted thousands separator parses as a plain amount.
	assert.Equal(t, 6000.0, imports[1].Inputs.NetMonthlyIncome)
}

func TestParseProfiles_HeaderAliases(t *testing.T) {
	content := `Full Name,Mobile,Email Address,Salary,Monthly Expenses,EMI,Assets,Loans,Liquid Assets
Asha Rao,9876543210,asha@example.com,5000,3000,500,20000,8000,10000`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	assert.Empty(t, errs)
	require.Len(t, imports, 1)
	assert.Equal(t, 500.0, imports[0].Inputs.NetMonthlyEMIs)
	assert.Equal(t, 8000.0, imports[0].Inputs.TotalLoans)
}

func TestParseProfiles_BadRowsReportedWithLineNumbers(t *testing.T) {
	content := `name,phone,email,net_monthly_income,net_monthly_expenses,net_monthly_emis,total_assets,total_loans,total_liquid_assets
Asha Rao,9876543210,asha@example.com,5000,3000,500,20000,8000,10000
,9876543210,noname@example.com,5000,3000,500,20000,8000,10000
Ben Ortiz,5551234567,not-an-email,5000,3000,500,20000,8000,10000
Cara Nduka,5559876543,cara@example.com,-5000,3000,500,20000,8000,10000`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	require.Len(t, imports, 1)
	require.Len(t, errs, 3)

	assert.ErrorIs(t, errs[0], models.ErrEmptyName)
	assert.Contains(t, errs[0].Error(), "line 3")
	assert.ErrorIs(t, errs[1], models.ErrInvalidEmail)
	assert.Contains(t, errs[1].Error(), "line 4")
	assert.ErrorIs(t, errs[2], models.ErrNegativeAmount)
	assert.Contains(t, errs[2].Error(), "line 5")
}

func TestParseProfiles_MalformedAmountDefaultsToZero(t *testing.T) {
	content := `name,phone,email,net_monthly_income,net_monthly_expenses,net_monthly_emis,total_assets,total_loans,total_liquid_assets
Asha Rao,9876543210,asha@example.com,5000,n/a,,20000,8000,10000`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	assert.Empty(t, errs)
	require.Len(t, imports, 1)
	assert.Zero(t, imports[0].Inputs.NetMonthlyExpenses)
	assert.Zero(t, imports[0].Inputs.NetMonthlyEMIs)
}

func TestParseProfiles_EmptyContent(t *testing.T) {
	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles("   \n  ")

	assert.Nil(t, imports)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrEmptyCSV)
}

func TestParseProfiles_MissingColumns(t *testing.T) {
	content := `name,email
Asha Rao,asha@example.com`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	assert.Nil(t, imports)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMissingColumns)
	assert.Contains(t, errs[0].Error(), "phone")
	assert.Contains(t, errs[0].Error(), "net_monthly_income")
}

func TestParseProfiles_AllRowsInvalid(t *testing.T) {
	content := `name,phone,email,net_monthly_income,net_monthly_expenses,net_monthly_emis,total_assets,total_loans,total_liquid_assets
,9876543210,noname@example.com,5000,3000,500,20000,8000,10000`

	parser := NewCSVParser()
	imports, errs := parser.ParseProfiles(content)

	assert.Nil(t, imports)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], ErrNoDataRows)
}
