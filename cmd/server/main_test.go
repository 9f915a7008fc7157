package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAmount(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"float", 5000.0, 5000},
		{"numeric string", "5000", 5000},
		{"string with thousands separator", "5,000", 5000},
		{"currency prefix", "$1200.50", 1200.50},
		{"empty string", "", 0},
		{"garbage string", "abc", 0},
		{"json number", json.Number("750.25"), 750.25},
		{"nil", nil, 0},
		{"unsupported type", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAmount(tt.in))
		})
	}
}

func TestFinancialsRequest_MixedFieldTypes(t *testing.T) {
	// Browser form posts amounts as strings; API clients post numbers.
	body := `{
		"net_monthly_income": "5,000",
		"net_monthly_expenses": 3000,
		"net_monthly_emis": "500",
		"total_assets": 20000,
		"total_loans": "8000",
		"total_liquid_assets": ""
	}`

	var req financialsRequest
	require.NoError(t, json.NewDecoder(strings.NewReader(body)).Decode(&req))

	assert.Equal(t, 5000.0, toAmount(req.NetMonthlyIncome))
	assert.Equal(t, 3000.0, toAmount(req.NetMonthlyExpenses))
	assert.Equal(t, 500.0, toAmount(req.NetMonthlyEMIs))
	assert.Equal(t, 20000.0, toAmount(req.TotalAssets))
	assert.Equal(t, 8000.0, toAmount(req.TotalLoans))
	assert.Zero(t, toAmount(req.TotalLiquidAssets))
}
