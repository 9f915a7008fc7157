// Package models defines the data structures for the financial health engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the user-supplied identification block collected on first visit.
// Email is the natural key used for profile deduplication.
type Identity struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"required,min=1,max=30"`
	Email string `json:"email" validate:"required,email"`
}

// FinancialInputs holds the raw monthly figures entered by the user.
// All amounts are non-negative; enforcement lives in the input-collection
// layer, not in the ratio formulas.
type FinancialInputs struct {
	NetMonthlyIncome   float64 `json:"net_monthly_income" db:"net_monthly_income"`
	NetMonthlyExpenses float64 `json:"net_monthly_expenses" db:"net_monthly_expenses"`
	NetMonthlyEMIs     float64 `json:"net_monthly_emis" db:"net_monthly_emis"`
	TotalAssets        float64 `json:"total_assets" db:"total_assets"`
	TotalLoans         float64 `json:"total_loans" db:"total_loans"`
	TotalLiquidAssets  float64 `json:"total_liquid_assets" db:"total_liquid_assets"`
}

// RatioSet contains the six derived financial-health ratios. All values are
// percentages except LiquidityRatio, which is a raw multiple of monthly
// income (2.5 means 2.5 months of income held in liquid assets).
//
// A RatioSet is always recomputed from the profile's own FinancialInputs and
// never edited independently.
type RatioSet struct {
	SavingsRatio      float64 `json:"savings_ratio" db:"savings_ratio"`
	ExpenseRatio      float64 `json:"expense_ratio" db:"expense_ratio"`
	LeverageRatio     float64 `json:"leverage_ratio" db:"leverage_ratio"`
	SolvencyRatio     float64 `json:"solvency_ratio" db:"solvency_ratio"`
	LiquidityRatio    float64 `json:"liquidity_ratio" db:"liquidity_ratio"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio" db:"debt_to_income_ratio"`
}

// Profile is the persisted record for one user: identity, the raw inputs from
// the latest submission, and the ratios derived from them. Inputs and Ratios
// are nil until the first financial-data submission.
type Profile struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Phone     string           `json:"phone" db:"phone"`
	Email     string           `json:"email" db:"email"`
	Inputs    *FinancialInputs `json:"inputs,omitempty"`
	Ratios    *RatioSet        `json:"ratios,omitempty"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`
}

// HasFinancials reports whether the profile has received at least one
// financial-data submission.
func (p *Profile) HasFinancials() bool {
	return p != nil && p.Inputs != nil && p.Ratios != nil
}

// ProfileImport is one row of a bulk CSV import: identity plus the raw
// figures for that person.
type ProfileImport struct {
	Identity Identity        `json:"identity"`
	Inputs   FinancialInputs `json:"inputs"`
}

// BulkImportResult contains the outcome of a bulk import operation.
type BulkImportResult struct {
	ImportedCount int      `json:"imported_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
