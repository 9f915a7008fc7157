// Package models defines the data structures for the financial health engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	// Validation errors, raised by the input-collection layer before any
	// store interaction.
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrEmptyPhone     = errors.New("phone cannot be empty")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrNegativeAmount = errors.New("financial amounts cannot be negative")

	// Store errors, surfaced to the caller unchanged with no internal retry.
	ErrLookup          = errors.New("record store lookup failed")
	ErrProfileNotFound = errors.New("profile not found")
	ErrDuplicateEmail  = errors.New("concurrent profile creation for the same email")
)

// ValidateIdentity validates the identity block of a submission.
func ValidateIdentity(id *Identity) error {
	if strings.TrimSpace(id.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(id.Phone) == "" {
		return ErrEmptyPhone
	}
	if !isValidEmail(id.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateInputs checks the non-negativity precondition on raw figures.
// The ratio engine itself never enforces this.
func ValidateInputs(in *FinancialInputs) error {
	amounts := []float64{
		in.NetMonthlyIncome,
		in.NetMonthlyExpenses,
		in.NetMonthlyEMIs,
		in.TotalAssets,
		in.TotalLoans,
		in.TotalLiquidAssets,
	}
	for _, a := range amounts {
		if a < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// isValidEmail performs basic email validation.
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}

	// Basic check: must contain @ and have content before and after
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	// Must have a dot after @
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex <= atIndex+1 || dotIndex == len(email)-1 {
		return false
	}

	return true
}
