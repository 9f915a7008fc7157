// Package utils provides utility functions for the financial health engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"financial-health-engine/internal/models"
	"financial-health-engine/internal/services/ratio"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{
	"name",
	"phone",
	"email",
	"net_monthly_income",
	"net_monthly_expenses",
	"net_monthly_emis",
	"total_assets",
	"total_loans",
	"total_liquid_assets",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// name aliases
	"full_name": "name",
	"fullname":  "name",
	"full name": "name",
	"username":  "name",
	"user_name": "name",

	// phone aliases
	"phone_number": "phone",
	"phonenumber":  "phone",
	"phone number": "phone",
	"mobile":       "phone",
	"contact":      "phone",

	// email aliases
	"emailaddress":  "email",
	"email_address": "email",
	"email address": "email",
	"mail":          "email",

	// income aliases
	"income":         "net_monthly_income",
	"monthly_income": "net_monthly_income",
	"monthly income": "net_monthly_income",
	"salary":         "net_monthly_income",
	"net income":     "net_monthly_income",

	// expense aliases
	"expenses":         "net_monthly_expenses",
	"monthly_expenses": "net_monthly_expenses",
	"monthly expenses": "net_monthly_expenses",
	"spending":         "net_monthly_expenses",

	// emi aliases
	"emis":         "net_monthly_emis",
	"emi":          "net_monthly_emis",
	"monthly_emis": "net_monthly_emis",
	"monthly emis": "net_monthly_emis",
	"debt_service": "net_monthly_emis",

	// asset aliases
	"assets":       "total_assets",
	"total assets": "total_assets",

	// loan aliases
	"loans":       "total_loans",
	"total loans": "total_loans",
	"debt":        "total_loans",
	"total_debt":  "total_loans",

	// liquid asset aliases
	"liquid_assets":       "total_liquid_assets",
	"liquid assets":       "total_liquid_assets",
	"total liquid assets": "total_liquid_assets",
	"savings":             "total_liquid_assets",
}

// CSVParser handles parsing of profile CSV files for bulk onboarding.
type CSVParser struct {
	columnMapping map[string]int
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping: make(map[string]int),
	}
}

// ParseProfiles parses CSV content and returns the valid rows as
// ProfileImport records. Amount cells go through ratio.ParseAmount, so an
// empty or malformed amount becomes 0 rather than failing the row; identity
// problems and negative amounts reject the row with a line-numbered error.
func (p *CSVParser) ParseProfiles(content string) ([]*models.ProfileImport, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var imports []*models.ProfileImport
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		row, err := p.parseRow(record)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		if err := models.ValidateIdentity(&row.Identity); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}
		if err := models.ValidateInputs(&row.Inputs); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		imports = append(imports, row)
	}

	if len(imports) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return imports, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)

	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		p.columnMapping[normalized] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a ProfileImport.
func (p *CSVParser) parseRow(record []string) (*models.ProfileImport, error) {
	getValue := func(column string) (string, error) {
		idx, ok := p.columnMapping[column]
		if !ok {
			return "", fmt.Errorf("column %s not found", column)
		}
		if idx >= len(record) {
			return "", fmt.Errorf("column %s index out of range", column)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	name, err := getValue("name")
	if err != nil {
		return nil, err
	}
	phone, err := getValue("phone")
	if err != nil {
		return nil, err
	}
	email, err := getValue("email")
	if err != nil {
		return nil, err
	}

	var amounts [6]float64
	for i, column := range RequiredColumns[3:] {
		cell, err := getValue(column)
		if err != nil {
			return nil, err
		}
		amounts[i] = ratio.ParseAmount(cell)
	}

	return &models.ProfileImport{
		Identity: models.Identity{
			Name:  name,
			Phone: phone,
			Email: email,
		},
		Inputs: models.FinancialInputs{
			NetMonthlyIncome:   amounts[0],
			NetMonthlyExpenses: amounts[1],
			NetMonthlyEMIs:     amounts[2],
			TotalAssets:        amounts[3],
			TotalLoans:         amounts[4],
			TotalLiquidAssets:  amounts[5],
		},
	}, nil
}
