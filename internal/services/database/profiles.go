// Package database provides Postgres access for the financial health engine.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"financial-health-engine/internal/models"
)

// uniqueViolation is the Postgres error code for a unique-constraint breach.
const uniqueViolation = "23505"

const profileColumns = `
	id, name, phone, email,
	net_monthly_income, net_monthly_expenses, net_monthly_emis,
	total_assets, total_loans, total_liquid_assets,
	savings_ratio, expense_ratio, leverage_ratio,
	solvency_ratio, liquidity_ratio, debt_to_income_ratio,
	created_at, updated_at`

// ProfileRepository handles profile database operations. It is the record
// store behind the reconciler: profiles are addressed by id, deduplicated by
// email, and carry nullable input/ratio columns until the first calculation.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Insert creates a new profile holding only identity fields. The id and
// timestamps are assigned here; input and ratio columns start as NULL.
// A concurrent insert for the same email loses against the unique index
// and comes back as models.ErrDuplicateEmail.
func (r *ProfileRepository) Insert(ctx context.Context, identity models.Identity) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + profileColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		identity.Name,
		identity.Phone,
		identity.Email,
		time.Now().UTC(),
	)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, insertError(identity.Email, err)
	}

	return profile, nil
}

// insertError classifies an insert failure: losing the unique-index race on
// LOWER(email) comes back as models.ErrDuplicateEmail, everything else is
// passed through wrapped.
func insertError(email string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("insert profile %s: %w", email, models.ErrDuplicateEmail)
	}
	return fmt.Errorf("failed to insert profile: %w", err)
}

// FindByEmail retrieves the canonical profile for an email: the most recently
// created match. Returns (nil, nil) when no profile exists.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at DESC
		LIMIT 1`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by email: %w", err)
	}

	return profile, nil
}

// FindByID retrieves a profile by its id. Returns (nil, nil) when no profile
// exists.
func (r *ProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return profile, nil
}

// UpdateFinancials replaces the profile's inputs and ratios wholesale and
// bumps updated_at, all in a single statement so the two can never diverge.
// Returns models.ErrProfileNotFound if no profile has the given id.
func (r *ProfileRepository) UpdateFinancials(ctx context.Context, id uuid.UUID, in models.FinancialInputs, ratios models.RatioSet) (*models.Profile, error) {
	query := `
		UPDATE profiles SET
			net_monthly_income = $2,
			net_monthly_expenses = $3,
			net_monthly_emis = $4,
			total_assets = $5,
			total_loans = $6,
			total_liquid_assets = $7,
			savings_ratio = $8,
			expense_ratio = $9,
			leverage_ratio = $10,
			solvency_ratio = $11,
			liquidity_ratio = $12,
			debt_to_income_ratio = $13,
			updated_at = $14
		WHERE id = $1
		RETURNING ` + profileColumns

	row := r.db.QueryRowContext(ctx, query,
		id,
		in.NetMonthlyIncome,
		in.NetMonthlyExpenses,
		in.NetMonthlyEMIs,
		in.TotalAssets,
		in.TotalLoans,
		in.TotalLiquidAssets,
		ratios.SavingsRatio,
		ratios.ExpenseRatio,
		ratios.LeverageRatio,
		ratios.SolvencyRatio,
		ratios.LiquidityRatio,
		ratios.DebtToIncomeRatio,
		time.Now().UTC(),
	)

	profile, err := scanProfile(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("update profile %s: %w", id, models.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile financials: %w", err)
	}

	return profile, nil
}

// ListRecent retrieves the most recently created profiles, newest first.
func (r *ProfileRepository) ListRecent(ctx context.Context, limit int) ([]*models.Profile, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// scanProfile reads one profile row. The twelve financial columns are
// nullable; they are written together, so a NULL income marks a profile that
// has no financial data yet and Inputs/Ratios stay nil.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var (
		p       models.Profile
		income  *float64
		expense *float64
		emis    *float64
		assets  *float64
		loans   *float64
		liquid  *float64
		savings *float64
		expRat  *float64
		lever   *float64
		solv    *float64
		liqRat  *float64
		dti     *float64
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email,
		&income, &expense, &emis,
		&assets, &loans, &liquid,
		&savings, &expRat, &lever,
		&solv, &liqRat, &dti,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if income != nil {
		p.Inputs = &models.FinancialInputs{
			NetMonthlyIncome:   *income,
			NetMonthlyExpenses: deref(expense),
			NetMonthlyEMIs:     deref(emis),
			TotalAssets:        deref(assets),
			TotalLoans:         deref(loans),
			TotalLiquidAssets:  deref(liquid),
		}
		p.Ratios = &models.RatioSet{
			SavingsRatio:      deref(savings),
			ExpenseRatio:      deref(expRat),
			LeverageRatio:     deref(lever),
			SolvencyRatio:     deref(solv),
			LiquidityRatio:    deref(liqRat),
			DebtToIncomeRatio: deref(dti),
		}
	}

	return &p, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
