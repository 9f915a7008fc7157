// Package reconciler decides profile identity and drives the
// read-modify-write cycle against the record store.
package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"financial-health-engine/internal/models"
	"financial-health-engine/internal/services/ratio"
	"financial-health-engine/internal/utils"
)

// Store is the record-store contract the reconciler operates against. The
// Postgres ProfileRepository satisfies it in production; tests inject fakes.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Insert(ctx context.Context, identity models.Identity) (*models.Profile, error)
	UpdateFinancials(ctx context.Context, id uuid.UUID, in models.FinancialInputs, ratios models.RatioSet) (*models.Profile, error)
}

// Reconciler implements the create-or-update-by-identity flow. It performs no
// in-process locking: each operation is a short read-then-write against the
// store, and operations on different profiles are fully independent.
type Reconciler struct {
	store Store
}

// New creates a reconciler over the given store.
func New(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// ResolveOrCreate resolves the target profile for an identity submission.
// A profile already holding this email wins: its id is returned and its
// identity fields are left untouched (first-write-wins, since returning users
// re-enter the same identity). Otherwise a new profile is created with empty
// inputs and ratios.
//
// Store read failures surface as models.ErrLookup. When two concurrent calls
// for an unseen email both miss the lookup, the losing insert surfaces as
// models.ErrDuplicateEmail and the caller should re-resolve.
func (r *Reconciler) ResolveOrCreate(ctx context.Context, identity models.Identity) (uuid.UUID, error) {
	existing, err := r.store.FindByEmail(ctx, identity.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", models.ErrLookup, err)
	}

	if existing != nil {
		utils.GetLogger().Debug("Resolved returning profile",
			zap.String("profile_id", existing.ID.String()),
			zap.String("email", identity.Email),
		)
		return existing.ID, nil
	}

	created, err := r.store.Insert(ctx, identity)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("%w: %v", models.ErrLookup, err)
	}

	utils.GetLogger().Info("Created profile",
		zap.String("profile_id", created.ID.String()),
		zap.String("email", created.Email),
	)
	return created.ID, nil
}

// ApplyFinancialUpdate recomputes the ratios for the given inputs and
// persists inputs and ratios together into the profile identified by id, so
// the stored RatioSet is always a pure function of the stored inputs. The
// full updated profile is returned so callers can render without a second
// read.
//
// The profile must already exist; an unknown id surfaces as
// models.ErrProfileNotFound and creates nothing.
func (r *Reconciler) ApplyFinancialUpdate(ctx context.Context, id uuid.UUID, in models.FinancialInputs) (*models.Profile, error) {
	ratios := ratio.Compute(in)

	updated, err := r.store.UpdateFinancials(ctx, id, in, ratios)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrLookup, err)
	}

	utils.GetLogger().Info("Applied financial update",
		zap.String("profile_id", id.String()),
		zap.Float64("savings_ratio", ratios.SavingsRatio),
		zap.Float64("debt_to_income_ratio", ratios.DebtToIncomeRatio),
	)
	return updated, nil
}

// Lookup returns the current state of a profile, or models.ErrProfileNotFound
// if the id is unknown.
func (r *Reconciler) Lookup(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := r.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLookup, err)
	}
	if profile == nil {
		return nil, models.ErrProfileNotFound
	}
	return profile, nil
}
