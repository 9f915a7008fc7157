package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"financial-health-engine/internal/models"
)

func TestInsertError_UniqueViolationMapsToDuplicateEmail(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "profiles_email_unique",
	}

	err := insertError("asha@example.com", pgErr)
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "asha@example.com")

	// Same mapping when the driver error arrives wrapped.
	err = insertError("asha@example.com", fmt.Errorf("exec failed: %w", pgErr))
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestInsertError_OtherFailuresPassThrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not null violation", &pgconn.PgError{Code: "23502"}},
		{"plain error", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := insertError("asha@example.com", tt.err)
			assert.NotErrorIs(t, err, models.ErrDuplicateEmail)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// fakeRow feeds scanProfile a fixed column tuple in profileColumns order.
type fakeRow struct {
	values []interface{}
}

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d columns, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = v.(uuid.UUID)
		case *string:
			*d = v.(string)
		case **float64:
			if v == nil {
				*d = nil
			} else {
				f := v.(float64)
				*d = &f
			}
		case *time.Time:
			*d = v.(time.Time)
		default:
			return fmt.Errorf("unexpected dest type %T at column %d", dest[i], i)
		}
	}
	return nil
}

func TestScanProfile_FullRow(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	profile, err := scanProfile(fakeRow{values: []interface{}{
		id, "Asha Rao", "9876543210", "asha@example.com",
		5000.0, 3000.0, 500.0,
		20000.0, 8000.0, 10000.0,
		40.0, 60.0, 40.0,
		60.0, 2.0, 10.0,
		now, now,
	}})
	require.NoError(t, err)

	assert.Equal(t, id, profile.ID)
	assert.True(t, profile.HasFinancials())
	assert.Equal(t, 5000.0, profile.Inputs.NetMonthlyIncome)
	assert.Equal(t, 2.0, profile.Ratios.LiquidityRatio)
}

func TestScanProfile_NullFinancialsLeaveInputsNil(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	profile, err := scanProfile(fakeRow{values: []interface{}{
		id, "Asha Rao", "9876543210", "asha@example.com",
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil,
		now, now,
	}})
	require.NoError(t, err)

	assert.Nil(t, profile.Inputs)
	assert.Nil(t, profile.Ratios)
	assert.False(t, profile.HasFinancials())
}
