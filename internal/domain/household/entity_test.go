//go:build unit

package household_test

import (
	"testing"
	"time"

	"commons-dinner/internal/domain/household"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestHousehold_Refresh(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	h, err := household.NewHousehold(42, ptr(int64(1001)), "Hansen", " Skraaningen 3 ", now)
	require.NoError(t, err)
	assert.Equal(t, "Skraaningen 3", h.Address())

	changed, err := h.Refresh(ptr(int64(1001)), "Hansen", "Skraaningen 3", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, h.UpdatedAt())

	changed, err = h.Refresh(nil, "Hansen", "Skraaningen 5", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, h.PbsID())

	_, err = h.Refresh(nil, "x", " ", now)
	assert.ErrorIs(t, err, household.ErrEmptyAddress)
}

func TestInhabitant_IsResidentAt(t *testing.T) {
	in := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	i, err := household.NewInhabitant(uuid.New(), household.InhabitantDetails{
		Name: "Anna", MoveInDate: &in, MoveOutDate: &out,
	}, in)
	require.NoError(t, err)

	assert.False(t, i.IsResidentAt(in.AddDate(0, 0, -1)))
	assert.True(t, i.IsResidentAt(in))
	assert.True(t, i.IsResidentAt(out))
	assert.False(t, i.IsResidentAt(out.AddDate(0, 0, 1)))
}

func TestNewInhabitant_Validation(t *testing.T) {
	in := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	before := in.AddDate(0, 0, -1)

	_, err := household.NewInhabitant(uuid.New(), household.InhabitantDetails{Name: ""}, in)
	assert.ErrorIs(t, err, household.ErrEmptyName)

	_, err = household.NewInhabitant(uuid.New(), household.InhabitantDetails{Name: "A", MoveInDate: &in, MoveOutDate: &before}, in)
	assert.ErrorIs(t, err, household.ErrInvalidResident)
}
