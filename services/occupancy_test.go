package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ops/models"
	"restaurant-ops/store"
)

func TestOpenTableNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.occupancy.OpenTable(42, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestOpenTableInactive(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)
	require.NoError(t, f.store.UpdateTableStatus(table.ID, models.TableInactive))

	_, err := f.occupancy.OpenTable(table.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// Scenario: userA opens, userB is refused with the occupant named, only
// userA may close, and the table returns to available.
func TestOpenAndCloseTable(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)
	userA, userB := uint(10), uint(20)

	opening, err := f.occupancy.OpenTable(table.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, models.OpeningOpen, opening.Status)
	assert.NotEmpty(t, opening.SessionKey)

	got, err := f.store.GetTable(table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, got.Status)

	_, err = f.occupancy.OpenTable(table.ID, userB)
	var occupied *OccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, userA, occupied.OpenedBy)
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = f.occupancy.CloseTable(table.ID, userB)
	assert.ErrorIs(t, err, ErrForbidden)

	closed, err := f.occupancy.CloseTable(table.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, models.OpeningClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.ClosedBy)
	assert.Equal(t, userA, *closed.ClosedBy)

	got, err = f.store.GetTable(table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableAvailable, got.Status)
}

func TestCloseTableNotOccupied(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)

	_, err := f.occupancy.CloseTable(table.ID, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCloseTableMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.occupancy.CloseTable(99, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// An occupied flag with no live opening is stale state from a past partial
// failure; opening must repair it, proceed, and count the repair.
func TestOpenTableRepairsStaleState(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)
	require.NoError(t, f.store.UpdateTableStatus(table.ID, models.TableOccupied))

	opening, err := f.occupancy.OpenTable(table.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.OpeningOpen, opening.Status)
	assert.Equal(t, uint64(1), f.occupancy.StaleRepairs())
}

// A table can be opened and closed repeatedly; every session leaves its own
// record.
func TestReopenAfterClose(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)

	f.openTable(table.ID, 1)
	_, err := f.occupancy.CloseTable(table.ID, 1)
	require.NoError(t, err)

	f.openTable(table.ID, 2)
	_, err = f.occupancy.CloseTable(table.ID, 2)
	require.NoError(t, err)

	openings, err := f.store.ListOpenings(table.ID)
	require.NoError(t, err)
	assert.Len(t, openings, 2)
	for _, opening := range openings {
		assert.Equal(t, models.OpeningClosed, opening.Status)
	}
}

// N concurrent opens on the same table: exactly one wins, the rest observe
// a conflict. The storage unique index is the arbiter, not the check in
// application code.
func TestConcurrentOpenTable(t *testing.T) {
	f := newFixture(t)
	table := f.seedTable(1)

	const callers = 8
	results := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.occupancy.OpenTable(table.ID, uint(i+1))
		}(i)
	}
	wg.Wait()

	winners, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, store.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, callers-1, conflicts)

	// The invariant held: one live opening.
	_, err := f.store.GetOpenOpening(table.ID)
	assert.NoError(t, err)
}
