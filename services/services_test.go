package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-ops/database"
	"restaurant-ops/models"
	"restaurant-ops/store"
)

// fixture wires the full service stack over a throwaway in-memory database,
// one per test so they never share state.
type fixture struct {
	t          *testing.T
	db         *gorm.DB
	store      *store.Store
	occupancy  *Occupancy
	lifecycle  *Lifecycle
	adjustment *Adjustment
	billing    *Billing

	category *models.MenuCategory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	catalog := NewStoreCatalog(st)
	lifecycle := NewLifecycle(st, catalog)

	return &fixture{
		t:          t,
		db:         db,
		store:      st,
		occupancy:  NewOccupancy(st),
		lifecycle:  lifecycle,
		adjustment: NewAdjustment(st, catalog, lifecycle),
		billing:    NewBilling(st, lifecycle),
	}
}

func (f *fixture) seedTable(number int) *models.Table {
	f.t.Helper()
	table := &models.Table{Number: number, Status: models.TableAvailable}
	require.NoError(f.t, f.store.InsertTable(table))
	return table
}

func (f *fixture) seedMenuItem(name string, price float64) *models.MenuItem {
	f.t.Helper()
	if f.category == nil {
		f.category = &models.MenuCategory{Name: "mains"}
		require.NoError(f.t, f.store.InsertCategory(f.category))
	}
	item := &models.MenuItem{
		CategoryID: f.category.ID,
		Name:       name,
		Price:      price,
		Available:  true,
	}
	require.NoError(f.t, f.store.InsertMenuItem(item))
	return item
}

func (f *fixture) openTable(tableID, userID uint) *models.TableOpening {
	f.t.Helper()
	opening, err := f.occupancy.OpenTable(tableID, userID)
	require.NoError(f.t, err)
	return opening
}

func (f *fixture) createOrder(tableID, userID uint, items ...NewOrderItem) *models.Order {
	f.t.Helper()
	order, err := f.lifecycle.CreateOrder(tableID, userID, items)
	require.NoError(f.t, err)
	return order
}
