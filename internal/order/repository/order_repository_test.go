package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littlelemon/internal/domain"
	apperrors "littlelemon/internal/errors"
	"littlelemon/internal/testutil"
)

type fixture struct {
	db       *sql.DB
	orders   *MySQLOrderRepository
	items    *MySQLOrderItemRepository
	customer int
	crew     int
	menuItem int
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	items := NewMySQLOrderItemRepository(db)
	categoryID := testutil.InsertCategory(t, db, "mains", "Mains")
	return &fixture{
		db:       db,
		orders:   NewMySQLOrderRepository(db, items),
		items:    items,
		customer: testutil.InsertUser(t, db, "orderuser", domain.RoleCustomer),
		crew:     testutil.InsertUser(t, db, "rider", domain.RoleDeliveryCrew),
		menuItem: testutil.InsertMenuItem(t, db, "Grilled Fish", "20.00", categoryID),
	}
}

func (f *fixture) insertOrder(t *testing.T, userID int) uint {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	order := domain.Order{UserID: userID, Status: domain.OrderStatusPending, Total: decimal.RequireFromString("40.00"), CreatedAt: now, UpdatedAt: now}

	id, err := f.orders.Insert(context.Background(), f.db, order)
	require.NoError(t, err)
	require.NoError(t, f.items.InsertBatch(context.Background(), f.db, id, []domain.OrderItem{
		{MenuItemID: f.menuItem, Quantity: 2, Price: decimal.RequireFromString("20.00")},
	}))
	return id
}

func TestOrderRepository_InsertAndFind(t *testing.T) {
	f := setup(t)
	id := f.insertOrder(t, f.customer)

	order, err := f.orders.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, f.customer, order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Nil(t, order.DeliveryCrewID)
	assert.Equal(t, "40.00", order.Total.StringFixed(2))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Grilled Fish", order.Items[0].MenuItemTitle)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	f := setup(t)

	_, err := f.orders.FindByID(context.Background(), 99999)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_LockAndUpdate(t *testing.T) {
	f := setup(t)
	id := f.insertOrder(t, f.customer)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	locked, err := f.orders.LockByID(ctx, tx, id)
	require.NoError(t, err)

	locked.Status = domain.OrderStatusOutForDelivery
	locked.DeliveryCrewID = &f.crew
	locked.UpdatedAt = time.Now().UTC()
	require.NoError(t, f.orders.Update(ctx, tx, *locked))
	require.NoError(t, tx.Commit())

	order, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOutForDelivery, order.Status)
	assert.True(t, order.IsAssignedTo(f.crew))
}

func TestOrderRepository_Update_UnknownCrew(t *testing.T) {
	f := setup(t)
	id := f.insertOrder(t, f.customer)
	ctx := context.Background()

	order, err := f.orders.FindByID(ctx, id)
	require.NoError(t, err)
	missing := 99999
	order.DeliveryCrewID = &missing

	err = f.orders.Update(ctx, f.db, *order)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_List_Filters(t *testing.T) {
	f := setup(t)
	other := testutil.InsertUser(t, f.db, "someoneelse", domain.RoleCustomer)
	mine := f.insertOrder(t, f.customer)
	f.insertOrder(t, other)
	ctx := context.Background()

	all, err := f.orders.List(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.orders.List(ctx, OrderFilter{UserID: &f.customer})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine, own[0].ID)
	assert.Len(t, own[0].Items, 1)

	assigned, err := f.orders.List(ctx, OrderFilter{DeliveryCrewID: &f.crew})
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestOrderRepository_Delete_CascadesItems(t *testing.T) {
	f := setup(t)
	id := f.insertOrder(t, f.customer)
	ctx := context.Background()

	require.NoError(t, f.orders.Delete(ctx, id))

	items, err := f.items.ListByOrderIDs(ctx, []uint{id})
	require.NoError(t, err)
	assert.Empty(t, items[id])

	_, ok := apperrors.IsNotFoundError(f.orders.Delete(ctx, id))
	assert.True(t, ok)
}
