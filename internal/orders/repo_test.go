package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_number TEXT NOT NULL UNIQUE,
  user_id INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  tax_amount NUMERIC NOT NULL,
  delivery_charge NUMERIC NOT NULL,
  discount NUMERIC NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  payment_method TEXT NOT NULL DEFAULT 'cod',
  pickup_address TEXT NOT NULL,
  delivery_address TEXT NOT NULL,
  pickup_date DATETIME,
  pickup_time_slot TEXT,
  delivery_date DATETIME,
  delivery_time_slot TEXT,
  special_instructions TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  service_id INTEGER NOT NULL,
  option_id INTEGER,
  service_name TEXT NOT NULL,
  option_name TEXT,
  unit_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME
);`
	orderTracking := `
CREATE TABLE IF NOT EXISTS order_tracking (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  status TEXT NOT NULL,
  description TEXT,
  location TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(orderTracking).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID int64, number string, status enums.OrderStatus, total string, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber:     number,
		UserID:          userID,
		Status:          status,
		Subtotal:        decimal.RequireFromString(total),
		TaxAmount:       decimal.Zero,
		DeliveryCharge:  decimal.Zero,
		TotalAmount:     decimal.RequireFromString(total),
		PaymentMethod:   enums.PaymentMethodCOD,
		PickupAddress:   "12 MG Road",
		DeliveryAddress: "12 MG Road",
		Items: []models.OrderItem{{
			ServiceID:   1,
			ServiceName: "Regular Wash",
			UnitPrice:   decimal.RequireFromString(total),
			Quantity:    1,
			LineTotal:   decimal.RequireFromString(total),
		}},
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryList_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		seedOrder(t, db, 1, fmt.Sprintf("ORD-PAGE%04d", i), enums.OrderStatusPending, "10.00", now.Add(time.Duration(i)*time.Minute))
	}

	first, cursor, err := repo.List(context.Background(), listOrdersParams{UserID: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotNil(t, cursor)
	assert.Equal(t, "ORD-PAGE0002", first[0].OrderNumber)
	assert.Equal(t, "ORD-PAGE0001", first[1].OrderNumber)
	assert.Len(t, first[0].Items, 1)

	second, next, err := repo.List(context.Background(), listOrdersParams{UserID: 1, Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Nil(t, next)
	assert.Equal(t, "ORD-PAGE0000", second[0].OrderNumber)
}

func TestRepositoryList_ownerAndStatusScoping(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	seedOrder(t, db, 1, "ORD-MINE0001", enums.OrderStatusPending, "10.00", now)
	seedOrder(t, db, 1, "ORD-MINE0002", enums.OrderStatusDelivered, "20.00", now.Add(time.Minute))
	seedOrder(t, db, 2, "ORD-THEIRS01", enums.OrderStatusPending, "30.00", now.Add(2*time.Minute))

	mine, _, err := repo.List(context.Background(), listOrdersParams{UserID: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, mine, 2)

	delivered, _, err := repo.List(context.Background(), listOrdersParams{UserID: 1, Status: enums.OrderStatusDelivered, Limit: 10})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "ORD-MINE0002", delivered[0].OrderNumber)

	// Zero user id is the admin view across all users.
	all, _, err := repo.List(context.Background(), listOrdersParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryTotalSpentByUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	seedOrder(t, db, 1, "ORD-SPENT001", enums.OrderStatusDelivered, "90.25", now)
	seedOrder(t, db, 1, "ORD-SPENT002", enums.OrderStatusDelivered, "9.75", now.Add(time.Minute))
	seedOrder(t, db, 1, "ORD-SPENT003", enums.OrderStatusCancelled, "55.00", now.Add(2*time.Minute))
	seedOrder(t, db, 2, "ORD-SPENT004", enums.OrderStatusDelivered, "70.00", now.Add(3*time.Minute))

	total, err := repo.TotalSpentByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("100.00")), "total = %s", total)

	none, err := repo.TotalSpentByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestRepositoryTrackingAppendOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	order := seedOrder(t, db, 1, "ORD-TRACK001", enums.OrderStatusPending, "10.00", now)

	entries := []models.OrderTracking{
		{OrderID: order.ID, Status: enums.OrderStatusPending, Description: "Order placed successfully", CreatedAt: now},
		{OrderID: order.ID, Status: enums.OrderStatusPickedUp, Description: "Status updated to picked_up", Location: "Hub 3", CreatedAt: now.Add(time.Minute)},
	}
	for i := range entries {
		require.NoError(t, repo.AddTracking(context.Background(), &entries[i]))
	}

	history, err := repo.ListTracking(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, enums.OrderStatusPending, history[0].Status)
	assert.Equal(t, "Hub 3", history[1].Location)

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPickedUp))
	got, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enums.OrderStatusPickedUp, got.Status)
	assert.Len(t, got.Tracking, 2)
}
