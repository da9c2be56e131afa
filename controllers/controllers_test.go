package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-ops/database"
	"restaurant-ops/models"
	"restaurant-ops/services"
	"restaurant-ops/store"
)

type testEnv struct {
	t      *testing.T
	store  *store.Store
	router *gin.Engine
	userID uint
}

// newTestEnv wires the controllers behind a router whose auth is a stub:
// every request runs as env.userID. Route shapes match the real router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := store.New(db)
	catalog := services.NewStoreCatalog(st)
	occupancy := services.NewOccupancy(st)
	lifecycle := services.NewLifecycle(st, catalog)
	adjustment := services.NewAdjustment(st, catalog, lifecycle)
	billing := services.NewBilling(st, lifecycle)

	env := &testEnv{t: t, store: st, userID: 1}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", env.userID)
		c.Set("role", "staff")
		c.Next()
	})

	tables := NewTableController(st, occupancy)
	orders := NewOrderController(st, lifecycle, adjustment)
	kitchen := NewKitchenController(st, lifecycle)
	payments := NewPaymentController(st, billing)

	router.POST("/tables", tables.CreateTable)
	router.GET("/tables/:table_id", tables.GetTableByID)
	router.POST("/tables/:table_id/open", tables.OpenTable)
	router.POST("/tables/:table_id/close", tables.CloseTable)
	router.POST("/tables/:table_id/orders", orders.CreateOrder)
	router.GET("/orders", orders.GetAllOrders)
	router.GET("/orders/:order_id", orders.GetOrderByID)
	router.PATCH("/orders/:order_id/status", orders.UpdateOrderStatus)
	router.PATCH("/orders/:order_id/adjust", orders.AdjustOrder)
	router.PATCH("/kitchen/order-items/:item_id/status", kitchen.UpdateItemStatus)
	router.POST("/payments/bills", payments.CreateBill)

	env.router = router
	return env
}

func (e *testEnv) request(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedMenuItem(name string, price float64) *models.MenuItem {
	e.t.Helper()
	category := &models.MenuCategory{Name: name + " category"}
	require.NoError(e.t, e.store.InsertCategory(category))
	item := &models.MenuItem{Name: name, Price: price, CategoryID: category.ID, Available: true}
	require.NoError(e.t, e.store.InsertMenuItem(item))
	return item
}

func TestOpenTableEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodPost, "/tables", gin.H{"number": 4})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(http.MethodPost, "/tables/1/open", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Another waiter hits an occupied table.
	env.userID = 2
	rec = env.request(http.MethodPost, "/tables/1/open", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// And may not close a session they did not open.
	rec = env.request(http.MethodPost, "/tables/1/close", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env.userID = 1
	rec = env.request(http.MethodPost, "/tables/1/close", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodPost, "/tables/9/open", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderEndpoints(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedMenuItem("pho bo", 85000)

	rec := env.request(http.MethodPost, "/tables", gin.H{"number": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	// No session yet.
	rec = env.request(http.MethodPost, "/tables/1/orders", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, env.request(http.MethodPost, "/tables/1/open", nil).Code)

	rec = env.request(http.MethodPost, "/tables/1/orders", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 170000.0, created.Data.TotalAmount)
	orderPath := fmt.Sprintf("/orders/%d", created.Data.ID)

	rec = env.request(http.MethodPatch, orderPath+"/status", gin.H{"status": "preparing"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Skipping ready is a transition conflict.
	rec = env.request(http.MethodPatch, orderPath+"/status", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(http.MethodPatch, orderPath+"/adjust", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 3, "action": "modify"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, 255000.0, detail.Data.TotalAmount)

	rec = env.request(http.MethodGet, "/orders/404", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// The kitchen works one line at a time; the order follows once the last
// line is ready.
func TestKitchenItemStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	pho := env.seedMenuItem("pho bo", 85000)
	tra := env.seedMenuItem("tra da", 10000)

	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/tables", gin.H{"number": 1}).Code)
	require.Equal(t, http.StatusOK, env.request(http.MethodPost, "/tables/1/open", nil).Code)
	rec := env.request(http.MethodPost, "/tables/1/orders", gin.H{
		"items": []gin.H{
			{"menu_item_id": pho.ID, "quantity": 1},
			{"menu_item_id": tra.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderPath := fmt.Sprintf("/orders/%d", created.Data.ID)
	require.Equal(t, http.StatusOK, env.request(http.MethodPatch, orderPath+"/status", gin.H{"status": "preparing"}).Code)

	rec = env.request(http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Data.Items, 2)

	itemPath := func(i int) string {
		return fmt.Sprintf("/kitchen/order-items/%d/status", detail.Data.Items[i].ID)
	}

	// A preparing line cannot go back to pending.
	rec = env.request(http.MethodPatch, itemPath(0), gin.H{"status": "pending"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, env.request(http.MethodPatch, itemPath(0), gin.H{"status": "ready"}).Code)
	require.Equal(t, http.StatusOK, env.request(http.MethodPatch, itemPath(1), gin.H{"status": "ready"}).Code)

	rec = env.request(http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, models.OrderReady, detail.Data.Status)

	rec = env.request(http.MethodPatch, "/kitchen/order-items/999/status", gin.H{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBillEndpoint(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedMenuItem("bun cha", 250000)

	require.Equal(t, http.StatusCreated, env.request(http.MethodPost, "/tables", gin.H{"number": 1}).Code)
	require.Equal(t, http.StatusOK, env.request(http.MethodPost, "/tables/1/open", nil).Code)
	rec := env.request(http.MethodPost, "/tables/1/orders", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderPath := fmt.Sprintf("/orders/%d", created.Data.ID)

	// Not ready yet.
	rec = env.request(http.MethodPost, "/payments/bills", gin.H{"order_id": created.Data.ID, "payment_method": "cash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, env.request(http.MethodPatch, orderPath+"/status", gin.H{"status": "preparing"}).Code)
	require.Equal(t, http.StatusOK, env.request(http.MethodPatch, orderPath+"/status", gin.H{"status": "ready"}).Code)

	// Adjusting after ready is refused.
	rec = env.request(http.MethodPatch, orderPath+"/adjust", gin.H{
		"items": []gin.H{{"menu_item_id": item.ID, "quantity": 5, "action": "modify"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(http.MethodPost, "/payments/bills", gin.H{"order_id": created.Data.ID, "payment_method": "cash"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.request(http.MethodGet, orderPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, models.OrderCompleted, detail.Data.Status)
}
