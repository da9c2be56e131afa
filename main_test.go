package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-ops/database"
	"restaurant-ops/models"
	"restaurant-ops/router"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

// Drives the full service shift through the real router with real JWTs:
// admin sets up the floor and menu, a waiter opens a table and runs an
// order through to the bill, then closes up.
func TestFullServiceFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:fullflow?mode=memory&cache=shared&_busy_timeout=5000"),
		&gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	st := store.New(db)
	engine := router.SetupRouter(st)

	adminToken, err := utils.GenerateToken(1, "admin")
	require.NoError(t, err)
	staffToken, err := utils.GenerateToken(2, "staff")
	require.NoError(t, err)

	do := func(method, path, token string, body any) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	// Unauthenticated requests bounce off the auth group.
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/tables", "", nil).Code)

	// Staff cannot reach admin setup.
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/admin/tables", staffToken, gin.H{"number": 1}).Code)

	// Admin builds the floor and the menu.
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/admin/tables", adminToken, gin.H{"number": 1}).Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/admin/categories", adminToken, gin.H{"name": "mains"}).Code)
	rec := do(http.MethodPost, "/admin/menus", adminToken, gin.H{
		"category_id": 1, "name": "bun cha", "price": 250000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(http.MethodPost, "/admin/menus", adminToken, gin.H{
		"category_id": 1, "name": "nem ran", "price": 85000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Waiter opens table 1 and takes an order.
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/tables/1/open", staffToken, nil).Code)
	rec = do(http.MethodPost, "/tables/1/orders", staffToken, gin.H{
		"items": []gin.H{{"menu_item_id": 1, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	orderID := created.Data.ID
	assert.Equal(t, 250000.0, created.Data.TotalAmount)

	// Guests add a side, then double the main.
	rec = do(http.MethodPatch, fmt.Sprintf("/orders/%d/adjust", orderID), staffToken, gin.H{
		"items": []gin.H{{"menu_item_id": 2, "quantity": 1, "action": "add"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(http.MethodPatch, fmt.Sprintf("/orders/%d/adjust", orderID), staffToken, gin.H{
		"items": []gin.H{{"menu_item_id": 1, "quantity": 2, "action": "modify"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var adjusted struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adjusted))
	assert.Equal(t, 585000.0, adjusted.Data.TotalAmount)

	// Kitchen takes over; the waiter can no longer touch the order.
	require.Equal(t, http.StatusOK,
		do(http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID), staffToken, gin.H{"status": "preparing"}).Code)
	require.Equal(t, http.StatusOK,
		do(http.MethodPost, fmt.Sprintf("/kitchen/orders/%d/ready", orderID), staffToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(http.MethodPatch, fmt.Sprintf("/orders/%d/adjust", orderID), staffToken, gin.H{
			"items": []gin.H{{"menu_item_id": 1, "quantity": 9, "action": "modify"}},
		}).Code)

	// Bill it; the order completes.
	rec = do(http.MethodPost, "/payments/bills", staffToken, gin.H{
		"order_id": orderID, "payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var billed struct {
		Data models.Bill `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &billed))
	assert.Equal(t, 585000.0, billed.Data.TotalAmount)

	rec = do(http.MethodGet, fmt.Sprintf("/orders/%d", orderID), staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, models.OrderCompleted, detail.Data.Status)

	// A second bill for the same order is refused.
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/payments/bills", staffToken, gin.H{
		"order_id": orderID, "payment_method": "card",
	}).Code)

	// Close up.
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/tables/1/close", staffToken, nil).Code)
	rec = do(http.MethodGet, "/tables/1", staffToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var table struct {
		Data models.Table `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, models.TableAvailable, table.Data.Status)
}
