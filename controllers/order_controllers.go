package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-ops/kds"
	"restaurant-ops/models"
	"restaurant-ops/services"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type OrderController struct {
	Store      *store.Store
	Lifecycle  *services.Lifecycle
	Adjustment *services.Adjustment
}

func NewOrderController(st *store.Store, lifecycle *services.Lifecycle, adjustment *services.Adjustment) *OrderController {
	return &OrderController{Store: st, Lifecycle: lifecycle, Adjustment: adjustment}
}

// GetAllOrders -> list orders with items, optionally filtered
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := store.OrderFilter{}
	if tableID := c.Query("table_id"); tableID != "" {
		id, err := strconv.ParseUint(tableID, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid table_id"})
			return
		}
		filter.TableID = uint(id)
	}
	if status := models.OrderStatus(c.Query("status")); status != "" {
		if !status.Valid() {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"unknown order status"})
			return
		}
		filter.Status = status
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid from timestamp"})
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid to timestamp"})
			return
		}
		filter.To = t
	}

	orders, err := oc.Store.ListOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> open a pending order inside the table's live session
func (oc *OrderController) CreateOrder(c *gin.Context) {
	tableID, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	type itemReq struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
		Note       string `json:"note"`
	}
	var body struct {
		Items []itemReq `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items := make([]services.NewOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, services.NewOrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	order, err := oc.Lifecycle.CreateOrder(tableID, currentUserID(c), items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderCreate(*order)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail of one order with items
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Store.GetOrderWithItems(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> run the state machine; the engine re-reads the
// stored status before validating, whatever this client believed it was
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Lifecycle.Transition(id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(*order)
	kds.BroadcastStaffNotification("Order updated")
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// AdjustOrder -> add/modify/remove line items while still mutable
func (oc *OrderController) AdjustOrder(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		Deltas []services.Delta `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Adjustment.Adjust(id, body.Deltas); err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := oc.Store.GetOrderWithItems(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(*order)
	utils.RespondJSON(c, http.StatusOK, "Order adjusted", order)
}
