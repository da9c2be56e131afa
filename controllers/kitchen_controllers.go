package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-ops/kds"
	"restaurant-ops/models"
	"restaurant-ops/services"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type KitchenController struct {
	Store     *store.Store
	Lifecycle *services.Lifecycle
}

func NewKitchenController(st *store.Store, lifecycle *services.Lifecycle) *KitchenController {
	return &KitchenController{Store: st, Lifecycle: lifecycle}
}

// GetPendingOrders -> the cooking queue, oldest first
func (kc *KitchenController) GetPendingOrders(c *gin.Context) {
	orders, err := kc.Store.ListOrdersByStatuses([]models.OrderStatus{models.OrderPending, models.OrderPreparing})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}

// GetPendingItems -> item-level view for the chef
func (kc *KitchenController) GetPendingItems(c *gin.Context) {
	items, err := kc.Store.ListOrderItemsByStatus(models.OrderPending)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending items", items)
}

// ListIngredients -> current stock levels
func (kc *KitchenController) ListIngredients(c *gin.Context) {
	ingredients, err := kc.Store.ListIngredients()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredients", ingredients)
}

// CreateIngredient -> register a stock item
func (kc *KitchenController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Quantity    float64 `json:"quantity"`
		MinQuantity float64 `json:"min_quantity"`
		Unit        string  `json:"unit" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		Name:        req.Name,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
	}
	if err := kc.Store.InsertIngredient(&ingredient); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// UpdateIngredientQuantity -> restock or consume
func (kc *KitchenController) UpdateIngredientQuantity(c *gin.Context) {
	id, err := paramID(c, "ingredient_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient, err := kc.Store.GetIngredient(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ingredient.Quantity = req.Quantity
	if err := kc.Store.UpdateIngredient(ingredient); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

// IngredientsReport -> stock levels split by low/normal against minimums
func (kc *KitchenController) IngredientsReport(c *gin.Context) {
	ingredients, err := kc.Store.ListIngredients()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var lowStock, normalStock []models.Ingredient
	for _, ingredient := range ingredients {
		if ingredient.Quantity <= ingredient.MinQuantity {
			lowStock = append(lowStock, ingredient)
		} else {
			normalStock = append(normalStock, ingredient)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredients report", gin.H{
		"total_ingredients":  len(ingredients),
		"low_stock_count":    len(lowStock),
		"normal_stock_count": len(normalStock),
		"low_stock":          lowStock,
		"normal_stock":       normalStock,
		"report_date":        time.Now(),
	})
}

// CheckItemIngredients -> can the kitchen still make this menu item
func (kc *KitchenController) CheckItemIngredients(c *gin.Context) {
	id, err := paramID(c, "menu_item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	links, err := kc.Store.ListItemIngredients(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(links) == 0 {
		utils.RespondJSON(c, http.StatusOK, "No ingredient data for this item", gin.H{
			"ingredient_status": "available",
		})
		return
	}

	type missing struct {
		Name      string  `json:"name"`
		Required  float64 `json:"required"`
		Available float64 `json:"available"`
		Unit      string  `json:"unit"`
	}
	var unavailable []missing
	for _, link := range links {
		if link.Ingredient.Quantity < link.Quantity {
			unavailable = append(unavailable, missing{
				Name:      link.Ingredient.Name,
				Required:  link.Quantity,
				Available: link.Ingredient.Quantity,
				Unit:      link.Ingredient.Unit,
			})
		}
	}

	if len(unavailable) > 0 {
		utils.RespondJSON(c, http.StatusOK, "Missing ingredients for this item", gin.H{
			"ingredient_status":   "unavailable",
			"missing_ingredients": unavailable,
		})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredients available", gin.H{
		"ingredient_status": "available",
	})
}

// UpdateItemStatus -> chef advances one line of an order; when the last
// line is ready the order follows
func (kc *KitchenController) UpdateItemStatus(c *gin.Context) {
	id, err := paramID(c, "item_id")
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

	item, err := kc.Lifecycle.UpdateItemStatus(id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if order, oerr := kc.Store.GetOrderWithItems(item.OrderID); oerr == nil {
		kds.BroadcastOrderUpdate(*order)
	}
	utils.RespondJSON(c, http.StatusOK, "Item status updated", item)
}

// MarkOrderReady -> chef flags a preparing order as ready to serve
func (kc *KitchenController) MarkOrderReady(c *gin.Context) {
	id, err := paramID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := kc.Lifecycle.Transition(id, models.OrderReady)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(*order)
	kds.BroadcastStaffNotification("Order ready to serve")
	utils.RespondJSON(c, http.StatusOK, "Order is ready", order)
}
