package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type MenuController struct {
	Store *store.Store
}

func NewMenuController(st *store.Store) *MenuController {
	return &MenuController{Store: st}
}

// GetAllCategories -> menu categories
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	categories, err := mc.Store.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := mc.Store.InsertCategory(&category); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetAllMenus -> menu items, optionally by category / availability
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	filter := store.MenuFilter{
		OnlyAvailable: c.Query("available") == "true",
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"invalid category_id"})
			return
		}
		filter.CategoryID = uint(id)
	}

	items, err := mc.Store.ListMenuItems(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, err := paramID(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Store.GetMenuItem(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", item)
}

// CreateMenu -> new catalog item; price changes here never reprice
// existing orders
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"price must be positive"})
		return
	}

	item := models.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Available:   true,
	}
	if err := mc.Store.InsertMenuItem(&item); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New menu item: %s (%.2f)", item.Name, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", item)
}

// UpdateMenu -> price/name/availability
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, err := paramID(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Store.GetMenuItem(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"price must be positive"})
			return
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := mc.Store.UpdateMenuItem(item); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", item)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, err := paramID(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := mc.Store.GetMenuItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := mc.Store.DeleteMenuItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
