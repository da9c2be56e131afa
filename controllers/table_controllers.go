package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-ops/kds"
	"restaurant-ops/models"
	"restaurant-ops/services"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type TableController struct {
	Store     *store.Store
	Occupancy *services.Occupancy
}

func NewTableController(st *store.Store, occupancy *services.Occupancy) *TableController {
	return &TableController{Store: st, Occupancy: occupancy}
}

// CreateTable -> register a new physical table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number int `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Number: req.Number,
		Status: models.TableAvailable,
	}
	if err := tc.Store.InsertTable(&table); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (status=%s)", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list every table
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Store.ListTables()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Store.GetTable(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// FindTablesByStatus -> e.g. list available tables
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	status := models.TableStatus(c.Query("status"))
	if status == "" {
		status = models.TableAvailable
	}
	if !status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"unknown table status"})
		return
	}

	tables, err := tc.Store.ListTablesByStatus(status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+string(status), tables)
}

// OpenTable -> start an occupancy session for the requesting user
func (tc *TableController) OpenTable(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	userID := currentUserID(c)

	opening, err := tc.Occupancy.OpenTable(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if table, terr := tc.Store.GetTable(id); terr == nil {
		kds.BroadcastTableOpen(*table, *opening)
	}
	utils.RespondJSON(c, http.StatusOK, "Table opened", opening)
}

// CloseTable -> end the session; only the opener may close
func (tc *TableController) CloseTable(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	userID := currentUserID(c)

	opening, err := tc.Occupancy.CloseTable(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if table, terr := tc.Store.GetTable(id); terr == nil {
		kds.BroadcastTableClose(*table, *opening)
	}
	utils.RespondJSON(c, http.StatusOK, "Table closed", opening)
}

// GetTableOpenings -> session history of one table
func (tc *TableController) GetTableOpenings(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	openings, err := tc.Store.ListOpenings(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table openings", openings)
}

// DeactivateTable -> tables are never physically deleted
func (tc *TableController) DeactivateTable(c *gin.Context) {
	id, err := paramID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := tc.Store.GetTable(id); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := tc.Store.UpdateTableStatus(id, models.TableInactive); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deactivated", id)
	utils.RespondJSON(c, http.StatusOK, "Table deactivated", gin.H{"id": id})
}

// GetTableStats -> dashboard occupancy counts
func (tc *TableController) GetTableStats(c *gin.Context) {
	stats := map[string]int64{}
	total := int64(0)
	for _, status := range []models.TableStatus{models.TableAvailable, models.TableOccupied, models.TableInactive} {
		count, err := tc.Store.CountTablesByStatus(status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		stats[string(status)] = count
		total += count
	}
	stats["total"] = total

	utils.RespondJSON(c, http.StatusOK, "Table stats", stats)
}

func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, &CustomError{"invalid " + name}
	}
	return uint(id), nil
}

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
