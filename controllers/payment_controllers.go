package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-ops/kds"
	"restaurant-ops/services"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

type PaymentController struct {
	Store   *store.Store
	Billing *services.Billing
}

func NewPaymentController(st *store.Store, billing *services.Billing) *PaymentController {
	return &PaymentController{Store: st, Billing: billing}
}

// CreateBill -> snapshot a ready order's total and complete it
func (pc *PaymentController) CreateBill(c *gin.Context) {
	var req struct {
		OrderID       uint   `json:"order_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := pc.Billing.CreateBill(req.OrderID, req.PaymentMethod, currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastBillCreate(*bill)
	utils.RespondJSON(c, http.StatusCreated, "Bill created: "+utils.FormatCurrency(bill.TotalAmount), bill)
}

// GetBill -> one bill by id
func (pc *PaymentController) GetBill(c *gin.Context) {
	id, err := paramID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := pc.Store.GetBill(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// GetPaymentHistory -> bills in an optional date range
func (pc *PaymentController) GetPaymentHistory(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bills, err := pc.Store.ListBills(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment history", bills)
}

// GetRevenueSummary -> total revenue grouped by payment method
func (pc *PaymentController) GetRevenueSummary(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	summary, err := pc.Billing.Revenue(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue summary", summary)
}

// GetDailyRevenue -> revenue for one calendar day
func (pc *PaymentController) GetDailyRevenue(c *gin.Context) {
	day := c.Query("date")
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"date must be YYYY-MM-DD"})
		return
	}

	from := date
	to := date.Add(24*time.Hour - time.Second)
	summary, err := pc.Billing.Revenue(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daily revenue", gin.H{
		"date":    day,
		"summary": summary,
	})
}

func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return from, to, &CustomError{"invalid from timestamp"}
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return from, to, &CustomError{"invalid to timestamp"}
		}
		to = t
	}
	return from, to, nil
}
