package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

// Billing is a consumer of the core, not part of it: it reads a ready
// order's total, writes the bill, and completes the order through the
// lifecycle engine. It never touches order status directly.
type Billing struct {
	store     *store.Store
	lifecycle *Lifecycle
}

func NewBilling(st *store.Store, lifecycle *Lifecycle) *Billing {
	return &Billing{store: st, lifecycle: lifecycle}
}

// CreateBill snapshots the order total into a bill and transitions the
// order to completed. Only a ready order is billable, and the unique index
// on order_id makes a second bill for the same order a conflict.
func (b *Billing) CreateBill(orderID uint, paymentMethod string, userID uint) (*models.Bill, error) {
	if paymentMethod == "" {
		return nil, fmt.Errorf("payment method required: %w", ErrInvalidArgument)
	}

	order, err := b.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderReady {
		return nil, fmt.Errorf("order %d is %s, not billable: %w", orderID, order.Status, ErrInvalidState)
	}

	bill := &models.Bill{
		OrderID:       orderID,
		Reference:     fmt.Sprintf("BILL/%s/%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
		TotalAmount:   order.TotalAmount,
		PaymentMethod: paymentMethod,
		CreatedBy:     userID,
		CreatedAt:     time.Now(),
	}
	if err := b.store.InsertBill(bill); err != nil {
		return nil, err
	}

	if _, err := b.lifecycle.Transition(orderID, models.OrderCompleted); err != nil {
		// The bill row exists; a racing transition beat us to the status.
		// No rollback is possible, so surface it and let the caller
		// re-read.
		utils.ErrorLogger.Printf("order %d: bill %d created but completion failed: %v", orderID, bill.ID, err)
		return nil, err
	}

	utils.InfoLogger.Printf("bill %s created for order %d (%.2f via %s)", bill.Reference, orderID, bill.TotalAmount, paymentMethod)
	return bill, nil
}

// RevenueSummary aggregates billed revenue over a period, grouped by
// payment method.
type RevenueSummary struct {
	TotalRevenue    float64            `json:"total_revenue"`
	TotalBills      int                `json:"total_bills"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
}

func (b *Billing) Revenue(from, to time.Time) (*RevenueSummary, error) {
	bills, err := b.store.ListBills(from, to)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{ByPaymentMethod: make(map[string]float64)}
	for _, bill := range bills {
		summary.TotalRevenue += bill.TotalAmount
		summary.ByPaymentMethod[bill.PaymentMethod] += bill.TotalAmount
	}
	summary.TotalBills = len(bills)
	return summary, nil
}
