package services

import (
	"fmt"
	"time"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

// Action is what a Delta does to an order line.
type Action string

const (
	ActionAdd    Action = "add"
	ActionModify Action = "modify"
	ActionRemove Action = "remove"
)

// Delta is one requested change to an order's line items. Lines are
// identified by menu item; deltas in one batch are expected to target
// disjoint lines.
type Delta struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Action     Action `json:"action"`
	Note       string `json:"note"`
}

// Adjustment applies add/modify/remove deltas to an order while it is still
// mutable, then hands total recomputation to the lifecycle engine.
type Adjustment struct {
	store     *store.Store
	catalog   Catalog
	lifecycle *Lifecycle
}

func NewAdjustment(st *store.Store, catalog Catalog, lifecycle *Lifecycle) *Adjustment {
	return &Adjustment{store: st, catalog: catalog, lifecycle: lifecycle}
}

// Adjust applies the deltas in the order given. There is no rollback: a
// failing delta aborts the rest of the batch but leaves earlier deltas
// applied, and the stored total is recomputed either way so it matches
// whatever rows survived. The caller re-reads to learn what stuck.
func (a *Adjustment) Adjust(orderID uint, deltas []Delta) error {
	if len(deltas) == 0 {
		return fmt.Errorf("adjustment needs at least one delta: %w", ErrInvalidArgument)
	}

	order, err := a.store.GetOrder(orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderPending && order.Status != models.OrderPreparing {
		return fmt.Errorf("order %d is %s and cannot be adjusted: %w", orderID, order.Status, ErrInvalidState)
	}

	var applyErr error
	applied := 0
	for _, delta := range deltas {
		if applyErr = a.apply(orderID, delta); applyErr != nil {
			break
		}
		applied++
	}

	_, recomputeErr := a.lifecycle.RecomputeTotal(orderID)
	if recomputeErr != nil {
		utils.ErrorLogger.Printf("order %d: recompute total after adjust: %v", orderID, recomputeErr)
	}

	if applyErr != nil {
		return fmt.Errorf("order %d: delta %d of %d: %w", orderID, applied+1, len(deltas), applyErr)
	}
	if recomputeErr != nil {
		return fmt.Errorf("order %d: recompute total: %w", orderID, recomputeErr)
	}
	utils.InfoLogger.Printf("order %d adjusted (%d deltas)", orderID, len(deltas))
	return nil
}

func (a *Adjustment) apply(orderID uint, delta Delta) error {
	switch delta.Action {
	case ActionAdd:
		if delta.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive: %w", ErrInvalidArgument)
		}
		price, err := a.catalog.GetPrice(delta.MenuItemID)
		if err != nil {
			return err
		}
		now := time.Now()
		return a.store.InsertOrderItem(&models.OrderItem{
			OrderID:    orderID,
			MenuItemID: delta.MenuItemID,
			Quantity:   delta.Quantity,
			Price:      price,
			Note:       delta.Note,
			Status:     models.OrderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})

	case ActionModify:
		if delta.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive: %w", ErrInvalidArgument)
		}
		item, err := a.store.GetOrderItem(orderID, delta.MenuItemID)
		if err != nil {
			return err
		}
		item.Quantity = delta.Quantity
		item.Note = delta.Note
		item.UpdatedAt = time.Now()
		return a.store.UpdateOrderItem(item)

	case ActionRemove:
		// Idempotent: removing a line that is not there still succeeds.
		return a.store.DeleteOrderItem(orderID, delta.MenuItemID)

	default:
		return fmt.Errorf("unknown action %q: %w", delta.Action, ErrInvalidArgument)
	}
}
