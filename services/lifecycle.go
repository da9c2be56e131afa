package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"restaurant-ops/models"
	"restaurant-ops/store"
	"restaurant-ops/utils"
)

// allowedTransitions is the full order state machine. Terminal states map
// to nothing; a missing key can only mean a corrupted status string, which
// the closed OrderStatus type prevents from ever being written.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderPreparing, models.OrderCancelled},
	models.OrderPreparing: {models.OrderReady, models.OrderCancelled},
	models.OrderReady:     {models.OrderCompleted, models.OrderCancelled},
	models.OrderCompleted: {},
	models.OrderCancelled: {},
}

func canTransition(from, to models.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// Lifecycle owns the order status state machine, the cascade of status
// changes to order items, and the recomputation of the derived total.
type Lifecycle struct {
	store   *store.Store
	catalog Catalog

	cascadeFailures atomic.Uint64
}

func NewLifecycle(st *store.Store, catalog Catalog) *Lifecycle {
	return &Lifecycle{store: st, catalog: catalog}
}

// NewOrderItem is one requested line of a new order.
type NewOrderItem struct {
	MenuItemID uint
	Quantity   int
	Note       string
}

// CreateOrder opens a pending order inside the table's live occupancy
// session. Prices are captured from the catalog now; the items keep them
// for the life of the order. Without a live session the table cannot take
// orders.
func (l *Lifecycle) CreateOrder(tableID, userID uint, items []NewOrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrInvalidArgument)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("menu item %d: quantity must be positive: %w", item.MenuItemID, ErrInvalidArgument)
		}
	}

	opening, err := l.store.GetOpenOpening(tableID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("table %d has no open session: %w", tableID, ErrInvalidState)
		}
		return nil, err
	}

	// Resolve every price before the first write so a missing menu item
	// cannot leave a half-built order behind.
	prices := make(map[uint]float64, len(items))
	for _, item := range items {
		price, err := l.catalog.GetPrice(item.MenuItemID)
		if err != nil {
			return nil, err
		}
		prices[item.MenuItemID] = price
	}

	now := time.Now()
	order := &models.Order{
		TableID:   tableID,
		OpeningID: opening.ID,
		CreatedBy: userID,
		Status:    models.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.store.InsertOrder(order); err != nil {
		return nil, err
	}

	for _, item := range items {
		orderItem := &models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      prices[item.MenuItemID],
			Note:       item.Note,
			Status:     models.OrderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := l.store.InsertOrderItem(orderItem); err != nil {
			// No multi-row rollback exists; the total below reflects
			// whatever rows made it in, and the caller gets the error.
			if _, rerr := l.RecomputeTotal(order.ID); rerr != nil {
				utils.ErrorLogger.Printf("order %d: recompute after failed item insert: %v", order.ID, rerr)
			}
			return nil, err
		}
	}

	total, err := l.RecomputeTotal(order.ID)
	if err != nil {
		return nil, err
	}
	order.TotalAmount = total

	utils.InfoLogger.Printf("order %d created on table %d by user %d (total %.2f)", order.ID, tableID, userID, total)
	return order, nil
}

// Transition moves an order to next and cascades the new status to its
// items. The current status is re-read here, immediately before validation;
// a status the caller read earlier counts for nothing. The order write is
// authoritative; per-item cascade failures are logged and counted but never
// roll it back, so item status may transiently lag the order.
func (l *Lifecycle) Transition(orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", next, ErrInvalidArgument)
	}

	order, err := l.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, next) {
		return nil, &TransitionError{OrderID: orderID, From: order.Status, To: next}
	}

	if err := l.store.UpdateOrderStatus(orderID, next); err != nil {
		return nil, err
	}
	order.Status = next

	items, err := l.store.ListOrderItems(orderID)
	if err != nil {
		l.cascadeFailures.Add(1)
		utils.ErrorLogger.Printf("order %d: cascade read failed: %v", orderID, err)
		return order, nil
	}
	for _, item := range items {
		if item.Status.Terminal() {
			continue
		}
		if err := l.store.UpdateOrderItemStatus(item.ID, next); err != nil {
			l.cascadeFailures.Add(1)
			utils.ErrorLogger.Printf("order %d: cascade to item %d failed: %v", orderID, item.ID, err)
		}
	}

	utils.InfoLogger.Printf("order %d transitioned to %s", orderID, next)
	return order, nil
}

// UpdateItemStatus moves a single order item through the same state machine
// the order uses, so the kitchen can advance one line at a time. The order
// status stays authoritative: when the last non-terminal item of a
// preparing order reaches ready, the order follows through Transition.
func (l *Lifecycle) UpdateItemStatus(itemID uint, next models.OrderStatus) (*models.OrderItem, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", next, ErrInvalidArgument)
	}

	item, err := l.store.GetOrderItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if !canTransition(item.Status, next) {
		return nil, fmt.Errorf("item %d: %w", itemID, &TransitionError{OrderID: item.OrderID, From: item.Status, To: next})
	}

	if err := l.store.UpdateOrderItemStatus(itemID, next); err != nil {
		return nil, err
	}
	item.Status = next

	if next == models.OrderReady {
		l.promoteIfAllReady(item.OrderID)
	}

	utils.InfoLogger.Printf("order %d: item %d moved to %s", item.OrderID, itemID, next)
	return item, nil
}

// promoteIfAllReady advances a preparing order to ready once every
// non-terminal item is ready. Best effort: a failure here is logged, the
// item update that triggered it already succeeded.
func (l *Lifecycle) promoteIfAllReady(orderID uint) {
	order, err := l.store.GetOrder(orderID)
	if err != nil || order.Status != models.OrderPreparing {
		return
	}
	items, err := l.store.ListOrderItems(orderID)
	if err != nil {
		utils.ErrorLogger.Printf("order %d: item scan for promotion failed: %v", orderID, err)
		return
	}
	for _, item := range items {
		if item.Status != models.OrderReady && !item.Status.Terminal() {
			return
		}
	}
	if _, err := l.Transition(orderID, models.OrderReady); err != nil {
		utils.ErrorLogger.Printf("order %d: promotion to ready failed: %v", orderID, err)
	}
}

// RecomputeTotal rewrites the order total as the sum of price*quantity over
// the current item set. Idempotent: with no intervening item change,
// repeated calls produce the same total.
func (l *Lifecycle) RecomputeTotal(orderID uint) (float64, error) {
	items, err := l.store.ListOrderItems(orderID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	if err := l.store.UpdateOrderTotal(orderID, total); err != nil {
		return 0, err
	}
	return total, nil
}

// CascadeFailures reports how many item updates were skipped during status
// cascades. Exposed for monitoring; item status is informational, the order
// status is what billing trusts.
func (l *Lifecycle) CascadeFailures() uint64 {
	return l.cascadeFailures.Load()
}
