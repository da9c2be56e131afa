package models

// TableStatus is the occupancy state of a physical table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableInactive  TableStatus = "inactive"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableInactive:
		return true
	}
	return false
}

// OpeningStatus is the state of one table occupancy session.
type OpeningStatus string

const (
	OpeningOpen   OpeningStatus = "open"
	OpeningClosed OpeningStatus = "closed"
)

func (s OpeningStatus) Valid() bool {
	return s == OpeningOpen || s == OpeningClosed
}

// OrderStatus covers both orders and their items; items mirror the parent
// order's status through the cascade.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}
