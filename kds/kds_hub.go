package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"restaurant-ops/models"
	"restaurant-ops/utils"
)

// Event types pushed to kitchen display clients.
const (
	EventTableOpen   = "table_open"
	EventTableClose  = "table_close"
	EventOrderCreate = "order_create"
	EventOrderUpdate = "order_update"
	EventBillCreate  = "bill_create"
	EventStaffNotif  = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds all connected KDS clients (chef, staff, admin) keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastTableOpen(table models.Table, opening models.TableOpening) {
	broadcast(Message{
		Event: EventTableOpen,
		Data: map[string]interface{}{
			"table":   table,
			"opening": opening,
		},
	})
}

func BroadcastTableClose(table models.Table, opening models.TableOpening) {
	broadcast(Message{
		Event: EventTableClose,
		Data: map[string]interface{}{
			"table":   table,
			"opening": opening,
		},
	})
}

func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{Event: EventOrderCreate, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastBillCreate(bill models.Bill) {
	broadcast(Message{Event: EventBillCreate, Data: bill})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("kds: marshal %s event: %v", msg.Event, err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Dead connection; drop it.
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
