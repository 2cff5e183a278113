package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/njoroge256/aerodesk/models"
)

// The hub streams activity-log entries to connected admin dashboards.

type Client struct {
	AdminID uuid.UUID
	Conn    *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.ActivityLog, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Admin feed client registered: %s", client.AdminID)
			clientsMu.Lock()
			clients[client.AdminID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Admin feed client unregistered: %s", client.AdminID)
			clientsMu.Lock()
			if conn, ok := clients[client.AdminID]; ok && conn == client.Conn {
				delete(clients, client.AdminID)
			}
			clientsMu.Unlock()
		case entry := <-Broadcast:
			clientsMu.RLock()
			var dead []uuid.UUID
			for adminID, conn := range clients {
				if err := conn.WriteJSON(entry); err != nil {
					log.Printf("Error sending activity entry to client %s: %v", adminID, err)
					conn.Close()
					dead = append(dead, adminID)
				}
			}
			clientsMu.RUnlock()

			if len(dead) > 0 {
				clientsMu.Lock()
				for _, adminID := range dead {
					delete(clients, adminID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish hands an entry to the hub without blocking the request path.
func Publish(entry *models.ActivityLog) {
	select {
	case Broadcast <- entry:
	default:
		log.Println("Activity feed backlog full, dropping entry")
	}
}
