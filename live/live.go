// Package live pushes roster-changed signals to agenda views subscribed to
// a date, so open clients refresh without polling.
package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

type updateMsg struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// HandleWS subscribes the connection to one date's roster updates.
// GET /ws/rosters/:date
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := ps.ByName("date")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[date] = append(subscribers[date], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects.
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[date]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[date] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastUpdate tells every subscriber of a date that its roster changed.
func BroadcastUpdate(date string) {
	data, _ := json.Marshal(updateMsg{Type: "update", Date: date})

	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[date]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[date] = newList
}
