package server

import (
	"net/http"

	"price-recorder/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send latest report on connect
			s.stateMutex.RLock()
			if s.latestReport != nil {
				client.send <- s.latestReport
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case report := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestReport = report
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- report:
					// Report sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Publisher
// -----------------------------------------------------------------------------

// PublishReport updates the cached state and fans the report out to every
// connected client. Safe to call from the scheduler goroutine.
func (s *APIServer) PublishReport(report *models.MRunReport) {
	if report == nil {
		return
	}
	report.Type = "UPDATE"
	s.broadcast <- report
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MRunReport, 256),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}
