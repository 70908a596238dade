package webui

import (
	"net/http"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// wsHandler answers every Selection a client sends with one View.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}
	s.addWebSocketClient(conn)
	defer s.removeWebSocketClient(conn)

	for {
		var sel types.Selection
		if err := conn.ReadJSON(&sel); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("WebSocket closed", zap.Error(err))
			}
			return
		}

		var reply any
		view, err := s.pipeline.Build(sel)
		if err != nil {
			reply = dashboard.ErrorResponse{Error: err.Error()}
		} else {
			reply = view
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

func (s *Server) addWebSocketClient(conn *websocket.Conn) {
	s.clientsMutex.Lock()
	s.clients[conn] = true
	s.clientsMutex.Unlock()
}

func (s *Server) removeWebSocketClient(conn *websocket.Conn) {
	s.clientsMutex.Lock()
	delete(s.clients, conn)
	s.clientsMutex.Unlock()
	conn.Close()
}

// CloseClients says goodbye to every connected websocket client.
func (s *Server) CloseClients() {
	s.clientsMutex.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.clientsMutex.RUnlock()

	for _, client := range clients {
		// WriteControl may run alongside the handler's WriteJSON, WriteMessage may not
		client.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		s.removeWebSocketClient(client)
	}
}

// ClientCount is the number of open websocket connections.
func (s *Server) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}
