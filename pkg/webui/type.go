package webui

import (
	"sync"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/table"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server is the HTTP face of the dashboard: JSON views, rendered charts and a websocket.
type Server struct {
	pipeline    *dashboard.Pipeline
	chartWidth  int
	chartHeight int
	logger      *zap.Logger
	upgrader    websocket.Upgrader

	// ws clients, closed on shutdown
	clients      map[*websocket.Conn]bool
	clientsMutex sync.RWMutex
}

type describeResponse struct {
	Path      string                `json:"path"`
	Rows      int                   `json:"rows"`
	Columns   []string              `json:"columns"`
	Options   dashboard.Options     `json:"options"`
	Summaries []table.ColumnSummary `json:"summaries"`
}
