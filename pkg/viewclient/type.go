package viewclient

import (
	"encoding/json"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"go.uber.org/zap"
)

// Client talks to the /ws endpoint of a dashboard API.
type Client struct {
	// host:port of the dashboard API
	Host string
	// How often the selection is re-sent while watching
	RefreshInterval time.Duration
	MaxRetries      int
	BaseRetryDelay  time.Duration
	MaxRetryDelay   time.Duration
	Logger          *zap.Logger
}

// ServerError is a failed run reported by the dashboard API, e.g. an unreadable source file.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "dashboard api: " + e.Message
}

// envelope decodes either a View or a dashboard.ErrorResponse.
type envelope struct {
	dashboard.View
	Error string `json:"error,omitempty"`
}

func decodeMessage(message []byte) (*dashboard.View, error) {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return nil, err
	}
	if env.Error != "" {
		return nil, &ServerError{Message: env.Error}
	}
	return &env.View, nil
}
