package viewclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/logging"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func New(host string, logger *zap.Logger) *Client {
	return &Client{
		Host:            host,
		RefreshInterval: 30 * time.Second,
		MaxRetries:      10,
		BaseRetryDelay:  2 * time.Second,
		MaxRetryDelay:   60 * time.Second,
		Logger:          logging.OrNop(logger),
	}
}

func (c *Client) url() string {
	u := url.URL{Scheme: "ws", Host: c.Host, Path: "/ws"}
	return u.String()
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	// Create a simple dialer with timeout
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second
	conn, _, err := dialer.DialContext(ctx, c.url(), nil)
	return conn, err
}

// Fetch requests a single view.
func (c *Client) Fetch(ctx context.Context, sel types.Selection) (*dashboard.View, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.url(), err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	if err := conn.WriteJSON(sel); err != nil {
		return nil, err
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return decodeMessage(message)
}

// Watch keeps a connection open and calls handle for every view the API sends,
// re-sending sel every RefreshInterval. Lost connections are retried with
// exponential backoff. Views the server fails to build are logged and asked for
// again on the next tick. Returns nil once ctx is cancelled.
func (c *Client) Watch(ctx context.Context, sel types.Selection, handle func(view *dashboard.View)) error {
	logger := logging.OrNop(c.Logger)
	retryCount := 0

	for {
		if ctx.Err() != nil {
			return nil
		}

		// Calculate retry delay with exponential backoff
		if retryCount > 0 {
			retryDelay := time.Duration(1<<(retryCount-1)) * c.BaseRetryDelay
			if retryDelay > c.MaxRetryDelay {
				retryDelay = c.MaxRetryDelay
			}
			logger.Info("Retrying connection",
				zap.Duration("delay", retryDelay),
				zap.Int("attempt", retryCount+1),
				zap.Int("max_retries", c.MaxRetries))
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return nil
			}
		}

		logger.Info("Connecting", zap.String("url", c.url()))
		conn, err := c.dial(ctx)
		if err != nil {
			logger.Warn("Connection failed", zap.Error(err))
			retryCount++
			if retryCount >= c.MaxRetries {
				return fmt.Errorf("max retries (%d) reached: %w", c.MaxRetries, err)
			}
			continue
		}

		// Reset retry count on successful connection
		retryCount = 0
		connectionBroken := c.handleConnection(ctx, conn, sel, handle)
		conn.Close()
		if !connectionBroken {
			// Clean shutdown requested
			return nil
		}
		logger.Info("Connection lost, will retry")
		retryCount = 1
	}
}

// handleConnection reports whether the connection broke (true) or ctx ended it (false).
func (c *Client) handleConnection(
	ctx context.Context,
	conn *websocket.Conn,
	sel types.Selection,
	handle func(view *dashboard.View),
) bool {
	logger := logging.OrNop(c.Logger)
	messages := make(chan []byte)
	done := make(chan struct{})
	// Closed on return so the reader never blocks on messages nobody receives
	stop := make(chan struct{})
	defer close(stop)

	go c.readLoop(conn, messages, stop, done)

	if err := conn.WriteJSON(sel); err != nil {
		return true
	}

	ticker := time.NewTicker(c.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case message := <-messages:
			view, err := decodeMessage(message)
			if err != nil {
				// A failed run, e.g. a data file that is not there yet, is retried on the next tick
				var serverErr *ServerError
				if errors.As(err, &serverErr) {
					logger.Warn("Dashboard API could not build view", zap.String("error", serverErr.Message))
					continue
				}
				logger.Warn("Failed to parse view", zap.Error(err))
				continue
			}
			handle(view)
		case <-ticker.C:
			if err := conn.WriteJSON(sel); err != nil {
				logger.Warn("Failed to send selection", zap.Error(err))
				return true
			}
		case <-done:
			// Connection broke
			return true
		case <-ctx.Done():
			// Send close message
			err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				logger.Debug("Error sending close message", zap.Error(err))
			}
			// Wait for close confirmation or timeout
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return false
		}
	}
}

// readLoop forwards messages until the connection fails or stop is closed, then closes done.
func (c *Client) readLoop(conn *websocket.Conn, messages chan<- []byte, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.OrNop(c.Logger).Warn("WebSocket error", zap.Error(err))
			}
			return
		}
		select {
		case messages <- message:
		case <-stop:
			return
		}
	}
}
