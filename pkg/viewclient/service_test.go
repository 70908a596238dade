package viewclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/loader"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/NotCoffee418/gws_dashboard/pkg/webui"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soilCSV = `Sensor ID,Plant 1 Type,Plant 2 Type,DateTime,DateTime2,Temperature,Moisture Point (%),Brightness (%)
S1,Tomato,Basil,2024-01-01,10:00,22.5,41,80
S2,Pepper,Mint,2024-01-01,09:00,21,44,70
`

func newClient(t *testing.T, source string) *Client {
	t.Helper()
	pipeline := &dashboard.Pipeline{Cache: loader.NewCache(nil), SourcePath: source}
	ts := httptest.NewServer(webui.NewServer(pipeline, 320, 200, nil).Router())
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	c := New(u.Host, nil)
	c.RefreshInterval = 50 * time.Millisecond
	c.BaseRetryDelay = 10 * time.Millisecond
	c.MaxRetries = 2
	return c
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "soilSensorData.csv")
	require.NoError(t, os.WriteFile(path, []byte(soilCSV), 0644))
	return path
}

func TestFetch(t *testing.T) {
	c := newClient(t, writeCSV(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := c.Fetch(ctx, types.Selection{Mode: types.ViewBySensor, SensorID: "S2"})
	require.NoError(t, err)
	assert.Equal(t, "Select by Sensor ID", view.Title)
	require.Equal(t, 1, view.Table.Len())
	assert.Equal(t, "S2", view.Table.Rows[0].SensorID)
}

func TestFetch_ServerError(t *testing.T) {
	c := newClient(t, filepath.Join(t.TempDir(), "missing.csv"))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.Fetch(ctx, types.Selection{Mode: types.ViewOverall})
	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Contains(t, serverErr.Message, "missing.csv")
}

func TestWatch_RefreshesUntilCancelled(t *testing.T) {
	c := newClient(t, writeCSV(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := 0
	err := c.Watch(ctx, types.Selection{}, func(view *dashboard.View) {
		assert.Equal(t, types.ViewOverall, view.Mode)
		received++
		if received == 3 {
			cancel()
		}
	})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, received, 3)
}

func TestWatch_KeepsGoingUntilSourceAppears(t *testing.T) {
	source := filepath.Join(t.TempDir(), "soilSensorData.csv")
	c := newClient(t, source)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		time.Sleep(200 * time.Millisecond)
		os.WriteFile(source, []byte(soilCSV), 0644)
	}()

	var got *dashboard.View
	err := c.Watch(ctx, types.Selection{}, func(view *dashboard.View) {
		got = view
		cancel()
	})
	require.NoError(t, err)
	require.NotNil(t, got, "a view arrives once the file exists")
	assert.Equal(t, 2, got.Table.Len())
}

func TestReadLoop_StopsWhenNobodyReceives(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"title":"Overview"}`))
		// Hold the connection open until the client goes away
		conn.ReadMessage()
	}))
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	c := New("unused", nil)
	messages := make(chan []byte)
	stop := make(chan struct{})
	done := make(chan struct{})
	go c.readLoop(conn, messages, stop, done)

	close(stop)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reader still running after stop")
	}
}

func TestWatch_GivesUpAfterMaxRetries(t *testing.T) {
	c := New("127.0.0.1:1", nil)
	c.BaseRetryDelay = time.Millisecond
	c.MaxRetries = 2

	err := c.Watch(context.Background(), types.Selection{}, func(*dashboard.View) {})
	assert.ErrorContains(t, err, "max retries (2) reached")
}

func TestDecodeMessage(t *testing.T) {
	view, err := decodeMessage([]byte(`{"mode":"overall","title":"Overview"}`))
	require.NoError(t, err)
	assert.Equal(t, "Overview", view.Title)

	_, err = decodeMessage([]byte(`{"error":"boom"}`))
	assert.EqualError(t, err, "dashboard api: boom")

	_, err = decodeMessage([]byte(`not json`))
	assert.Error(t, err)
}
