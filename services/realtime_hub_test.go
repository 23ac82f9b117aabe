package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

// Hub broadcasts and keepalive pings write to the same connection from
// different goroutines; all frames must funnel through WSClient.Send so
// gorilla/websocket never sees two concurrent writers.
func TestHubBroadcastConcurrentWithPings(t *testing.T) {
	hub := NewRealtimeHub()
	registered := make(chan *WSClient, 1)
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cl := &WSClient{UserID: 7, Conn: conn}
		hub.Register(cl)
		registered <- cl
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	dial, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	assert.NoError(t, err)
	defer dial.Close()

	// drain the client side so server writes never block
	go func() {
		for {
			if _, _, err := dial.ReadMessage(); err != nil {
				return
			}
		}
	}()

	cl := <-registered

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.BroadcastScanEvent(7, StageOCRComplete)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			assert.NoError(t, cl.Send(websocket.PingMessage, nil))
		}
	}()
	wg.Wait()

	// both the ping loop and the read loop may unregister the same client
	hub.Unregister(cl)
	hub.Unregister(cl)
	hub.BroadcastScanEvent(7, StagePersisted) // no clients left; must not panic
}
