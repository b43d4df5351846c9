// Package ws is the client half of the server's notification stream: domain
// events such as order.created and stock.low pushed over a websocket.
package ws

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is one pushed notification
type Event struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// URL derives the websocket endpoint from the API base URL:
// http://host/api -> ws://host/ws
func URL(apiBase string) string {
	origin := strings.TrimSuffix(strings.TrimRight(apiBase, "/"), "/api")
	switch {
	case strings.HasPrefix(origin, "https://"):
		origin = "wss://" + strings.TrimPrefix(origin, "https://")
	case strings.HasPrefix(origin, "http://"):
		origin = "ws://" + strings.TrimPrefix(origin, "http://")
	}
	return origin + "/ws"
}

// Listen connects with the given access token and invokes handle for every
// event until the context is cancelled or the connection drops. Each message
// carries one JSON event.
func Listen(ctx context.Context, wsURL, token string, log *zap.Logger, handle func(Event)) error {
	if log == nil {
		log = zap.NewNop()
	}
	endpoint := wsURL + "?token=" + url.QueryEscape(token)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// Unblock ReadMessage when the caller gives up
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Debug("dropping malformed event", zap.Error(err))
			continue
		}
		handle(ev)
	}
}
