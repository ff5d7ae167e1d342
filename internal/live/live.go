// Package live pushes query snapshots to browsers over WebSockets.
package live

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Clients only send control frames.
	maxMessageSize = 512
)

// Stream yields a complete result set each time the watched data changes.
type Stream interface {
	Next() (interface{}, error)
	Stop()
}

// Opener starts a stream bound to ctx. Cancelling ctx must unblock Next.
type Opener func(ctx context.Context) Stream

// Frame is one message sent to the client.
type Frame struct {
	Type  string      `json:"type"` // "snapshot" or "error"
	Topic string      `json:"topic"`
	Items interface{} `json:"items,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader accepts any origin; the route is already behind token auth and
// CORS does not apply to WebSocket handshakes.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type result struct {
	items interface{}
	err   error
}

// Pump streams snapshots from open to conn until the client goes away, the
// stream fails or ctx ends. It closes conn before returning.
func Pump(ctx context.Context, conn *websocket.Conn, topic string, open Opener, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer conn.Close()

	go readPump(conn, cancel)

	updates := make(chan result, 1)
	stream := open(ctx)
	go func() {
		defer stream.Stop()
		defer close(updates)
		for {
			items, err := stream.Next()
			select {
			case updates <- result{items: items, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			writeClose(conn, websocket.CloseNormalClosure, "")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			if upd.err != nil {
				if isCancellation(upd.err) {
					return
				}
				logger.Error(topic+" subscription error", zap.Error(upd.err))
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteJSON(Frame{Type: "error", Topic: topic, Error: status.Code(upd.err).String()})
				writeClose(conn, websocket.CloseInternalServerErr, "subscription failed")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Frame{Type: "snapshot", Topic: topic, Items: upd.items}); err != nil {
				logger.Debug("live write failed", zap.String("topic", topic), zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and cancels the subscription once the
// peer closes or stops answering pings.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func isCancellation(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return status.Code(err) == codes.Canceled
}
