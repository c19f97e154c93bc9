package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/eti-lan/game-lobby/internal/lobby"
	"github.com/eti-lan/game-lobby/internal/protocol"
)

const (
	writeTimeout = 3 * time.Second
	probeTimeout = 5 * time.Second
)

// Handler accepts lobby websocket connections. Each connection gets a ULID
// identifier, an outbox registered with the lobby actor, and a writer
// goroutine; the reader loop forwards decoded client messages into the
// actor and rejects unknown message types on the spot.
func Handler(lb *lobby.Lobby, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Warn("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		connID := ulid.Make().String()
		out := make(chan lobby.Outbound, 16)

		lb.Inbox() <- lobby.Attach{ConnID: connID, Outbox: out}
		defer func() { lb.Inbox() <- lobby.Disconnect{ConnID: connID} }()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()

		// Writer: drains the lobby-owned outbox. A closed outbox means the
		// lobby terminated this connection.
		go func() {
			for ob := range out {
				if ob.Kind == lobby.OutboundProbe {
					go probe(writeCtx, conn, lb, connID)
					continue
				}
				payload, err := json.Marshal(ob.Msg)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
			writeCancel()
			conn.Close(websocket.StatusGoingAway, "closed by server")
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Disconnect cleanup runs in the defer either way.
				return
			}

			var cm protocol.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "Error in message: invalid JSON.")
				continue
			}

			switch cm.Type {
			case protocol.MsgRegister:
				lb.Inbox() <- lobby.Register{ConnID: connID, Name: cm.Name, IdentityKey: cm.IdentityKey}

			case protocol.MsgChat:
				lb.Inbox() <- lobby.Chat{ConnID: connID, Sender: cm.Sender, Message: cm.Message}

			case protocol.MsgUpdatePlayer:
				lb.Inbox() <- lobby.UpdateLoadout{ConnID: connID, Champion: cm.Champion, Spell: cm.Spell}

			case protocol.MsgReadyToggle:
				if cm.Ready == nil || cm.Name == "" {
					writeError(r.Context(), conn, "Invalid readyToggle format.")
					continue
				}
				lb.Inbox() <- lobby.SetReady{ConnID: connID, Name: cm.Name, Ready: *cm.Ready}

			default:
				writeError(r.Context(), conn, "Unknown message type: "+cm.Type)
			}
		}
	}
}

// probe issues a liveness ping; the lobby marks the connection alive again
// only after the transport acknowledges it.
func probe(parent context.Context, conn *websocket.Conn, lb *lobby.Lobby, connID string) {
	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return
	}
	lb.Inbox() <- lobby.MarkAlive{ConnID: connID}
}

func writeError(ctx context.Context, conn *websocket.Conn, message string) {
	payload, err := json.Marshal(protocol.Error(message))
	if err != nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}
