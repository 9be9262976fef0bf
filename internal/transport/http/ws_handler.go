package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"quiz-submission-service/internal/app"
)

// EventsWSHandler accepts a stream of proctoring events over one connection.
type EventsWSHandler struct {
	access   *app.AccessService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewEventsWSHandler(access *app.AccessService, logger *slog.Logger) *EventsWSHandler {
	return &EventsWSHandler{
		access: access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type eventPayload struct {
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS authenticates the token before upgrading, then records one event
// per inbound message. Replies are written from this goroutine only.
func (h *EventsWSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("password")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "password is required"})
		return
	}
	identity, err := h.access.Authenticate(r.Context(), token)
	if err != nil {
		status, msg := statusFor(err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(outboundMessage[app.Identity]{Type: "ready", Payload: identity}); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		var reply interface{}
		switch inbound.Type {
		case "event":
			var payload eventPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid event payload"}}
				break
			}
			if err := h.access.RecordEvent(r.Context(), token, payload.Reason, payload.Timestamp); err != nil {
				_, msg := statusFor(err)
				reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}}
				break
			}
			reply = outboundMessage[eventPayload]{Type: "recorded", Payload: payload}
		default:
			reply = outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}

		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("ws write failed", "username", identity.Username, "error", err)
			return
		}
	}
}
