package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

const (
	// ActionView carries the game as the watcher sees it.
	ActionView = "game:view"
	// ActionMissing is sent once before the server closes a feed for a game that does not exist.
	ActionMissing = "game:missing"
	// ActionError reports a failed fetch; the feed keeps going.
	ActionError = "game:error"
	// ActionRefresh asks the server to fetch the game now instead of waiting for the next tick.
	ActionRefresh = "game:refresh"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	View  *tictactoe.View `json:"view,omitempty"`
	Error string          `json:"error,omitempty"`
}

func sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadBytes}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
