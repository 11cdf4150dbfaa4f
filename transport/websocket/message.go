package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	actionNewGame    = "game:new"
	actionGetGame    = "game:get"
	actionTurn       = "game:turn"
	actionMachine    = "game:machine"
	actionReset      = "game:reset"
	actionDifficulty = "game:difficulty"
	actionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses; each action reads the fields it needs.
type Payload struct {
	GameID     string                     `json:"game_id,omitempty"`
	Cell       *int                       `json:"cell,omitempty"`
	Difficulty string                     `json:"difficulty,omitempty"`
	Options    *usecase.CreateGameRequest `json:"options,omitempty"`

	Game  *session.Snapshot `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}
