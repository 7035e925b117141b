package contract

import (
	"encoding/json"
	"strconv"

	"github.com/iceboxup/tic-tac-toe/sdk"
)

// Event represents the common structure for all emitted events.
// Each event has a type and a set of key/value attributes.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// emitEvent logs the event as JSON through the SDK. The chain keeps the
// log append-only and in call order; events of a reverted call vanish with
// the rollback.
func (c *Contract) emitEvent(eventType string, attributes map[string]string) {
	b, err := json.Marshal(Event{Type: eventType, Attributes: attributes})
	if err != nil {
		return
	}
	c.sdk.Log(string(b))
}

// EmitGameCreated emits an event when a new game is created.
func (c *Contract) EmitGameCreated(gameID uint64, by sdk.Address) {
	c.emitEvent("gameCreated", map[string]string{
		"id": strconv.FormatUint(gameID, 10),
		"by": by.String(),
	})
}

// EmitGameJoined emits an event when a player joins an existing game.
func (c *Contract) EmitGameJoined(gameID uint64, by sdk.Address) {
	c.emitEvent("gameJoined", map[string]string{
		"id":     strconv.FormatUint(gameID, 10),
		"joined": by.String(),
	})
}

// EmitGameMoveMade emits an event when a player makes a move.
func (c *Contract) EmitGameMoveMade(gameID uint64, by sdk.Address, x, y uint8) {
	c.emitEvent("gameMove", map[string]string{
		"id":     strconv.FormatUint(gameID, 10),
		"moveBy": by.String(),
		"x":      strconv.FormatUint(uint64(x), 10),
		"y":      strconv.FormatUint(uint64(y), 10),
	})
}

// EmitGameWon emits an event when a game is won by a player.
func (c *Contract) EmitGameWon(gameID uint64, winner sdk.Address) {
	c.emitEvent("gameWon", map[string]string{
		"id":     strconv.FormatUint(gameID, 10),
		"winner": winner.String(),
	})
}

// EmitGameDraw emits an event when a game ends in a draw.
func (c *Contract) EmitGameDraw(gameID uint64) {
	c.emitEvent("gameDraw", map[string]string{
		"id": strconv.FormatUint(gameID, 10),
	})
}

// EmitGameWithdrawn emits an event when an idle game is settled by timeout.
func (c *Contract) EmitGameWithdrawn(gameID uint64, claimant sdk.Address) {
	c.emitEvent("gameWithdrawn", map[string]string{
		"id":       strconv.FormatUint(gameID, 10),
		"claimant": claimant.String(),
	})
}
