package contract

import "strconv"

// ---------- Game Store ----------
//
// Append-only registry over the chain KV. Identifiers are assigned
// sequentially starting at 1 and never reused; an id is valid iff
// 1 <= id <= gameCount. Records are never deleted. Content correctness is
// the entry points' responsibility, not the store's.

const countKey = "g:count"

// gameKey constructs the state key for storing a game. Format: "g:<id>"
func gameKey(id uint64) string { return "g:" + strconv.FormatUint(id, 10) }

// GameCount returns the number of games ever created.
func (c *Contract) GameCount() uint64 {
	ptr := c.sdk.StateGetObject(countKey)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (c *Contract) setGameCount(n uint64) {
	c.sdk.StateSetObject(countKey, strconv.FormatUint(n, 10))
}

// loadGame fetches a game by id, rejecting out-of-range identifiers.
func (c *Contract) loadGame(id uint64) (*Game, error) {
	if id == 0 || id > c.GameCount() {
		return nil, ErrInvalidGameID
	}
	ptr := c.sdk.StateGetObject(gameKey(id))
	if ptr == nil || *ptr == "" {
		return nil, errCorruptRecord
	}
	return decodeGame([]byte(*ptr))
}

func (c *Contract) saveGame(g *Game) {
	c.sdk.StateSetObject(gameKey(g.ID), string(encodeGame(g)))
}
