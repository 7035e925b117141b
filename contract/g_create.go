package contract

import (
	"math"

	"github.com/iceboxup/tic-tac-toe/sdk"
)

// ---------- Entry: Create ----------

// CreateGame escrows the caller's stake and allocates a new game. The
// caller becomes player 1 and will move first once an opponent joins. There
// is no upper bound on concurrently open games.
//
// Returns the new game id (sequential, starting at 1).
func (c *Contract) CreateGame(asset sdk.Asset, amount uint64) (uint64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	defer c.exit()

	// The pool is at most two stakes; cap the stake so the doubled pool
	// cannot wrap uint64 in the win and timeout payouts.
	if amount > math.MaxUint64/2 {
		return 0, ErrInvalidAmount
	}

	env := c.sdk.GetEnv()
	if err := c.depositIn(env.Sender, asset, amount); err != nil {
		return 0, err
	}

	id := c.GameCount() + 1
	g := &Game{
		ID:           id,
		Player1:      env.Sender,
		StakeAsset:   asset,
		StakeAmount:  amount,
		Winner:       WinnerNone,
		Turn:         TurnNone,
		Board:        initBoard(),
		LastActivity: env.Timestamp,
	}
	c.saveGame(g)
	c.setGameCount(id)

	c.EmitGameCreated(id, env.Sender)
	return id, nil
}
