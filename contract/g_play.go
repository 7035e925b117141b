package contract

// ---------- Entry: Play ----------

// Play writes the caller's mark at (x, y) and, when the move ends the game,
// pays the pool out in the same call: the sole winner receives both stakes,
// a draw refunds each player their own. If the payout fails the move fails
// with it and the runtime discards the state change, so a win is never
// observable with funds unpaid.
func (c *Contract) Play(id uint64, x, y uint8) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	env := c.sdk.GetEnv()
	g, err := c.loadGame(id)
	if err != nil {
		return err
	}
	if x >= boardDim || y >= boardDim {
		return ErrInvalidCoordinate
	}
	if g.Winner != WinnerNone {
		return ErrAlreadyEnded
	}
	if g.Player2 == nil {
		return ErrNotStarted
	}

	// Turn gate doubles as the player gate: a stranger can never hold the
	// turn.
	var mark Cell
	switch g.Turn {
	case TurnX:
		if env.Sender != g.Player1 {
			return ErrNotYourTurn
		}
		mark = X
	case TurnO:
		if env.Sender != *g.Player2 {
			return ErrNotYourTurn
		}
		mark = O
	default:
		return ErrNotYourTurn
	}

	if g.Cell(x, y) != Empty {
		return ErrCellOccupied
	}

	g.setCell(x, y, mark)
	g.LastActivity = env.Timestamp

	switch result := evaluate(g, x, y); result {
	case WinnerNone:
		if g.Turn == TurnX {
			g.Turn = TurnO
		} else {
			g.Turn = TurnX
		}
		c.saveGame(g)
		c.EmitGameMoveMade(id, env.Sender, x, y)

	case WinnerDraw:
		g.Winner = WinnerDraw
		g.Turn = TurnNone
		if err := c.payOut(g.Player1, g.StakeAsset, g.StakeAmount); err != nil {
			return err
		}
		if err := c.payOut(*g.Player2, g.StakeAsset, g.StakeAmount); err != nil {
			return err
		}
		c.saveGame(g)
		c.EmitGameMoveMade(id, env.Sender, x, y)
		c.EmitGameDraw(id)

	default:
		g.Winner = result
		g.Turn = TurnNone
		winner := g.Player1
		if result == WinnerO {
			winner = *g.Player2
		}
		if err := c.payOut(winner, g.StakeAsset, 2*g.StakeAmount); err != nil {
			return err
		}
		c.saveGame(g)
		c.EmitGameMoveMade(id, env.Sender, x, y)
		c.EmitGameWon(id, winner)
	}
	return nil
}
