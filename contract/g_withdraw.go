package contract

// ---------- Entry: Withdraw ----------

// Withdraw settles an idle game by timeout. Only the player waiting on an
// unresponsive counterpart may claim: before a join that is the creator,
// afterwards the player who does not hold the turn. The claimant receives
// the full pool — their own stake if nobody ever joined, both stakes
// otherwise. The outcome is recorded as a draw for bookkeeping even though
// the payout is not split.
func (c *Contract) Withdraw(id uint64) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	env := c.sdk.GetEnv()
	g, err := c.loadGame(id)
	if err != nil {
		return err
	}
	if g.Winner != WinnerNone {
		return ErrAlreadyEnded
	}

	switch {
	case g.Player2 == nil:
		if env.Sender != g.Player1 {
			return ErrYourTurn
		}
	case g.Turn == TurnX:
		if env.Sender != *g.Player2 {
			return ErrYourTurn
		}
	default: // TurnO
		if env.Sender != g.Player1 {
			return ErrYourTurn
		}
	}

	if env.Timestamp < g.LastActivity+IdleLimit {
		return ErrNotWithdrawable
	}

	pool := g.StakeAmount
	if g.Player2 != nil {
		pool *= 2
	}

	g.Turn = TurnNone
	g.Winner = WinnerDraw
	g.LastActivity = env.Timestamp

	if err := c.payOut(env.Sender, g.StakeAsset, pool); err != nil {
		return err
	}
	c.saveGame(g)

	c.EmitGameWithdrawn(id, env.Sender)
	return nil
}
