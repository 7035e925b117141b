package contract

// ---------- Entry: Join ----------

// JoinGame escrows the matching stake from the caller and activates the
// game. The joiner becomes player 2; player 1 moves first.
func (c *Contract) JoinGame(id uint64) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	env := c.sdk.GetEnv()
	g, err := c.loadGame(id)
	if err != nil {
		return err
	}
	// A game the creator reclaimed by timeout is terminal even though it
	// never had a second player.
	if g.Winner != WinnerNone {
		return ErrAlreadyEnded
	}
	if g.Player2 != nil {
		return ErrAlreadyStarted
	}

	if err := c.depositIn(env.Sender, g.StakeAsset, g.StakeAmount); err != nil {
		return err
	}

	p2 := env.Sender
	g.Player2 = &p2
	g.Turn = TurnX
	g.LastActivity = env.Timestamp
	c.saveGame(g)

	c.EmitGameJoined(id, env.Sender)
	return nil
}
