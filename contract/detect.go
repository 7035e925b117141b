package contract

// ---------- Win Detector ----------

// evaluate decides the outcome after board[x][y] was just set to a
// non-empty mark. A win can only be completed by the move that just
// happened, so only the lines through (x,y) are checked: row x, column y,
// the main diagonal when x == y and the anti-diagonal when x+y == 2. If no
// line matches, a full scan decides between a draw and an open game.
func evaluate(g *Game, x, y uint8) Winner {
	mark := g.Cell(x, y)

	if g.Cell(x, 0) == mark && g.Cell(x, 1) == mark && g.Cell(x, 2) == mark {
		return winnerFor(mark)
	}
	if g.Cell(0, y) == mark && g.Cell(1, y) == mark && g.Cell(2, y) == mark {
		return winnerFor(mark)
	}
	if x == y &&
		g.Cell(0, 0) == mark && g.Cell(1, 1) == mark && g.Cell(2, 2) == mark {
		return winnerFor(mark)
	}
	if x+y == 2 &&
		g.Cell(0, 2) == mark && g.Cell(1, 1) == mark && g.Cell(2, 0) == mark {
		return winnerFor(mark)
	}

	for i := uint8(0); i < boardDim; i++ {
		for j := uint8(0); j < boardDim; j++ {
			if g.Cell(i, j) == Empty {
				return WinnerNone
			}
		}
	}
	return WinnerDraw
}
