package contract

// ---------- Queries ----------

// GetGame returns the full record for a game id. Records stay queryable
// forever, terminal ones included.
func (c *Contract) GetGame(id uint64) (*Game, error) {
	return c.loadGame(id)
}

// GameView is the externally readable projection of a Game. The board is a
// compact 9-character string of '0'/'1'/'2' in row-major order.
type GameView struct {
	ID           uint64 `json:"id"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2,omitempty"`
	StakeAsset   string `json:"stakeAsset"`
	StakeAmount  uint64 `json:"stakeAmount"`
	Winner       string `json:"winner"`
	Turn         string `json:"turn"`
	Board        string `json:"board"`
	LastActivity uint64 `json:"lastActivity"`
}

func (g *Game) View() GameView {
	v := GameView{
		ID:           g.ID,
		Player1:      g.Player1.String(),
		StakeAsset:   g.StakeAsset.String(),
		StakeAmount:  g.StakeAmount,
		Winner:       g.Winner.String(),
		Turn:         g.Turn.String(),
		LastActivity: g.LastActivity,
	}
	if g.Player2 != nil {
		v.Player2 = g.Player2.String()
	}

	out := make([]byte, 0, boardDim*boardDim)
	for x := uint8(0); x < boardDim; x++ {
		for y := uint8(0); y < boardDim; y++ {
			out = append(out, byte('0'+g.Cell(x, y)))
		}
	}
	v.Board = string(out)
	return v
}
