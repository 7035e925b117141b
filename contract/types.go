package contract

import "github.com/iceboxup/tic-tac-toe/sdk"

// ---------- Types & Constants ----------

// Cell represents the state of a board cell, stored as 2 bits.
type Cell uint8

const (
	Empty Cell = 0 // Empty cell
	X     Cell = 1 // Mark of player 1 (the creator)
	O     Cell = 2 // Mark of player 2 (the joiner)
)

// Turn indicates who acts next. TurnNone before the join and after the end.
type Turn uint8

const (
	TurnNone Turn = 0
	TurnX    Turn = 1
	TurnO    Turn = 2
)

// Winner is the terminal outcome of a game. WinnerNone means the game is
// still open; any other value is final and set exactly once.
type Winner uint8

const (
	WinnerNone Winner = 0
	WinnerX    Winner = 1
	WinnerO    Winner = 2
	WinnerDraw Winner = 3
)

const (
	boardDim   = 3
	boardBytes = 3 // ceil(9 cells * 2 bits / 8)

	// IdleLimit is how long a game may sit without a state change before
	// the waiting player can claim the pool (unix seconds).
	IdleLimit uint64 = 86400
)

// Game contains the full game state used at runtime and persisted via the
// binary codec.
//
// Fields:
//   - ID: sequential numeric identifier, assigned from 1
//   - Player1: creator, set once at creation
//   - Player2: joiner, nil until someone joins
//   - StakeAsset/StakeAmount: per-player stake, fixed at creation
//   - Winner: terminal outcome, WinnerNone while open
//   - Turn: who acts next while the game is active
//   - Board: compressed 2-bits-per-cell representation, cells write-once
//   - LastActivity: timestamp of the last state-changing call (unix seconds)
type Game struct {
	ID           uint64
	Player1      sdk.Address
	Player2      *sdk.Address
	StakeAsset   sdk.Asset
	StakeAmount  uint64
	Winner       Winner
	Turn         Turn
	Board        []byte
	LastActivity uint64
}

// Cell extracts the value of a board cell using bit operations.
// Position is computed as 2 bits per cell, row-major order.
func (g *Game) Cell(x, y uint8) Cell {
	idx := int(x)*boardDim + int(y)
	byteIdx, bitShift := idx/4, (idx%4)*2
	return Cell((g.Board[byteIdx] >> bitShift) & 0x03)
}

// setCell writes a cell's value, preserving the other cells in the byte.
func (g *Game) setCell(x, y uint8, val Cell) {
	idx := int(x)*boardDim + int(y)
	byteIdx, bitShift := idx/4, (idx%4)*2
	g.Board[byteIdx] = (g.Board[byteIdx] & ^(0x03 << bitShift)) | (byte(val) << bitShift)
}

func initBoard() []byte { return make([]byte, boardBytes) }

// turnFor maps a mark to the Turn value meaning "this mark acts".
func turnFor(mark Cell) Turn { return Turn(mark) }

// winnerFor maps a mark to its terminal Winner value.
func winnerFor(mark Cell) Winner { return Winner(mark) }

func (t Turn) String() string {
	switch t {
	case TurnX:
		return "player1"
	case TurnO:
		return "player2"
	default:
		return "none"
	}
}

func (w Winner) String() string {
	switch w {
	case WinnerX:
		return "player1"
	case WinnerO:
		return "player2"
	case WinnerDraw:
		return "drawn"
	default:
		return "none"
	}
}
