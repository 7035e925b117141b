package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceboxup/tic-tac-toe/sdk"
)

func sampleGame() *Game {
	p2 := sdk.Address("hive:bob")
	g := &Game{
		ID:           7,
		Player1:      "hive:alice",
		Player2:      &p2,
		StakeAsset:   sdk.Token("tok:demo"),
		StakeAmount:  2500,
		Winner:       WinnerNone,
		Turn:         TurnO,
		Board:        initBoard(),
		LastActivity: 1_700_000_123,
	}
	g.setCell(0, 0, X)
	g.setCell(1, 1, O)
	g.setCell(2, 2, X)
	return g
}

func TestCodecRoundTrip(t *testing.T) {
	g := sampleGame()
	got, err := decodeGame(encodeGame(g))
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestCodecRoundTripMinimal(t *testing.T) {
	g := &Game{
		ID:           1,
		Player1:      "hive:alice",
		StakeAsset:   sdk.Native(),
		Winner:       WinnerDraw,
		Turn:         TurnNone,
		Board:        initBoard(),
		LastActivity: 42,
	}
	got, err := decodeGame(encodeGame(g))
	require.NoError(t, err)
	assert.Equal(t, g, got)
	assert.True(t, got.StakeAsset.IsNative())
	assert.Nil(t, got.Player2)
}

func TestCodecRejectsCorruptInput(t *testing.T) {
	enc := encodeGame(sampleGame())

	t.Run("unsupported version", func(t *testing.T) {
		bad := append([]byte{codecVersion + 1}, enc[1:]...)
		_, err := decodeGame(bad)
		require.ErrorIs(t, err, errCorruptRecord)
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 1, 9, len(enc) - 1} {
			_, err := decodeGame(enc[:n])
			require.ErrorIs(t, err, errCorruptRecord, "len %d", n)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		bad := append(append([]byte{}, enc...), 0xff)
		_, err := decodeGame(bad)
		require.ErrorIs(t, err, errCorruptRecord)
	})
}

func TestBoardCellsArePacked(t *testing.T) {
	g := &Game{Board: initBoard()}
	for x := uint8(0); x < 3; x++ {
		for y := uint8(0); y < 3; y++ {
			require.Equal(t, Empty, g.Cell(x, y))
		}
	}

	g.setCell(1, 2, O)
	assert.Equal(t, O, g.Cell(1, 2))
	// Neighbors in the same byte are untouched.
	assert.Equal(t, Empty, g.Cell(1, 1))
	assert.Equal(t, Empty, g.Cell(2, 0))
	assert.Len(t, g.Board, boardBytes)
}
