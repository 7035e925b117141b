package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceboxup/tic-tac-toe/chain"
	"github.com/iceboxup/tic-tac-toe/contract"
	"github.com/iceboxup/tic-tac-toe/sdk"
)

func TestWithdrawUnjoinedGame(t *testing.T) {
	f := newFixture(t)
	f.approveStake(alice, oneCoin)
	id := f.createGame(alice, sdk.Token(tokenAddr), oneCoin, 0)

	f.net.Advance(contract.IdleLimit)
	require.NoError(t, f.withdraw(alice, id))

	g := f.mustGame(id)
	assert.Equal(t, contract.WinnerDraw, g.Winner)
	assert.Equal(t, contract.TurnNone, g.Turn)

	// Creator got exactly the stake back; nobody else was touched.
	assert.Equal(t, startBalance, f.tok.BalanceOf(alice))
	assert.Equal(t, startBalance, f.tok.BalanceOf(bob))
	assert.Equal(t, uint64(0), f.tok.BalanceOf(chain.ContractAddress))
}

func TestWithdrawBeforeWindow(t *testing.T) {
	f := newFixture(t)
	id := f.createGame(alice, sdk.Native(), oneCoin, oneCoin)

	f.net.Advance(contract.IdleLimit - 1)
	err := f.withdraw(alice, id)
	require.ErrorIs(t, err, contract.ErrNotWithdrawable)

	// The window boundary itself is claimable.
	f.net.Advance(1)
	require.NoError(t, f.withdraw(alice, id))
}

func TestWithdrawOnlyForWaitingPlayer(t *testing.T) {
	f := newFixture(t)
	id := f.createGame(alice, sdk.Native(), oneCoin, oneCoin)

	// Unjoined game: only the creator may reclaim.
	require.ErrorIs(t, f.withdraw(bob, id), contract.ErrYourTurn)

	require.NoError(t, f.join(bob, id, oneCoin))
	f.net.Advance(contract.IdleLimit)

	// Turn is on the creator, so the creator cannot claim idleness.
	require.ErrorIs(t, f.withdraw(alice, id), contract.ErrYourTurn)
	require.ErrorIs(t, f.withdraw(carol, id), contract.ErrYourTurn)
	require.NoError(t, f.withdraw(bob, id))
}

func TestWithdrawActiveGamePaysFullPool(t *testing.T) {
	f := newFixture(t)
	id := f.createGame(alice, sdk.Native(), oneCoin, oneCoin)
	require.NoError(t, f.join(bob, id, oneCoin))
	require.NoError(t, f.play(alice, id, 1, 1))

	// Joiner idles; creator claims both stakes after the window.
	f.net.Advance(contract.IdleLimit)
	require.NoError(t, f.withdraw(alice, id))

	g := f.mustGame(id)
	assert.Equal(t, contract.WinnerDraw, g.Winner)
	assert.Equal(t, startBalance+oneCoin, f.net.BalanceOf(alice))
	assert.Equal(t, startBalance-oneCoin, f.net.BalanceOf(bob))
	assert.Equal(t, uint64(0), f.net.ContractBalance())

	evs := eventTypes(f.events())
	assert.Equal(t, "gameWithdrawn", evs[len(evs)-1])
}

func TestWithdrawWindowRestartsOnActivity(t *testing.T) {
	f := newFixture(t)
	id := f.createGame(alice, sdk.Native(), oneCoin, oneCoin)
	require.NoError(t, f.join(bob, id, oneCoin))

	f.net.Advance(contract.IdleLimit - 10)
	require.NoError(t, f.play(alice, id, 0, 0))

	// The move reset lastActivity; the old window no longer counts.
	f.net.Advance(10)
	require.ErrorIs(t, f.withdraw(alice, id), contract.ErrNotWithdrawable)
}

func TestWithdrawRevertsWhenPayoutFails(t *testing.T) {
	f := newFixture(t)
	id := f.createGame(alice, sdk.Native(), oneCoin, oneCoin)
	require.NoError(t, f.join(bob, id, oneCoin))
	require.NoError(t, f.play(alice, id, 1, 1))
	f.net.Advance(contract.IdleLimit)

	f.net.SetRejectNative(alice, true)
	err := f.withdraw(alice, id)
	require.ErrorIs(t, err, chain.ErrTransferRejected)

	// The claim left no trace: the game is still open and claimable.
	g := f.mustGame(id)
	assert.Equal(t, contract.WinnerNone, g.Winner)
	assert.Equal(t, contract.TurnO, g.Turn)
	assert.Equal(t, 2*oneCoin, f.net.ContractBalance())

	f.net.SetRejectNative(alice, false)
	require.NoError(t, f.withdraw(alice, id))
	assert.Equal(t, startBalance+oneCoin, f.net.BalanceOf(alice))
	assert.Equal(t, uint64(0), f.net.ContractBalance())
}

func TestWithdrawUnknownGame(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.withdraw(alice, 1), contract.ErrInvalidGameID)
}
