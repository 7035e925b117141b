package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceboxup/tic-tac-toe/sdk"
	"github.com/iceboxup/tic-tac-toe/token"
)

const (
	alice = sdk.Address("hive:alice")
	bob   = sdk.Address("hive:bob")
)

func TestSubmitMovesAttachedValueIntoCustody(t *testing.T) {
	c := New()
	c.Fund(alice, 500)

	err := c.Submit(alice, 200, func() error {
		assert.Equal(t, alice, c.GetEnv().Sender)
		assert.Equal(t, uint64(200), c.GetEnv().Value)
		assert.NotEmpty(t, c.GetEnv().TxID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(300), c.BalanceOf(alice))
	assert.Equal(t, uint64(200), c.ContractBalance())
}

func TestSubmitRejectsUnfundedValue(t *testing.T) {
	c := New()
	err := c.Submit(alice, 1, func() error { return nil })
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestSubmitRollsBackEverything(t *testing.T) {
	c := New(WithNow(100))
	c.Fund(alice, 500)
	tok := token.New("tok:demo", "Demo", "DEMO")
	require.NoError(t, tok.Mint(alice, 50))
	tok.Approve(alice, ContractAddress, 50)
	c.RegisterToken(tok)

	c.Submit(alice, 0, func() error { c.Log("kept"); return nil })

	boom := errors.New("boom")
	err := c.Submit(alice, 100, func() error {
		c.StateSetObject("k", "v")
		c.Log("dropped")
		require.NoError(t, c.TokenDraw("tok:demo", alice, 30))
		require.NoError(t, c.NativeTransfer(bob, 40))
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Nil(t, c.StateGetObject("k"))
	assert.Equal(t, uint64(500), c.BalanceOf(alice))
	assert.Equal(t, uint64(0), c.BalanceOf(bob))
	assert.Equal(t, uint64(0), c.ContractBalance())
	assert.Equal(t, uint64(50), tok.BalanceOf(alice))
	assert.Equal(t, uint64(50), tok.Allowance(alice, ContractAddress))
	assert.Equal(t, []string{"kept"}, c.Logs())
}

func TestSubmitRejectsNestedCalls(t *testing.T) {
	c := New()
	c.Fund(alice, 10)
	err := c.Submit(alice, 0, func() error {
		return c.Submit(alice, 0, func() error { return nil })
	})
	require.ErrorIs(t, err, ErrNestedCall)
}

func TestNativeTransferToRejectingRecipient(t *testing.T) {
	c := New()
	c.Fund(alice, 100)
	c.SetRejectNative(bob, true)

	err := c.Submit(alice, 100, func() error {
		return c.NativeTransfer(bob, 100)
	})
	require.ErrorIs(t, err, ErrTransferRejected)
	assert.Equal(t, uint64(100), c.BalanceOf(alice))

	c.SetRejectNative(bob, false)
	require.NoError(t, c.Submit(alice, 100, func() error {
		return c.NativeTransfer(bob, 100)
	}))
	assert.Equal(t, uint64(100), c.BalanceOf(bob))
}

func TestTokenOpsRequireRegisteredToken(t *testing.T) {
	c := New()
	c.Fund(alice, 10)
	err := c.Submit(alice, 0, func() error {
		return c.TokenDraw("tok:ghost", alice, 1)
	})
	require.ErrorIs(t, err, ErrUnknownToken)
}

func TestClockNeverRewinds(t *testing.T) {
	c := New(WithNow(1000))
	require.NoError(t, c.SetNow(1000))
	require.NoError(t, c.SetNow(2000))
	require.ErrorIs(t, c.SetNow(1999), ErrClockRewind)

	c.Advance(50)
	assert.Equal(t, uint64(2050), c.Now())
}

func TestEnvTimestampTracksClock(t *testing.T) {
	c := New(WithNow(123))
	c.Fund(alice, 1)
	var seen uint64
	require.NoError(t, c.Submit(alice, 0, func() error {
		seen = c.GetEnv().Timestamp
		return nil
	}))
	assert.Equal(t, uint64(123), seen)
}
