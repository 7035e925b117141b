// Package contract implements the escrow-backed tic-tac-toe game: two
// players lock an equal stake (native currency or a fungible token), take
// turns on a 3x3 board, and the pool is paid out in the same call that
// produces a terminal state. An idle opponent's counterpart can reclaim the
// pool after the idle window.
//
// The contract runs against an injected sdk.SDKInterface and assumes the
// runtime executes each entry point as one serialized, all-or-nothing call.
package contract

import "github.com/iceboxup/tic-tac-toe/sdk"

type Contract struct {
	sdk  sdk.SDKInterface
	busy bool
}

func New(s sdk.SDKInterface) *Contract {
	return &Contract{sdk: s}
}

// enter acquires the busy latch shared by all state-mutating entry points.
// Payouts hand control to external transfer logic which may call back into
// the contract; the latch rejects any such nested invocation.
func (c *Contract) enter() error {
	if c.busy {
		return ErrReentrantCall
	}
	c.busy = true
	return nil
}

func (c *Contract) exit() { c.busy = false }
