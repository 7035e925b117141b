package contract

import "github.com/iceboxup/tic-tac-toe/sdk"

// ---------- Value Transfer Adapter ----------
//
// The only code paths that move value. Every stake in and every payout out
// routes through these two functions regardless of asset kind, which keeps
// the custody invariant auditable in one place.

// depositIn moves amount of asset from payer into contract custody.
//
// Native: the attached value must equal the amount exactly; the runtime has
// already credited it to custody, so nothing else moves. Token: no native
// value may ride along, and the amount is pulled from payer via a
// pre-granted allowance; whatever the token reports on failure propagates.
func (c *Contract) depositIn(payer sdk.Address, asset sdk.Asset, amount uint64) error {
	env := c.sdk.GetEnv()
	if asset.IsNative() {
		if env.Value != amount {
			return ErrInvalidAmount
		}
		return nil
	}
	if env.Value != 0 {
		return ErrInvalidAmount
	}
	return c.sdk.TokenDraw(asset.TokenAddress(), payer, amount)
}

// payOut pushes amount of asset from custody to recipient. Failure
// propagates to the caller; the enclosing call fails with it and is rolled
// back, so no partial payout is ever observable.
func (c *Contract) payOut(recipient sdk.Address, asset sdk.Asset, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if asset.IsNative() {
		return c.sdk.NativeTransfer(recipient, amount)
	}
	return c.sdk.TokenTransfer(asset.TokenAddress(), recipient, amount)
}
