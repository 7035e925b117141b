// Package sdk defines the types and the interface the contract uses to talk
// to the chain it runs on: account addresses, stake assets, the per-call
// environment, and the state/value primitives. Implementations live outside
// the contract (the in-memory chain runtime, or a real node binding).
package sdk

// Address identifies an account on the chain.
type Address string

func (a Address) String() string { return string(a) }

// Asset is a tagged union over the two stake asset kinds: the chain's native
// currency or a fungible token contract. The zero value is the native asset.
type Asset struct {
	token Address
}

// Native returns the native-currency asset.
func Native() Asset { return Asset{} }

// Token returns the asset backed by the fungible token contract at addr.
func Token(addr Address) Asset { return Asset{token: addr} }

func (a Asset) IsNative() bool { return a.token == "" }

// TokenAddress returns the token contract address; empty for the native asset.
func (a Asset) TokenAddress() Address { return a.token }

func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return string(a.token)
}

// Env is the per-call environment supplied by the chain. Timestamp is unix
// seconds and is monotonically non-decreasing across calls; Value is the
// native amount attached to the call, already moved into contract custody
// (and returned to the sender if the call fails).
type Env struct {
	Sender    Address
	Value     uint64
	Timestamp uint64
	TxID      string
}

// SDKInterface is everything the contract may do to the outside world.
// State keys are scoped to the contract; transfers move value out of (or,
// for TokenDraw, into) contract custody.
type SDKInterface interface {
	StateSetObject(key, value string)
	StateGetObject(key string) *string
	GetEnv() Env
	Log(msg string)

	// NativeTransfer pushes native currency from the contract to a recipient.
	NativeTransfer(to Address, amount uint64) error
	// TokenDraw pulls tokens from an account into the contract using a
	// pre-granted allowance.
	TokenDraw(token Address, from Address, amount uint64) error
	// TokenTransfer pushes tokens from the contract to a recipient.
	TokenTransfer(token Address, to Address, amount uint64) error
}
