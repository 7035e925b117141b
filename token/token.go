// Package token implements the companion fungible token used for
// token-stake games: classic approve/transferFrom/transfer semantics over
// per-account balances, with an optional receive hook so tests can observe
// (or misbehave during) incoming transfers.
package token

import (
	"errors"

	"github.com/iceboxup/tic-tac-toe/sdk"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	ErrSupplyOverflow        = errors.New("token supply overflow")
)

// ReceiveHook runs when amount is about to be credited to the hooked
// account. Returning an error fails the enclosing transfer with the
// balances untouched.
type ReceiveHook func(from sdk.Address, amount uint64) error

type Token struct {
	address sdk.Address
	name    string
	symbol  string

	balances   map[sdk.Address]uint64
	allowances map[sdk.Address]map[sdk.Address]uint64
	hooks      map[sdk.Address]ReceiveHook
}

func New(address sdk.Address, name, symbol string) *Token {
	return &Token{
		address:    address,
		name:       name,
		symbol:     symbol,
		balances:   make(map[sdk.Address]uint64),
		allowances: make(map[sdk.Address]map[sdk.Address]uint64),
		hooks:      make(map[sdk.Address]ReceiveHook),
	}
}

func (t *Token) Address() sdk.Address { return t.address }
func (t *Token) Name() string         { return t.name }
func (t *Token) Symbol() string       { return t.symbol }

func (t *Token) BalanceOf(addr sdk.Address) uint64 { return t.balances[addr] }

// Mint credits freshly issued tokens to an account. Devnet-only surface;
// there is no burn.
func (t *Token) Mint(to sdk.Address, amount uint64) error {
	if t.balances[to]+amount < t.balances[to] {
		return ErrSupplyOverflow
	}
	t.balances[to] += amount
	return nil
}

func (t *Token) Approve(owner, spender sdk.Address, amount uint64) {
	m := t.allowances[owner]
	if m == nil {
		m = make(map[sdk.Address]uint64)
		t.allowances[owner] = m
	}
	m[spender] = amount
}

func (t *Token) Allowance(owner, spender sdk.Address) uint64 {
	return t.allowances[owner][spender]
}

// Transfer moves tokens between accounts on the authority of from itself.
func (t *Token) Transfer(from, to sdk.Address, amount uint64) error {
	return t.move(from, to, amount)
}

// TransferFrom moves tokens out of from on the authority of spender,
// consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to sdk.Address, amount uint64) error {
	if t.Allowance(from, spender) < amount {
		return ErrInsufficientAllowance
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	t.allowances[from][spender] -= amount
	return nil
}

func (t *Token) move(from, to sdk.Address, amount uint64) error {
	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	// The hook fires before anything moves, so a hook failure (or a
	// failure it causes) never strands a half-applied transfer when the
	// token is used outside a rolled-back chain call. The hook may itself
	// move tokens, hence the second balance check.
	if hook := t.hooks[to]; hook != nil {
		if err := hook(from, amount); err != nil {
			return err
		}
		if t.balances[from] < amount {
			return ErrInsufficientBalance
		}
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

// SetReceiveHook installs (or, with nil, removes) a hook fired whenever
// addr receives tokens.
func (t *Token) SetReceiveHook(addr sdk.Address, hook ReceiveHook) {
	if hook == nil {
		delete(t.hooks, addr)
		return
	}
	t.hooks[addr] = hook
}

// State is an opaque copy of the token's mutable state, used by the chain
// runtime to roll a failed call back.
type State struct {
	balances   map[sdk.Address]uint64
	allowances map[sdk.Address]map[sdk.Address]uint64
}

func (t *Token) Snapshot() State {
	s := State{
		balances:   make(map[sdk.Address]uint64, len(t.balances)),
		allowances: make(map[sdk.Address]map[sdk.Address]uint64, len(t.allowances)),
	}
	for k, v := range t.balances {
		s.balances[k] = v
	}
	for owner, m := range t.allowances {
		cp := make(map[sdk.Address]uint64, len(m))
		for spender, v := range m {
			cp[spender] = v
		}
		s.allowances[owner] = cp
	}
	return s
}

func (t *Token) Restore(s State) {
	t.balances = s.balances
	t.allowances = s.allowances
}
