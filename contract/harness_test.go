package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iceboxup/tic-tac-toe/chain"
	"github.com/iceboxup/tic-tac-toe/contract"
	"github.com/iceboxup/tic-tac-toe/sdk"
	"github.com/iceboxup/tic-tac-toe/token"
)

const (
	alice = sdk.Address("hive:alice")
	bob   = sdk.Address("hive:bob")
	carol = sdk.Address("hive:carol")

	tokenAddr = sdk.Address("tok:demo")

	// 3-decimal fixed point: 1.0 of either asset.
	oneCoin = uint64(1000)

	startBalance = uint64(10_000)
	genesisTime  = uint64(1_700_000_000)
)

type fixture struct {
	t    *testing.T
	net  *chain.Chain
	tok  *token.Token
	game *contract.Contract
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	net := chain.New(chain.WithNow(genesisTime))
	tok := token.New(tokenAddr, "Demo Token", "DEMO")
	net.RegisterToken(tok)

	for _, a := range []sdk.Address{alice, bob, carol} {
		net.Fund(a, startBalance)
		require.NoError(t, tok.Mint(a, startBalance))
	}
	return &fixture{t: t, net: net, tok: tok, game: contract.New(net)}
}

func (f *fixture) createGame(sender sdk.Address, asset sdk.Asset, amount, value uint64) uint64 {
	f.t.Helper()
	var id uint64
	err := f.net.Submit(sender, value, func() error {
		var err error
		id, err = f.game.CreateGame(asset, amount)
		return err
	})
	require.NoError(f.t, err)
	return id
}

func (f *fixture) join(sender sdk.Address, id uint64, value uint64) error {
	return f.net.Submit(sender, value, func() error {
		return f.game.JoinGame(id)
	})
}

func (f *fixture) play(sender sdk.Address, id uint64, x, y uint8) error {
	return f.net.Submit(sender, 0, func() error {
		return f.game.Play(id, x, y)
	})
}

func (f *fixture) withdraw(sender sdk.Address, id uint64) error {
	return f.net.Submit(sender, 0, func() error {
		return f.game.Withdraw(id)
	})
}

func (f *fixture) mustGame(id uint64) *contract.Game {
	f.t.Helper()
	g, err := f.game.GetGame(id)
	require.NoError(f.t, err)
	return g
}

// playSeq feeds alternating moves, player 1 first, failing on any rejection.
func (f *fixture) playSeq(id uint64, p1, p2 sdk.Address, moves [][2]uint8) {
	f.t.Helper()
	for i, m := range moves {
		sender := p1
		if i%2 == 1 {
			sender = p2
		}
		require.NoError(f.t, f.play(sender, id, m[0], m[1]), "move %d (%d,%d)", i, m[0], m[1])
	}
}

// approveStake grants the contract an allowance covering one stake.
func (f *fixture) approveStake(owner sdk.Address, amount uint64) {
	f.tok.Approve(owner, chain.ContractAddress, amount)
}

func (f *fixture) events() []contract.Event {
	f.t.Helper()
	logs := f.net.Logs()
	out := make([]contract.Event, 0, len(logs))
	for _, l := range logs {
		var e contract.Event
		require.NoError(f.t, json.Unmarshal([]byte(l), &e))
		out = append(out, e)
	}
	return out
}

func eventTypes(evs []contract.Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}
