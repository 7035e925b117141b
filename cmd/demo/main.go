// Scripted local match against an in-memory chain, printed with a colored
// board after every move. Useful for eyeballing the contract without
// running the HTTP node.
package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/iceboxup/tic-tac-toe/chain"
	"github.com/iceboxup/tic-tac-toe/contract"
	"github.com/iceboxup/tic-tac-toe/sdk"
)

const (
	alice sdk.Address = "hive:alice"
	bob   sdk.Address = "hive:bob"

	stake = 1000
)

type demo struct {
	out  *termenv.Output
	net  *chain.Chain
	game *contract.Contract
}

func main() {
	d := &demo{
		out: termenv.NewOutput(os.Stdout),
		net: chain.New(chain.WithNow(1_700_000_000)),
	}
	d.game = contract.New(d.net)
	d.net.Fund(alice, 10*stake)
	d.net.Fund(bob, 10*stake)

	if err := d.run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func (d *demo) run() error {
	d.headline("A full match: alice hosts, bob joins, alice takes the top row")

	var id uint64
	err := d.net.Submit(alice, stake, func() error {
		var err error
		id, err = d.game.CreateGame(sdk.Native(), stake)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Printf("alice created game %d with a %d stake\n", id, stake)

	if err := d.net.Submit(bob, stake, func() error {
		return d.game.JoinGame(id)
	}); err != nil {
		return err
	}
	fmt.Printf("bob joined, pool is %d\n", d.net.ContractBalance())

	moves := []struct {
		who  sdk.Address
		x, y uint8
	}{
		{alice, 0, 0}, {bob, 1, 1},
		{alice, 0, 1}, {bob, 2, 2},
		{alice, 0, 2},
	}
	for _, m := range moves {
		if err := d.net.Submit(m.who, 0, func() error {
			return d.game.Play(id, m.x, m.y)
		}); err != nil {
			return err
		}
		fmt.Printf("%s plays (%d,%d)\n", m.who, m.x, m.y)
		d.printBoard(id)
	}

	g, err := d.game.GetGame(id)
	if err != nil {
		return err
	}
	d.headline(fmt.Sprintf("winner: %s", g.Winner))
	fmt.Printf("alice: %d  bob: %d  custody: %d\n\n",
		d.net.BalanceOf(alice), d.net.BalanceOf(bob), d.net.ContractBalance())

	return d.runTimeout()
}

// runTimeout shows the idle reclaim: bob never answers alice's opening
// move, so after the idle window alice walks away with the whole pool.
func (d *demo) runTimeout() error {
	d.headline("An abandoned match: bob goes idle, alice reclaims the pool")

	var id uint64
	if err := d.net.Submit(alice, stake, func() error {
		var err error
		id, err = d.game.CreateGame(sdk.Native(), stake)
		return err
	}); err != nil {
		return err
	}
	if err := d.net.Submit(bob, stake, func() error {
		return d.game.JoinGame(id)
	}); err != nil {
		return err
	}
	if err := d.net.Submit(alice, 0, func() error {
		return d.game.Play(id, 1, 1)
	}); err != nil {
		return err
	}
	d.printBoard(id)

	err := d.net.Submit(alice, 0, func() error { return d.game.Withdraw(id) })
	fmt.Printf("withdraw right away: %v\n", err)

	d.net.Advance(contract.IdleLimit)
	fmt.Printf("...%d seconds pass...\n", contract.IdleLimit)

	if err := d.net.Submit(alice, 0, func() error {
		return d.game.Withdraw(id)
	}); err != nil {
		return err
	}
	fmt.Printf("alice: %d  bob: %d  custody: %d\n",
		d.net.BalanceOf(alice), d.net.BalanceOf(bob), d.net.ContractBalance())
	return nil
}

func (d *demo) headline(s string) {
	fmt.Println()
	fmt.Println(d.out.String(s).Bold().Underline())
}

func (d *demo) printBoard(id uint64) {
	g, err := d.game.GetGame(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "printBoard:", err)
		return
	}
	p := d.out.ColorProfile()
	marks := map[contract.Cell]termenv.Style{
		contract.Empty: d.out.String("."),
		contract.X:     d.out.String("X").Foreground(p.Color("#E88388")).Bold(),
		contract.O:     d.out.String("O").Foreground(p.Color("#76BEE2")).Bold(),
	}
	for x := uint8(0); x < 3; x++ {
		for y := uint8(0); y < 3; y++ {
			fmt.Printf(" %s", marks[g.Cell(x, y)])
		}
		fmt.Println()
	}
	fmt.Println()
}
