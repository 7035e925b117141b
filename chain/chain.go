// Package chain is an in-memory chain runtime. It implements sdk.SDKInterface
// for the contract and supplies the execution model the contract assumes:
// calls run one at a time, each call sees a consistent environment (sender,
// attached value, timestamp, tx id), and a failed call leaves no trace —
// contract state, native balances, registered token state, and the event log
// are all restored to their pre-call snapshot.
//
// It backs both the test harness and the devnet HTTP node.
package chain

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iceboxup/tic-tac-toe/sdk"
	"github.com/iceboxup/tic-tac-toe/token"
)

var (
	ErrInsufficientFunds = errors.New("insufficient native balance")
	ErrTransferRejected  = errors.New("native transfer rejected by recipient")
	ErrUnknownToken      = errors.New("unknown token contract")
	ErrClockRewind       = errors.New("timestamp must not decrease")
	ErrNestedCall        = errors.New("call already in progress")
)

// ContractAddress is the account holding contract custody.
const ContractAddress sdk.Address = "contract:tictactoe"

type Chain struct {
	mu sync.Mutex

	state     map[string]string
	balances  map[sdk.Address]uint64
	tokens    map[sdk.Address]*token.Token
	rejecting map[sdk.Address]bool
	logs      []string

	now    uint64
	txSeq  uint64
	inCall bool
	env    sdk.Env

	log *zap.Logger
}

type Option func(*Chain)

func WithLogger(l *zap.Logger) Option { return func(c *Chain) { c.log = l } }

// WithNow sets the initial chain timestamp (unix seconds).
func WithNow(ts uint64) Option { return func(c *Chain) { c.now = ts } }

func New(opts ...Option) *Chain {
	c := &Chain{
		state:     make(map[string]string),
		balances:  make(map[sdk.Address]uint64),
		tokens:    make(map[sdk.Address]*token.Token),
		rejecting: make(map[sdk.Address]bool),
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ---------- Call execution ----------

// Submit runs fn as a single chain call from sender with value attached.
// The attached value is moved into contract custody before fn runs. If fn
// returns an error the whole call is rolled back, attached value included,
// and the error is returned unchanged.
//
// Submit must not be called from within a running call; reentrancy through
// value-transfer callbacks happens inside one call, not as a nested one.
func (c *Chain) Submit(sender sdk.Address, value uint64, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inCall {
		return ErrNestedCall
	}
	if c.balances[sender] < value {
		return ErrInsufficientFunds
	}

	snap := c.snapshot()
	c.balances[sender] -= value
	c.balances[ContractAddress] += value

	c.txSeq++
	c.env = sdk.Env{
		Sender:    sender,
		Value:     value,
		Timestamp: c.now,
		TxID:      uuid.NewString(),
	}
	c.inCall = true
	err := fn()
	c.inCall = false

	if err != nil {
		c.restore(snap)
		c.log.Debug("call reverted",
			zap.String("sender", sender.String()),
			zap.Uint64("value", value),
			zap.Error(err))
		return err
	}
	c.log.Debug("call applied",
		zap.String("sender", sender.String()),
		zap.Uint64("value", value),
		zap.String("tx", c.env.TxID))
	return nil
}

type snapshot struct {
	state    map[string]string
	balances map[sdk.Address]uint64
	tokens   map[sdk.Address]token.State
	logLen   int
}

func (c *Chain) snapshot() snapshot {
	s := snapshot{
		state:    make(map[string]string, len(c.state)),
		balances: make(map[sdk.Address]uint64, len(c.balances)),
		tokens:   make(map[sdk.Address]token.State, len(c.tokens)),
		logLen:   len(c.logs),
	}
	for k, v := range c.state {
		s.state[k] = v
	}
	for k, v := range c.balances {
		s.balances[k] = v
	}
	for addr, t := range c.tokens {
		s.tokens[addr] = t.Snapshot()
	}
	return s
}

func (c *Chain) restore(s snapshot) {
	c.state = s.state
	c.balances = s.balances
	for addr, st := range s.tokens {
		c.tokens[addr].Restore(st)
	}
	c.logs = c.logs[:s.logLen]
}

// ---------- sdk.SDKInterface ----------
//
// These are only meaningful inside a Submit call; they intentionally take
// no locks so value-transfer callbacks can call back into the contract on
// the same goroutine.

func (c *Chain) StateSetObject(key, value string) { c.state[key] = value }

func (c *Chain) StateGetObject(key string) *string {
	v, ok := c.state[key]
	if !ok {
		return nil
	}
	return &v
}

func (c *Chain) GetEnv() sdk.Env { return c.env }

func (c *Chain) Log(msg string) { c.logs = append(c.logs, msg) }

func (c *Chain) NativeTransfer(to sdk.Address, amount uint64) error {
	if c.rejecting[to] {
		return ErrTransferRejected
	}
	if c.balances[ContractAddress] < amount {
		return ErrInsufficientFunds
	}
	c.balances[ContractAddress] -= amount
	c.balances[to] += amount
	return nil
}

func (c *Chain) TokenDraw(tok sdk.Address, from sdk.Address, amount uint64) error {
	t, ok := c.tokens[tok]
	if !ok {
		return ErrUnknownToken
	}
	return t.TransferFrom(ContractAddress, from, ContractAddress, amount)
}

func (c *Chain) TokenTransfer(tok sdk.Address, to sdk.Address, amount uint64) error {
	t, ok := c.tokens[tok]
	if !ok {
		return ErrUnknownToken
	}
	return t.Transfer(ContractAddress, to, amount)
}

// View runs fn while holding the chain lock, so queries and auxiliary
// state access (token mints, approvals) do not interleave with a Submit.
func (c *Chain) View(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// ---------- Chain administration ----------

// Fund credits native currency to an account (devnet faucet).
func (c *Chain) Fund(addr sdk.Address, amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[addr] += amount
}

func (c *Chain) BalanceOf(addr sdk.Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[addr]
}

// ContractBalance returns the native value currently held in custody.
func (c *Chain) ContractBalance() uint64 { return c.BalanceOf(ContractAddress) }

// RegisterToken makes a token contract visible to TokenDraw/TokenTransfer
// and includes its state in call snapshots.
func (c *Chain) RegisterToken(t *token.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[t.Address()] = t
}

func (c *Chain) Token(addr sdk.Address) *token.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[addr]
}

// SetRejectNative marks addr as refusing incoming native transfers, to
// exercise payout failure paths.
func (c *Chain) SetRejectNative(addr sdk.Address, reject bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reject {
		c.rejecting[addr] = true
		return
	}
	delete(c.rejecting, addr)
}

// SetNow moves the chain clock to ts. The clock never goes backwards.
func (c *Chain) SetNow(ts uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts < c.now {
		return ErrClockRewind
	}
	c.now = ts
	return nil
}

// Advance moves the chain clock forward by d seconds.
func (c *Chain) Advance(d uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}

func (c *Chain) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Logs returns everything the contract has logged, in emission order.
func (c *Chain) Logs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.logs))
	copy(out, c.logs)
	return out
}
