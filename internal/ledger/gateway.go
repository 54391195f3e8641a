package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

// Node is the read path of a ledger: contract queries and finalized transaction lookups.
// TxInfo returns apperror.ErrTxNotFound while a transaction is not indexed yet.
type Node interface {
	QueryGames(ctx context.Context, contract string, query entity.Query) ([]entity.Match, error)
	TxInfo(ctx context.Context, hash string) (*entity.TxInfo, error)
}

// Wallet signs and broadcasts a transaction on behalf of the connected account.
// A declined signature is reported as apperror.ErrUserRejectedSigning.
type Wallet interface {
	Address() string
	SignAndBroadcast(ctx context.Context, tx entity.Tx) (string, error)
}

// Clock is the part of clock.Clock the poll loop needs.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// NetworkContext is the active network and signing session. It is replaced wholesale on a
// network switch and never mutated by the gateway.
type NetworkContext struct {
	Network entity.Network
	Wallet  Wallet
}

func (that *NetworkContext) IsConnected() bool {
	return that != nil && that.Wallet != nil
}

type Option func(*Gateway)

func WithClock(c Clock) Option {
	return func(gateway *Gateway) {
		gateway.clock = c
	}
}

func WithPollPolicy(policy PollPolicy) Option {
	return func(gateway *Gateway) {
		gateway.policy = policy.withDefaults()
	}
}

type Gateway struct {
	logger *slog.Logger
	clock  Clock
	policy PollPolicy

	mu      sync.RWMutex
	network *NetworkContext
	node    Node
}

func NewGateway(logger *slog.Logger, network *NetworkContext, node Node, opts ...Option) *Gateway {
	gateway := &Gateway{
		logger: logger.With("component", "ledger_gateway"),
		clock:  clock.New(),
		policy: DefaultPollPolicy(),

		network: network,
		node:    node,
	}

	for _, opt := range opts {
		opt(gateway)
	}

	return gateway
}

// SwitchNetwork replaces the network context and the node serving it.
func (that *Gateway) SwitchNetwork(network *NetworkContext, node Node) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.network = network
	that.node = node

	that.logger.Info("network switched", "network", network.Network.Name, "connected", network.IsConnected())
}

// Network returns the active network context.
func (that *Gateway) Network() *NetworkContext {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.network
}

func (that *Gateway) snapshot() (*NetworkContext, Node) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.network, that.node
}

// Query lists the games matching query. It never mutates the ledger and may be called concurrently.
func (that *Gateway) Query(ctx context.Context, query entity.Query) ([]entity.Match, error) {
	network, node := that.snapshot()

	matches, err := node.QueryGames(ctx, network.Network.Contract, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}

	if matches == nil {
		matches = []entity.Match{}
	}

	return matches, nil
}

// Lookup checks once whether the transaction with hash has settled.
func (that *Gateway) Lookup(ctx context.Context, hash string) (*entity.TxInfo, error) {
	_, node := that.snapshot()

	info, err := node.TxInfo(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tx %s: %w", hash, err)
	}

	if !info.Succeeded() {
		return info, fmt.Errorf("%w: %s", apperror.ErrBroadcastFailed, info.RawLog)
	}

	return info, nil
}

// Execute submits cmd in a single transaction, escrowing stake when it is non-zero, and waits
// for settlement. Execute is not idempotent: every call broadcasts a new transaction.
func (that *Gateway) Execute(ctx context.Context, cmd entity.Command, stake entity.Amount) (*entity.TxInfo, error) {
	network, node := that.snapshot()
	if !network.IsConnected() {
		return nil, apperror.ErrNotConnected
	}

	logger := that.logger.With("method", "Execute", "submission_id", uuid.NewString(), "command", cmd.Kind)

	tx := entity.Tx{
		ChainID:  network.Network.ChainID,
		Sender:   network.Wallet.Address(),
		Contract: network.Network.Contract,
		Msg:      cmd,
	}

	if !stake.IsZero() {
		tx.Funds = entity.Coins{{Denom: network.Network.BaseDenom, Amount: stake}}
	}

	hash, err := network.Wallet.SignAndBroadcast(ctx, tx)
	if err != nil {
		logger.Error("failed to broadcast", "error", err)

		if errors.Is(err, apperror.ErrUserRejectedSigning) || errors.Is(err, apperror.ErrBroadcastFailed) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", apperror.ErrBroadcastFailed, err)
	}

	submitted := that.clock.Now()
	logger = logger.With("hash", hash)
	logger.Info("transaction broadcast", "stake", stake)

	info, err := that.awaitSettlement(ctx, logger, node, hash, submitted)
	if err != nil {
		logger.Warn("transaction not settled", "error", err)
		return info, err
	}

	logger.Info("transaction settled", "height", info.Height)

	return info, nil
}

// awaitSettlement polls for the finalized transaction following the poll policy.
// Lookup failures are retried; running out of time yields a QueuedError.
func (that *Gateway) awaitSettlement(
	ctx context.Context,
	logger *slog.Logger,
	node Node,
	hash string,
	submitted time.Time,
) (*entity.TxInfo, error) {
	lookup := func() (*entity.TxInfo, error) {
		info, err := node.TxInfo(ctx, hash)
		if err != nil {
			return nil, err
		}

		if !info.Succeeded() {
			return info, backoff.Permanent(fmt.Errorf("%w: %s", apperror.ErrBroadcastFailed, info.RawLog))
		}

		return info, nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Debug("transaction not found yet", "elapsed", that.clock.Now().Sub(submitted), "retry_in", wait, "error", err)
	}

	schedule := backoff.WithContext(&pollBackOff{policy: that.policy, clock: that.clock, submitted: submitted}, ctx)

	info, err := backoff.RetryNotifyWithTimerAndData(lookup, schedule, notify, &clockTimer{clock: that.clock})
	if err != nil {
		if errors.Is(err, apperror.ErrBroadcastFailed) {
			return info, err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &apperror.QueuedError{Hash: hash, Cause: ctxErr}
		}

		return nil, &apperror.QueuedError{Hash: hash}
	}

	return info, nil
}
