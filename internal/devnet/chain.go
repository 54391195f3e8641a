package devnet

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/decred/dcrd/crypto/blake256"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/wallet"
)

// CodeContractError is the result code of a transaction the contract refused.
const CodeContractError uint32 = 5

type Config struct {
	ChainID       string
	Contract      string
	AddressPrefix string
	BaseDenom     string
	// IndexDelay is how long a settled transaction stays invisible to lookups.
	IndexDelay time.Duration
	// Faucet is credited to an account the first time it sends a transaction.
	Faucet entity.Amount
}

type indexedTx struct {
	info      entity.TxInfo
	visibleAt time.Time
}

// Chain is an in-process ledger running the tic-tac-toe contract. Transactions settle when
// broadcast and become visible to lookups after IndexDelay.
type Chain struct {
	logger *slog.Logger
	clock  clock.Clock
	config Config

	mu       sync.RWMutex
	height   int64
	games    map[entity.GameKey]*entity.Game
	balances map[string]entity.Amount
	txs      map[string]indexedTx
}

func New(logger *slog.Logger, clk clock.Clock, config Config) *Chain {
	return &Chain{
		logger: logger.With("component", "devnet", "chain_id", config.ChainID),
		clock:  clk,
		config: config,

		games:    make(map[entity.GameKey]*entity.Game),
		balances: make(map[string]entity.Amount),
		txs:      make(map[string]indexedTx),
	}
}

// Fund mints amount of the base denom to addr.
func (that *Chain) Fund(addr string, amount entity.Amount) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.balances[addr] += amount
}

func (that *Chain) Balance(addr string) entity.Amount {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.balances[addr]
}

func (that *Chain) Height() int64 {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.height
}

// QueryGames answers the contract's games query, ordered by (host, opponent).
func (that *Chain) QueryGames(_ context.Context, contract string, query entity.Query) ([]entity.Match, error) {
	if contract != that.config.Contract {
		return nil, fmt.Errorf("contract %s not found", contract)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	matches := make([]entity.Match, 0, len(that.games))
	for key, game := range that.games {
		match := entity.Match{Game: *game.Clone(), Host: key.Host, Opponent: key.Opponent}
		if query.Matches(match) {
			matches = append(matches, match)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Host != matches[j].Host {
			return matches[i].Host < matches[j].Host
		}
		return matches[i].Opponent < matches[j].Opponent
	})

	return matches, nil
}

func (that *Chain) TxInfo(_ context.Context, hash string) (*entity.TxInfo, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	tx, ok := that.txs[strings.ToUpper(hash)]
	if !ok || that.clock.Now().Before(tx.visibleAt) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTxNotFound, hash)
	}

	info := tx.info
	return &info, nil
}

// Broadcast checks the transaction, settles it in a new block and returns its hash.
// Transactions refused by the contract are still included, with CodeContractError.
func (that *Chain) Broadcast(_ context.Context, signed entity.SignedTx) (string, error) {
	logger := that.logger.With("method", "Broadcast", "sender", signed.Tx.Sender, "command", signed.Tx.Msg.Kind)

	if err := that.checkTx(signed); err != nil {
		logger.Warn("transaction refused", "error", err)
		return "", fmt.Errorf("%w: %w", apperror.ErrBroadcastFailed, err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, seen := that.balances[signed.Tx.Sender]; !seen {
		that.balances[signed.Tx.Sender] = that.config.Faucet
	}

	stake := signed.Tx.Funds.AmountOf(that.config.BaseDenom)
	if that.balances[signed.Tx.Sender] < stake {
		return "", fmt.Errorf("%w: %w: %s has %s", apperror.ErrBroadcastFailed, apperror.ErrInsufficientFunds,
			signed.Tx.Sender, that.balances[signed.Tx.Sender].Display())
	}

	that.height++
	now := that.clock.Now()

	info := entity.TxInfo{
		Hash:      that.hashOf(signed),
		Height:    that.height,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	if err := that.execute(signed.Tx, stake); err != nil {
		info.Code = CodeContractError
		info.RawLog = err.Error()
		logger.Info("contract refused the command", "hash", info.Hash, "error", err)
	} else {
		info.RawLog = "[]"
		logger.Info("transaction settled", "hash", info.Hash, "height", info.Height)
	}

	that.txs[info.Hash] = indexedTx{info: info, visibleAt: now.Add(that.config.IndexDelay)}

	return info.Hash, nil
}

func (that *Chain) checkTx(signed entity.SignedTx) error {
	if signed.Tx.ChainID != that.config.ChainID {
		return fmt.Errorf("wrong chain id %q", signed.Tx.ChainID)
	}

	if signed.Tx.Contract != that.config.Contract {
		return fmt.Errorf("contract %s not found", signed.Tx.Contract)
	}

	for _, coin := range signed.Tx.Funds {
		if coin.Denom != that.config.BaseDenom {
			return fmt.Errorf("%w: unsupported denom %s", apperror.ErrInvalidAmount, coin.Denom)
		}
	}

	return wallet.Verify(signed, that.config.AddressPrefix)
}

// hashOf commits to the signed tx and the block it lands in, so a resubmitted move gets a new hash.
func (that *Chain) hashOf(signed entity.SignedTx) string {
	payload, _ := json.Marshal(signed)

	var height [8]byte
	binary.BigEndian.PutUint64(height[:], uint64(that.height))

	sum := blake256.Sum256(append(payload, height[:]...))

	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
