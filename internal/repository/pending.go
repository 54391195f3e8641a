package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

// PendingRepository keeps the queued transactions of the active chain.
type PendingRepository interface {
	Add(ctx context.Context, tx entity.PendingTx) error
	List(ctx context.Context) ([]entity.PendingTx, error)
	Remove(ctx context.Context, hash string) error
}

type dbPending struct {
	client  *redis.Client
	chainID func() string
}

// NewPendingRepository keys every call by chainID(), so a network switch moves to that chain's queue.
func NewPendingRepository(client *redis.Client, chainID func() string) PendingRepository {
	return &dbPending{
		client:  client,
		chainID: chainID,
	}
}

func (that *dbPending) key() string {
	return "pending:" + that.chainID()
}

func (that *dbPending) Add(ctx context.Context, tx entity.PendingTx) error {
	txJSON, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal pending tx: %w", err)
	}

	if err = that.client.HSet(ctx, that.key(), tx.Hash, txJSON).Err(); err != nil {
		return fmt.Errorf("failed to add pending tx: %w", err)
	}

	return nil
}

// List returns the queued transactions, oldest first.
func (that *dbPending) List(ctx context.Context) ([]entity.PendingTx, error) {
	response, err := that.client.HGetAll(ctx, that.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending txs: %w", err)
	}

	txs := make([]entity.PendingTx, 0, len(response))
	for hash, raw := range response {
		var tx entity.PendingTx
		if err = json.Unmarshal([]byte(raw), &tx); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pending tx %s: %w", hash, err)
		}

		txs = append(txs, tx)
	}

	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].QueuedAt.Equal(txs[j].QueuedAt) {
			return txs[i].QueuedAt.Before(txs[j].QueuedAt)
		}
		return txs[i].Hash < txs[j].Hash
	})

	return txs, nil
}

func (that *dbPending) Remove(ctx context.Context, hash string) error {
	if err := that.client.HDel(ctx, that.key(), hash).Err(); err != nil {
		return fmt.Errorf("failed to remove pending tx: %w", err)
	}

	return nil
}
