package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

// GameRow is one line of the games list.
type GameRow struct {
	Key    entity.GameKey `json:"key"`
	Label  string         `json:"label"`
	Status entity.Status  `json:"status"`
	Pool   string         `json:"pool"`
	Board  entity.Board   `json:"board"`
}

// InviteRequest is the new game form. Amount is in display units, e.g. "2.5".
type InviteRequest struct {
	Opponent   string
	Coord      entity.Coord
	HostSymbol entity.Symbol
	Amount     string
}

// Lobby drives the games list and the new game form.
type Lobby struct {
	logger   *slog.Logger
	gateway  gatewayDep
	pending  pendingRepoDep
	locker   Locker
	notifier Notifier
}

func NewLobby(logger *slog.Logger, gateway gatewayDep, pending pendingRepoDep, locker Locker, notifier Notifier) *Lobby {
	return &Lobby{
		logger:   logger.With("component", "lobby"),
		gateway:  gateway,
		pending:  pending,
		locker:   locker,
		notifier: notifier,
	}
}

func (that *Lobby) ListGames(ctx context.Context, query entity.Query) ([]GameRow, error) {
	network := that.gateway.Network()

	matches, err := that.gateway.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	rows := make([]GameRow, 0, len(matches))
	for _, match := range matches {
		pool := match.Game.Prize.AmountOf(network.Network.BaseDenom)

		rows = append(rows, GameRow{
			Key:    match.Key(),
			Label:  address.GameLabel(match.Host, match.Opponent),
			Status: match.Game.Status,
			Pool:   strings.TrimSpace(pool.Display() + " " + network.Network.CurrencyName),
			Board:  match.Game.Board,
		})
	}

	return rows, nil
}

// Invite opens a game against request.Opponent with the host's first move and stake.
func (that *Lobby) Invite(ctx context.Context, request InviteRequest) (*entity.TxInfo, error) {
	info, err := that.invite(ctx, request)
	if err != nil {
		var queued *apperror.QueuedError
		if errors.As(err, &queued) {
			that.notifier.Notify(Notification{Level: LevelInfo, Message: queued.Error()})
		} else {
			that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
		}

		return info, err
	}

	that.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Game against '%s' created", address.Short(request.Opponent)),
	})

	return info, nil
}

func (that *Lobby) invite(ctx context.Context, request InviteRequest) (*entity.TxInfo, error) {
	logger := that.logger.With("method", "Invite", "opponent", request.Opponent)

	network := that.gateway.Network()
	if !network.IsConnected() {
		return nil, apperror.ErrNotConnected
	}

	host := network.Wallet.Address()
	opponent := strings.TrimSpace(request.Opponent)

	if err := address.Validate(opponent, network.Network.AddressPrefix); err != nil {
		return nil, err
	}

	if opponent == host {
		return nil, fmt.Errorf("%w: cannot invite yourself", apperror.ErrInvalidAddress)
	}

	if !request.Coord.IsValid() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, request.Coord)
	}

	if !request.HostSymbol.IsValid() {
		return nil, apperror.ErrInvalidSymbol
	}

	stake, err := entity.ParseAmount(request.Amount)
	if err != nil {
		return nil, err
	}

	key := entity.GameKey{Host: host, Opponent: opponent}

	unlock, err := that.locker.TryLock(ctx, submissionKey(key.String(), host))
	if err != nil {
		return nil, err
	}
	defer unlock()

	info, err := that.gateway.Execute(context.WithoutCancel(ctx), entity.NewInvite(request.Coord, request.HostSymbol, opponent), stake)

	var queued *apperror.QueuedError
	if errors.As(err, &queued) {
		recordQueued(ctx, logger, that.pending, queued, entity.KindInvite, key)
	}

	if err != nil {
		return info, err
	}

	logger.Info("game created", "hash", info.Hash, "stake", stake)

	return info, nil
}

// RecheckPending looks up every queued transaction once. Settled and failed ones are
// reported and forgotten; the rest stay queued and are returned.
func (that *Lobby) RecheckPending(ctx context.Context) ([]entity.PendingTx, error) {
	logger := that.logger.With("method", "RecheckPending")

	txs, err := that.pending.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued transactions: %w", err)
	}

	stillPending := make([]entity.PendingTx, 0, len(txs))

	for _, tx := range txs {
		info, err := that.gateway.Lookup(ctx, tx.Hash)

		switch {
		case err == nil:
			that.notifier.Notify(Notification{
				Level:   LevelSuccess,
				Message: fmt.Sprintf("Transaction %s settled at height %d", tx.Hash, info.Height),
			})
		case errors.Is(err, apperror.ErrBroadcastFailed) && info != nil:
			that.notifier.Notify(Notification{
				Level:   LevelError,
				Message: fmt.Sprintf("Transaction %s failed: %s", tx.Hash, info.RawLog),
			})
		default:
			if !errors.Is(err, apperror.ErrTxNotFound) {
				logger.Warn("failed to look up queued transaction", "hash", tx.Hash, "error", err)
			}

			stillPending = append(stillPending, tx)

			continue
		}

		if err = that.pending.Remove(ctx, tx.Hash); err != nil {
			logger.Error("failed to forget queued transaction", "hash", tx.Hash, "error", err)
		}
	}

	return stillPending, nil
}
