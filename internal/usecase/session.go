package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

const (
	MessageAccepted = "Game accepted! Waiting for the opponent"
	MessagePlayed   = "Position played. Waiting for the opponent"
	MessageRejected = "Game rejected"
	// MessageWithdrawn is what the host sees after declining their own invitation.
	MessageWithdrawn = "Invitation withdrawn, stake returned"
)

// GameSession drives one game screen: it fetches and resolves the game, submits the viewer's
// moves and keeps the screen in step with the ledger.
type GameSession struct {
	logger    *slog.Logger
	gateway   gatewayDep
	pending   pendingRepoDep
	locker    Locker
	notifier  Notifier
	presenter Presenter

	mu      sync.Mutex
	key     entity.GameKey
	viewer  string
	view    *tictactoe.View
	mounted bool
	// epoch changes whenever the screen stops showing what a submission was made for.
	epoch uint64
}

func NewGameSession(
	logger *slog.Logger,
	gateway gatewayDep,
	pending pendingRepoDep,
	locker Locker,
	notifier Notifier,
	presenter Presenter,
	key entity.GameKey,
) *GameSession {
	return &GameSession{
		logger:    logger.With("component", "game_session"),
		gateway:   gateway,
		pending:   pending,
		locker:    locker,
		notifier:  notifier,
		presenter: presenter,

		key: key,
	}
}

// Mount shows the game to the connected account, or to a spectator when no wallet is connected.
func (that *GameSession) Mount(ctx context.Context) error {
	that.mu.Lock()
	that.mounted = true
	that.viewer = viewerOf(that.gateway.Network())
	that.mu.Unlock()

	return that.refresh(ctx)
}

func (that *GameSession) Unmount() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.mounted = false
	that.view = nil
	that.epoch++
}

// SetViewer re-resolves the game for another account, e.g. after a wallet switch.
func (that *GameSession) SetViewer(ctx context.Context, viewer string) error {
	that.mu.Lock()
	that.viewer = viewer
	that.epoch++
	mounted := that.mounted
	that.mu.Unlock()

	if !mounted {
		return nil
	}

	return that.refresh(ctx)
}

// SetGame points the session at another game.
func (that *GameSession) SetGame(ctx context.Context, key entity.GameKey) error {
	that.mu.Lock()
	that.key = key
	that.view = nil
	that.epoch++
	mounted := that.mounted
	that.mu.Unlock()

	if !mounted {
		return nil
	}

	return that.refresh(ctx)
}

// View returns the last resolved view, nil before the first fetch.
func (that *GameSession) View() *tictactoe.View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view
}

// Play submits the viewer's move at coord: accept while invited, play afterwards.
func (that *GameSession) Play(ctx context.Context, coord entity.Coord) error {
	view, epoch, err := that.current()
	if err != nil {
		return err
	}

	action, err := tictactoe.Move(view, coord)
	if err != nil {
		that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
		return err
	}

	message := MessagePlayed
	if view.Game.IsInvited() {
		message = MessageAccepted
	}

	provisional := *view
	provisional.Game = tictactoe.Provisional(view.Game, coord, view.ViewerSymbol)
	provisional.ReadOnly = true

	return that.submit(ctx, view, epoch, action, &provisional, message)
}

// Reject declines an invitation, or withdraws it when the viewer is the host.
func (that *GameSession) Reject(ctx context.Context) error {
	view, epoch, err := that.current()
	if err != nil {
		return err
	}

	action, err := tictactoe.Decline(view)
	if err != nil {
		that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
		return err
	}

	message := MessageRejected
	if view.Role == tictactoe.RoleHost {
		message = MessageWithdrawn
	}

	return that.submit(ctx, view, epoch, action, nil, message)
}

func (that *GameSession) current() (*tictactoe.View, uint64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.view == nil {
		return nil, 0, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, that.key)
	}

	return that.view, that.epoch, nil
}

func (that *GameSession) isMounted() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.mounted
}

func (that *GameSession) isCurrent(epoch uint64) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.mounted && that.epoch == epoch
}

// submit runs action to settlement. The transaction outlives ctx and the screen; once the
// screen moved on, its outcome is only logged. A still mounted screen always gets its input back.
func (that *GameSession) submit(
	ctx context.Context,
	view *tictactoe.View,
	epoch uint64,
	action tictactoe.Action,
	provisional *tictactoe.View,
	successMessage string,
) error {
	logger := that.logger.With("method", "submit", "game", view.Key.String(), "command", action.Command.Kind)

	unlock, err := that.locker.TryLock(ctx, submissionKey(view.Key.String(), view.Viewer))
	if err != nil {
		logger.Info("submission refused", "error", err)
		that.notifier.Notify(Notification{Level: LevelInfo, Message: err.Error()})
		return err
	}
	defer unlock()

	ctx = context.WithoutCancel(ctx)

	that.presenter.SetInputEnabled(false)
	if provisional != nil {
		that.presenter.Render(provisional)
	}

	defer func() {
		if !that.isMounted() {
			return
		}

		if that.isCurrent(epoch) {
			if refreshErr := that.refresh(ctx); refreshErr != nil {
				logger.Error("failed to refresh game", "error", refreshErr)
			}
		}

		that.presenter.SetInputEnabled(true)
	}()

	_, err = that.gateway.Execute(ctx, action.Command, action.Stake)

	var queued *apperror.QueuedError
	if errors.As(err, &queued) {
		recordQueued(ctx, logger, that.pending, queued, action.Command.Kind, view.Key)
	}

	if !that.isCurrent(epoch) {
		logger.Info("screen left before settlement, dropping outcome", "error", err)
		return err
	}

	switch {
	case err == nil:
		that.notifier.Notify(Notification{Level: LevelSuccess, Message: successMessage})
	case queued != nil:
		that.notifier.Notify(Notification{Level: LevelInfo, Message: queued.Error()})
	default:
		that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
	}

	return err
}

// refresh fetches the game, resolves it for the viewer and renders it.
func (that *GameSession) refresh(ctx context.Context) error {
	that.mu.Lock()
	key, viewer, epoch := that.key, that.viewer, that.epoch
	that.mu.Unlock()

	network := that.gateway.Network()

	matches, err := that.gateway.Query(ctx, entity.GameByKey(key.Host, key.Opponent))
	if err != nil {
		that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
		return err
	}

	if !that.isCurrent(epoch) {
		return nil
	}

	if len(matches) == 0 {
		that.notifier.Notify(Notification{
			Level:   LevelError,
			Message: fmt.Sprintf("Cannot find game '%s' on current network", key),
		})
		that.presenter.NavigateAway()

		return fmt.Errorf("%w: %s on %s", apperror.ErrGameNotFound, key, network.Network.Name)
	}

	view := tictactoe.Resolve(matches[0], viewer, currencyOf(network))

	that.mu.Lock()
	that.view = view
	that.mu.Unlock()

	that.presenter.Render(view)

	return nil
}

func recordQueued(
	ctx context.Context,
	logger *slog.Logger,
	pending pendingRepoDep,
	queued *apperror.QueuedError,
	kind entity.CommandKind,
	key entity.GameKey,
) {
	tx := entity.PendingTx{Hash: queued.Hash, Command: kind, Game: key, QueuedAt: time.Now().UTC()}

	if err := pending.Add(ctx, tx); err != nil {
		logger.Error("failed to record queued transaction", "hash", queued.Hash, "error", err)
	}
}
