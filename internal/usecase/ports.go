package usecase

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Notify(notification Notification)
}

// Presenter draws the game screen.
type Presenter interface {
	Render(view *tictactoe.View)
	// SetInputEnabled locks or unlocks the whole board while a submission is in flight.
	SetInputEnabled(enabled bool)
	NavigateAway()
}

type gatewayDep interface {
	Network() *ledger.NetworkContext
	Query(ctx context.Context, query entity.Query) ([]entity.Match, error)
	Lookup(ctx context.Context, hash string) (*entity.TxInfo, error)
	Execute(ctx context.Context, cmd entity.Command, stake entity.Amount) (*entity.TxInfo, error)
}

type pendingRepoDep interface {
	Add(ctx context.Context, tx entity.PendingTx) error
	List(ctx context.Context) ([]entity.PendingTx, error)
	Remove(ctx context.Context, hash string) error
}

// Locker grants a single holder per key. TryLock fails with apperror.ErrSubmissionInFlight
// while the key is held.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}

// submissionKey scopes a lock to one viewer's submissions on one game.
func submissionKey(game, viewer string) string {
	return "submission:" + game + ":" + viewer
}

func currencyOf(network *ledger.NetworkContext) tictactoe.Currency {
	return tictactoe.Currency{BaseDenom: network.Network.BaseDenom, Name: network.Network.CurrencyName}
}

func viewerOf(network *ledger.NetworkContext) string {
	if !network.IsConnected() {
		return ""
	}

	return network.Wallet.Address()
}
