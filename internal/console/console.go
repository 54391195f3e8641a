package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/usecase"
)

const (
	menuGames   = "Games"
	menuNewGame = "New game"
	menuPending = "Check queued transactions"
	menuNetwork = "Switch network"
	menuQuit    = "Quit"

	optionReject   = "Reject"
	optionRefresh  = "Refresh"
	optionNext     = "Next game"
	optionSpectate = "View as spectator"
	optionRejoin   = "View as player"
	optionBack     = "Back"

	playPrefix = "Play "
)

type lobbyUseCase interface {
	ListGames(ctx context.Context, query entity.Query) ([]usecase.GameRow, error)
	Invite(ctx context.Context, request usecase.InviteRequest) (*entity.TxInfo, error)
	RecheckPending(ctx context.Context) ([]entity.PendingTx, error)
}

type networkUseCase interface {
	Networks() []entity.Network
	Switch(ctx context.Context, name string) error
}

// Session is one open game screen.
type Session interface {
	Mount(ctx context.Context) error
	Unmount()
	Play(ctx context.Context, coord entity.Coord) error
	Reject(ctx context.Context) error
	SetGame(ctx context.Context, key entity.GameKey) error
	SetViewer(ctx context.Context, viewer string) error
	View() *tictactoe.View
}

// SessionFactory opens a session for key drawing on presenter.
type SessionFactory func(key entity.GameKey, presenter usecase.Presenter) Session

// Console is the interactive terminal client.
type Console struct {
	logger     *slog.Logger
	out        io.Writer
	prompter   Prompter
	notifier   usecase.Notifier
	lobby      lobbyUseCase
	networks   networkUseCase
	newSession SessionFactory
}

// New builds the console; notifier is the one the use cases report through.
func New(
	logger *slog.Logger,
	out io.Writer,
	prompter Prompter,
	notifier usecase.Notifier,
	lobby lobbyUseCase,
	networks networkUseCase,
	newSession SessionFactory,
) *Console {
	return &Console{
		logger:     logger.With("component", "console"),
		out:        out,
		prompter:   prompter,
		notifier:   notifier,
		lobby:      lobby,
		networks:   networks,
		newSession: newSession,
	}
}

// Run shows the main menu until the user quits or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		choice, err := that.prompter.Select("What next?", []string{menuGames, menuNewGame, menuPending, menuNetwork, menuQuit})
		if err != nil {
			return fmt.Errorf("failed to read menu choice: %w", err)
		}

		switch choice {
		case menuGames:
			err = that.games(ctx)
		case menuNewGame:
			err = that.newGame(ctx)
		case menuPending:
			err = that.pending(ctx)
		case menuNetwork:
			err = that.switchNetwork(ctx)
		case menuQuit:
			return nil
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (that *Console) games(ctx context.Context) error {
	rows, err := that.lobby.ListGames(ctx, entity.AllGames())
	if err != nil {
		that.notifier.Notify(usecase.Notification{Level: usecase.LevelError, Message: err.Error()})
		return nil
	}

	if len(rows) == 0 {
		that.notifier.Notify(usecase.Notification{Level: usecase.LevelInfo, Message: "No games on this network yet"})
		return nil
	}

	table, err := renderGames(rows)
	if err != nil {
		return fmt.Errorf("failed to render games: %w", err)
	}
	fmt.Fprintln(that.out, table)

	options := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		options = append(options, fmt.Sprintf("%d %s", i+1, row.Label))
	}
	options = append(options, optionBack)

	choice, err := that.prompter.Select("Open a game", options)
	if err != nil {
		return fmt.Errorf("failed to read game choice: %w", err)
	}

	for i, option := range options[:len(rows)] {
		if option == choice {
			return that.game(ctx, rows, i)
		}
	}

	return nil
}

// game opens rows[index]; "Next game" walks on through rows on the same screen.
func (that *Console) game(ctx context.Context, rows []usecase.GameRow, index int) error {
	key := rows[index].Key
	presenter := NewPresenter(that.out)
	session := that.newSession(key, presenter)

	if err := session.Mount(ctx); err != nil {
		that.logger.Debug("game not shown", "game", key.String(), "error", err)
		return nil
	}
	defer session.Unmount()

	// the account the wallet plays as, kept while the screen spectates
	var account string
	if view := session.View(); view != nil {
		account = view.Viewer
	}

	for ctx.Err() == nil && !presenter.Navigated() {
		view := session.View()
		if view == nil {
			return nil
		}

		choice, err := that.prompter.Select(view.TurnLabel, gameOptions(view, account, index+1 < len(rows)))
		if err != nil {
			return fmt.Errorf("failed to read move: %w", err)
		}

		switch {
		case choice == optionBack:
			return nil
		case choice == optionRefresh:
			err = session.Mount(ctx)
		case choice == optionReject:
			err = session.Reject(ctx)
		case choice == optionNext:
			index++
			key = rows[index].Key
			err = session.SetGame(ctx, key)
		case choice == optionSpectate:
			err = session.SetViewer(ctx, "")
		case choice == optionRejoin:
			err = session.SetViewer(ctx, account)
		case strings.HasPrefix(choice, playPrefix):
			var coord entity.Coord
			if coord, err = parseCoord(strings.TrimPrefix(choice, playPrefix)); err == nil {
				err = session.Play(ctx, coord)
			}
		}

		// the session already told the user
		if err != nil {
			that.logger.Debug("action failed", "game", key.String(), "choice", choice, "error", err)
		}
	}

	return nil
}

// gameOptions lists the moves for view; account is the wallet's address, empty without one.
func gameOptions(view *tictactoe.View, account string, hasNext bool) []string {
	var options []string

	if view.Actionable() {
		for x := range entity.BoardSize {
			for y := range entity.BoardSize {
				coord := entity.Coord{X: uint8(x), Y: uint8(y)}
				if view.Game.Board.At(coord) == entity.EmptyCell {
					options = append(options, playPrefix+coord.String())
				}
			}
		}
	}

	if view.CanDecline() {
		options = append(options, optionReject)
	}

	options = append(options, optionRefresh)

	if hasNext {
		options = append(options, optionNext)
	}

	switch {
	case account == "":
	case view.Viewer == account:
		options = append(options, optionSpectate)
	default:
		options = append(options, optionRejoin)
	}

	return append(options, optionBack)
}

func (that *Console) newGame(ctx context.Context) error {
	opponent, err := that.prompter.Input("Opponent address")
	if err != nil {
		return fmt.Errorf("failed to read opponent: %w", err)
	}

	symbol, err := that.prompter.Select("Play as", []string{string(entity.PlayerX), string(entity.PlayerO)})
	if err != nil {
		return fmt.Errorf("failed to read symbol: %w", err)
	}

	cell, err := that.prompter.Input("First move (x,y)")
	if err != nil {
		return fmt.Errorf("failed to read first move: %w", err)
	}

	coord, err := parseCoord(cell)
	if err != nil {
		that.notifier.Notify(usecase.Notification{Level: usecase.LevelError, Message: err.Error()})
		return nil
	}

	amount, err := that.prompter.Input("Bet amount")
	if err != nil {
		return fmt.Errorf("failed to read amount: %w", err)
	}

	info, err := that.lobby.Invite(ctx, usecase.InviteRequest{
		Opponent:   opponent,
		Coord:      coord,
		HostSymbol: entity.Symbol(symbol),
		Amount:     amount,
	})
	if err != nil {
		that.logger.Debug("invite failed", "error", err)
		return nil
	}

	that.logger.Info("game created", "hash", info.Hash)

	return nil
}

func (that *Console) pending(ctx context.Context) error {
	still, err := that.lobby.RecheckPending(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}

		that.notifier.Notify(usecase.Notification{Level: usecase.LevelError, Message: err.Error()})
		return nil
	}

	that.notifier.Notify(usecase.Notification{
		Level:   usecase.LevelInfo,
		Message: fmt.Sprintf("%d transaction(s) still queued", len(still)),
	})

	return nil
}

func (that *Console) switchNetwork(ctx context.Context) error {
	networks := that.networks.Networks()

	options := make([]string, 0, len(networks)+1)
	for _, network := range networks {
		options = append(options, network.Name)
	}
	options = append(options, optionBack)

	choice, err := that.prompter.Select("Network", options)
	if err != nil {
		return fmt.Errorf("failed to read network choice: %w", err)
	}

	if choice == optionBack {
		return nil
	}

	// the switcher already told the user
	if err = that.networks.Switch(ctx, choice); err != nil {
		that.logger.Debug("network not switched", "network", choice, "error", err)
	}

	return nil
}
