package devnet

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

var (
	ErrSelfGame = errors.New("game against yourself cannot be started")
)

type payout struct {
	to     string
	amount entity.Amount
}

// outcome is the state a command leaves behind; nothing is applied until the command succeeds.
type outcome struct {
	key     entity.GameKey
	game    *entity.Game
	payouts []payout
}

// execute runs tx against the contract. Must be called with the lock held.
func (that *Chain) execute(tx entity.Tx, stake entity.Amount) error {
	var (
		result outcome
		err    error
	)

	switch tx.Msg.Kind {
	case entity.KindInvite:
		result, err = that.invite(tx.Sender, *tx.Msg.Invite, tx.Funds)
	case entity.KindReject:
		result, err = that.reject(tx.Sender, *tx.Msg.Reject)
	case entity.KindAccept:
		result, err = that.accept(tx.Sender, *tx.Msg.Accept, tx.Funds)
	case entity.KindPlay:
		result, err = that.play(tx.Sender, *tx.Msg.Play)
	default:
		err = fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, tx.Msg.Kind)
	}

	if err != nil {
		return err
	}

	that.balances[tx.Sender] -= stake
	that.balances[that.config.Contract] += stake

	that.games[result.key] = result.game

	for _, p := range result.payouts {
		that.balances[that.config.Contract] -= p.amount
		that.balances[p.to] += p.amount
	}

	return nil
}

func (that *Chain) invite(sender string, msg entity.Invite, funds entity.Coins) (outcome, error) {
	if err := address.Validate(msg.Opponent, that.config.AddressPrefix); err != nil {
		return outcome{}, err
	}

	if !msg.Coord.IsValid() {
		return outcome{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, msg.Coord)
	}

	if !msg.HostSymbol.IsValid() {
		return outcome{}, apperror.ErrInvalidSymbol
	}

	if msg.Opponent == sender {
		return outcome{}, ErrSelfGame
	}

	if that.inProgress(entity.GameKey{Host: sender, Opponent: msg.Opponent}) ||
		that.inProgress(entity.GameKey{Host: msg.Opponent, Opponent: sender}) {
		return outcome{}, fmt.Errorf("%w: between %s and %s, complete the previous game to start a new one",
			apperror.ErrGameInProgress, sender, msg.Opponent)
	}

	game := &entity.Game{
		HostSymbol:  msg.HostSymbol,
		PlayerRound: msg.HostSymbol.Opposite(),
		Prize:       append(entity.Coins{}, funds...),
		Status:      entity.StatusInvited,
	}
	game.Board.Set(msg.Coord, msg.HostSymbol)

	return outcome{key: entity.GameKey{Host: sender, Opponent: msg.Opponent}, game: game}, nil
}

// reject ends an invitation; the host is always refunded, whoever rejects.
func (that *Chain) reject(sender string, msg entity.Reject) (outcome, error) {
	if err := address.Validate(msg.Opponent, that.config.AddressPrefix); err != nil {
		return outcome{}, err
	}

	key := keyFor(sender, msg.Opponent, msg.AsHost)

	game, err := that.gameIn(key, entity.StatusInvited)
	if err != nil {
		return outcome{}, err
	}

	game.Status = entity.StatusRejected

	return outcome{
		key:     key,
		game:    game,
		payouts: []payout{{to: key.Host, amount: that.pool(game)}},
	}, nil
}

func (that *Chain) accept(sender string, msg entity.Accept, funds entity.Coins) (outcome, error) {
	if err := address.Validate(msg.Host, that.config.AddressPrefix); err != nil {
		return outcome{}, err
	}

	if !msg.Coord.IsValid() {
		return outcome{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, msg.Coord)
	}

	key := entity.GameKey{Host: msg.Host, Opponent: sender}

	game, err := that.gameIn(key, entity.StatusInvited)
	if err != nil {
		return outcome{}, err
	}

	if game.Board.At(msg.Coord) != entity.EmptyCell {
		return outcome{}, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, msg.Coord)
	}

	if !game.Prize.Equal(funds) {
		return outcome{}, fmt.Errorf("%w: expected %s", apperror.ErrFundsMismatch, that.pool(game).Display())
	}

	for i := range game.Prize {
		game.Prize[i].Amount *= 2
	}

	if err = tictactoe.MakeTurn(game, game.PlayerRound, msg.Coord); err != nil {
		return outcome{}, err
	}

	game.Status = entity.StatusPlaying

	return outcome{key: key, game: game}, nil
}

func (that *Chain) play(sender string, msg entity.Play) (outcome, error) {
	if err := address.Validate(msg.Opponent, that.config.AddressPrefix); err != nil {
		return outcome{}, err
	}

	if !msg.Coord.IsValid() {
		return outcome{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, msg.Coord)
	}

	key := keyFor(sender, msg.Opponent, msg.AsHost)

	game, err := that.gameIn(key, entity.StatusPlaying)
	if err != nil {
		return outcome{}, err
	}

	symbol := game.HostSymbol
	if !msg.AsHost {
		symbol = game.OpponentSymbol()
	}

	if err = tictactoe.MakeTurn(game, symbol, msg.Coord); err != nil {
		return outcome{}, err
	}

	result := outcome{key: key, game: game}

	switch {
	case game.Status != entity.StatusCompleted:
	case game.Winner != nil:
		result.payouts = []payout{{to: sender, amount: that.pool(game)}}
	default:
		half := that.pool(game).Half()
		result.payouts = []payout{{to: sender, amount: half}, {to: msg.Opponent, amount: half}}
	}

	return result, nil
}

func (that *Chain) inProgress(key entity.GameKey) bool {
	game, ok := that.games[key]
	return ok && !game.IsFinished()
}

// gameIn returns a copy of the game at key if it is in status.
func (that *Chain) gameIn(key entity.GameKey, status entity.Status) (*entity.Game, error) {
	game, ok := that.games[key]
	if !ok || game.Status != status {
		return nil, fmt.Errorf("%w: between %s and %s", apperror.ErrGameNotFound, key.Host, key.Opponent)
	}

	return game.Clone(), nil
}

func (that *Chain) pool(game *entity.Game) entity.Amount {
	return game.Prize.AmountOf(that.config.BaseDenom)
}

func keyFor(sender, opponent string, asHost bool) entity.GameKey {
	if asHost {
		return entity.GameKey{Host: sender, Opponent: opponent}
	}

	return entity.GameKey{Host: opponent, Opponent: sender}
}
