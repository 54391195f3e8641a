package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

type Role string

const (
	RoleHost      Role = "host"
	RoleOpponent  Role = "opponent"
	RoleSpectator Role = "spectator"
)

const (
	LabelYourTurn = "Your turn"
	LabelWaiting  = "Waiting for opponent"

	HeaderInvited       = "You have been invited to play"
	HeaderYourTurn      = "Your turn to play"
	HeaderCurrentPlayer = "Current player"
)

// Currency names the base denom escrowed by the contract and its display name.
type Currency struct {
	BaseDenom string `json:"base_denom"`
	Name      string `json:"name"`
}

// View is what a viewer sees of a game: who may act, what to show, and what an accept costs.
type View struct {
	Key          entity.GameKey `json:"key"`
	Game         *entity.Game   `json:"game"`
	Viewer       string         `json:"viewer,omitempty"`
	Role         Role           `json:"role"`
	ViewerSymbol entity.Symbol  `json:"viewer_symbol,omitempty"`
	ReadOnly     bool           `json:"read_only"`
	TurnLabel    string         `json:"turn_label"`
	Header       string         `json:"header"`
	Outcome      string         `json:"outcome,omitempty"`
	Pool         entity.Amount  `json:"pool"`
	AcceptStake  entity.Amount  `json:"accept_stake"`
	Currency     Currency       `json:"currency"`
}

func (that *View) Actionable() bool {
	return !that.ReadOnly
}

// CanDecline reports whether the viewer may reject the game: either party while it is still an invitation.
func (that *View) CanDecline() bool {
	return that.Game.IsInvited() && that.Role != RoleSpectator
}

// Action is a command ready for submission with the stake it must carry.
type Action struct {
	Command entity.Command
	Stake   entity.Amount
}

// Resolve derives the viewer's view of a fetched game.
func Resolve(match entity.Match, viewer string, currency Currency) *View {
	game := match.Game.Clone()

	view := &View{
		Key:      match.Key(),
		Game:     game,
		Viewer:   viewer,
		Role:     roleOf(match, viewer),
		Pool:     game.Prize.AmountOf(currency.BaseDenom),
		Currency: currency,
	}

	switch view.Role {
	case RoleHost:
		view.ViewerSymbol = game.HostSymbol
	case RoleOpponent:
		view.ViewerSymbol = game.OpponentSymbol()
	case RoleSpectator:
	}

	view.ReadOnly = isReadOnly(game, view.Role)

	if view.Actionable() {
		view.TurnLabel = LabelYourTurn
	} else {
		view.TurnLabel = LabelWaiting
	}

	switch {
	case game.IsFinished():
		view.Outcome = outcome(game, view.Pool, currency)
		view.Header = view.Outcome
	case view.ReadOnly:
		view.Header = HeaderCurrentPlayer
	case game.IsInvited():
		view.Header = HeaderInvited
	default:
		view.Header = HeaderYourTurn
	}

	if game.IsInvited() && view.Role == RoleOpponent {
		view.AcceptStake = view.Pool
	}

	return view
}

func roleOf(match entity.Match, viewer string) Role {
	switch {
	case viewer == "":
		return RoleSpectator
	case viewer == match.Host:
		return RoleHost
	case viewer == match.Opponent:
		return RoleOpponent
	default:
		return RoleSpectator
	}
}

func isReadOnly(game *entity.Game, role Role) bool {
	if game.IsFinished() {
		return true
	}

	switch role {
	case RoleHost:
		return !game.IsHostRound()
	case RoleOpponent:
		return game.IsHostRound()
	default:
		return true
	}
}

// outcome mirrors the contract's payout for display; it never moves funds.
func outcome(game *entity.Game, pool entity.Amount, currency Currency) string {
	switch {
	case game.Winner != nil:
		message := fmt.Sprintf("%s won!", *game.Winner)
		if !pool.IsZero() {
			message += fmt.Sprintf(" %s %s sent to its wallet.", pool.Display(), currency.Name)
		}
		return message
	case game.Status == entity.StatusRejected:
		message := fmt.Sprintf("Game rejected by %s.", game.PlayerRound)
		if !pool.IsZero() {
			message += fmt.Sprintf(" %s %s returned to %s.", pool.Display(), currency.Name, game.PlayerRound.Opposite())
		}
		return message
	default:
		message := "Tied game!"
		if !pool.IsZero() {
			message += fmt.Sprintf(" %s %s sent to each player.", pool.Half().Display(), currency.Name)
		}
		return message
	}
}

// Move builds the command for the current phase: accept while invited, play afterwards.
func Move(view *View, coord entity.Coord) (Action, error) {
	if view.Game.IsFinished() {
		return Action{}, apperror.ErrGameFinished
	}

	if view.ReadOnly {
		return Action{}, apperror.ErrNotYourTurn
	}

	if !coord.IsValid() {
		return Action{}, fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, coord)
	}

	if view.Game.Board.At(coord) != entity.EmptyCell {
		return Action{}, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, coord)
	}

	if view.Game.IsInvited() {
		return Action{
			Command: entity.NewAccept(coord, view.Key.Host),
			Stake:   view.AcceptStake,
		}, nil
	}

	return Action{
		Command: entity.NewPlay(view.Role == RoleHost, coord, view.Key.Other(view.Viewer)),
	}, nil
}

// Decline builds the reject command. The invitee rejects, the host withdraws.
func Decline(view *View) (Action, error) {
	if view.Game.IsFinished() {
		return Action{}, apperror.ErrGameFinished
	}

	if view.Role == RoleSpectator {
		return Action{}, apperror.ErrNotParticipant
	}

	if !view.Game.IsInvited() {
		return Action{}, fmt.Errorf("%w: only an invitation can be rejected", apperror.ErrGameInProgress)
	}

	return Action{
		Command: entity.NewReject(view.Role == RoleHost, view.Key.Other(view.Viewer)),
	}, nil
}

// Provisional returns a copy of game with symbol placed at coord. It is display-only
// and is always replaced by the next fetch.
func Provisional(game *entity.Game, coord entity.Coord, symbol entity.Symbol) *entity.Game {
	provisional := game.Clone()
	if coord.IsValid() && provisional.Board.At(coord) == entity.EmptyCell {
		provisional.Board.Set(coord, symbol)
	}

	return provisional
}
