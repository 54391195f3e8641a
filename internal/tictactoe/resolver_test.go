package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

const (
	host      = "terra1host"
	opponent  = "terra1opponent"
	spectator = "terra1spectator"
)

var luna = Currency{BaseDenom: "uluna", Name: "Luna"}

func matchOf(game entity.Game) entity.Match {
	return entity.Match{Game: game, Host: host, Opponent: opponent}
}

func prize(amount entity.Amount) entity.Coins {
	return entity.Coins{{Denom: "uluna", Amount: amount}}
}

func symbolPtr(symbol entity.Symbol) *entity.Symbol {
	return &symbol
}

func TestResolve_ReadOnly(t *testing.T) {
	t.Run("Terminal games are read-only for everyone", func(t *testing.T) {
		for _, status := range []entity.Status{entity.StatusCompleted, entity.StatusRejected} {
			for _, round := range []entity.Symbol{entity.PlayerX, entity.PlayerO} {
				game := entity.Game{HostSymbol: entity.PlayerX, PlayerRound: round, Status: status, Prize: prize(0)}

				for _, viewer := range []string{host, opponent, spectator, ""} {
					view := Resolve(matchOf(game), viewer, luna)

					assert.True(t, view.ReadOnly, "%s round=%s viewer=%s", status, round, viewer)
					assert.Equal(t, LabelWaiting, view.TurnLabel)
				}
			}
		}
	})

	t.Run("Exactly one side may act while playing", func(t *testing.T) {
		for _, hostSymbol := range []entity.Symbol{entity.PlayerX, entity.PlayerO} {
			for _, round := range []entity.Symbol{entity.PlayerX, entity.PlayerO} {
				// Given: a game in progress
				game := entity.Game{HostSymbol: hostSymbol, PlayerRound: round, Status: entity.StatusPlaying}

				// When: both participants resolve it
				hostView := Resolve(matchOf(game), host, luna)
				opponentView := Resolve(matchOf(game), opponent, luna)
				spectatorView := Resolve(matchOf(game), spectator, luna)

				// Then: the side holding player_round is the only actionable one
				assert.NotEqual(t, hostView.Actionable(), opponentView.Actionable())
				assert.Equal(t, round == hostSymbol, hostView.Actionable())
				assert.True(t, spectatorView.ReadOnly)
			}
		}
	})
}

func TestResolve_Invited(t *testing.T) {
	// Given: the host (X) invited with a 2 Luna stake, so the round belongs to O
	game := entity.Game{
		Board:       boardOf("X..", "...", "..."),
		HostSymbol:  entity.PlayerX,
		PlayerRound: entity.PlayerO,
		Status:      entity.StatusInvited,
		Prize:       prize(2_000_000),
	}

	t.Run("Invitee", func(t *testing.T) {
		view := Resolve(matchOf(game), opponent, luna)

		assert.True(t, view.Actionable())
		assert.Equal(t, RoleOpponent, view.Role)
		assert.Equal(t, entity.PlayerO, view.ViewerSymbol)
		assert.Equal(t, LabelYourTurn, view.TurnLabel)
		assert.Equal(t, HeaderInvited, view.Header)
		assert.Equal(t, "2", view.AcceptStake.Display())
		assert.True(t, view.CanDecline())
	})

	t.Run("Host waits but may withdraw", func(t *testing.T) {
		view := Resolve(matchOf(game), host, luna)

		assert.True(t, view.ReadOnly)
		assert.Equal(t, HeaderCurrentPlayer, view.Header)
		assert.True(t, view.AcceptStake.IsZero())
		assert.True(t, view.CanDecline())
	})

	t.Run("Zero pool attaches no stake", func(t *testing.T) {
		free := game
		free.Prize = prize(0)

		view := Resolve(matchOf(free), opponent, luna)
		action, err := Move(view, entity.Coord{X: 1, Y: 1})

		require.NoError(t, err)
		assert.True(t, action.Stake.IsZero())
	})

	t.Run("Resolving never aliases the fetched record", func(t *testing.T) {
		match := matchOf(game)
		view := Resolve(match, opponent, luna)

		view.Game.Board.Set(entity.Coord{X: 2, Y: 2}, entity.PlayerO)

		assert.Equal(t, entity.EmptyCell, match.Game.Board.At(entity.Coord{X: 2, Y: 2}))
	})
}

func TestResolve_Outcome(t *testing.T) {
	tests := []struct {
		name     string
		game     entity.Game
		expected string
	}{
		{
			name: "Winner with pool",
			game: entity.Game{
				HostSymbol: entity.PlayerX, PlayerRound: entity.PlayerX, Status: entity.StatusCompleted,
				Winner: symbolPtr(entity.PlayerX), Prize: prize(5_000_000),
			},
			expected: "X won! 5 Luna sent to its wallet.",
		},
		{
			name: "Winner without pool",
			game: entity.Game{
				HostSymbol: entity.PlayerX, PlayerRound: entity.PlayerO, Status: entity.StatusCompleted,
				Winner: symbolPtr(entity.PlayerO), Prize: prize(0),
			},
			expected: "O won!",
		},
		{
			name: "Rejected",
			game: entity.Game{
				HostSymbol: entity.PlayerX, PlayerRound: entity.PlayerO, Status: entity.StatusRejected,
				Prize: prize(5_000_000),
			},
			expected: "Game rejected by O. 5 Luna returned to X.",
		},
		{
			name: "Tie",
			game: entity.Game{
				HostSymbol: entity.PlayerO, PlayerRound: entity.PlayerX, Status: entity.StatusCompleted,
				Prize: prize(5_000_000),
			},
			expected: "Tied game! 2.5 Luna sent to each player.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Resolve(matchOf(tt.game), spectator, luna)

			assert.Equal(t, tt.expected, view.Outcome)
			assert.Equal(t, tt.expected, view.Header)
		})
	}

	t.Run("No outcome while in progress", func(t *testing.T) {
		view := Resolve(matchOf(entity.Game{HostSymbol: entity.PlayerX, PlayerRound: entity.PlayerX, Status: entity.StatusPlaying}), host, luna)

		assert.Empty(t, view.Outcome)
		assert.Equal(t, HeaderYourTurn, view.Header)
	})
}

func TestMove(t *testing.T) {
	invited := entity.Game{
		Board:       boardOf("X..", "...", "..."),
		HostSymbol:  entity.PlayerX,
		PlayerRound: entity.PlayerO,
		Status:      entity.StatusInvited,
		Prize:       prize(5_000_000),
	}

	t.Run("Invitee accepts with the pool as stake", func(t *testing.T) {
		view := Resolve(matchOf(invited), opponent, luna)

		action, err := Move(view, entity.Coord{X: 1, Y: 1})

		require.NoError(t, err)
		assert.Equal(t, entity.NewAccept(entity.Coord{X: 1, Y: 1}, host), action.Command)
		assert.Equal(t, entity.Amount(5_000_000), action.Stake)
	})

	t.Run("Host plays against the opponent", func(t *testing.T) {
		playing := invited
		playing.Status = entity.StatusPlaying
		playing.PlayerRound = entity.PlayerX
		view := Resolve(matchOf(playing), host, luna)

		action, err := Move(view, entity.Coord{X: 0, Y: 1})

		require.NoError(t, err)
		assert.Equal(t, entity.NewPlay(true, entity.Coord{X: 0, Y: 1}, opponent), action.Command)
		assert.True(t, action.Stake.IsZero())
	})

	t.Run("Opponent plays against the host", func(t *testing.T) {
		playing := invited
		playing.Status = entity.StatusPlaying
		view := Resolve(matchOf(playing), opponent, luna)

		action, err := Move(view, entity.Coord{X: 2, Y: 2})

		require.NoError(t, err)
		assert.Equal(t, entity.NewPlay(false, entity.Coord{X: 2, Y: 2}, host), action.Command)
	})

	t.Run("Guards", func(t *testing.T) {
		_, err := Move(Resolve(matchOf(invited), host, luna), entity.Coord{X: 1, Y: 1})
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)

		_, err = Move(Resolve(matchOf(invited), spectator, luna), entity.Coord{X: 1, Y: 1})
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)

		_, err = Move(Resolve(matchOf(invited), opponent, luna), entity.Coord{X: 0, Y: 0})
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)

		_, err = Move(Resolve(matchOf(invited), opponent, luna), entity.Coord{X: 0, Y: 3})
		assert.ErrorIs(t, err, apperror.ErrInvalidCoord)

		finished := invited
		finished.Status = entity.StatusRejected
		_, err = Move(Resolve(matchOf(finished), opponent, luna), entity.Coord{X: 1, Y: 1})
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestDecline(t *testing.T) {
	invited := entity.Game{HostSymbol: entity.PlayerX, PlayerRound: entity.PlayerO, Status: entity.StatusInvited}

	t.Run("Invitee rejects", func(t *testing.T) {
		action, err := Decline(Resolve(matchOf(invited), opponent, luna))

		require.NoError(t, err)
		assert.Equal(t, entity.NewReject(false, host), action.Command)
	})

	t.Run("Host withdraws", func(t *testing.T) {
		action, err := Decline(Resolve(matchOf(invited), host, luna))

		require.NoError(t, err)
		assert.Equal(t, entity.NewReject(true, opponent), action.Command)
	})

	t.Run("Spectator cannot reject", func(t *testing.T) {
		_, err := Decline(Resolve(matchOf(invited), spectator, luna))

		assert.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Accepted games cannot be rejected", func(t *testing.T) {
		playing := invited
		playing.Status = entity.StatusPlaying

		_, err := Decline(Resolve(matchOf(playing), opponent, luna))

		assert.ErrorIs(t, err, apperror.ErrGameInProgress)
	})
}

func TestProvisional(t *testing.T) {
	// Given: a fetched game
	game := &entity.Game{Board: boardOf("X..", "...", "..."), Status: entity.StatusInvited}

	// When: a provisional move is shown
	provisional := Provisional(game, entity.Coord{X: 1, Y: 1}, entity.PlayerO)

	// Then: only the copy carries it
	assert.Equal(t, entity.PlayerO, provisional.Board.At(entity.Coord{X: 1, Y: 1}))
	assert.Equal(t, entity.EmptyCell, game.Board.At(entity.Coord{X: 1, Y: 1}))

	// And: occupied cells are never overwritten
	again := Provisional(provisional, entity.Coord{X: 0, Y: 0}, entity.PlayerO)
	assert.Equal(t, entity.PlayerX, again.Board.At(entity.Coord{X: 0, Y: 0}))
}
