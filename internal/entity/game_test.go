package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMethods(t *testing.T) {
	t.Run("Terminal statuses", func(t *testing.T) {
		// Then: only COMPLETED and REJECTED are terminal
		assert.True(t, StatusCompleted.IsTerminal())
		assert.True(t, StatusRejected.IsTerminal())
		assert.False(t, StatusInvited.IsTerminal())
		assert.False(t, StatusPlaying.IsTerminal())
	})

	t.Run("Unknown status is not valid", func(t *testing.T) {
		assert.False(t, Status("unknown").IsValid())
		assert.True(t, StatusPlaying.IsValid())
	})
}

func TestSymbol_Opposite(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opposite())
	assert.Equal(t, PlayerX, PlayerO.Opposite())
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Decodes the contract board with null cells", func(t *testing.T) {
		// Given: a board as returned by the contract after an invite at x=2,y=0
		raw := `[[null,null,null],[null,"O",null],["X",null,null]]`

		// When: decoding it
		var board Board
		err := json.Unmarshal([]byte(raw), &board)

		// Then: the cells are addressed as board[x][y]
		require.NoError(t, err)
		assert.Equal(t, PlayerX, board.At(Coord{X: 2, Y: 0}))
		assert.Equal(t, PlayerO, board.At(Coord{X: 1, Y: 1}))
		assert.Equal(t, EmptyCell, board.At(Coord{X: 0, Y: 0}))
	})

	t.Run("Encodes empty cells as null", func(t *testing.T) {
		// Given: a board with one move
		var board Board
		board.Set(Coord{X: 0, Y: 2}, PlayerX)

		// When: encoding it
		data, err := json.Marshal(board)

		// Then: the wire form matches the contract's
		require.NoError(t, err)
		assert.JSONEq(t, `[[null,null,"X"],[null,null,null],[null,null,null]]`, string(data))
	})

	t.Run("Rejects a board with the wrong shape", func(t *testing.T) {
		var board Board
		err := json.Unmarshal([]byte(`[[null,null],[null,null]]`), &board)

		require.Error(t, err)
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a finished game record from the ledger
	raw := `{
		"board": [["X","X","X"],["O","O",null],[null,null,null]],
		"host_symbol": "X",
		"player_round": "X",
		"prize": [{"denom":"uluna","amount":"10000000"}],
		"status": "COMPLETED",
		"winner": "X"
	}`

	// When: decoding it
	var game Game
	err := json.Unmarshal([]byte(raw), &game)

	// Then: every field is populated
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, game.Status)
	assert.Equal(t, PlayerX, game.HostSymbol)
	require.NotNil(t, game.Winner)
	assert.Equal(t, PlayerX, *game.Winner)
	assert.Equal(t, Amount(10_000_000), game.Prize.AmountOf("uluna"))
	assert.True(t, game.IsFinished())
	assert.True(t, game.IsHostRound())
}

func TestGame_Clone(t *testing.T) {
	// Given: a game with a winner and a prize
	winner := PlayerO
	game := &Game{
		HostSymbol: PlayerX,
		Prize:      Coins{{Denom: "uluna", Amount: 1}},
		Winner:     &winner,
	}

	// When: the clone is modified
	clone := game.Clone()
	clone.Board.Set(Coord{X: 1, Y: 1}, PlayerX)
	clone.Prize[0].Amount = 5
	*clone.Winner = PlayerX

	// Then: the original is untouched
	assert.Equal(t, EmptyCell, game.Board.At(Coord{X: 1, Y: 1}))
	assert.Equal(t, Amount(1), game.Prize[0].Amount)
	assert.Equal(t, PlayerO, *game.Winner)
}

func TestGameKey_Other(t *testing.T) {
	key := GameKey{Host: "terra1host", Opponent: "terra1opponent"}

	assert.Equal(t, "terra1opponent", key.Other("terra1host"))
	assert.Equal(t, "terra1host", key.Other("terra1opponent"))
	assert.Equal(t, "", key.Other("terra1stranger"))
	assert.Equal(t, "terra1host/terra1opponent", key.String())
}
