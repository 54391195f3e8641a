package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

var WinCombos = [][3]entity.Coord{
	{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
	{{X: 0, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 0}},
}

// MakeTurn places symbol at coord and advances the game the way the contract does:
// a completed line finishes it with a winner, a full board finishes it as a tie,
// anything else passes the round to the other player.
func MakeTurn(gameInstance *entity.Game, symbol entity.Symbol, coord entity.Coord) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, symbol, coord); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board.Set(coord, symbol)
	updateGameStatus(gameInstance, symbol)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, symbol entity.Symbol, coord entity.Coord) error {
	if !coord.IsValid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCoord, coord)
	}

	if gameInstance.PlayerRound != symbol {
		return apperror.ErrNotYourTurn
	}

	if gameInstance.Board.At(coord) != entity.EmptyCell {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, coord)
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, symbol entity.Symbol) {
	if winner, ok := Winner(gameInstance.Board); ok {
		gameInstance.Status = entity.StatusCompleted
		gameInstance.Winner = &winner
		return
	}

	if IsFull(gameInstance.Board) {
		gameInstance.Status = entity.StatusCompleted
		return
	}

	gameInstance.PlayerRound = symbol.Opposite()
}

// Winner returns the symbol owning a complete line, if any.
func Winner(board entity.Board) (entity.Symbol, bool) {
	for _, combo := range WinCombos {
		a, b, c := board.At(combo[0]), board.At(combo[1]), board.At(combo[2])
		if a != entity.EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return entity.EmptyCell, false
}

func IsFull(board entity.Board) bool {
	for x := range board {
		for y := range board[x] {
			if board[x][y] == entity.EmptyCell {
				return false
			}
		}
	}

	return true
}
