package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotConnected        = errors.New("wallet is not connected")
	ErrUserRejectedSigning = errors.New("user rejected the transaction")
	ErrBroadcastFailed     = errors.New("transaction failed")
	ErrQueued              = errors.New("transaction queued")
	ErrTxNotFound          = errors.New("transaction not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrUnknownNetwork      = errors.New("unknown network")
	ErrNoContract          = errors.New("network has no contract configured")

	ErrInvalidAddress     = errors.New("invalid address")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCoord       = errors.New("invalid coordinate")
	ErrInvalidSymbol      = errors.New("symbol must be X or O")
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotParticipant     = errors.New("you are not playing this game")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrFundsMismatch      = errors.New("sent funds do not match the prize pool")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSubmissionInFlight = errors.New("a move for this game is already being submitted")
)

// QueuedError reports a broadcast transaction whose settlement could not be confirmed in time.
// The move may or may not have been applied; Hash lets the user look it up later.
type QueuedError struct {
	Hash  string
	Cause error
}

func (that *QueuedError) Error() string {
	return fmt.Sprintf("Transaction queued. To verify the status, please check the transaction hash: %s", that.Hash)
}

func (that *QueuedError) Is(target error) bool {
	return target == ErrQueued
}

func (that *QueuedError) Unwrap() error {
	return that.Cause
}
