package console

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/wallet"
)

// Prompter asks the user for input.
type Prompter interface {
	Select(text string, options []string) (string, error)
	Input(text string) (string, error)
	Confirm(text string) (bool, error)
}

// TerminalPrompter uses pterm's interactive printers.
type TerminalPrompter struct{}

func (TerminalPrompter) Select(text string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
}

func (TerminalPrompter) Input(text string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(text).Show()
}

func (TerminalPrompter) Confirm(text string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultText(text).WithDefaultValue(true).Show()
}

// Approver asks the account owner before every signature.
func Approver(prompter Prompter, currencyName, baseDenom string) wallet.Approver {
	return func(_ context.Context, tx entity.Tx) (bool, error) {
		text := fmt.Sprintf("Sign %s on %s", tx.Msg.Kind, tx.ChainID)
		if stake := tx.Funds.AmountOf(baseDenom); !stake.IsZero() {
			text += fmt.Sprintf(" sending %s %s", stake.Display(), currencyName)
		}

		return prompter.Confirm(text + "?")
	}
}
