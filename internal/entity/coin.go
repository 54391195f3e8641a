package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
)

// MinorUnitDecimals is the number of decimals between the display currency and its base denom.
const MinorUnitDecimals = 6

const minorPerUnit = 1_000_000

// Amount is a quantity of the base denom in minor units.
type Amount uint64

// Display renders the amount in display units without trailing zeros: 2000000 -> "2", 2500000 -> "2.5".
func (that Amount) Display() string {
	whole := uint64(that) / minorPerUnit
	frac := uint64(that) % minorPerUnit
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}

	fracStr := strings.TrimRight(fmt.Sprintf("%0*d", MinorUnitDecimals, frac), "0")
	return strconv.FormatUint(whole, 10) + "." + fracStr
}

// Half returns half of the amount, rounded down as the contract does on a tie.
func (that Amount) Half() Amount {
	return that / 2
}

func (that Amount) IsZero() bool {
	return that == 0
}

func (that Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(that), 10))
}

func (that *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*that = 0
		return nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidAmount, raw)
	}

	*that = Amount(value)
	return nil
}

// ParseAmount converts a display amount ("2.5") into minor units.
func ParseAmount(display string) (Amount, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		return 0, nil
	}

	whole, frac, _ := strings.Cut(display, ".")
	if whole == "" {
		whole = "0"
	}

	if len(frac) > MinorUnitDecimals {
		return 0, fmt.Errorf("%w: at most %d decimals allowed", apperror.ErrInvalidAmount, MinorUnitDecimals)
	}

	wholeValue, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apperror.ErrInvalidAmount, display)
	}

	var fracValue uint64
	if frac != "" {
		fracValue, err = strconv.ParseUint(frac+strings.Repeat("0", MinorUnitDecimals-len(frac)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", apperror.ErrInvalidAmount, display)
		}
	}

	if wholeValue > (^uint64(0)-fracValue)/minorPerUnit {
		return 0, fmt.Errorf("%w: %s overflows", apperror.ErrInvalidAmount, display)
	}

	return Amount(wholeValue*minorPerUnit + fracValue), nil
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

type Coins []Coin

// AmountOf sums the amounts held in denom.
func (that Coins) AmountOf(denom string) Amount {
	var total Amount
	for _, coin := range that {
		if coin.Denom == denom {
			total += coin.Amount
		}
	}

	return total
}

func (that Coins) IsZero() bool {
	for _, coin := range that {
		if !coin.Amount.IsZero() {
			return false
		}
	}

	return true
}

// Equal compares coins in order, the way the contract compares sent funds with the pool.
func (that Coins) Equal(other Coins) bool {
	if len(that) != len(other) {
		return false
	}

	for i := range that {
		if that[i] != other[i] {
			return false
		}
	}

	return true
}
