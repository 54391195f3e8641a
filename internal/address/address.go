package address

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // account addresses are ripemd160(sha256(pubkey))

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
)

const (
	shortLength = 6
	accountSize = 20
)

// Validate checks that addr is a bech32 account address with the given human-readable prefix.
func Validate(addr, prefix string) error {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", apperror.ErrInvalidAddress, addr, err)
	}

	if hrp != prefix {
		return fmt.Errorf("%w: %s: expected prefix %q, got %q", apperror.ErrInvalidAddress, addr, prefix, hrp)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", apperror.ErrInvalidAddress, addr, err)
	}

	if len(raw) != accountSize {
		return fmt.Errorf("%w: %s: expected %d bytes, got %d", apperror.ErrInvalidAddress, addr, accountSize, len(raw))
	}

	return nil
}

// FromPubKey derives the account address of a compressed secp256k1 public key.
func FromPubKey(prefix string, compressed []byte) (string, error) {
	sha := sha256.Sum256(compressed)

	hasher := ripemd160.New()
	hasher.Write(sha[:])

	data, err := bech32.ConvertBits(hasher.Sum(nil), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}

	addr, err := bech32.Encode(prefix, data)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}

	return addr, nil
}

// Short renders the tail of an address, "...abcdef".
func Short(addr string) string {
	if len(addr) <= shortLength {
		return addr
	}

	return "..." + addr[len(addr)-shortLength:]
}

// GameLabel renders a game identity for lists, "...abcdef/...123456".
func GameLabel(host, opponent string) string {
	return strings.Join([]string{Short(host), Short(opponent)}, "/")
}
