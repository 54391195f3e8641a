package wallet

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

type recordingBroadcaster struct {
	signed []entity.SignedTx
}

func (that *recordingBroadcaster) Broadcast(_ context.Context, signed entity.SignedTx) (string, error) {
	that.signed = append(that.signed, signed)
	return "HASH", nil
}

func newTestWallet(t *testing.T, approve Approver) (*Local, *recordingBroadcaster) {
	t.Helper()

	key, err := GenerateKey()
	require.NoError(t, err)

	broadcaster := &recordingBroadcaster{}
	local, err := NewLocal(slog.New(slog.NewTextHandler(io.Discard, nil)), key, "terra", broadcaster, approve)
	require.NoError(t, err)

	return local, broadcaster
}

func testTx(sender string) entity.Tx {
	return entity.Tx{
		ChainID:  "localterra",
		Sender:   sender,
		Contract: "terra1contract",
		Msg:      entity.NewAccept(entity.Coord{X: 1, Y: 1}, "terra1host"),
		Funds:    entity.Coins{{Denom: "uluna", Amount: 5_000_000}},
	}
}

func TestLocal_SignAndBroadcast(t *testing.T) {
	t.Run("Signed transaction verifies", func(t *testing.T) {
		// Given: a wallet that signs without asking
		local, broadcaster := newTestWallet(t, nil)
		require.NoError(t, address.Validate(local.Address(), "terra"))

		// When: signing and broadcasting a tx
		hash, err := local.SignAndBroadcast(context.Background(), testTx(local.Address()))

		// Then: the broadcaster received a tx whose signature verifies
		require.NoError(t, err)
		assert.Equal(t, "HASH", hash)
		require.Len(t, broadcaster.signed, 1)
		assert.NoError(t, Verify(broadcaster.signed[0], "terra"))
	})

	t.Run("Declined approval", func(t *testing.T) {
		// Given: an owner who declines every signature
		local, broadcaster := newTestWallet(t, func(context.Context, entity.Tx) (bool, error) {
			return false, nil
		})

		// When: signing a tx
		_, err := local.SignAndBroadcast(context.Background(), testTx(local.Address()))

		// Then: the rejection is reported and nothing is broadcast
		assert.ErrorIs(t, err, apperror.ErrUserRejectedSigning)
		assert.Empty(t, broadcaster.signed)
	})
}

func TestVerify(t *testing.T) {
	local, broadcaster := newTestWallet(t, nil)
	_, err := local.SignAndBroadcast(context.Background(), testTx(local.Address()))
	require.NoError(t, err)
	signed := broadcaster.signed[0]

	t.Run("Tampered funds", func(t *testing.T) {
		tampered := signed
		tampered.Tx.Funds = entity.Coins{{Denom: "uluna", Amount: 1}}

		assert.ErrorIs(t, Verify(tampered, "terra"), ErrInvalidSignature)
	})

	t.Run("Sender is not the signer", func(t *testing.T) {
		other, _ := newTestWallet(t, nil)
		forged := signed
		forged.Tx.Sender = other.Address()

		assert.ErrorIs(t, Verify(forged, "terra"), ErrInvalidSignature)
	})

	t.Run("Malformed key", func(t *testing.T) {
		malformed := signed
		malformed.PubKey = "zz"

		assert.ErrorIs(t, Verify(malformed, "terra"), ErrInvalidSignature)
	})
}

func TestNewLocal_InvalidKey(t *testing.T) {
	_, err := NewLocal(slog.New(slog.NewTextHandler(io.Discard, nil)), "abcd", "terra", nil, nil)

	assert.Error(t, err)
}
