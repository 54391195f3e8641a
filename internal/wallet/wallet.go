package wallet

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

var ErrInvalidSignature = errors.New("invalid signature")

// Broadcaster hands a signed transaction to the ledger and returns its hash.
type Broadcaster interface {
	Broadcast(ctx context.Context, signed entity.SignedTx) (string, error)
}

// Approver asks the account owner whether tx may be signed.
type Approver func(ctx context.Context, tx entity.Tx) (bool, error)

// Local is a wallet holding its secp256k1 key in memory.
type Local struct {
	logger      *slog.Logger
	key         *secp256k1.PrivateKey
	address     string
	broadcaster Broadcaster
	approve     Approver
}

// NewLocal loads the hex encoded private key. approve may be nil to sign without asking.
func NewLocal(logger *slog.Logger, privateKeyHex, prefix string, broadcaster Broadcaster, approve Approver) (*Local, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil || len(raw) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("private key must be %d hex encoded bytes", secp256k1.PrivKeyBytesLen)
	}

	key := secp256k1.PrivKeyFromBytes(raw)

	addr, err := address.FromPubKey(prefix, key.PubKey().SerializeCompressed())
	if err != nil {
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}

	return &Local{
		logger:      logger.With("component", "wallet", "address", addr),
		key:         key,
		address:     addr,
		broadcaster: broadcaster,
		approve:     approve,
	}, nil
}

// GenerateKey returns a fresh hex encoded private key.
func GenerateKey() (string, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	return hex.EncodeToString(key.Serialize()), nil
}

func (that *Local) Address() string {
	return that.address
}

func (that *Local) SignAndBroadcast(ctx context.Context, tx entity.Tx) (string, error) {
	if that.approve != nil {
		approved, err := that.approve(ctx, tx)
		if err != nil {
			return "", fmt.Errorf("failed to ask for approval: %w", err)
		}

		if !approved {
			that.logger.Info("signature declined", "command", tx.Msg.Kind)
			return "", apperror.ErrUserRejectedSigning
		}
	}

	signed, err := Sign(that.key, tx)
	if err != nil {
		return "", err
	}

	hash, err := that.broadcaster.Broadcast(ctx, signed)
	if err != nil {
		return "", fmt.Errorf("failed to broadcast: %w", err)
	}

	return hash, nil
}

// SignDoc is the digest a signature commits to.
func SignDoc(tx entity.Tx) ([]byte, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign doc: %w", err)
	}

	digest := sha256.Sum256(payload)

	return digest[:], nil
}

func Sign(key *secp256k1.PrivateKey, tx entity.Tx) (entity.SignedTx, error) {
	digest, err := SignDoc(tx)
	if err != nil {
		return entity.SignedTx{}, err
	}

	return entity.SignedTx{
		Tx:        tx,
		PubKey:    hex.EncodeToString(key.PubKey().SerializeCompressed()),
		Signature: hex.EncodeToString(ecdsa.Sign(key, digest).Serialize()),
	}, nil
}

// Verify checks the signature and that the sender is the account of the signing key.
func Verify(signed entity.SignedTx, prefix string) error {
	pubBytes, err := hex.DecodeString(signed.PubKey)
	if err != nil {
		return fmt.Errorf("%w: malformed public key", ErrInvalidSignature)
	}

	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	sender, err := address.FromPubKey(prefix, pubBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if sender != signed.Tx.Sender {
		return fmt.Errorf("%w: key belongs to %s, not %s", ErrInvalidSignature, sender, signed.Tx.Sender)
	}

	sigBytes, err := hex.DecodeString(signed.Signature)
	if err != nil {
		return fmt.Errorf("%w: malformed signature", ErrInvalidSignature)
	}

	signature, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	digest, err := SignDoc(signed.Tx)
	if err != nil {
		return err
	}

	if !signature.Verify(digest, pub) {
		return ErrInvalidSignature
	}

	return nil
}
