package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

const (
	SmartQueryPath = "/cosmwasm/wasm/v1/contract/"
	TxsPath        = "/cosmos/tx/v1beta1/txs"

	BroadcastModeSync = "BROADCAST_MODE_SYNC"

	defaultHTTPTimeout = 15 * time.Second
)

var errNotFound = errors.New("not found")

// SmartQueryResponse is the LCD envelope of a contract query.
type SmartQueryResponse struct {
	Data []entity.Match `json:"data"`
}

// TxResponse is the LCD envelope of a transaction lookup or broadcast.
type TxResponse struct {
	TxResponse entity.TxInfo `json:"tx_response"`
}

// BroadcastRequest carries a signed transaction, base64 encoded.
type BroadcastRequest struct {
	TxBytes string `json:"tx_bytes"`
	Mode    string `json:"mode"`
}

// ErrorResponse is the LCD error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LCD talks to a ledger node over its REST interface.
type LCD struct {
	logger  *slog.Logger
	baseURL string
	client  *http.Client
}

func NewLCD(logger *slog.Logger, baseURL string, client *http.Client) *LCD {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &LCD{
		logger:  logger.With("component", "lcd", "url", baseURL),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (that *LCD) QueryGames(ctx context.Context, contract string, query entity.Query) ([]entity.Match, error) {
	msg, err := query.Message()
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	path := SmartQueryPath + url.PathEscape(contract) + "/smart/" + url.PathEscape(base64.StdEncoding.EncodeToString(msg))

	var response SmartQueryResponse
	if err = that.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to query contract %s: %w", contract, err)
	}

	return response.Data, nil
}

func (that *LCD) TxInfo(ctx context.Context, hash string) (*entity.TxInfo, error) {
	var response TxResponse
	if err := that.do(ctx, http.MethodGet, TxsPath+"/"+url.PathEscape(hash), nil, &response); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrTxNotFound, hash)
		}
		return nil, err
	}

	return &response.TxResponse, nil
}

// Broadcast submits a signed transaction and returns its hash without waiting for settlement.
func (that *LCD) Broadcast(ctx context.Context, signed entity.SignedTx) (string, error) {
	txBytes, err := json.Marshal(signed)
	if err != nil {
		return "", fmt.Errorf("failed to encode tx: %w", err)
	}

	request := BroadcastRequest{
		TxBytes: base64.StdEncoding.EncodeToString(txBytes),
		Mode:    BroadcastModeSync,
	}

	var response TxResponse
	if err = that.do(ctx, http.MethodPost, TxsPath, request, &response); err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrBroadcastFailed, err)
	}

	if !response.TxResponse.Succeeded() {
		return "", fmt.Errorf("%w: %s", apperror.ErrBroadcastFailed, response.TxResponse.RawLog)
	}

	return response.TxResponse.Hash, nil
}

func (that *LCD) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := that.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", errNotFound, errorMessage(data))
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", response.StatusCode, errorMessage(data))
	}

	if err = json.Unmarshal(data, out); err != nil {
		that.logger.Error("failed to decode response", "path", path, "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func errorMessage(data []byte) string {
	var body ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return strings.TrimSpace(string(data))
	}

	return body.Message
}
