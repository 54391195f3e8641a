package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
)

// CodeCheckTxFailed is returned for a broadcast refused before it reached a block.
const CodeCheckTxFailed uint32 = 4

type ledgerNode interface {
	QueryGames(ctx context.Context, contract string, query entity.Query) ([]entity.Match, error)
	TxInfo(ctx context.Context, hash string) (*entity.TxInfo, error)
	Broadcast(ctx context.Context, signed entity.SignedTx) (string, error)
}

// NodeHandler serves a ledger over the LCD routes ledger.LCD calls, so other clients can
// play on an in-process chain.
type NodeHandler struct {
	logger *slog.Logger
	node   ledgerNode
}

func NewNodeHandler(logger *slog.Logger, node ledgerNode) *NodeHandler {
	return &NodeHandler{
		logger: logger.With("component", "node_handler"),
		node:   node,
	}
}

func (that *NodeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+ledger.SmartQueryPath+"{contract}/smart/{query}", that.SmartQuery)
	mux.HandleFunc("GET "+ledger.TxsPath+"/{hash}", that.GetTx)
	mux.HandleFunc("POST "+ledger.TxsPath, that.BroadcastTx)
}

func (that *NodeHandler) SmartQuery(w http.ResponseWriter, r *http.Request) {
	raw, err := base64.StdEncoding.DecodeString(r.PathValue("query"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "query is not base64")
		return
	}

	var msg struct {
		Games *entity.Query `json:"games"`
	}
	if err = json.Unmarshal(raw, &msg); err != nil || msg.Games == nil {
		writeError(w, http.StatusBadRequest, "unknown query")
		return
	}

	matches, err := that.node.QueryGames(r.Context(), r.PathValue("contract"), *msg.Games)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ledger.SmartQueryResponse{Data: matches})
}

func (that *NodeHandler) GetTx(w http.ResponseWriter, r *http.Request) {
	info, err := that.node.TxInfo(r.Context(), r.PathValue("hash"))
	if errors.Is(err, apperror.ErrTxNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ledger.TxResponse{TxResponse: *info})
}

func (that *NodeHandler) BroadcastTx(w http.ResponseWriter, r *http.Request) {
	var request ledger.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "malformed broadcast request")
		return
	}

	raw, err := base64.StdEncoding.DecodeString(request.TxBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "tx_bytes is not base64")
		return
	}

	var signed entity.SignedTx
	if err = json.Unmarshal(raw, &signed); err != nil {
		writeError(w, http.StatusBadRequest, "malformed tx: "+err.Error())
		return
	}

	hash, err := that.node.Broadcast(r.Context(), signed)
	if err != nil {
		that.logger.Info("broadcast refused", "sender", signed.Tx.Sender, "error", err)
		writeJSON(w, http.StatusOK, ledger.TxResponse{TxResponse: entity.TxInfo{Code: CodeCheckTxFailed, RawLog: err.Error()}})
		return
	}

	writeJSON(w, http.StatusOK, ledger.TxResponse{TxResponse: entity.TxInfo{Hash: hash}})
}
