package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/usecase"
)

type lobbyUseCase interface {
	ListGames(ctx context.Context, query entity.Query) ([]usecase.GameRow, error)
}

type gameReader interface {
	Network() *ledger.NetworkContext
	Query(ctx context.Context, query entity.Query) ([]entity.Match, error)
}

type pendingReader interface {
	List(ctx context.Context) ([]entity.PendingTx, error)
}

// GamesHandler is the read-only HTTP view of the games on the active network.
type GamesHandler struct {
	logger  *slog.Logger
	lobby   lobbyUseCase
	games   gameReader
	pending pendingReader
}

func NewGamesHandler(logger *slog.Logger, lobby lobbyUseCase, games gameReader, pending pendingReader) *GamesHandler {
	return &GamesHandler{
		logger:  logger.With("component", "games_handler"),
		lobby:   lobby,
		games:   games,
		pending: pending,
	}
}

func (that *GamesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ping", PingHandler)
	mux.HandleFunc("GET /games", that.ListGames)
	mux.HandleFunc("GET /games/{host}/{opponent}", that.GetGame)
	mux.HandleFunc("GET /pending", that.ListPending)
}

// ListGames answers GET /games[?status=INVITED|PLAYING|COMPLETED|REJECTED].
func (that *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	query := entity.AllGames()

	if status := r.URL.Query().Get("status"); status != "" {
		if !entity.Status(status).IsValid() {
			writeError(w, http.StatusBadRequest, "unknown status "+status)
			return
		}

		query = entity.GamesByStatus(entity.Status(status))
	}

	rows, err := that.lobby.ListGames(r.Context(), query)
	if err != nil {
		that.logger.Error("failed to list games", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// GetGame answers GET /games/{host}/{opponent}[?viewer=address] with the game as the viewer sees it.
func (that *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	host, opponent := r.PathValue("host"), r.PathValue("opponent")

	matches, err := that.games.Query(r.Context(), entity.GameByKey(host, opponent))
	if err != nil {
		that.logger.Error("failed to fetch game", "host", host, "opponent", opponent, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "Cannot find game '"+host+"/"+opponent+"' on current network")
		return
	}

	network := that.games.Network().Network
	currency := tictactoe.Currency{BaseDenom: network.BaseDenom, Name: network.CurrencyName}

	writeJSON(w, http.StatusOK, tictactoe.Resolve(matches[0], r.URL.Query().Get("viewer"), currency))
}

func (that *GamesHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	txs, err := that.pending.List(r.Context())
	if err != nil {
		that.logger.Error("failed to list pending txs", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, txs)
}
