package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/address"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

const writeTimeout = 10 * time.Second

type gameReader interface {
	Network() *ledger.NetworkContext
	Query(ctx context.Context, query entity.Query) ([]entity.Match, error)
}

// Server pushes a game to watchers whenever the ledger shows a change. The clock only paces
// polling; socket deadlines follow the wall clock.
type Server struct {
	logger   *slog.Logger
	games    gameReader
	clock    clock.Clock
	interval time.Duration
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, games gameReader, clk clock.Clock, interval time.Duration) *Server {
	return &Server{
		logger:   logger.With("component", "websocket_server"),
		games:    games,
		clock:    clk,
		interval: interval,
		upgrader: websocket.Upgrader{
			// watchers are read-only, any origin may follow a public game
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (that *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/games/{host}/{opponent}", that.Watch)
}

// Watch upgrades to a WebSocket and streams the game as ?viewer= sees it.
func (that *Server) Watch(w http.ResponseWriter, r *http.Request) {
	key := entity.GameKey{Host: r.PathValue("host"), Opponent: r.PathValue("opponent")}
	viewer := r.URL.Query().Get("viewer")
	log := that.logger.With("method", "Watch", "game", key.String())

	if viewer != "" {
		if err := address.Validate(viewer, that.games.Network().Network.AddressPrefix); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	// the HTTP server's read deadline survives the upgrade
	_ = conn.SetReadDeadline(time.Time{})

	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	refresh := make(chan struct{}, 1)
	go that.readMessages(cancel, conn, refresh, log)

	if err = that.stream(ctx, conn, key, viewer, refresh); err != nil {
		log.Info("watch ended", "error", err)
	}
}

// readMessages handles client messages until the connection drops.
func (that *Server) readMessages(cancel context.CancelFunc, conn *websocket.Conn, refresh chan<- struct{}, log *slog.Logger) {
	defer cancel()

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("failed to read message", "error", err)
			}
			return
		}

		switch message.Action {
		case ActionRefresh:
			select {
			case refresh <- struct{}{}:
			default:
			}
		default:
			log.Warn("unknown action", "action", message.Action)
		}
	}
}

var errGameMissing = errors.New("game does not exist")

func (that *Server) stream(
	ctx context.Context,
	conn *websocket.Conn,
	key entity.GameKey,
	viewer string,
	refresh <-chan struct{},
) error {
	ticker := that.clock.Ticker(that.interval)
	defer ticker.Stop()

	var last []byte

	for {
		sent, err := that.push(ctx, conn, key, viewer, last)
		if errors.Is(err, errGameMissing) {
			deadline := time.Now().Add(writeTimeout)
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game not found"), deadline)
			return err
		}
		if err != nil {
			return err
		}
		if sent != nil {
			last = sent
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-refresh:
		}
	}
}

// push sends the current view when it differs from last and returns what it sent.
func (that *Server) push(ctx context.Context, conn *websocket.Conn, key entity.GameKey, viewer string, last []byte) ([]byte, error) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	matches, err := that.games.Query(ctx, entity.GameByKey(key.Host, key.Opponent))
	if err != nil {
		that.logger.Warn("failed to fetch watched game", "game", key.String(), "error", err)
		return nil, sendMessage(conn, ActionError, ResponsePayload{Error: err.Error()})
	}

	if len(matches) == 0 {
		message := "Cannot find game '" + key.String() + "' on current network"
		if err = sendMessage(conn, ActionMissing, ResponsePayload{Error: message}); err != nil {
			return nil, err
		}
		return nil, errGameMissing
	}

	network := that.games.Network().Network
	view := tictactoe.Resolve(matches[0], viewer, tictactoe.Currency{BaseDenom: network.BaseDenom, Name: network.CurrencyName})

	current, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}

	if bytes.Equal(current, last) {
		return nil, nil
	}

	return current, sendMessage(conn, ActionView, ResponsePayload{View: view})
}
