package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
)

type stubGames struct {
	mu      sync.Mutex
	matches []entity.Match
}

func (that *stubGames) Network() *ledger.NetworkContext {
	return &ledger.NetworkContext{Network: entity.Network{AddressPrefix: "terra", BaseDenom: "uluna", CurrencyName: "Luna"}}
}

func (that *stubGames) Query(context.Context, entity.Query) ([]entity.Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.matches, nil
}

func (that *stubGames) set(matches ...entity.Match) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.matches = matches
}

func match(status entity.Status) entity.Match {
	return entity.Match{
		Host:     "terra1host",
		Opponent: "terra1opponent",
		Game: entity.Game{
			HostSymbol:  entity.PlayerX,
			PlayerRound: entity.PlayerO,
			Prize:       entity.Coins{{Denom: "uluna", Amount: 5_000_000}},
			Status:      status,
		},
	}
}

func dial(t *testing.T, games *stubGames, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	return dialWithClock(t, games, clock.New(), path)
}

func dialWithClock(t *testing.T, games *stubGames, clk clock.Clock, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	mux := http.NewServeMux()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), games, clk, time.Hour).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	conn, response, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+path, nil)
	if err == nil {
		t.Cleanup(func() { conn.Close() })
	}

	return conn, response, err
}

func readMessage(t *testing.T, conn *websocket.Conn) (string, ResponsePayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var message Message
	require.NoError(t, conn.ReadJSON(&message))

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(message.Payload, &payload))

	return message.Action, payload
}

func TestServer_Watch(t *testing.T) {
	t.Run("Streams changes on refresh", func(t *testing.T) {
		// Given: a watcher on an invitation
		games := &stubGames{}
		games.set(match(entity.StatusInvited))

		conn, _, err := dial(t, games, "/ws/games/terra1host/terra1opponent")
		require.NoError(t, err)

		action, payload := readMessage(t, conn)
		require.Equal(t, ActionView, action)
		assert.Equal(t, entity.StatusInvited, payload.View.Game.Status)
		assert.Equal(t, tictactoe.RoleSpectator, payload.View.Role)

		// When: the invitation is accepted and the watcher asks for a refresh
		games.set(match(entity.StatusPlaying))
		require.NoError(t, conn.WriteJSON(Message{Action: ActionRefresh}))

		// Then: the new state is pushed
		action, payload = readMessage(t, conn)
		require.Equal(t, ActionView, action)
		assert.Equal(t, entity.StatusPlaying, payload.View.Game.Status)
	})

	t.Run("Unchanged game is not sent twice", func(t *testing.T) {
		games := &stubGames{}
		games.set(match(entity.StatusPlaying))

		conn, _, err := dial(t, games, "/ws/games/terra1host/terra1opponent")
		require.NoError(t, err)
		readMessage(t, conn)

		// When: refreshing without a change, then after the game disappears
		require.NoError(t, conn.WriteJSON(Message{Action: ActionRefresh}))
		time.Sleep(50 * time.Millisecond)
		games.set()
		require.NoError(t, conn.WriteJSON(Message{Action: ActionRefresh}))

		// Then: the next message is the missing notice, and the feed closes
		action, payload := readMessage(t, conn)
		assert.Equal(t, ActionMissing, action)
		assert.Equal(t, "Cannot find game 'terra1host/terra1opponent' on current network", payload.Error)

		_, _, err = conn.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
	})

	t.Run("Polls on the injected clock", func(t *testing.T) {
		// Given: a server whose clock stands at the Unix epoch
		games := &stubGames{}
		games.set(match(entity.StatusInvited))
		mockClock := clock.NewMock()

		conn, _, err := dialWithClock(t, games, mockClock, "/ws/games/terra1host/terra1opponent")
		require.NoError(t, err)

		// Then: writes are not expired by the mocked time
		action, _ := readMessage(t, conn)
		require.Equal(t, ActionView, action)

		// When: the game changes and the next tick fires
		games.set(match(entity.StatusPlaying))
		mockClock.Add(time.Hour)

		// Then: the change is pushed
		action, payload := readMessage(t, conn)
		require.Equal(t, ActionView, action)
		assert.Equal(t, entity.StatusPlaying, payload.View.Game.Status)
	})

	t.Run("Invalid viewer is refused before upgrading", func(t *testing.T) {
		_, response, err := dial(t, &stubGames{}, "/ws/games/terra1host/terra1opponent?viewer=cosmos1nope")

		require.Error(t, err)
		require.NotNil(t, response)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}
