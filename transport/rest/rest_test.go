package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/devnet"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/wallet"
)

const luna entity.Amount = 1_000_000

var testNetwork = entity.Network{
	Name:          "localterra",
	ChainID:       "localterra",
	Contract:      "terra1contract",
	AddressPrefix: "terra",
	BaseDenom:     "uluna",
	CurrencyName:  "Luna",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubLobby struct {
	query entity.Query
	rows  []usecase.GameRow
	err   error
}

func (that *stubLobby) ListGames(_ context.Context, query entity.Query) ([]usecase.GameRow, error) {
	that.query = query
	return that.rows, that.err
}

type stubGames struct {
	matches []entity.Match
}

func (that *stubGames) Network() *ledger.NetworkContext {
	return &ledger.NetworkContext{Network: testNetwork}
}

func (that *stubGames) Query(context.Context, entity.Query) ([]entity.Match, error) {
	return that.matches, nil
}

type stubPending []entity.PendingTx

func (that stubPending) List(context.Context) ([]entity.PendingTx, error) {
	return that, nil
}

func newGamesServer(t *testing.T, lobby *stubLobby, games *stubGames) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	NewGamesHandler(discardLogger(), lobby, games, stubPending{{Hash: "QUEUED"}}).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()

	response, err := http.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(response.Body).Decode(out))
	}

	return response.StatusCode
}

func TestGamesHandler(t *testing.T) {
	t.Run("Ping", func(t *testing.T) {
		server := newGamesServer(t, &stubLobby{}, &stubGames{})

		response, err := http.Get(server.URL + "/ping")
		require.NoError(t, err)
		defer response.Body.Close()

		body, _ := io.ReadAll(response.Body)
		assert.Equal(t, "pong", string(body))
	})

	t.Run("Lists games filtered by status", func(t *testing.T) {
		// Given: a lobby with one row
		lobby := &stubLobby{rows: []usecase.GameRow{{Label: "...aaaaaa/...bbbbbb", Status: entity.StatusPlaying, Pool: "10 Luna"}}}
		server := newGamesServer(t, lobby, &stubGames{})

		// When: listing playing games
		var rows []usecase.GameRow
		status := getJSON(t, server.URL+"/games?status=PLAYING", &rows)

		// Then: the filter reaches the lobby and the rows come back
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, entity.GamesByStatus(entity.StatusPlaying), lobby.query)
		require.Len(t, rows, 1)
		assert.Equal(t, "10 Luna", rows[0].Pool)
	})

	t.Run("Unknown status", func(t *testing.T) {
		server := newGamesServer(t, &stubLobby{}, &stubGames{})

		var body ledger.ErrorResponse
		status := getJSON(t, server.URL+"/games?status=WAITING", &body)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Message, "WAITING")
	})

	t.Run("Ledger unavailable", func(t *testing.T) {
		server := newGamesServer(t, &stubLobby{err: errors.New("node down")}, &stubGames{})

		status := getJSON(t, server.URL+"/games", nil)

		assert.Equal(t, http.StatusBadGateway, status)
	})

	t.Run("Game as seen by a viewer", func(t *testing.T) {
		// Given: an invitation
		game := entity.Game{
			HostSymbol:  entity.PlayerX,
			PlayerRound: entity.PlayerO,
			Prize:       entity.Coins{{Denom: "uluna", Amount: 5 * luna}},
			Status:      entity.StatusInvited,
		}
		server := newGamesServer(t, &stubLobby{}, &stubGames{matches: []entity.Match{{Game: game, Host: "terra1host", Opponent: "terra1opponent"}}})

		// When: the invitee asks for it
		var view tictactoe.View
		status := getJSON(t, server.URL+"/games/terra1host/terra1opponent?viewer=terra1opponent", &view)

		// Then: the invitation and its stake are shown
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, tictactoe.RoleOpponent, view.Role)
		assert.Equal(t, tictactoe.HeaderInvited, view.Header)
		assert.Equal(t, 5*luna, view.AcceptStake)
	})

	t.Run("Missing game", func(t *testing.T) {
		server := newGamesServer(t, &stubLobby{}, &stubGames{})

		var body ledger.ErrorResponse
		status := getJSON(t, server.URL+"/games/terra1host/terra1opponent", &body)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Cannot find game 'terra1host/terra1opponent' on current network", body.Message)
	})

	t.Run("Pending transactions", func(t *testing.T) {
		server := newGamesServer(t, &stubLobby{}, &stubGames{})

		var txs []entity.PendingTx
		status := getJSON(t, server.URL+"/pending", &txs)

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "QUEUED", txs[0].Hash)
	})
}

type remotePlayer struct {
	wallet  *wallet.Local
	gateway *ledger.Gateway
}

func newRemotePlayer(t *testing.T, chain *devnet.Chain, lcd *ledger.LCD, mock *clock.Mock) *remotePlayer {
	t.Helper()

	key, err := wallet.GenerateKey()
	require.NoError(t, err)

	local, err := wallet.NewLocal(discardLogger(), key, testNetwork.AddressPrefix, lcd, nil)
	require.NoError(t, err)

	chain.Fund(local.Address(), 10*luna)

	network := &ledger.NetworkContext{Network: testNetwork, Wallet: local}

	return &remotePlayer{
		wallet:  local,
		gateway: ledger.NewGateway(discardLogger(), network, lcd, ledger.WithClock(mock)),
	}
}

func TestNodeHandler_GameOverLCD(t *testing.T) {
	// Given: a devnet served over the LCD routes and two players using the LCD client
	mock := clock.NewMock()
	chain := devnet.New(discardLogger(), mock, devnet.Config{
		ChainID:       testNetwork.ChainID,
		Contract:      testNetwork.Contract,
		AddressPrefix: testNetwork.AddressPrefix,
		BaseDenom:     testNetwork.BaseDenom,
	})

	mux := http.NewServeMux()
	NewNodeHandler(discardLogger(), chain).Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	lcd := ledger.NewLCD(discardLogger(), server.URL, server.Client())
	host := newRemotePlayer(t, chain, lcd, mock)
	opponent := newRemotePlayer(t, chain, lcd, mock)
	ctx := context.Background()

	// When: the host invites and the opponent accepts
	_, err := host.gateway.Execute(ctx, entity.NewInvite(entity.Coord{X: 0, Y: 0}, entity.PlayerX, opponent.wallet.Address()), 5*luna)
	require.NoError(t, err)

	matches, err := opponent.gateway.Query(ctx, entity.GameByKey(host.wallet.Address(), opponent.wallet.Address()))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	view := tictactoe.Resolve(matches[0], opponent.wallet.Address(), tictactoe.Currency{BaseDenom: "uluna", Name: "Luna"})
	action, err := tictactoe.Move(view, entity.Coord{X: 1, Y: 1})
	require.NoError(t, err)

	info, err := opponent.gateway.Execute(ctx, action.Command, action.Stake)

	// Then: the accept settles on chain and the pool doubled
	require.NoError(t, err)
	assert.Positive(t, info.Height)

	matches, err = host.gateway.Query(ctx, entity.GamesByStatus(entity.StatusPlaying))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 10*luna, matches[0].Game.Prize.AmountOf("uluna"))
	assert.Equal(t, 5*luna, chain.Balance(opponent.wallet.Address()))
}

func TestNodeHandler_Errors(t *testing.T) {
	mock := clock.NewMock()
	chain := devnet.New(discardLogger(), mock, devnet.Config{
		ChainID:       testNetwork.ChainID,
		Contract:      testNetwork.Contract,
		AddressPrefix: testNetwork.AddressPrefix,
		BaseDenom:     testNetwork.BaseDenom,
	})

	mux := http.NewServeMux()
	NewNodeHandler(discardLogger(), chain).Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	lcd := ledger.NewLCD(discardLogger(), server.URL, server.Client())

	t.Run("Unknown transaction", func(t *testing.T) {
		_, err := lcd.TxInfo(context.Background(), "ABCDEF")

		assert.ErrorIs(t, err, apperror.ErrTxNotFound)
	})

	t.Run("Refused broadcast", func(t *testing.T) {
		// Given: a transaction for another chain
		key, err := wallet.GenerateKey()
		require.NoError(t, err)
		local, err := wallet.NewLocal(discardLogger(), key, "terra", lcd, nil)
		require.NoError(t, err)

		// When: broadcasting it through the LCD
		_, err = local.SignAndBroadcast(context.Background(), entity.Tx{
			ChainID:  "columbus-5",
			Sender:   local.Address(),
			Contract: testNetwork.Contract,
			Msg:      entity.NewReject(true, local.Address()),
		})

		// Then: it is reported as a failed broadcast
		assert.ErrorIs(t, err, apperror.ErrBroadcastFailed)
	})

	t.Run("Unknown contract", func(t *testing.T) {
		_, err := lcd.QueryGames(context.Background(), "terra1other", entity.AllGames())

		assert.Error(t, err)
	})
}
