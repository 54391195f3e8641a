package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/config"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/console"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/devnet"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/wallet"
	"github.com/rocketscienceinc/tictactoe-ledger/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ledger/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// node is what the client needs from a ledger: reads plus a broadcast endpoint for the wallet.
type node interface {
	ledger.Node
	wallet.Broadcaster
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	appConfigRepo := repository.NewAppConfigRepository(redisStorage.Connection)

	network, err := activeNetwork(ctx, log, conf, appConfigRepo)
	if err != nil {
		return err
	}

	log.Info("Using network", "network", network.Name, "chain_id", network.ChainID, "contract", network.Contract)

	mux := http.NewServeMux()
	prompter := console.TerminalPrompter{}
	ledgerNodes := &nodes{logger: logger, conf: conf, mux: mux}

	connect := func(_ context.Context, network entity.Network) (*ledger.NetworkContext, ledger.Node, error) {
		ledgerNode, err := ledgerNodes.get(network)
		if err != nil {
			return nil, nil, err
		}

		networkContext, err := connectWallet(logger, conf, network, ledgerNode, prompter)
		if err != nil {
			return nil, nil, err
		}

		return networkContext, ledgerNode, nil
	}

	networkContext, ledgerNode, err := connect(ctx, network)
	if err != nil {
		return err
	}

	gateway := ledger.NewGateway(logger, networkContext, ledgerNode, ledger.WithPollPolicy(ledger.PollPolicy{
		FastInterval: conf.Poll.FastInterval,
		FastWindow:   conf.Poll.FastWindow,
		SlowInterval: conf.Poll.SlowInterval,
		Deadline:     conf.Poll.Deadline,
	}))

	pendingRepo := repository.NewPendingRepository(redisStorage.Connection, func() string {
		return gateway.Network().Network.ChainID
	})
	locker := repository.NewRedisLocker(logger, redisStorage.Connection, conf.LockTTL)
	notifier := console.NewNotifier(os.Stdout)

	lobby := usecase.NewLobby(logger, gateway, pendingRepo, locker, notifier)
	switcher := usecase.NewNetworkSwitcher(logger, gateway, appConfigRepo, connect, notifier, conf.Selectable())
	rest.NewGamesHandler(logger, lobby, gateway, pendingRepo).Register(mux)
	websocket.New(logger, gateway, clock.New(), conf.WatchInterval).Register(mux)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return rest.Start(groupCtx, logger, conf.HTTPPort, mux)
	})

	if conf.Interactive {
		newSession := func(key entity.GameKey, presenter usecase.Presenter) console.Session {
			return usecase.NewGameSession(logger, gateway, pendingRepo, locker, notifier, presenter, key)
		}

		group.Go(func() error {
			defer cancel()
			return console.New(logger, os.Stdout, prompter, notifier, lobby, switcher, newSession).Run(groupCtx)
		})
	}

	if err = group.Wait(); err != nil {
		return fmt.Errorf("application stopped: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// activeNetwork is the network the user last switched to, with its details taken from config.yml.
// A stored choice that is no longer configured falls back to the configured network.
func activeNetwork(ctx context.Context, log *slog.Logger, conf *config.Config, repo repository.AppConfigRepository) (entity.Network, error) {
	appConfig, err := repo.Load(ctx, conf.Defaults())
	if err != nil {
		return entity.Network{}, fmt.Errorf("could not load app config: %w", err)
	}

	network, ok := conf.Lookup(appConfig.Network.Name)
	if !ok {
		log.Warn("Stored network is no longer configured, using the default", "stored", appConfig.Network.Name)
		network = conf.Network.Entity()
	}

	if network != appConfig.Network {
		appConfig.Network = network
		if err = repo.Save(ctx, appConfig); err != nil {
			return entity.Network{}, fmt.Errorf("could not save app config: %w", err)
		}
	}

	return network, nil
}

// nodes hands out the node for a network. With the devnet enabled, the configured network is
// served in-process and shared on mux; every other network goes to its LCD.
type nodes struct {
	logger *slog.Logger
	conf   *config.Config
	mux    *http.ServeMux
	devnet *devnet.Chain
}

func (that *nodes) get(network entity.Network) (node, error) {
	if !that.conf.Devnet.Enabled || network.ChainID != that.conf.Network.ChainID {
		return ledger.NewLCD(that.logger, network.URL, http.DefaultClient), nil
	}

	if that.devnet != nil {
		return that.devnet, nil
	}

	faucet, err := entity.ParseAmount(that.conf.Devnet.Faucet)
	if err != nil {
		return nil, fmt.Errorf("invalid devnet faucet: %w", err)
	}

	that.devnet = devnet.New(that.logger, clock.New(), devnet.Config{
		ChainID:       network.ChainID,
		Contract:      network.Contract,
		AddressPrefix: network.AddressPrefix,
		BaseDenom:     network.BaseDenom,
		IndexDelay:    that.conf.Devnet.IndexDelay,
		Faucet:        faucet,
	})
	// routes are registered once, the chain outlives network switches
	rest.NewNodeHandler(that.logger, that.devnet).Register(that.mux)

	return that.devnet, nil
}

// connectWallet opens the configured wallet for network; without a key the client only spectates.
func connectWallet(
	logger *slog.Logger,
	conf *config.Config,
	network entity.Network,
	broadcaster wallet.Broadcaster,
	prompter console.Prompter,
) (*ledger.NetworkContext, error) {
	networkContext := &ledger.NetworkContext{Network: network}

	if conf.Wallet.PrivateKey == "" {
		logger.Warn("No wallet configured, games are read-only")
		return networkContext, nil
	}

	var approve wallet.Approver
	if conf.Wallet.RequireApproval && conf.Interactive {
		approve = console.Approver(prompter, network.CurrencyName, network.BaseDenom)
	}

	local, err := wallet.NewLocal(logger, conf.Wallet.PrivateKey, network.AddressPrefix, broadcaster, approve)
	if err != nil {
		return nil, fmt.Errorf("could not open wallet: %w", err)
	}

	logger.Info("Wallet connected", "address", local.Address())
	networkContext.Wallet = local

	return networkContext, nil
}
