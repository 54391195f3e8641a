package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/ledger"
)

// NetworkConnector opens network: the signing context for it and the node serving it.
type NetworkConnector func(ctx context.Context, network entity.Network) (*ledger.NetworkContext, ledger.Node, error)

type networkGatewayDep interface {
	Network() *ledger.NetworkContext
	SwitchNetwork(network *ledger.NetworkContext, node ledger.Node)
}

type appConfigRepoDep interface {
	Get(ctx context.Context) (*entity.AppConfig, error)
	Save(ctx context.Context, config *entity.AppConfig) error
}

// NetworkSwitcher moves the client to another configured network and remembers the choice.
type NetworkSwitcher struct {
	logger    *slog.Logger
	gateway   networkGatewayDep
	appConfig appConfigRepoDep
	connect   NetworkConnector
	notifier  Notifier
	networks  []entity.Network
}

func NewNetworkSwitcher(
	logger *slog.Logger,
	gateway networkGatewayDep,
	appConfig appConfigRepoDep,
	connect NetworkConnector,
	notifier Notifier,
	networks []entity.Network,
) *NetworkSwitcher {
	return &NetworkSwitcher{
		logger:    logger.With("component", "network_switcher"),
		gateway:   gateway,
		appConfig: appConfig,
		connect:   connect,
		notifier:  notifier,
		networks:  networks,
	}
}

// Networks returns the selectable networks in configured order.
func (that *NetworkSwitcher) Networks() []entity.Network {
	return slices.Clone(that.networks)
}

// Switch connects to the network called name, stores it as the active one and hands it to the gateway.
func (that *NetworkSwitcher) Switch(ctx context.Context, name string) error {
	err := that.switchTo(ctx, name)
	if err != nil {
		that.logger.Warn("network not switched", "network", name, "error", err)
		that.notifier.Notify(Notification{Level: LevelError, Message: err.Error()})
	}

	return err
}

func (that *NetworkSwitcher) switchTo(ctx context.Context, name string) error {
	index := slices.IndexFunc(that.networks, func(network entity.Network) bool {
		return network.Name == name
	})
	if index < 0 {
		return fmt.Errorf("%w: %s", apperror.ErrUnknownNetwork, name)
	}

	target := that.networks[index]
	if target.Contract == "" {
		return fmt.Errorf("%w: %s", apperror.ErrNoContract, name)
	}

	if that.gateway.Network().Network == target {
		that.notifier.Notify(Notification{Level: LevelInfo, Message: "Already on " + target.Name})
		return nil
	}

	networkContext, node, err := that.connect(ctx, target)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %w", target.Name, err)
	}

	stored, err := that.appConfig.Get(ctx)
	if err != nil {
		return err
	}

	stored.Network = target
	stored.ConnectedWallet = networkContext.IsConnected()

	if err = that.appConfig.Save(ctx, stored); err != nil {
		return err
	}

	that.gateway.SwitchNetwork(networkContext, node)
	that.notifier.Notify(Notification{Level: LevelSuccess, Message: "Switched to " + target.Name})

	return nil
}
