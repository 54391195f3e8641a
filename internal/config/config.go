package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

// StorageVersion is bumped whenever the persisted app config changes shape.
const StorageVersion = 1

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort  string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	// Interactive runs the terminal client next to the HTTP server.
	Interactive bool    `yaml:"interactive" env:"INTERACTIVE" env-default:"true"`
	Redis       Redis   `yaml:"redis"`
	Network     Network `yaml:"network"`
	// Networks lists further networks the user may switch to.
	Networks []Network `yaml:"networks"`
	Wallet   Wallet    `yaml:"wallet"`
	Poll     Poll      `yaml:"poll"`
	Devnet   Devnet    `yaml:"devnet"`
	// WatchInterval is how often a WebSocket watcher's game is fetched again.
	WatchInterval time.Duration `yaml:"watch-interval" env:"WATCH_INTERVAL" env-default:"5s"`
	// LockTTL bounds how long a submission lock survives its process; keep it above Poll.Deadline.
	LockTTL time.Duration `yaml:"lock-ttl" env:"LOCK_TTL" env-default:"70m"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Network struct {
	Name          string `yaml:"name" env:"NETWORK_NAME" env-default:"localterra"`
	ChainID       string `yaml:"chain-id" env:"NETWORK_CHAIN_ID" env-default:"localterra"`
	URL           string `yaml:"url" env:"NETWORK_URL" env-default:"http://localhost:1317"`
	Contract      string `yaml:"contract" env:"NETWORK_CONTRACT"`
	AddressPrefix string `yaml:"address-prefix" env:"NETWORK_ADDRESS_PREFIX" env-default:"terra"`
	BaseDenom     string `yaml:"base-denom" env:"NETWORK_BASE_DENOM" env-default:"uluna"`
	CurrencyName  string `yaml:"currency-name" env:"NETWORK_CURRENCY_NAME" env-default:"Luna"`
}

type Wallet struct {
	// PrivateKey is hex encoded; empty runs the client without a wallet.
	PrivateKey      string `yaml:"private-key" env:"WALLET_PRIVATE_KEY"`
	RequireApproval bool   `yaml:"require-approval" env:"WALLET_REQUIRE_APPROVAL" env-default:"true"`
}

type Poll struct {
	FastInterval time.Duration `yaml:"fast-interval" env:"POLL_FAST_INTERVAL" env-default:"500ms"`
	FastWindow   time.Duration `yaml:"fast-window" env:"POLL_FAST_WINDOW" env-default:"1m"`
	SlowInterval time.Duration `yaml:"slow-interval" env:"POLL_SLOW_INTERVAL" env-default:"10s"`
	Deadline     time.Duration `yaml:"deadline" env:"POLL_DEADLINE" env-default:"1h"`
}

// Devnet runs an in-process chain instead of talking to Network.URL.
type Devnet struct {
	Enabled    bool          `yaml:"enabled" env:"DEVNET_ENABLED" env-default:"false"`
	IndexDelay time.Duration `yaml:"index-delay" env:"DEVNET_INDEX_DELAY" env-default:"2s"`
	// Faucet is minted to every account the devnet sees for the first time, in display units.
	Faucet string `yaml:"faucet" env:"DEVNET_FAUCET" env-default:"100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Entity returns the network as the client persists and shares it.
func (that *Network) Entity() entity.Network {
	return entity.Network{
		Name:          that.Name,
		ChainID:       that.ChainID,
		URL:           that.URL,
		Contract:      that.Contract,
		AddressPrefix: that.AddressPrefix,
		BaseDenom:     that.BaseDenom,
		CurrencyName:  that.CurrencyName,
	}
}

// Selectable returns the configured network followed by Networks, first entry per name winning.
func (that *Config) Selectable() []entity.Network {
	networks := []entity.Network{that.Network.Entity()}
	seen := map[string]struct{}{that.Network.Name: {}}

	for _, network := range that.Networks {
		if _, ok := seen[network.Name]; ok {
			continue
		}

		seen[network.Name] = struct{}{}
		networks = append(networks, network.Entity())
	}

	return networks
}

// Lookup finds a selectable network by name.
func (that *Config) Lookup(name string) (entity.Network, bool) {
	for _, network := range that.Selectable() {
		if network.Name == name {
			return network, true
		}
	}

	return entity.Network{}, false
}

// Defaults is the app config a fresh install starts from.
func (that *Config) Defaults() entity.AppConfig {
	return entity.AppConfig{
		StorageVersion:  StorageVersion,
		Network:         that.Network.Entity(),
		ConnectedWallet: that.Wallet.PrivateKey != "",
	}
}
