package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ledger/internal/entity"
)

const appConfigKey = "app_config"

var ErrAppConfigNotFound = errors.New("app config not found")

type AppConfigRepository interface {
	Get(ctx context.Context) (*entity.AppConfig, error)
	Save(ctx context.Context, config *entity.AppConfig) error
	// Load returns the stored config when its storage version matches defaults,
	// otherwise it stores and returns defaults.
	Load(ctx context.Context, defaults entity.AppConfig) (*entity.AppConfig, error)
}

type dbAppConfig struct {
	client *redis.Client
}

func NewAppConfigRepository(client *redis.Client) AppConfigRepository {
	return &dbAppConfig{
		client: client,
	}
}

func (that *dbAppConfig) Get(ctx context.Context) (*entity.AppConfig, error) {
	response, err := that.client.Get(ctx, appConfigKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAppConfigNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get app config: %w", err)
	}

	var config entity.AppConfig
	if err = json.Unmarshal([]byte(response), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config: %w", err)
	}

	return &config, nil
}

func (that *dbAppConfig) Save(ctx context.Context, config *entity.AppConfig) error {
	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err = that.client.Set(ctx, appConfigKey, configJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set app config: %w", err)
	}

	return nil
}

func (that *dbAppConfig) Load(ctx context.Context, defaults entity.AppConfig) (*entity.AppConfig, error) {
	stored, err := that.Get(ctx)

	switch {
	case err == nil && stored.StorageVersion == defaults.StorageVersion:
		return stored, nil
	case err != nil && !errors.Is(err, ErrAppConfigNotFound):
		return nil, err
	}

	if err = that.Save(ctx, &defaults); err != nil {
		return nil, err
	}

	return &defaults, nil
}
