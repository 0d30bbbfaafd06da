package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/TestingSDK2/marketplace-notifier/cache"
)

const defaultFanoutConcurrency = 10

// Config app configuration
type Config struct {
	// FanoutConcurrency bounds the per-seller jobs of one trigger.
	FanoutConcurrency    int           `mapstructure:"fanoutConcurrency"`
	EventClaimTTL        time.Duration `mapstructure:"eventClaimTTL"`
	DisableChangeStreams bool          `mapstructure:"disableChangeStreams"`
	RealtimePublish      bool          `mapstructure:"realtimePublish"`
}

// InitConfig initialize app configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	if subv := viper.Sub("app"); subv != nil {
		if err := subv.Unmarshal(&config); err != nil {
			return nil, err
		}
	}
	if config.FanoutConcurrency <= 0 {
		config.FanoutConcurrency = defaultFanoutConcurrency
	}
	if config.EventClaimTTL <= 0 {
		config.EventClaimTTL = cache.Expire24HR
	}
	return config, nil
}
