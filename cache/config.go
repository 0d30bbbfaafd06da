package cache

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config redis cache configuration
type Config struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// InitConfig initialize cache configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("cache")
	if subv == nil {
		return nil, errors.New("missing cache configuration")
	}
	err := subv.Unmarshal(&config)
	return config, err
}
