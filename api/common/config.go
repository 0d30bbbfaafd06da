package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config api configuration
type Config struct {
	Port           int           `mapstructure:"port"`
	ProxyCount     int           `mapstructure:"proxyCount"`
	MaxContentSize int64         `mapstructure:"maxContentSize"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	DebugEndpoints bool          `mapstructure:"debugEndpoints"`
}

// InitConfig initialize api configuration
func InitConfig() (*Config, error) {
	config := &Config{Port: 8080, MaxContentSize: 1, ReadTimeout: 30, WriteTimeout: 30}
	if subv := viper.Sub("api"); subv != nil {
		if err := subv.Unmarshal(&config); err != nil {
			return nil, err
		}
	}
	return config, nil
}
