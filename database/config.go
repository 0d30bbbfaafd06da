package database

import (
	"time"

	"github.com/spf13/viper"
)

// Config database configuration
type Config struct {
	Master *DBConfig `mapstructure:"master"`
}

// DBConfig configuration for db
type DBConfig struct {
	Type         string        `mapstructure:"type"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	DBName       string        `mapstructure:"dbName"`
	UserName     string        `mapstructure:"userName"`
	Password     string        `mapstructure:"password"`
	MaxLifetime  time.Duration `mapstructure:"maxLifetime"`
	MaxOpenConns int           `mapstructure:"maxOpenConns"`
	MaxIdleConns int           `mapstructure:"maxIdleConns"`
}

// InitConfig initialize database configuration. The section is optional,
// a nil config means no SQL database is used.
func InitConfig() (*Config, error) {
	subv := viper.Sub("database")
	if subv == nil {
		return nil, nil
	}
	config := &Config{}
	if err := subv.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.Master == nil || config.Master.Host == "" {
		return nil, nil
	}
	if config.Master.Type == "" {
		config.Master.Type = "mysql"
	}
	return config, nil
}
