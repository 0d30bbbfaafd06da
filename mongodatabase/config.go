package mongodatabase

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DBConfig configuration for db
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	DBName          string        `mapstructure:"dbName"`
	ConnectAttempts int           `mapstructure:"connectAttempts"`
	RetryInterval   time.Duration `mapstructure:"retryInterval"`
}

// InitConfig initialize mongo configuration
func InitConfig() (*DBConfig, error) {
	dbconfig := &DBConfig{}
	subv := viper.Sub("mongodatabase")
	if subv == nil {
		return nil, errors.New("missing mongodatabase configuration")
	}
	if err := subv.Unmarshal(&dbconfig); err != nil {
		return nil, err
	}
	if dbconfig.ConnectAttempts <= 0 {
		dbconfig.ConnectAttempts = 10
	}
	if dbconfig.RetryInterval <= 0 {
		dbconfig.RetryInterval = 2 * time.Second
	}
	return dbconfig, nil
}
