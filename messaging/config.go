package messaging

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config push transports configuration. Unset transports are disabled.
type Config struct {
	FCM     *FCMConfig     `mapstructure:"fcm"`
	APNS    *APNSConfig    `mapstructure:"apns"`
	WebPush *WebPushConfig `mapstructure:"webpush"`
}

type FCMConfig struct {
	ProjectID       string `mapstructure:"projectId"`
	CredentialsFile string `mapstructure:"credentialsFile"`
}

type APNSConfig struct {
	KeyFile    string `mapstructure:"keyFile"`
	KeyID      string `mapstructure:"keyId"`
	TeamID     string `mapstructure:"teamId"`
	Topic      string `mapstructure:"topic"`
	Production bool   `mapstructure:"production"`
}

type WebPushConfig struct {
	Subscriber      string `mapstructure:"subscriber"`
	VAPIDPublicKey  string `mapstructure:"vapidPublicKey"`
	VAPIDPrivateKey string `mapstructure:"vapidPrivateKey"`
	TTL             int    `mapstructure:"ttl"`
}

// InitConfig initialize push configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("push")
	if subv == nil {
		return nil, errors.New("missing push configuration")
	}
	err := subv.Unmarshal(&config)
	return config, err
}
