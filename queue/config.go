package queue

import (
	"github.com/spf13/viper"
)

// Config sqs event source configuration
type Config struct {
	Region            string `mapstructure:"region"`
	Profile           string `mapstructure:"profile"`
	QueueURL          string `mapstructure:"queueUrl"`
	WaitTimeSeconds   int64  `mapstructure:"waitTimeSeconds"`
	MaxMessages       int64  `mapstructure:"maxMessages"`
	VisibilityTimeout int64  `mapstructure:"visibilityTimeout"`
}

// InitConfig initialize sqs configuration. A nil config means the queue
// source is disabled.
func InitConfig() (*Config, error) {
	subv := viper.Sub("sqs")
	if subv == nil {
		return nil, nil
	}
	config := &Config{}
	if err := subv.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.QueueURL == "" {
		return nil, nil
	}
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.Profile == "" {
		config.Profile = "default"
	}
	if config.WaitTimeSeconds <= 0 || config.WaitTimeSeconds > 20 {
		config.WaitTimeSeconds = 20
	}
	if config.MaxMessages <= 0 || config.MaxMessages > 10 {
		config.MaxMessages = 10
	}
	return config, nil
}
