package queue

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/sirupsen/logrus"

	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/TestingSDK2/marketplace-notifier/util"
)

// EventHandler receives one decoded event.
type EventHandler func(ctx context.Context, event model.Event)

// Consumer long-polls an SQS queue of created-document events.
type Consumer struct {
	SQS     sqsiface.SQSAPI
	config  *Config
	handler EventHandler
}

// New opens an SQS session for the configured region and profile.
func New(config *Config, handler EventHandler) *Consumer {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(config.Region)},
		SharedConfigState: session.SharedConfigEnable,
		Profile:           config.Profile,
	}))
	return NewWithClient(sqs.New(sess), config, handler)
}

func NewWithClient(client sqsiface.SQSAPI, config *Config, handler EventHandler) *Consumer {
	return &Consumer{
		SQS:     client,
		config:  config,
		handler: handler,
	}
}

// Run polls until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	logger := logrus.WithField("queue", c.config.QueueURL)
	logger.Info("consuming events from sqs")
	for {
		if ctx.Err() != nil {
			logger.Info("sqs consumer stopped")
			return
		}
		if err := c.poll(ctx, logger); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("unable to receive messages")
			select {
			case <-ctx.Done():
			case <-time.After(5 * time.Second):
			}
		}
	}
}

func (c *Consumer) poll(ctx context.Context, logger logrus.FieldLogger) error {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.config.QueueURL),
		MaxNumberOfMessages: aws.Int64(c.config.MaxMessages),
		WaitTimeSeconds:     aws.Int64(c.config.WaitTimeSeconds),
	}
	if c.config.VisibilityTimeout > 0 {
		input.VisibilityTimeout = aws.Int64(c.config.VisibilityTimeout)
	}
	out, err := c.SQS.ReceiveMessageWithContext(ctx, input)
	if err != nil {
		return err
	}
	for _, msg := range out.Messages {
		c.handle(ctx, msg, logger)
	}
	return nil
}

// handle dispatches one message and always deletes it. Redelivery would
// send the same notifications twice.
func (c *Consumer) handle(ctx context.Context, msg *sqs.Message, logger logrus.FieldLogger) {
	logger = logger.WithField("message_id", aws.StringValue(msg.MessageId))
	func() {
		defer util.RecoverGoroutinePanic(nil)
		event, err := DecodeEvent([]byte(aws.StringValue(msg.Body)))
		if err != nil {
			logger.WithError(err).Error("dropping undecodable message")
			return
		}
		c.handler(ctx, event)
	}()

	_, err := c.SQS.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.config.QueueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		logger.WithError(err).Error("unable to delete message")
	}
}
