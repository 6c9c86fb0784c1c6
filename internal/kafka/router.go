package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	"usersvc/internal/config"
	"usersvc/internal/logging"
)

// Router consumes the users topic. The only handler today logs the decoded
// envelope; downstream projections hang off here.
type Router struct {
	router *message.Router
}

func NewRouter(
	ctx context.Context,
	cfg config.KafkaConfig,
	baseLogger logging.Logger,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	usersTopic := cfg.TopicPrefix + "users"
	logger := baseLogger.With("component", "kafka_router")

	router.AddHandler(
		"user-events-handler",
		usersTopic,
		subscriber,
		"",  // no output topic, side effects only
		nil, // no publisher
		func(msg *message.Message) ([]*message.Message, error) {
			var env Envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				logger.Error("failed to decode envelope",
					"topic", usersTopic,
					"uuid", msg.UUID,
					"error", err,
				)
				return nil, nil // malformed message, drop it
			}

			logger.Info("user event received",
				"topic", usersTopic,
				"type", env.Type,
				"message_id", env.MessageID,
				"correlation_id", env.CorrelationID,
			)
			return nil, nil
		},
	)

	return &Router{router: router}, nil
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

func (r *Router) Close(ctx context.Context) error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}
