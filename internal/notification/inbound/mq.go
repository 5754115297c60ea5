package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/goroutine"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/messaging"
	"github.com/finsetu/backend/internal/pkg/uid"
	"github.com/finsetu/backend/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name         string
		topic        string // destination where publisher sent message
		consumerName string // nsq channel / nats queue group / kafka group / pubsub subscription
		handler      messaging.Handler
	}{
		{
			name:         event.OtpIssuedConsumerNotification,
			topic:        event.OtpIssuedDestination,
			consumerName: event.OtpIssuedConsumerNotification,
			handler:      mqHandler.OtpIssuedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.consumerName),
					messaging.WithQueueGroup(consumer.consumerName),
					messaging.WithGroup(consumer.consumerName),
					messaging.WithSubscription(consumer.consumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
