package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"moderation-service/internal/config"
	"moderation-service/internal/repository/model"
)

const topic = "moderation-events"

const (
	caseCreatedEvent        = "case_created"
	caseUpdatedEvent        = "case_updated"
	caseExpiredEvent        = "case_expired"
	permissionsChangedEvent = "permissions_changed"
)

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      *kafka.Writer
}

func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig) Notifier {
	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       topic,
		Async:       true,
		Balancer:    &kafka.LeastBytes{},
		ErrorLogger: zap.NewStdLog(zap.L()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return &kafkaNotifier{
		logger: logger,
		w:      w,
	}
}

func (k *kafkaNotifier) CaseCreated(ctx context.Context, c *model.Case) error {
	return k.publish(ctx, caseCreatedEvent, c)
}

func (k *kafkaNotifier) CaseUpdated(ctx context.Context, c *model.Case) error {
	return k.publish(ctx, caseUpdatedEvent, c)
}

func (k *kafkaNotifier) CaseExpired(ctx context.Context, c *model.Case) error {
	return k.publish(ctx, caseExpiredEvent, c)
}

func (k *kafkaNotifier) PermissionsChanged(ctx context.Context, guildId string) error {
	return k.publish(ctx, permissionsChangedEvent, struct {
		GuildId string `json:"guildId"`
	}{GuildId: guildId})
}

func (k *kafkaNotifier) publish(ctx context.Context, eventType string, payload any) error {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := k.w.WriteMessages(ctx, kafka.Message{
		Value:   bytes,
		Headers: []kafka.Header{{Key: "X-Event-Type", Value: []byte(eventType)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
