// Пакет kafka — публикация событий о созданных заказах.
// Оформление заказа не зависит от Kafka: ошибки публикации учитываются
// в метриках и логе, но наружу не поднимаются.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/kursovoi/storefront/internal/domain"
	"github.com/kursovoi/storefront/internal/ports"
	"github.com/kursovoi/storefront/pkg/metrics"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// writer — минимальный контракт над kafka.Writer для подмены в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher — обёртка над kafka.Writer.
type Publisher struct {
	writer       writer
	topic        string
	writeTimeout time.Duration
	log          ports.Logger
	closeOnce    sync.Once
}

func NewPublisher(cfg PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}

	return &Publisher{
		writer:       w,
		topic:        cfg.Topic,
		writeTimeout: wt,
		log:          log,
	}
}

// PublishOrderPlaced — JSON-событие с ключом userID (события одного
// пользователя попадают в одну партицию и сохраняют порядок).
func (p *Publisher) PublishOrderPlaced(ctx context.Context, ev domain.OrderPlacedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		metrics.OrderEvents.WithLabelValues("failed").Inc()
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctxTimeout, kafka.Message{
		Key:   []byte(strconv.Itoa(ev.UserID)),
		Value: payload,
	})
	if err != nil {
		metrics.OrderEvents.WithLabelValues("failed").Inc()
		p.log.Warnf(ctx, "publish order event failed user=%d product=%d: %v", ev.UserID, ev.ProductID, err)
		return err
	}

	metrics.OrderEvents.WithLabelValues("ok").Inc()
	return nil
}

func (p *Publisher) Close() error {
	var err error
	p.closeOnce.Do(func() { err = p.writer.Close() })
	return err
}

// Noop — заглушка на случай выключенной Kafka.
type Noop struct{}

func (Noop) PublishOrderPlaced(context.Context, domain.OrderPlacedEvent) error { return nil }
func (Noop) Close() error                                                      { return nil }
