package dispatch

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/messaging/kafka"
	"github.com/samandarerkinov/torthouse/internal/metrics"
)

// EventPublisher публикует события заказов во внешнюю шину.
type EventPublisher interface {
	PublishOrderEvent(event *kafka.OrderEvent) error
}

// Dispatcher рассылает оформленные заказы администраторам и в канал заказов.
// Доставка best-effort: отказ одного получателя не блокирует остальных.
type Dispatcher struct {
	messenger domain.Messenger
	catalog   *catalog.Catalog
	adminIDs  []string
	channelID string
	publisher EventPublisher
	metrics   *metrics.BotMetrics
	logger    *log.Entry

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// Config — зависимости и адресаты диспетчера.
type Config struct {
	Messenger domain.Messenger
	Catalog   *catalog.Catalog
	AdminIDs  []string
	// ChannelID — необязательный канал заказов; пустая строка отключает.
	ChannelID string
	// Publisher — необязательный издатель событий; nil отключает публикацию.
	Publisher EventPublisher
	Metrics   *metrics.BotMetrics
}

// New создаёт диспетчер заказов.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		messenger: cfg.Messenger,
		catalog:   cfg.Catalog,
		adminIDs:  cfg.AdminIDs,
		channelID: cfg.ChannelID,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    log.WithField("component", "order-dispatcher"),
	}
}

// DispatchAsync отправляет уведомления о заказе в фоне.
// Во время shutdown новые отправки не стартуют.
func (d *Dispatcher) DispatchAsync(order domain.Order) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WithField("order_id", order.ID).Warn("order dispatch skipped during shutdown")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		d.Dispatch(context.Background(), order)
	}()
}

// Dispatch синхронно рассылает заказ всем адресатам и публикует событие.
func (d *Dispatcher) Dispatch(ctx context.Context, order domain.Order) {
	details := d.RenderOrderDetails(order, domain.LangUz)

	recipients := make([]string, 0, len(d.adminIDs)+1)
	recipients = append(recipients, d.adminIDs...)
	if d.channelID != "" {
		recipients = append(recipients, d.channelID)
	}

	for _, recipientID := range recipients {
		if err := d.messenger.SendMessage(ctx, recipientID, details, nil); err != nil {
			if d.metrics != nil {
				d.metrics.RecordDispatchFailure()
			}
			d.logger.WithError(err).WithFields(log.Fields{
				"order_id":  order.ID,
				"recipient": recipientID,
			}).Error("failed to deliver order notification")
			continue
		}
		d.sendCustomPhotos(ctx, recipientID, order)
	}

	d.publishEvent(kafka.NewOrderEvent(
		kafka.EventTypeOrderCreated, order.ID, order.UserID,
		string(order.Status), orderTotal(order),
	))
}

// PublishStatusChanged публикует событие смены статуса заказа.
func (d *Dispatcher) PublishStatusChanged(order domain.Order) {
	d.publishEvent(kafka.NewOrderEvent(
		kafka.EventTypeOrderStatusChanged, order.ID, order.UserID,
		string(order.Status), orderTotal(order),
	))
}

func (d *Dispatcher) publishEvent(event *kafka.OrderEvent) {
	if d.publisher == nil {
		return
	}
	if err := d.publisher.PublishOrderEvent(event); err != nil {
		d.logger.WithError(err).WithField("order_id", event.OrderID).Error("failed to publish order event")
		return
	}
	if d.metrics != nil {
		d.metrics.RecordEventPublished()
	}
}

// sendCustomPhotos отправляет фото индивидуальных позиций отдельными сообщениями.
func (d *Dispatcher) sendCustomPhotos(ctx context.Context, recipientID string, order domain.Order) {
	for _, line := range order.Lines {
		if line.Kind != domain.LineKindCustom || line.PhotoRef == "" {
			continue
		}
		caption := fmt.Sprintf("%s — %s", order.ID, truncate(line.Desc, 100))
		if err := d.messenger.SendPhoto(ctx, recipientID, line.PhotoRef, caption); err != nil {
			d.logger.WithError(err).WithFields(log.Fields{
				"order_id":  order.ID,
				"recipient": recipientID,
			}).Warn("failed to deliver custom order photo")
		}
	}
}

// Shutdown ожидает завершения фоновых рассылок.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	waitDone := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func orderTotal(order domain.Order) int64 {
	var total int64
	for _, line := range order.Lines {
		if line.Kind == domain.LineKindProduct {
			total += line.Price * int64(line.Qty)
		}
	}
	return total
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
