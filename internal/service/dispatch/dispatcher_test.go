package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/messaging/kafka"
	"github.com/samandarerkinov/torthouse/internal/service/dispatch"
	"github.com/samandarerkinov/torthouse/internal/service/transport"
)

// stubEventPublisher собирает события вместо отправки в Kafka.
type stubEventPublisher struct {
	mu     sync.Mutex
	events []*kafka.OrderEvent
	err    error
}

func (p *stubEventPublisher) PublishOrderEvent(event *kafka.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *stubEventPublisher) published() []*kafka.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*kafka.OrderEvent(nil), p.events...)
}

func testOrder() domain.Order {
	return domain.Order{
		ID:           "#007",
		UserID:       "user-1",
		UserName:     "Ali Valiyev",
		Phone:        "+998901234567",
		DeliveryType: domain.DeliveryTypePickup,
		BranchID:     "b_uychi",
		Lines: map[string]domain.LineItem{
			"p1": {Kind: domain.LineKindProduct, ProductID: "p1", NameUz: "Shokoladli tort", Price: 120000, Qty: 2},
			"custom_1": {Kind: domain.LineKindCustom, Desc: "tort bilan gul", Qty: 1,
				PhotoRef: "photo-file-id"},
		},
		Status:    domain.OrderStatusReceived,
		CreatedAt: time.Date(2025, 3, 8, 14, 30, 0, 0, time.UTC),
	}
}

func TestDispatch_DeliversToAdminsAndChannel(t *testing.T) {
	recorder := transport.NewRecorder()
	d := dispatch.New(dispatch.Config{
		Messenger: recorder,
		Catalog:   catalog.Default(),
		AdminIDs:  []string{"admin-1", "admin-2"},
		ChannelID: "channel-1",
	})

	d.Dispatch(context.Background(), testOrder())

	for _, recipient := range []string{"admin-1", "admin-2", "channel-1"} {
		messages := recorder.MessagesTo(recipient)
		require.Len(t, messages, 2, "recipient %s", recipient)
		require.Contains(t, messages[0].Text, "#007")
		require.Contains(t, messages[0].Text, "Ali Valiyev")
		require.Equal(t, "photo-file-id", messages[1].PhotoRef)
	}
}

func TestDispatch_PartialFailure(t *testing.T) {
	recorder := transport.NewRecorder()
	recorder.FailFor["admin-2"] = errors.New("blocked")

	d := dispatch.New(dispatch.Config{
		Messenger: recorder,
		Catalog:   catalog.Default(),
		AdminIDs:  []string{"admin-1", "admin-2"},
		ChannelID: "channel-1",
	})

	d.Dispatch(context.Background(), testOrder())

	require.NotEmpty(t, recorder.MessagesTo("admin-1"))
	require.Empty(t, recorder.MessagesTo("admin-2"))
	require.NotEmpty(t, recorder.MessagesTo("channel-1"))
}

func TestDispatch_PublishesOrderCreated(t *testing.T) {
	recorder := transport.NewRecorder()
	publisher := &stubEventPublisher{}

	d := dispatch.New(dispatch.Config{
		Messenger: recorder,
		Catalog:   catalog.Default(),
		AdminIDs:  []string{"admin-1"},
		Publisher: publisher,
	})

	d.Dispatch(context.Background(), testOrder())

	events := publisher.published()
	require.Len(t, events, 1)
	require.Equal(t, kafka.EventTypeOrderCreated, events[0].EventType)
	require.Equal(t, "#007", events[0].OrderID)
	require.Equal(t, int64(240000), events[0].Total)
}

func TestPublishStatusChanged(t *testing.T) {
	publisher := &stubEventPublisher{}
	d := dispatch.New(dispatch.Config{
		Messenger: transport.NewRecorder(),
		Catalog:   catalog.Default(),
		Publisher: publisher,
	})

	order := testOrder()
	order.Status = domain.OrderStatusPreparing
	d.PublishStatusChanged(order)

	events := publisher.published()
	require.Len(t, events, 1)
	require.Equal(t, kafka.EventTypeOrderStatusChanged, events[0].EventType)
	require.Equal(t, string(domain.OrderStatusPreparing), events[0].Status)
}

func TestDispatchAsync_ShutdownWaits(t *testing.T) {
	recorder := transport.NewRecorder()
	d := dispatch.New(dispatch.Config{
		Messenger: recorder,
		Catalog:   catalog.Default(),
		AdminIDs:  []string{"admin-1"},
	})

	d.DispatchAsync(testOrder())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	require.NotEmpty(t, recorder.MessagesTo("admin-1"))

	// После shutdown новые рассылки не стартуют.
	d.DispatchAsync(testOrder())
	require.Len(t, recorder.MessagesTo("admin-1"), 2)
}

func TestRenderOrderDetails(t *testing.T) {
	d := dispatch.New(dispatch.Config{
		Messenger: transport.NewRecorder(),
		Catalog:   catalog.Default(),
	})

	details := d.RenderOrderDetails(testOrder(), domain.LangUz)

	require.Contains(t, details, "#007")
	require.Contains(t, details, "Ali Valiyev")
	require.Contains(t, details, "+998901234567")
	require.Contains(t, details, "Shokoladli tort")
	require.Contains(t, details, "240000")
	require.Contains(t, details, "Uychi filiali")
	require.Contains(t, details, "08.03.2025 14:30")
}
