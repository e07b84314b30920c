package admin_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/service/admin"
	"github.com/samandarerkinov/torthouse/internal/service/transport"
	"github.com/samandarerkinov/torthouse/internal/storage/memory"
)

// stubPublisher запоминает опубликованные смены статусов.
type stubPublisher struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (p *stubPublisher) PublishStatusChanged(order domain.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
}

func (p *stubPublisher) published() []domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Order(nil), p.orders...)
}

type adminEnv struct {
	svc       *admin.Service
	orders    domain.OrderRepository
	users     domain.UserRepository
	recorder  *transport.Recorder
	publisher *stubPublisher
}

func newAdminEnv(t *testing.T) *adminEnv {
	t.Helper()

	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()
	recorder := transport.NewRecorder()
	publisher := &stubPublisher{}

	return &adminEnv{
		svc:       admin.NewService(orders, users, recorder, publisher, nil, []string{"admin-1"}),
		orders:    orders,
		users:     users,
		recorder:  recorder,
		publisher: publisher,
	}
}

func (e *adminEnv) seedOrder(t *testing.T, id string, status domain.OrderStatus) {
	t.Helper()
	require.NoError(t, e.orders.Create(domain.Order{
		ID:           id,
		UserID:       "user-1",
		UserName:     "Ali Valiyev",
		Phone:        "+998901234567",
		DeliveryType: domain.DeliveryTypePickup,
		BranchID:     "b_uychi",
		Lines: map[string]domain.LineItem{
			"p1": {Kind: domain.LineKindProduct, ProductID: "p1", NameUz: "Shokoladli tort", Price: 120000, Qty: 1},
		},
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}))
}

func TestUpdateOrderStatus_HappyPath(t *testing.T) {
	env := newAdminEnv(t)
	env.seedOrder(t, "#002", domain.OrderStatusReceived)

	updated, err := env.svc.UpdateOrderStatus(context.Background(), "admin-1", "#002", domain.OrderStatusPreparing)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPreparing, updated.Status)

	stored, err := env.orders.Get("#002")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPreparing, stored.Status)

	// Владелец заказа получает уведомление о смене статуса.
	notifications := env.recorder.MessagesTo("user-1")
	require.Len(t, notifications, 1)
	require.Contains(t, notifications[0].Text, "#002")

	published := env.publisher.published()
	require.Len(t, published, 1)
	require.Equal(t, "#002", published[0].ID)
}

func TestUpdateOrderStatus_NotAdmin(t *testing.T) {
	env := newAdminEnv(t)
	env.seedOrder(t, "#001", domain.OrderStatusReceived)

	_, err := env.svc.UpdateOrderStatus(context.Background(), "user-1", "#001", domain.OrderStatusPreparing)
	require.ErrorIs(t, err, domain.ErrNotAdmin)

	stored, err := env.orders.Get("#001")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusReceived, stored.Status)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	env := newAdminEnv(t)
	env.seedOrder(t, "#001", domain.OrderStatusReceived)

	_, err := env.svc.UpdateOrderStatus(context.Background(), "admin-1", "#001", domain.OrderStatus("shipped"))
	require.ErrorIs(t, err, domain.ErrStatusUnknown)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	env := newAdminEnv(t)

	_, err := env.svc.UpdateOrderStatus(context.Background(), "admin-1", "#404", domain.OrderStatusPreparing)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatus_Regress(t *testing.T) {
	env := newAdminEnv(t)
	env.seedOrder(t, "#001", domain.OrderStatusDelivered)

	_, err := env.svc.UpdateOrderStatus(context.Background(), "admin-1", "#001", domain.OrderStatusPreparing)
	require.ErrorIs(t, err, domain.ErrStatusRegress)

	stored, err := env.orders.Get("#001")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusDelivered, stored.Status)
}

func TestListOrders_RequiresAdmin(t *testing.T) {
	env := newAdminEnv(t)
	env.seedOrder(t, "#001", domain.OrderStatusReceived)

	_, err := env.svc.ListOrders("user-1")
	require.ErrorIs(t, err, domain.ErrNotAdmin)

	orders, err := env.svc.ListOrders("admin-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestIsAdmin(t *testing.T) {
	env := newAdminEnv(t)

	require.True(t, env.svc.IsAdmin("admin-1"))
	require.False(t, env.svc.IsAdmin("user-1"))
}
