package conversation_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
	"github.com/samandarerkinov/torthouse/internal/service/cart"
	"github.com/samandarerkinov/torthouse/internal/service/conversation"
	"github.com/samandarerkinov/torthouse/internal/storage/memory"
	"github.com/samandarerkinov/torthouse/internal/validate"
)

// stubDispatcher записывает переданные в отправку заказы.
type stubDispatcher struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (d *stubDispatcher) DispatchAsync(order domain.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, order)
}

func (d *stubDispatcher) RenderOrderDetails(order domain.Order, lang domain.Lang) string {
	return "order " + order.ID
}

func (d *stubDispatcher) dispatched() []domain.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Order(nil), d.orders...)
}

type env struct {
	engine     *conversation.Engine
	users      domain.UserRepository
	sessions   domain.SessionRepository
	orders     domain.OrderRepository
	cart       *cart.Service
	dispatcher *stubDispatcher
}

func newEnv(t *testing.T) *env {
	t.Helper()

	users := memory.NewUserRepository()
	sessions := memory.NewSessionRepository()
	orders := memory.NewOrderRepository()
	cartSvc := cart.NewService(memory.NewCartRepository(), catalog.Default())
	dispatcher := &stubDispatcher{}

	engine := conversation.NewEngine(conversation.Config{
		Users:      users,
		Sessions:   sessions,
		Cart:       cartSvc,
		Orders:     orders,
		Counter:    memory.NewOrderCounter(),
		Catalog:    catalog.Default(),
		Phones:     validate.NewPhoneValidator(),
		Dispatcher: dispatcher,
		Now:        func() time.Time { return time.Date(2025, 3, 8, 14, 30, 0, 0, time.UTC) },
		Location:   time.UTC,
	})

	return &env{
		engine:     engine,
		users:      users,
		sessions:   sessions,
		orders:     orders,
		cart:       cartSvc,
		dispatcher: dispatcher,
	}
}

// repliesText склеивает тексты ответов для проверки содержимого.
func repliesText(replies []domain.Reply) string {
	var b strings.Builder
	for _, r := range replies {
		b.WriteString(r.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (e *env) state(t *testing.T, userID string) domain.ConversationState {
	t.Helper()
	session, err := e.sessions.Get(userID)
	require.NoError(t, err)
	return session.State
}

func TestEngine_PickupScenario(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "setqty_p1_2")
	env.engine.OnCallback(ctx, userID, "addcart_p1")
	env.engine.OnCallback(ctx, userID, "addcart_p2")

	current, err := env.cart.Get(userID)
	require.NoError(t, err)
	require.Len(t, current.Lines, 2)
	require.Equal(t, int32(2), current.Lines["p1"].Qty)
	require.Equal(t, int32(1), current.Lines["p2"].Qty)

	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_pickup")
	require.Equal(t, domain.StateAwaitingPickupName, env.state(t, userID))

	env.engine.OnUserText(ctx, userID, "Ali Valiyev")
	require.Equal(t, domain.StateAwaitingPickupPhone, env.state(t, userID))

	env.engine.OnUserText(ctx, userID, "+998901234567")
	require.Equal(t, domain.StateAwaitingPickupBranch, env.state(t, userID))

	replies := env.engine.OnCallback(ctx, userID, "pickup_branch_b_uychi")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyOrderSent, domain.LangUz))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	require.Equal(t, "#001", order.ID)
	require.Equal(t, userID, order.UserID)
	require.Equal(t, "Ali Valiyev", order.UserName)
	require.Equal(t, "+998901234567", order.Phone)
	require.Equal(t, domain.DeliveryTypePickup, order.DeliveryType)
	require.Equal(t, "b_uychi", order.BranchID)
	require.Equal(t, domain.OrderStatusReceived, order.Status)
	require.Len(t, order.Lines, 2)

	current, err = env.cart.Get(userID)
	require.NoError(t, err)
	require.True(t, current.IsEmpty())

	require.Equal(t, domain.StateIdle, env.state(t, userID))

	profile, err := env.users.Get(userID)
	require.NoError(t, err)
	require.Equal(t, []string{"#001"}, profile.OrderIDs)

	dispatched := env.dispatcher.dispatched()
	require.Len(t, dispatched, 1)
	require.Equal(t, "#001", dispatched[0].ID)
}

func TestEngine_DeliveryScenarioWithLocation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "addcart_p3")
	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_delivery")

	env.engine.OnUserText(ctx, userID, "Ali Valiyev")
	env.engine.OnUserText(ctx, userID, "+998901234567")
	require.Equal(t, domain.StateAwaitingAddress, env.state(t, userID))

	env.engine.OnUserText(ctx, userID, "Namangan, Uychi ko'chasi 5")
	require.Equal(t, domain.StateAwaitingLocation, env.state(t, userID))

	replies := env.engine.OnUserLocation(ctx, userID, 41.004512, 71.672301)
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyOrderSent, domain.LangUz))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	require.Equal(t, domain.DeliveryTypeDelivery, order.DeliveryType)
	require.Equal(t, "Namangan, Uychi ko'chasi 5", order.Address)
	require.NotNil(t, order.Location)
	require.InDelta(t, 41.004512, order.Location.Lat, 1e-9)
	require.InDelta(t, 71.672301, order.Location.Lon, 1e-9)
}

func TestEngine_DeliverySkipLocation(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "addcart_p1")
	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_delivery")
	env.engine.OnUserText(ctx, userID, "Ali Valiyev")
	env.engine.OnUserText(ctx, userID, "+998901234567")
	env.engine.OnUserText(ctx, userID, "Namangan, Uychi ko'chasi 5")

	replies := env.engine.OnUserText(ctx, userID, i18n.T(i18n.KeySkipLocation, domain.LangUz))
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyOrderSent, domain.LangUz))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Nil(t, orders[0].Location)
}

func TestEngine_InvalidPhoneStaysInState(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "addcart_p1")
	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_pickup")
	env.engine.OnUserText(ctx, userID, "Ali Valiyev")

	replies := env.engine.OnUserText(ctx, userID, "abc")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyInvalidPhone, domain.LangUz))
	require.Equal(t, domain.StateAwaitingPickupPhone, env.state(t, userID))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestEngine_ContactSharesPhone(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "addcart_p1")
	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_pickup")
	env.engine.OnUserText(ctx, userID, "Ali Valiyev")

	env.engine.OnUserContact(ctx, userID, "998901234567")
	require.Equal(t, domain.StateAwaitingPickupBranch, env.state(t, userID))

	profile, err := env.users.Get(userID)
	require.NoError(t, err)
	require.Equal(t, "998901234567", profile.Phone)
}

func TestEngine_EmptyCartCheckout(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	replies := env.engine.OnCallback(ctx, "user-1", "checkout")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyCartEmpty, domain.LangUz))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestEngine_PickupCommitWithoutNameReroutes(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	_, err := env.cart.AddProduct(userID, "p1", 1)
	require.NoError(t, err)
	require.NoError(t, env.sessions.Save(domain.Session{
		UserID: userID,
		State:  domain.StateAwaitingPickupBranch,
		Flow:   domain.DeliveryTypePickup,
	}))

	replies := env.engine.OnCallback(ctx, userID, "pickup_branch_b_uychi")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyMissingPickup, domain.LangUz))
	require.Equal(t, domain.StateAwaitingPickupName, env.state(t, userID))

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestEngine_MenuCancelsFlow(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "addcart_p1")
	env.engine.OnCallback(ctx, userID, "checkout")
	env.engine.OnCallback(ctx, userID, "checkout_delivery")
	env.engine.OnUserText(ctx, userID, "Ali Valiyev")
	require.Equal(t, domain.StateAwaitingPhone, env.state(t, userID))

	env.engine.OnCallback(ctx, userID, "menu")
	require.Equal(t, domain.StateIdle, env.state(t, userID))

	// Корзина отмену переживает.
	current, err := env.cart.Get(userID)
	require.NoError(t, err)
	require.False(t, current.IsEmpty())
}

func TestEngine_LanguageSwitch(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "lang_ru")

	profile, err := env.users.Get(userID)
	require.NoError(t, err)
	require.Equal(t, domain.LangRu, profile.Lang)

	replies := env.engine.OnCallback(ctx, userID, "checkout")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyCartEmpty, domain.LangRu))
}

func TestEngine_CustomOrderFlow(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	const userID = "user-1"

	env.engine.OnCallback(ctx, userID, "start_custom")
	require.Equal(t, domain.StateAwaitingCustomText, env.state(t, userID))

	env.engine.OnUserText(ctx, userID, "3 kishilik shokoladli tort, gul bilan")
	require.Equal(t, domain.StateAwaitingCustomPhoto, env.state(t, userID))

	replies := env.engine.OnUserPhoto(ctx, userID, "photo-file-id")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyPhotoAdded, domain.LangUz))
	require.Equal(t, domain.StateIdle, env.state(t, userID))

	current, err := env.cart.Get(userID)
	require.NoError(t, err)
	require.Len(t, current.Lines, 1)
	for key, line := range current.Lines {
		require.True(t, strings.HasPrefix(key, "custom_"))
		require.Equal(t, domain.LineKindCustom, line.Kind)
		require.Equal(t, "photo-file-id", line.PhotoRef)
	}
}

func TestEngine_UnknownCallbackRejected(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	replies := env.engine.OnCallback(ctx, "user-1", "bogus_token")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyInvalidInput, domain.LangUz))
}

func TestEngine_ConcurrentCheckoutsUniqueIDs(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", idx)
			env.engine.OnCallback(ctx, userID, "addcart_p1")
			env.engine.OnCallback(ctx, userID, "checkout")
			env.engine.OnCallback(ctx, userID, "checkout_pickup")
			env.engine.OnUserText(ctx, userID, "Ali Valiyev")
			env.engine.OnUserText(ctx, userID, "+998901234567")
			env.engine.OnCallback(ctx, userID, "pickup_branch_b_uychi")
		}(i)
	}
	wg.Wait()

	orders, err := env.orders.List()
	require.NoError(t, err)
	require.Len(t, orders, n)

	seen := make(map[string]bool, n)
	for _, order := range orders {
		require.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}
	require.True(t, seen["#001"])
	require.True(t, seen[fmt.Sprintf("#%03d", n)])
}

func TestDecrementUnknownLineKeepsCart(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	userID := "user-dec"

	env.engine.OnCallback(ctx, userID, "addcart_p1")

	replies := env.engine.OnCallback(ctx, userID, "dec_custom_missing")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyLineNotFound, domain.LangUz))
	require.NotContains(t, repliesText(replies), i18n.T(i18n.KeyTryAgain, domain.LangUz))

	replies = env.engine.OnCallback(ctx, userID, "rem_custom_missing")
	require.Contains(t, repliesText(replies), i18n.T(i18n.KeyLineNotFound, domain.LangUz))

	current, err := env.cart.Get(userID)
	require.NoError(t, err)
	require.Len(t, current.Lines, 1)
	require.Equal(t, domain.StateIdle, env.state(t, userID))
}
