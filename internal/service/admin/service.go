package admin

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
	"github.com/samandarerkinov/torthouse/internal/metrics"
)

// StatusPublisher публикует смену статуса заказа во внешнюю шину.
type StatusPublisher interface {
	PublishStatusChanged(order domain.Order)
}

// Service — административные операции над заказами.
// Все методы сперва проверяют вызывающего по allow-list.
type Service struct {
	orders    domain.OrderRepository
	users     domain.UserRepository
	messenger domain.Messenger
	publisher StatusPublisher
	metrics   *metrics.BotMetrics
	adminIDs  map[string]struct{}
	logger    *log.Entry
}

// NewService создаёт административный сервис.
func NewService(
	orders domain.OrderRepository,
	users domain.UserRepository,
	messenger domain.Messenger,
	publisher StatusPublisher,
	botMetrics *metrics.BotMetrics,
	adminIDs []string,
) *Service {
	allow := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allow[id] = struct{}{}
	}
	return &Service{
		orders:    orders,
		users:     users,
		messenger: messenger,
		publisher: publisher,
		metrics:   botMetrics,
		adminIDs:  allow,
		logger:    log.WithField("component", "admin-service"),
	}
}

// IsAdmin сообщает, входит ли пользователь в allow-list.
func (s *Service) IsAdmin(userID string) bool {
	_, ok := s.adminIDs[userID]
	return ok
}

// ListOrders возвращает все заказы, новые впереди.
func (s *Service) ListOrders(callerID string) ([]domain.Order, error) {
	if !s.IsAdmin(callerID) {
		return nil, domain.ErrNotAdmin
	}
	return s.orders.List()
}

// UpdateOrderStatus переводит заказ в новый статус и уведомляет владельца.
// Откат статуса назад запрещён.
func (s *Service) UpdateOrderStatus(ctx context.Context, callerID, orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !s.IsAdmin(callerID) {
		return domain.Order{}, domain.ErrNotAdmin
	}
	if !domain.ValidStatus(status) {
		return domain.Order{}, domain.ErrStatusUnknown
	}

	current, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !domain.CanTransition(current.Status, status) {
		return domain.Order{}, domain.ErrStatusRegress
	}

	updated, err := s.orders.UpdateStatus(orderID, status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordStatusUpdate()
	}

	s.logger.WithFields(log.Fields{
		"order_id": orderID,
		"from":     current.Status,
		"to":       status,
		"admin_id": callerID,
	}).Info("order status updated")

	s.notifyOwner(ctx, updated)
	if s.publisher != nil {
		s.publisher.PublishStatusChanged(updated)
	}

	return updated, nil
}

// notifyOwner сообщает владельцу заказа о новом статусе на его языке.
// Отказ доставки не откатывает смену статуса.
func (s *Service) notifyOwner(ctx context.Context, order domain.Order) {
	profile, err := s.users.Get(order.UserID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to load order owner profile")
		profile = domain.UserProfile{ID: order.UserID}
	}
	lang := profile.Lang.OrDefault()

	text := i18n.TF(i18n.KeyStatusChanged, lang, map[string]string{
		"id":     order.ID,
		"status": i18n.StatusLabel(order.Status, lang),
	})
	if err := s.messenger.SendMessage(ctx, order.UserID, text, nil); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": order.ID,
			"user_id":  order.UserID,
		}).Warn("failed to notify order owner")
	}
}
