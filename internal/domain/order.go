package domain

import (
	"fmt"
	"time"
)

// OrderStatus описывает жизненный цикл заказа после оформления.
type OrderStatus string

const (
	// OrderStatusReceived — заказ принят, ждёт обработки персоналом.
	OrderStatusReceived OrderStatus = "received"
	// OrderStatusPreparing — заказ готовится.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusDelivered — заказ выдан или доставлен.
	OrderStatusDelivered OrderStatus = "delivered"
)

// statusRank задаёт порядок статусов: переходы допустимы только вперёд.
var statusRank = map[OrderStatus]int{
	OrderStatusReceived:  0,
	OrderStatusPreparing: 1,
	OrderStatusDelivered: 2,
}

// ValidStatus сообщает, известен ли статус.
func ValidStatus(s OrderStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition проверяет, что новый статус не откатывает заказ назад.
func CanTransition(from, to OrderStatus) bool {
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank >= fromRank
}

// DeliveryType — способ получения заказа.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Location — геоточка, присланная пользователем при доставке.
type Location struct {
	Lat float64
	Lon float64
}

// Valid проверяет координаты на допустимые диапазоны.
func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lon >= -180 && l.Lon <= 180
}

// Order — зафиксированный заказ. Все поля, кроме Status, неизменяемы:
// контактные данные копируются из профиля в момент оформления и не
// меняются задним числом.
type Order struct {
	ID           string
	UserID       string
	UserName     string
	Phone        string
	Address      string
	Location     *Location
	DeliveryType DeliveryType
	// BranchID обязателен для самовывоза; для доставки — необязательный контекст.
	BranchID  string
	Lines     map[string]LineItem
	Status    OrderStatus
	CreatedAt time.Time
}

// FormatOrderID превращает значение счётчика в человекочитаемый номер (#007).
func FormatOrderID(counter int64) string {
	return fmt.Sprintf("#%03d", counter)
}

// CloneLines возвращает копию позиций заказа.
func (o *Order) CloneLines() map[string]LineItem {
	lines := make(map[string]LineItem, len(o.Lines))
	for key, line := range o.Lines {
		lines[key] = line
	}
	return lines
}

// ValidateInvariants проверяет инварианты заказа перед сохранением.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.UserID == "" {
		errs = append(errs, ErrOrderUserRequired)
	}
	if o.UserName == "" {
		errs = append(errs, ErrOrderNameRequired)
	}
	if o.Phone == "" {
		errs = append(errs, ErrOrderPhoneRequired)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrCartEmpty)
	}
	if !ValidStatus(o.Status) {
		errs = append(errs, ErrStatusUnknown)
	}
	switch o.DeliveryType {
	case DeliveryTypePickup:
		if o.BranchID == "" {
			errs = append(errs, ErrOrderBranchRequired)
		}
	case DeliveryTypeDelivery:
		if o.Address == "" {
			errs = append(errs, ErrOrderAddressRequired)
		}
	default:
		errs = append(errs, ErrDeliveryTypeUnknown)
	}
	if o.Location != nil && !o.Location.Valid() {
		errs = append(errs, ErrLocationInvalid)
	}
	for _, line := range o.Lines {
		if line.Qty < 1 {
			errs = append(errs, ErrLineQtyInvalid)
		}
	}

	return errs
}
