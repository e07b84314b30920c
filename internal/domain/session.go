package domain

import "time"

// ConversationState — состояние диалога одного пользователя.
type ConversationState string

const (
	// StateIdle — терминальное состояние; любая точка входа стартует отсюда.
	StateIdle ConversationState = "idle"

	// Ветка индивидуального заказа.
	StateAwaitingCustomText  ConversationState = "awaiting_custom_text"
	StateAwaitingCustomPhoto ConversationState = "awaiting_custom_photo"

	// Ветка оформления с доставкой.
	StateAwaitingName     ConversationState = "awaiting_name"
	StateAwaitingPhone    ConversationState = "awaiting_phone"
	StateAwaitingAddress  ConversationState = "awaiting_address"
	StateAwaitingLocation ConversationState = "awaiting_location"

	// Ветка самовывоза.
	StateAwaitingPickupName   ConversationState = "awaiting_pickup_name"
	StateAwaitingPickupPhone  ConversationState = "awaiting_pickup_phone"
	StateAwaitingPickupBranch ConversationState = "awaiting_pickup_branch"
)

// ValidState сообщает, известно ли состояние диалога.
func ValidState(s ConversationState) bool {
	switch s {
	case StateIdle,
		StateAwaitingCustomText, StateAwaitingCustomPhoto,
		StateAwaitingName, StateAwaitingPhone, StateAwaitingAddress, StateAwaitingLocation,
		StateAwaitingPickupName, StateAwaitingPickupPhone, StateAwaitingPickupBranch:
		return true
	}
	return false
}

// Session хранит состояние диалога и черновые данные оформления.
// Черновик живёт только до фиксации заказа или отмены; лучшие из собранных
// значений (имя, телефон, адрес) инкрементально копируются и в профиль.
type Session struct {
	UserID string
	State  ConversationState

	// Черновик оформления.
	Flow     DeliveryType
	Name     string
	Phone    string
	Address  string
	Location *Location

	// Черновик индивидуального заказа.
	CustomText string

	// Текущий выбор товара до добавления в корзину.
	PendingProductID string
	PendingQty       int32

	UpdatedAt time.Time
}

// NewSession возвращает сессию в исходном состоянии.
func NewSession(userID string) Session {
	return Session{UserID: userID, State: StateIdle}
}

// ResetScratch очищает черновые данные, не трогая идентификатор.
// Вызывается при отмене и после фиксации заказа.
func (s *Session) ResetScratch() {
	s.State = StateIdle
	s.Flow = ""
	s.Name = ""
	s.Phone = ""
	s.Address = ""
	s.Location = nil
	s.CustomText = ""
	s.PendingProductID = ""
	s.PendingQty = 0
}
