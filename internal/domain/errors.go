package domain

import "errors"

var (
	// Ошибки валидации пользовательского ввода: состояние диалога не продвигается,
	// пользователю повторяется тот же запрос.
	ErrInvalidPhone    = errors.New("phone number is not a plausible international number")
	ErrNameTooShort    = errors.New("name must be at least 2 characters")
	ErrAddressTooShort = errors.New("address must be at least 5 characters")
	ErrTextEmpty       = errors.New("text is empty after sanitization")
	ErrLocationInvalid = errors.New("location is out of valid lat/lon range")
	// ErrCartEmpty возвращается при попытке оформить заказ с пустой корзиной.
	ErrCartEmpty = errors.New("cart is empty")

	// Ошибки отсутствующих сущностей (устаревшие кнопки, неизвестные id).
	ErrProductNotFound = errors.New("product not found")
	ErrBranchNotFound  = errors.New("branch not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrLineNotFound    = errors.New("cart line not found")

	// Ошибки инвариантов заказа.
	ErrOrderUserRequired    = errors.New("order user_id is required")
	ErrOrderNameRequired    = errors.New("order customer name is required")
	ErrOrderPhoneRequired   = errors.New("order customer phone is required")
	ErrOrderAddressRequired = errors.New("delivery order requires an address")
	ErrOrderBranchRequired  = errors.New("pickup order requires a branch")
	ErrDeliveryTypeUnknown  = errors.New("unknown delivery type")
	ErrStatusUnknown        = errors.New("unknown order status")
	// ErrStatusRegress — попытка перевести заказ на более ранний статус.
	ErrStatusRegress = errors.New("order status can only move forward")
	// ErrOrderExists — заказ с таким номером уже сохранён.
	ErrOrderExists = errors.New("order already exists")

	// Ошибки позиций корзины.
	ErrLineQtyInvalid      = errors.New("line qty must be at least 1")
	ErrLineProductRequired = errors.New("product line requires product id")
	ErrLineDescRequired    = errors.New("custom line requires description")

	// ErrMissingCheckoutData — контактные данные потерялись до фиксации заказа;
	// диалог возвращается к сбору имени вместо создания неполного заказа.
	ErrMissingCheckoutData = errors.New("checkout is missing collected name or phone")

	// ErrNotAdmin возвращается для команд персонала от постороннего пользователя.
	ErrNotAdmin = errors.New("user is not in the admin allow-list")
)

// IsValidation сообщает, относится ли ошибка к локально восстановимым
// ошибкам ввода: диалог повторяет тот же вопрос.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrNameTooShort),
		errors.Is(err, ErrAddressTooShort),
		errors.Is(err, ErrTextEmpty),
		errors.Is(err, ErrLocationInvalid),
		errors.Is(err, ErrCartEmpty),
		errors.Is(err, ErrLineQtyInvalid),
		errors.Is(err, ErrLineDescRequired):
		return true
	}
	return false
}

// IsNotFound сообщает, указывает ли ошибка на отсутствующую сущность.
func IsNotFound(err error) bool {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrBranchNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrLineNotFound):
		return true
	}
	return false
}
