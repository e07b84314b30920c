package validate

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// PhoneValidator проверяет номера через libphonenumber без привязки к региону:
// ожидается международный формат (+998…).
type PhoneValidator struct{}

// NewPhoneValidator возвращает валидатор телефонов.
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Valid сообщает, разбирается ли строка как правдоподобный международный номер.
func (v *PhoneValidator) Valid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}
	// Контакты из транспорта иногда приходят без плюса.
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	parsed, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

var _ domain.PhoneValidator = (*PhoneValidator)(nil)
