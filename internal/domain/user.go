package domain

// Lang — язык интерфейса пользователя.
type Lang string

const (
	// LangUz — узбекский интерфейс (значение по умолчанию для новых пользователей).
	LangUz Lang = "uz"
	// LangRu — русский интерфейс.
	LangRu Lang = "ru"
)

// OrDefault возвращает uz, если язык ещё не выбран.
func (l Lang) OrDefault() Lang {
	if l != LangUz && l != LangRu {
		return LangUz
	}
	return l
}

// UserProfile агрегирует постоянные данные пользователя.
// Создаётся при первом контакте с пустыми полями и никогда не удаляется.
type UserProfile struct {
	ID             string
	Lang           Lang
	Name           string
	Phone          string
	Address        string
	SelectedBranch string
	// OrderIDs — идентификаторы заказов в порядке оформления (append-only).
	OrderIDs []string
}
