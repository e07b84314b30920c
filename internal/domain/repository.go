package domain

// UserRepository хранит профили пользователей.
type UserRepository interface {
	// Get возвращает профиль. Для незнакомого id возвращается пустой профиль
	// с заполненным ID — первое обращение и есть регистрация.
	Get(userID string) (UserProfile, error)
	// Save перезаписывает профиль целиком.
	Save(profile UserProfile) error
}

// CartRepository хранит корзины. Отсутствующая корзина эквивалентна пустой.
type CartRepository interface {
	Get(userID string) (Cart, error)
	// Save перезаписывает корзину целиком; пустая корзина допустима.
	Save(cart Cart) error
}

// SessionRepository хранит состояние диалога и черновые данные оформления.
type SessionRepository interface {
	// Get возвращает сессию; для незнакомого id — сессию в состоянии Idle.
	Get(userID string) (Session, error)
	Save(session Session) error
	// Delete сбрасывает диалог в исходное состояние.
	Delete(userID string) error
}

// OrderRepository хранит оформленные заказы.
type OrderRepository interface {
	// Create сохраняет новый заказ или возвращает ErrOrderExists.
	Create(order Order) error
	// Get возвращает заказ по номеру или ErrOrderNotFound.
	Get(orderID string) (Order, error)
	// List возвращает все заказы, новые первыми.
	List() ([]Order, error)
	// ListByUser возвращает заказы пользователя, новые первыми.
	ListByUser(userID string) ([]Order, error)
	// UpdateStatus меняет статус заказа; только вперёд.
	UpdateStatus(orderID string, status OrderStatus) (Order, error)
}

// OrderCounter выдаёт сквозные номера заказов.
type OrderCounter interface {
	// Next атомарно увеличивает счётчик и возвращает новое значение.
	// Два конкурентных вызова никогда не получают одинаковый номер.
	Next() (int64, error)
}
