package domain

import "context"

// Messenger — порт исходящей доставки сообщений. Реализуется транспортным
// слоем (telegram-клиентом); ядро знает только про текст, клавиатуру и фото.
type Messenger interface {
	// SendMessage отправляет текст с необязательной клавиатурой.
	SendMessage(ctx context.Context, recipientID, text string, kb *Keyboard) error
	// SendPhoto отправляет изображение по транспортной ссылке с подписью.
	SendPhoto(ctx context.Context, recipientID, photoRef, caption string) error
}

// PhoneValidator проверяет правдоподобность международного номера.
type PhoneValidator interface {
	Valid(phone string) bool
}

// ImageChecker проверяет, что URL указывает на изображение.
// Ошибка проверки не фатальна: фото просто не отправляется.
type ImageChecker interface {
	IsImage(ctx context.Context, url string) bool
}
