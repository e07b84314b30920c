package domain

// KeyboardKind определяет способ отрисовки клавиатуры транспортом.
type KeyboardKind string

const (
	// KeyboardInline — кнопки под сообщением, нажатие приходит как callback-токен.
	KeyboardInline KeyboardKind = "inline"
	// KeyboardReply — кнопки вместо системной клавиатуры, нажатие приходит текстом.
	KeyboardReply KeyboardKind = "reply"
	// KeyboardRemove — убрать клавиатуру.
	KeyboardRemove KeyboardKind = "remove"
)

// Button — одна кнопка клавиатуры.
type Button struct {
	Label string
	// Action — callback-токен для inline-кнопок; для reply-кнопок пусто.
	Action string
	// RequestContact/RequestLocation просят транспорт запросить у пользователя
	// контакт или геопозицию.
	RequestContact  bool
	RequestLocation bool
}

// Keyboard — описание клавиатуры, построчно.
type Keyboard struct {
	Kind KeyboardKind
	Rows [][]Button
}

// Reply — одна исходящая инструкция отрисовки для транспортного слоя.
type Reply struct {
	RecipientID string
	Text        string
	Keyboard    *Keyboard
	// PhotoRef — транспортная ссылка на изображение; если задана,
	// Text используется как подпись.
	PhotoRef string
}

// NewInlineKeyboard собирает inline-клавиатуру из рядов кнопок.
func NewInlineKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Kind: KeyboardInline, Rows: rows}
}

// NewReplyKeyboard собирает reply-клавиатуру из рядов кнопок.
func NewReplyKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Kind: KeyboardReply, Rows: rows}
}

// RemoveKeyboard просит транспорт скрыть клавиатуру.
func RemoveKeyboard() *Keyboard {
	return &Keyboard{Kind: KeyboardRemove}
}
