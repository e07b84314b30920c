package transport

import (
	"context"
	"sync"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// SentMessage — одно зафиксированное исходящее сообщение.
type SentMessage struct {
	RecipientID string
	Text        string
	Keyboard    *domain.Keyboard
	PhotoRef    string
}

// Recorder — конфигурируемая реализация Messenger, которая фиксирует
// исходящие сообщения вместо реальной отправки. Используется в тестах
// и при локальном запуске без транспортного канала.
type Recorder struct {
	mu       sync.Mutex
	messages []SentMessage

	// FailFor содержит получателей, доставка которым завершается ошибкой.
	FailFor map[string]error
}

// NewRecorder возвращает recorder с успешной доставкой по умолчанию.
func NewRecorder() *Recorder {
	return &Recorder{FailFor: make(map[string]error)}
}

// SendMessage фиксирует текстовое сообщение.
func (r *Recorder) SendMessage(ctx context.Context, recipientID, text string, kb *domain.Keyboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailFor[recipientID]; ok {
		return err
	}
	r.messages = append(r.messages, SentMessage{
		RecipientID: recipientID,
		Text:        text,
		Keyboard:    kb,
	})
	return nil
}

// SendPhoto фиксирует сообщение с изображением.
func (r *Recorder) SendPhoto(ctx context.Context, recipientID, photoRef, caption string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.FailFor[recipientID]; ok {
		return err
	}
	r.messages = append(r.messages, SentMessage{
		RecipientID: recipientID,
		Text:        caption,
		PhotoRef:    photoRef,
	})
	return nil
}

// Messages возвращает копию всех зафиксированных сообщений.
func (r *Recorder) Messages() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]SentMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

// MessagesTo возвращает сообщения, адресованные конкретному получателю.
func (r *Recorder) MessagesTo(recipientID string) []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []SentMessage
	for _, msg := range r.messages {
		if msg.RecipientID == recipientID {
			out = append(out, msg)
		}
	}
	return out
}

var _ domain.Messenger = (*Recorder)(nil)
