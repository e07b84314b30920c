package transport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samandarerkinov/torthouse/internal/service/transport"
)

func TestRecorder_RecordsMessages(t *testing.T) {
	r := transport.NewRecorder()
	ctx := context.Background()

	if err := r.SendMessage(ctx, "user-1", "salom", nil); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := r.SendPhoto(ctx, "user-1", "photo-1", "caption"); err != nil {
		t.Fatalf("send photo failed: %v", err)
	}

	messages := r.MessagesTo("user-1")
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Text != "salom" {
		t.Fatalf("unexpected text: %q", messages[0].Text)
	}
	if messages[1].PhotoRef != "photo-1" {
		t.Fatalf("unexpected photo ref: %q", messages[1].PhotoRef)
	}
}

func TestRecorder_FailFor(t *testing.T) {
	r := transport.NewRecorder()
	wantErr := errors.New("blocked")
	r.FailFor["user-2"] = wantErr

	err := r.SendMessage(context.Background(), "user-2", "salom", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected configured error, got %v", err)
	}
	if len(r.Messages()) != 0 {
		t.Fatalf("failed delivery must not be recorded")
	}
}
