package i18n_test

import (
	"strings"
	"testing"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

func TestT_BothLanguages(t *testing.T) {
	uz := i18n.T(i18n.KeyOrderSent, domain.LangUz)
	ru := i18n.T(i18n.KeyOrderSent, domain.LangRu)

	if uz == "" || ru == "" {
		t.Fatal("expected non-empty messages")
	}
	if uz == ru {
		t.Fatal("expected distinct translations")
	}
}

func TestT_UnknownKeyFallsBackToKey(t *testing.T) {
	got := i18n.T(i18n.Key("no_such_key"), domain.LangUz)
	if got != "no_such_key" {
		t.Fatalf("expected key itself, got %q", got)
	}
}

func TestTF_Substitutes(t *testing.T) {
	got := i18n.TF(i18n.KeyStatusChanged, domain.LangUz, map[string]string{
		"id":     "#007",
		"status": "Tayyorlanmoqda",
	})

	if !strings.Contains(got, "#007") {
		t.Fatalf("expected order id substituted, got %q", got)
	}
	if strings.Contains(got, "{id}") {
		t.Fatalf("placeholder left unsubstituted: %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusReceived, domain.OrderStatusPreparing, domain.OrderStatusDelivered,
	} {
		if i18n.StatusLabel(status, domain.LangUz) == "" {
			t.Fatalf("expected label for %s", status)
		}
		if i18n.StatusLabel(status, domain.LangRu) == "" {
			t.Fatalf("expected ru label for %s", status)
		}
	}
}
