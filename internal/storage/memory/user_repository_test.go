package memory_test

import (
	"testing"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/storage/memory"
)

func TestUserRepository_GetUnknownReturnsEmptyProfile(t *testing.T) {
	repo := memory.NewUserRepository()

	profile, err := repo.Get("user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.ID != "user-1" {
		t.Fatalf("expected id user-1, got %q", profile.ID)
	}
	if profile.Name != "" || len(profile.OrderIDs) != 0 {
		t.Fatalf("expected empty profile, got %+v", profile)
	}
}

func TestUserRepository_SaveRoundTrip(t *testing.T) {
	repo := memory.NewUserRepository()

	profile := domain.UserProfile{
		ID:             "user-1",
		Lang:           domain.LangRu,
		Name:           "Ali Valiyev",
		Phone:          "+998901234567",
		Address:        "Namangan, Uychi ko'chasi 5",
		SelectedBranch: "b_uychi",
		OrderIDs:       []string{"#001", "#002"},
	}
	if err := repo.Save(profile); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := repo.Get("user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Lang != domain.LangRu || stored.Phone != profile.Phone {
		t.Fatalf("round trip mismatch: %+v", stored)
	}
	if len(stored.OrderIDs) != 2 || stored.OrderIDs[1] != "#002" {
		t.Fatalf("order ids lost: %v", stored.OrderIDs)
	}
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewUserRepository()

	if err := repo.Save(domain.UserProfile{ID: "user-1", OrderIDs: []string{"#001"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stored, err := repo.Get("user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	stored.OrderIDs[0] = "#999"

	again, err := repo.Get("user-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.OrderIDs[0] != "#001" {
		t.Fatalf("stored profile mutated through returned copy: %v", again.OrderIDs)
	}
}
