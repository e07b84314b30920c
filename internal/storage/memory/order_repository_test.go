package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/storage/memory"
)

func newOrder(id string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:           id,
		UserID:       "user-1",
		UserName:     "Ali Valiyev",
		Phone:        "+998901234567",
		DeliveryType: domain.DeliveryTypePickup,
		BranchID:     "b_uychi",
		Lines: map[string]domain.LineItem{
			"p1": {Kind: domain.LineKindProduct, ProductID: "p1", NameUz: "Shokoladli tort", Price: 120000, Qty: 2},
		},
		Status:    domain.OrderStatusReceived,
		CreatedAt: createdAt,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("#001", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID {
		t.Fatalf("expected id %s, got %s", order.ID, stored.ID)
	}
	if stored.Lines["p1"].Price != 120000 {
		t.Fatalf("expected price 120000, got %d", stored.Lines["p1"].Price)
	}
	if stored.Lines["p1"].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", stored.Lines["p1"].Qty)
	}
}

func TestOrderRepository_CreateDuplicate(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("#001", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(order); !errors.Is(err, domain.ErrOrderExists) {
		t.Fatalf("expected ErrOrderExists, got %v", err)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	if _, err := repo.Get("#404"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	repo := memory.NewOrderRepository()
	base := time.Now().UTC()

	for i, id := range []string{"#001", "#002", "#003"} {
		order := newOrder(id, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(order); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}

	orders, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "#003" || orders[2].ID != "#001" {
		t.Fatalf("expected newest first, got %s..%s", orders[0].ID, orders[2].ID)
	}
}

func TestOrderRepository_ListByUser(t *testing.T) {
	repo := memory.NewOrderRepository()
	now := time.Now().UTC()

	mine := newOrder("#001", now)
	if err := repo.Create(mine); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other := newOrder("#002", now.Add(time.Minute))
	other.UserID = "user-2"
	if err := repo.Create(other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	orders, err := repo.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "#001" {
		t.Fatalf("expected only #001, got %v", orders)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("#001", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := repo.UpdateStatus("#001", domain.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != domain.OrderStatusPreparing {
		t.Fatalf("expected preparing, got %s", updated.Status)
	}

	if _, err := repo.UpdateStatus("#404", domain.OrderStatusPreparing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("#001", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get("#001")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	stored.Lines["hacked"] = domain.LineItem{Kind: domain.LineKindCustom, Desc: "x", Qty: 1}

	again, err := repo.Get("#001")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(again.Lines) != 1 {
		t.Fatalf("stored order mutated through returned copy: %d lines", len(again.Lines))
	}
}
