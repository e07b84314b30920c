package catalog_test

import (
	"errors"
	"testing"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
)

func TestDefault_Lookups(t *testing.T) {
	cat := catalog.Default()

	if len(cat.Products()) == 0 {
		t.Fatal("expected products in default catalog")
	}
	if len(cat.Branches()) == 0 {
		t.Fatal("expected branches in default catalog")
	}

	product, err := cat.Product("p1")
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if product.Price <= 0 {
		t.Fatalf("expected positive price, got %d", product.Price)
	}

	branch, err := cat.Branch("b_uychi")
	if err != nil {
		t.Fatalf("branch lookup failed: %v", err)
	}
	if branch.MapURL == "" {
		t.Fatal("expected map url on branch")
	}
}

func TestLookup_NotFound(t *testing.T) {
	cat := catalog.Default()

	if _, err := cat.Product("nope"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := cat.Branch("nope"); !errors.Is(err, domain.ErrBranchNotFound) {
		t.Fatalf("expected ErrBranchNotFound, got %v", err)
	}
}

func TestName_ByLang(t *testing.T) {
	cat := catalog.Default()

	product, err := cat.Product("p1")
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if product.Name(domain.LangUz) == product.Name(domain.LangRu) {
		t.Fatal("expected different names per language")
	}
}
