package catalog

import (
	"github.com/samandarerkinov/torthouse/internal/domain"
)

// Product — карточка товара из статического каталога.
type Product struct {
	ID     string
	NameUz string
	NameRu string
	// Price — цена в сумах.
	Price int64
	Photo string
}

// Name возвращает название на языке пользователя.
func (p Product) Name(lang domain.Lang) string {
	if lang == domain.LangRu {
		return p.NameRu
	}
	return p.NameUz
}

// Branch — филиал с адресом и картой.
type Branch struct {
	ID      string
	NameUz  string
	NameRu  string
	Address string
	Lat     float64
	Lon     float64
	MapURL  string
}

// Name возвращает название филиала на языке пользователя.
func (b Branch) Name(lang domain.Lang) string {
	if lang == domain.LangRu {
		return b.NameRu
	}
	return b.NameUz
}

// Catalog — справочник товаров и филиалов, только для чтения.
type Catalog struct {
	products  []Product
	branches  []Branch
	productBy map[string]Product
	branchBy  map[string]Branch
}

// New собирает каталог с индексами по id.
func New(products []Product, branches []Branch) *Catalog {
	c := &Catalog{
		products:  products,
		branches:  branches,
		productBy: make(map[string]Product, len(products)),
		branchBy:  make(map[string]Branch, len(branches)),
	}
	for _, p := range products {
		c.productBy[p.ID] = p
	}
	for _, b := range branches {
		c.branchBy[b.ID] = b
	}
	return c
}

// Products возвращает товары в порядке каталога.
func (c *Catalog) Products() []Product {
	return c.products
}

// Branches возвращает филиалы в порядке каталога.
func (c *Catalog) Branches() []Branch {
	return c.branches
}

// Product ищет товар по id.
func (c *Catalog) Product(id string) (Product, error) {
	p, ok := c.productBy[id]
	if !ok {
		return Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// Branch ищет филиал по id.
func (c *Catalog) Branch(id string) (Branch, error) {
	b, ok := c.branchBy[id]
	if !ok {
		return Branch{}, domain.ErrBranchNotFound
	}
	return b, nil
}

// Default возвращает каталог кондитерской: ассортимент и филиалы Наманганской области.
func Default() *Catalog {
	return New(
		[]Product{
			{ID: "p1", NameUz: "Shokoladli tort", NameRu: "Шоколадный торт", Price: 120000,
				Photo: "https://i.imgur.com/5z3X0aS.jpg"},
			{ID: "p2", NameUz: "Muzqaymoqli pirojnye", NameRu: "Пирожное с мороженым", Price: 25000,
				Photo: "https://i.imgur.com/8y6v7Xj.jpg"},
			{ID: "p3", NameUz: "Keks", NameRu: "Кекс", Price: 8000,
				Photo: "https://i.imgur.com/4k9p2Lm.jpg"},
		},
		[]Branch{
			{ID: "b_yangiq", NameUz: "Yangiqurgon filiali", NameRu: "Филиал Янгикургон",
				Address: "Yangiqurgon manzili", Lat: 41.0, Lon: 71.0, MapURL: "https://maps.google.com/?q=41,71"},
			{ID: "b_uychi", NameUz: "Uychi filiali", NameRu: "Филиал Уччи",
				Address: "Uychi manzili", Lat: 41.1, Lon: 71.1, MapURL: "https://maps.google.com/?q=41.1,71.1"},
			{ID: "b_chortoq", NameUz: "Chortoq markaziy filiali", NameRu: "Чартак центральный филиал",
				Address: "Chortoq manzili", Lat: 41.2, Lon: 71.2, MapURL: "https://maps.google.com/?q=41.2,71.2"},
			{ID: "b_namangan", NameUz: "Namangan bo'yicha", NameRu: "По Намангану",
				Address: "Namangan manzili", Lat: 41.3, Lon: 71.3, MapURL: "https://maps.google.com/?q=41.3,71.3"},
		},
	)
}
