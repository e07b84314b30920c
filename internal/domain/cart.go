package domain

import "sort"

// LineKind различает каталожные и индивидуальные позиции корзины.
type LineKind string

const (
	// LineKindProduct — позиция из каталога, ключ = id товара.
	LineKindProduct LineKind = "product"
	// LineKindCustom — индивидуальный заказ, ключ генерируется заново для каждой позиции.
	LineKindCustom LineKind = "custom"
)

// LineItem представляет одну позицию корзины или заказа.
type LineItem struct {
	Kind LineKind
	// Поля каталожной позиции.
	ProductID string
	NameUz    string
	NameRu    string
	// Price — цена за единицу в сумах. Для индивидуальных позиций 0:
	// цену определяет администратор вне системы.
	Price int64
	Qty   int32
	// Поля индивидуальной позиции.
	Desc string
	// PhotoRef — ссылка уровня транспорта, принятая ранее; ядро её не перепроверяет.
	PhotoRef string
}

// Cart — корзина одного пользователя: ключ позиции → позиция.
// Отсутствующая корзина эквивалентна пустой.
type Cart struct {
	UserID string
	Lines  map[string]LineItem
}

// NewCart возвращает пустую корзину пользователя.
func NewCart(userID string) Cart {
	return Cart{UserID: userID, Lines: make(map[string]LineItem)}
}

// IsEmpty сообщает, есть ли в корзине хотя бы одна позиция.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total считает сумму по каталожным позициям; индивидуальные не участвуют.
func (c Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		if line.Kind == LineKindProduct {
			total += line.Price * int64(line.Qty)
		}
	}
	return total
}

// SortedLineKeys возвращает ключи позиций в устойчивом порядке отображения:
// каталожные позиции впереди, внутри группы по ключу.
func SortedLineKeys(lines map[string]LineItem) []string {
	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ki, kj := lines[keys[i]].Kind, lines[keys[j]].Kind
		if ki != kj {
			return ki == LineKindProduct
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Clone возвращает глубокую копию корзины, чтобы мутации снаружи
// не задевали сохранённое состояние.
func (c Cart) Clone() Cart {
	cp := Cart{UserID: c.UserID, Lines: make(map[string]LineItem, len(c.Lines))}
	for key, line := range c.Lines {
		cp.Lines[key] = line
	}
	return cp
}

// ValidateInvariants проверяет базовые инварианты корзины.
func (c Cart) ValidateInvariants() []error {
	var errs []error
	for _, line := range c.Lines {
		if line.Qty < 1 {
			errs = append(errs, ErrLineQtyInvalid)
		}
		if line.Kind == LineKindProduct && line.ProductID == "" {
			errs = append(errs, ErrLineProductRequired)
		}
		if line.Kind == LineKindCustom && line.Desc == "" {
			errs = append(errs, ErrLineDescRequired)
		}
	}
	return errs
}
