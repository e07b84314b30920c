package cart

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

// renderLimit — потолок длины текста корзины в рунах.
// Транспортные каналы режут более длинные сообщения.
const renderLimit = 4000

// customDescPreview — сколько символов описания показывать в строке корзины.
const customDescPreview = 30

// Service управляет корзинами пользователей.
type Service struct {
	carts   domain.CartRepository
	catalog *catalog.Catalog
	logger  *log.Entry
}

// NewService создаёт сервис корзины.
func NewService(carts domain.CartRepository, cat *catalog.Catalog) *Service {
	return &Service{
		carts:   carts,
		catalog: cat,
		logger:  log.WithField("component", "cart-service"),
	}
}

// Get возвращает корзину пользователя. Отсутствующая корзина пуста.
func (s *Service) Get(userID string) (domain.Cart, error) {
	return s.carts.Get(userID)
}

// AddProduct добавляет qty единиц товара из каталога.
// Повторное добавление того же товара наращивает количество существующей позиции.
func (s *Service) AddProduct(userID, productID string, qty int32) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, domain.ErrLineQtyInvalid
	}

	product, err := s.catalog.Product(productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.Get(userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	line, ok := cart.Lines[productID]
	if ok {
		line.Qty += qty
	} else {
		line = domain.LineItem{
			Kind:      domain.LineKindProduct,
			ProductID: product.ID,
			NameUz:    product.NameUz,
			NameRu:    product.NameRu,
			Price:     product.Price,
			Qty:       qty,
		}
	}
	cart.Lines[productID] = line

	if err := s.carts.Save(cart); err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"user_id":    userID,
		"product_id": productID,
		"qty":        line.Qty,
	}).Debug("product added to cart")

	return cart, nil
}

// AddCustom добавляет индивидуальную позицию и возвращает её ключ.
// Каждый вызов создаёт отдельную позицию: индивидуальные заказы не сливаются.
func (s *Service) AddCustom(userID, desc, photoRef string) (domain.Cart, string, error) {
	if desc == "" {
		return domain.Cart{}, "", domain.ErrLineDescRequired
	}

	cart, err := s.carts.Get(userID)
	if err != nil {
		return domain.Cart{}, "", fmt.Errorf("load cart: %w", err)
	}

	key := "custom_" + uuid.NewString()
	cart.Lines[key] = domain.LineItem{
		Kind:     domain.LineKindCustom,
		Qty:      1,
		Desc:     desc,
		PhotoRef: photoRef,
	}

	if err := s.carts.Save(cart); err != nil {
		return domain.Cart{}, "", fmt.Errorf("save cart: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"user_id": userID,
		"key":     key,
	}).Debug("custom line added to cart")

	return cart, key, nil
}

// Decrement уменьшает количество позиции на единицу.
// Позиция с количеством 1 удаляется целиком.
func (s *Service) Decrement(userID, key string) (domain.Cart, error) {
	cart, err := s.carts.Get(userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	line, ok := cart.Lines[key]
	if !ok {
		return domain.Cart{}, domain.ErrLineNotFound
	}

	line.Qty--
	if line.Qty < 1 {
		delete(cart.Lines, key)
	} else {
		cart.Lines[key] = line
	}

	if err := s.carts.Save(cart); err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Remove удаляет позицию из корзины.
func (s *Service) Remove(userID, key string) (domain.Cart, error) {
	cart, err := s.carts.Get(userID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	if _, ok := cart.Lines[key]; !ok {
		return domain.Cart{}, domain.ErrLineNotFound
	}
	delete(cart.Lines, key)

	if err := s.carts.Save(cart); err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear опустошает корзину пользователя.
func (s *Service) Clear(userID string) error {
	if err := s.carts.Save(domain.NewCart(userID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Render строит текст корзины на языке пользователя.
// Второй результат true, если текст превысил потолок и показывать его нельзя.
func (s *Service) Render(cart domain.Cart, lang domain.Lang) (string, bool) {
	var b strings.Builder
	b.WriteString(i18n.T(i18n.KeyMenuCart, lang))
	b.WriteString("\n\n")

	for _, key := range domain.SortedLineKeys(cart.Lines) {
		line := cart.Lines[key]
		switch line.Kind {
		case domain.LineKindCustom:
			b.WriteString(i18n.TF(i18n.KeyCustomLine, lang, map[string]string{
				"desc": truncate(line.Desc, customDescPreview),
				"qty":  fmt.Sprintf("%d", line.Qty),
			}))
		default:
			name := line.NameUz
			if lang == domain.LangRu {
				name = line.NameRu
			}
			b.WriteString(fmt.Sprintf("🍰 %s x%d = %d so'm", name, line.Qty, line.Price*int64(line.Qty)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(i18n.TF(i18n.KeyTotal, lang, map[string]string{
		"total": fmt.Sprintf("%d", cart.Total()),
	}))

	text := b.String()
	if len([]rune(text)) > renderLimit {
		return "", true
	}
	return text, false
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
