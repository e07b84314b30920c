package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

// onCallback разбирает callback-токен. Глобальные токены (язык, меню, отмена)
// работают из любого состояния; остальные зависят от текущего состояния.
func (e *Engine) onCallback(t *turn) transitionResult {
	token := t.ev.token

	switch token {
	case tokenLangUz:
		return e.setLang(t, domain.LangUz)
	case tokenLangRu:
		return e.setLang(t, domain.LangRu)
	case tokenMenu, tokenBack:
		return e.toMainMenu(t)
	}

	switch t.session.State {
	case domain.StateIdle:
		return e.onMenuToken(t, token)
	case domain.StateAwaitingPickupBranch:
		if branchID, ok := strings.CutPrefix(token, prefixPickupBranch); ok {
			return e.onPickupBranch(t, branchID)
		}
	case domain.StateAwaitingCustomPhoto:
		if token == tokenSkipPhoto {
			return e.onSkipPhoto(t)
		}
	}

	return rejected(nil, e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidInput, t.lang), nil))
}

// setLang сохраняет язык и показывает главное меню заново.
func (e *Engine) setLang(t *turn, lang domain.Lang) transitionResult {
	t.profile.Lang = lang
	t.lang = lang
	t.session.ResetScratch()
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyMainMenuTitle, lang), mainMenuKeyboard(lang)))
}

// toMainMenu — глобальная отмена: черновик сбрасывается, диалог в Idle.
func (e *Engine) toMainMenu(t *turn) transitionResult {
	t.session.ResetScratch()
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyMainMenuTitle, t.lang), mainMenuKeyboard(t.lang)))
}

// onMenuToken обрабатывает навигацию главного меню из состояния Idle.
func (e *Engine) onMenuToken(t *turn, token string) transitionResult {
	switch {
	case token == tokenMenuProducts:
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyMenuProducts, t.lang), productsMenuKeyboard(t.lang)))

	case token == tokenShowProducts:
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyReadySweets, t.lang),
			productListKeyboard(e.catalog.Products(), t.lang)))

	case strings.HasPrefix(token, prefixView):
		return e.onViewProduct(t, strings.TrimPrefix(token, prefixView))

	case strings.HasPrefix(token, prefixSetQty):
		return e.onSetQty(t, strings.TrimPrefix(token, prefixSetQty))

	case strings.HasPrefix(token, prefixAddCart):
		return e.onAddToCart(t, strings.TrimPrefix(token, prefixAddCart))

	case token == tokenStartCustom:
		t.session.State = domain.StateAwaitingCustomText
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskCustom, t.lang), nil))

	case token == tokenMenuBranches:
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyChooseBranch, t.lang),
			branchListKeyboard(e.catalog.Branches(), t.lang, prefixSelectBranch)))

	case strings.HasPrefix(token, prefixSelectBranch):
		return e.onSelectBranch(t, strings.TrimPrefix(token, prefixSelectBranch))

	case token == tokenMenuCart:
		return e.showCart(t)

	case strings.HasPrefix(token, prefixDec):
		return e.onDecrement(t, strings.TrimPrefix(token, prefixDec))

	case strings.HasPrefix(token, prefixRemove):
		return e.onRemove(t, strings.TrimPrefix(token, prefixRemove))

	case token == tokenClearCart:
		if err := e.cart.Clear(t.profile.ID); err != nil {
			return fatal(err)
		}
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyCartEmpty, t.lang), mainMenuKeyboard(t.lang)))

	case token == tokenCheckout:
		return e.onCheckout(t)

	case token == tokenDelivery:
		t.session.Flow = domain.DeliveryTypeDelivery
		t.session.State = domain.StateAwaitingName
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskName, t.lang), domain.RemoveKeyboard()))

	case token == tokenPickup:
		t.session.Flow = domain.DeliveryTypePickup
		t.session.State = domain.StateAwaitingPickupName
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskName, t.lang), domain.RemoveKeyboard()))

	case token == tokenMenuOrders:
		return e.showOrders(t)

	case token == tokenMenuHelp:
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyHelpText, t.lang), mainMenuKeyboard(t.lang)))
	}

	return rejected(nil, e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidInput, t.lang), nil))
}

// onViewProduct показывает карточку товара; фото прикладывается только после
// проверки URL, отказ проверки не мешает текстовой карточке.
func (e *Engine) onViewProduct(t *turn, productID string) transitionResult {
	product, err := e.catalog.Product(productID)
	if err != nil {
		return rejected(err, e.reply(t.profile.ID, i18n.T(i18n.KeyNotFound, t.lang), nil))
	}

	card := fmt.Sprintf("🍰 %s\n💰 %d so'm\n\n%s",
		product.Name(t.lang), product.Price, i18n.T(i18n.KeySelectQty, t.lang))

	reply := e.reply(t.profile.ID, card, productCardKeyboard(product.ID, t.lang))
	if e.images != nil && e.images.IsImage(t.ctx, product.Photo) {
		reply.PhotoRef = product.Photo
	}
	return ok(reply)
}

// onSetQty запоминает выбор количества до добавления в корзину.
// Формат остатка токена: <productID>_<qty>.
func (e *Engine) onSetQty(t *turn, rest string) transitionResult {
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return rejected(nil, e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidInput, t.lang), nil))
	}
	productID := rest[:idx]
	qty, err := strconv.Atoi(rest[idx+1:])
	if err != nil || qty < 1 || qty > maxQty {
		return rejected(nil, e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidInput, t.lang), nil))
	}
	if _, err := e.catalog.Product(productID); err != nil {
		return rejected(err, e.reply(t.profile.ID, i18n.T(i18n.KeyNotFound, t.lang), nil))
	}

	t.session.PendingProductID = productID
	t.session.PendingQty = int32(qty)
	return ok(e.reply(t.profile.ID,
		i18n.TF(i18n.KeyQtySelected, t.lang, map[string]string{"qty": strconv.Itoa(qty)}),
		productCardKeyboard(productID, t.lang)))
}

// onAddToCart кладёт товар в корзину с выбранным ранее количеством (по умолчанию 1).
func (e *Engine) onAddToCart(t *turn, productID string) transitionResult {
	qty := int32(1)
	if t.session.PendingProductID == productID && t.session.PendingQty > 0 {
		qty = t.session.PendingQty
	}

	updated, err := e.cart.AddProduct(t.profile.ID, productID, qty)
	if err != nil {
		return e.cartFailure(t, err, i18n.KeyNotFound)
	}

	t.session.PendingProductID = ""
	t.session.PendingQty = 0

	text, tooLarge := e.cart.Render(updated, t.lang)
	if tooLarge {
		text = i18n.T(i18n.KeyCartTooLarge, t.lang)
	}
	return ok(
		e.reply(t.profile.ID, i18n.T(i18n.KeyConfirmAdded, t.lang), nil),
		e.reply(t.profile.ID, text, cartKeyboard(updated, t.lang)),
	)
}

// onSelectBranch сохраняет выбранный филиал в профиле.
func (e *Engine) onSelectBranch(t *turn, branchID string) transitionResult {
	branch, err := e.catalog.Branch(branchID)
	if err != nil {
		return rejected(err, e.reply(t.profile.ID, i18n.T(i18n.KeyNotFound, t.lang), nil))
	}

	t.profile.SelectedBranch = branch.ID
	text := i18n.TF(i18n.KeyBranchChosen, t.lang, map[string]string{"branch": branch.Name(t.lang)})
	if branch.MapURL != "" {
		text += "\n🗺 " + branch.MapURL
	}
	return ok(e.reply(t.profile.ID, text, mainMenuKeyboard(t.lang)))
}

// showCart показывает корзину с кнопками управления позициями.
func (e *Engine) showCart(t *turn) transitionResult {
	current, err := e.cart.Get(t.profile.ID)
	if err != nil {
		return fatal(err)
	}
	if current.IsEmpty() {
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyCartEmpty, t.lang), mainMenuKeyboard(t.lang)))
	}

	text, tooLarge := e.cart.Render(current, t.lang)
	if tooLarge {
		text = i18n.T(i18n.KeyCartTooLarge, t.lang)
	}
	return ok(e.reply(t.profile.ID, text, cartKeyboard(current, t.lang)))
}

// onDecrement уменьшает позицию на единицу и перерисовывает корзину.
func (e *Engine) onDecrement(t *turn, key string) transitionResult {
	updated, err := e.cart.Decrement(t.profile.ID, key)
	if err != nil {
		return e.cartFailure(t, err, i18n.KeyLineNotFound)
	}
	return e.renderCartResult(t, updated)
}

// onRemove удаляет позицию целиком и перерисовывает корзину.
func (e *Engine) onRemove(t *turn, key string) transitionResult {
	updated, err := e.cart.Remove(t.profile.ID, key)
	if err != nil {
		return e.cartFailure(t, err, i18n.KeyLineNotFound)
	}
	return e.renderCartResult(t, updated)
}

// cartFailure переводит ошибку корзины в исход перехода: отсутствующие
// сущности и ошибки ввода повторяют вопрос с подсказкой hintKey,
// всё остальное считается сбоем хранилища.
func (e *Engine) cartFailure(t *turn, err error, hintKey i18n.Key) transitionResult {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return rejected(err, e.reply(t.profile.ID, i18n.T(hintKey, t.lang), nil))
	}
	return fatal(err)
}

func (e *Engine) renderCartResult(t *turn, current domain.Cart) transitionResult {
	if current.IsEmpty() {
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyCartEmpty, t.lang), mainMenuKeyboard(t.lang)))
	}
	text, tooLarge := e.cart.Render(current, t.lang)
	if tooLarge {
		text = i18n.T(i18n.KeyCartTooLarge, t.lang)
	}
	return ok(e.reply(t.profile.ID, text, cartKeyboard(current, t.lang)))
}

// onCheckout открывает выбор способа получения; пустая корзина отклоняется сразу.
func (e *Engine) onCheckout(t *turn) transitionResult {
	current, err := e.cart.Get(t.profile.ID)
	if err != nil {
		return fatal(err)
	}
	if current.IsEmpty() {
		return rejected(domain.ErrCartEmpty,
			e.reply(t.profile.ID, i18n.T(i18n.KeyCartEmpty, t.lang), mainMenuKeyboard(t.lang)))
	}
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyChooseDeliv, t.lang), deliveryChoiceKeyboard(t.lang)))
}

// showOrders показывает короткий список заказов пользователя.
func (e *Engine) showOrders(t *turn) transitionResult {
	orders, err := e.orders.ListByUser(t.profile.ID)
	if err != nil {
		return fatal(err)
	}
	if len(orders) == 0 {
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyNoOrders, t.lang), mainMenuKeyboard(t.lang)))
	}

	var b strings.Builder
	b.WriteString(i18n.T(i18n.KeyMenuOrders, t.lang))
	b.WriteString("\n\n")
	for _, order := range orders {
		fmt.Fprintf(&b, "📦 %s — %s — %s\n",
			order.ID, i18n.StatusLabel(order.Status, t.lang), order.CreatedAt.Format("02.01.2006 15:04"))
	}
	return ok(e.reply(t.profile.ID, b.String(), mainMenuKeyboard(t.lang)))
}
