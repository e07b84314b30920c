package conversation

import (
	"fmt"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

// Callback-токены кнопок. Токены с параметром собираются fmt.Sprintf
// и разбираются в callbacks.go.
const (
	tokenLangUz       = "lang_uz"
	tokenLangRu       = "lang_ru"
	tokenMenu         = "menu"
	tokenBack         = "back"
	tokenMenuProducts = "menu_products"
	tokenMenuBranches = "menu_branches"
	tokenMenuCart     = "menu_cart"
	tokenMenuOrders   = "menu_orders"
	tokenMenuHelp     = "menu_help"
	tokenShowProducts = "show_products"
	tokenStartCustom  = "start_custom"
	tokenSkipPhoto    = "custom_skip_photo"
	tokenClearCart    = "clear_cart"
	tokenCheckout     = "checkout"
	tokenDelivery     = "checkout_delivery"
	tokenPickup       = "checkout_pickup"

	prefixSelectBranch = "select_branch_"
	prefixView         = "view_"
	prefixSetQty       = "setqty_"
	prefixAddCart      = "addcart_"
	prefixDec          = "dec_"
	prefixRemove       = "rem_"
	prefixPickupBranch = "pickup_branch_"
)

// maxQty — верхняя граница быстрого выбора количества.
const maxQty = 5

func langKeyboard() *domain.Keyboard {
	return domain.NewInlineKeyboard(
		[]domain.Button{
			{Label: "🇺🇿 O'zbekcha", Action: tokenLangUz},
			{Label: "🇷🇺 Русский", Action: tokenLangRu},
		},
	)
}

func mainMenuKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewInlineKeyboard(
		[]domain.Button{{Label: i18n.T(i18n.KeyMenuProducts, lang), Action: tokenMenuProducts}},
		[]domain.Button{{Label: i18n.T(i18n.KeyMenuBranches, lang), Action: tokenMenuBranches}},
		[]domain.Button{
			{Label: i18n.T(i18n.KeyMenuCart, lang), Action: tokenMenuCart},
			{Label: i18n.T(i18n.KeyMenuOrders, lang), Action: tokenMenuOrders},
		},
		[]domain.Button{{Label: i18n.T(i18n.KeyMenuHelp, lang), Action: tokenMenuHelp}},
	)
}

func productsMenuKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewInlineKeyboard(
		[]domain.Button{{Label: i18n.T(i18n.KeyReadySweets, lang), Action: tokenShowProducts}},
		[]domain.Button{{Label: i18n.T(i18n.KeyCustomOrder, lang), Action: tokenStartCustom}},
		backRow(lang),
	)
}

func productListKeyboard(products []catalog.Product, lang domain.Lang) *domain.Keyboard {
	rows := make([][]domain.Button, 0, len(products)+1)
	for _, p := range products {
		rows = append(rows, []domain.Button{{
			Label:  fmt.Sprintf("%s — %d so'm", p.Name(lang), p.Price),
			Action: prefixView + p.ID,
		}})
	}
	rows = append(rows, backRow(lang))
	return &domain.Keyboard{Kind: domain.KeyboardInline, Rows: rows}
}

func productCardKeyboard(productID string, lang domain.Lang) *domain.Keyboard {
	qtyRow := make([]domain.Button, 0, maxQty)
	for qty := 1; qty <= maxQty; qty++ {
		qtyRow = append(qtyRow, domain.Button{
			Label:  fmt.Sprintf("%d", qty),
			Action: fmt.Sprintf("%s%s_%d", prefixSetQty, productID, qty),
		})
	}
	return domain.NewInlineKeyboard(
		qtyRow,
		[]domain.Button{{Label: i18n.T(i18n.KeyAddToCart, lang), Action: prefixAddCart + productID}},
		backRow(lang),
	)
}

func branchListKeyboard(branches []catalog.Branch, lang domain.Lang, prefix string) *domain.Keyboard {
	rows := make([][]domain.Button, 0, len(branches)+1)
	for _, b := range branches {
		rows = append(rows, []domain.Button{{Label: b.Name(lang), Action: prefix + b.ID}})
	}
	rows = append(rows, backRow(lang))
	return &domain.Keyboard{Kind: domain.KeyboardInline, Rows: rows}
}

func cartKeyboard(cart domain.Cart, lang domain.Lang) *domain.Keyboard {
	rows := make([][]domain.Button, 0, len(cart.Lines)+2)
	for _, key := range domain.SortedLineKeys(cart.Lines) {
		line := cart.Lines[key]
		label := line.NameUz
		if lang == domain.LangRu {
			label = line.NameRu
		}
		if line.Kind == domain.LineKindCustom {
			label = i18n.T(i18n.KeyCustomOrder, lang)
		}
		rows = append(rows, []domain.Button{
			{Label: "➖ " + label, Action: prefixDec + key},
			{Label: "🗑 " + label, Action: prefixRemove + key},
		})
	}
	rows = append(rows,
		[]domain.Button{
			{Label: i18n.T(i18n.KeyClearCart, lang), Action: tokenClearCart},
			{Label: i18n.T(i18n.KeyCheckout, lang), Action: tokenCheckout},
		},
		backRow(lang),
	)
	return &domain.Keyboard{Kind: domain.KeyboardInline, Rows: rows}
}

func deliveryChoiceKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewInlineKeyboard(
		[]domain.Button{
			{Label: i18n.T(i18n.KeyDelivery, lang), Action: tokenDelivery},
			{Label: i18n.T(i18n.KeyPickup, lang), Action: tokenPickup},
		},
		backRow(lang),
	)
}

func skipPhotoKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewInlineKeyboard(
		[]domain.Button{{Label: i18n.T(i18n.KeySkipPhoto, lang), Action: tokenSkipPhoto}},
		backRow(lang),
	)
}

func contactKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewReplyKeyboard(
		[]domain.Button{{Label: i18n.T(i18n.KeySendContact, lang), RequestContact: true}},
	)
}

func locationKeyboard(lang domain.Lang) *domain.Keyboard {
	return domain.NewReplyKeyboard(
		[]domain.Button{{Label: "📍", RequestLocation: true}},
		[]domain.Button{{Label: i18n.T(i18n.KeySkipLocation, lang)}},
	)
}

func backRow(lang domain.Lang) []domain.Button {
	return []domain.Button{{Label: i18n.T(i18n.KeyBack, lang), Action: tokenBack}}
}
