package dispatch

import (
	"fmt"
	"strings"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

// RenderOrderDetails строит полную карточку заказа на языке получателя.
// Один и тот же текст уходит администраторам, в канал заказов и в список
// «мои заказы» пользователя.
func (d *Dispatcher) RenderOrderDetails(order domain.Order, lang domain.Lang) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📦 %s\n", order.ID)
	fmt.Fprintf(&b, "👤 %s\n", order.UserName)
	fmt.Fprintf(&b, "📞 %s\n", order.Phone)

	switch order.DeliveryType {
	case domain.DeliveryTypePickup:
		fmt.Fprintf(&b, "%s\n", i18n.T(i18n.KeyPickup, lang))
	default:
		fmt.Fprintf(&b, "%s\n", i18n.T(i18n.KeyDelivery, lang))
		if order.Address != "" {
			fmt.Fprintf(&b, "📍 %s\n", order.Address)
		}
		if order.Location != nil {
			fmt.Fprintf(&b, "🗺 https://maps.google.com/?q=%.6f,%.6f\n", order.Location.Lat, order.Location.Lon)
		}
	}

	if order.BranchID != "" && d.catalog != nil {
		if branch, err := d.catalog.Branch(order.BranchID); err == nil {
			fmt.Fprintf(&b, "🏬 %s\n", branch.Name(lang))
			if branch.MapURL != "" {
				fmt.Fprintf(&b, "🗺 %s\n", branch.MapURL)
			}
		}
	}

	b.WriteString("\n")
	for _, key := range domain.SortedLineKeys(order.Lines) {
		line := order.Lines[key]
		switch line.Kind {
		case domain.LineKindCustom:
			fmt.Fprintf(&b, "🎂 %s x%d\n", truncate(line.Desc, 100), line.Qty)
		default:
			name := line.NameUz
			if lang == domain.LangRu {
				name = line.NameRu
			}
			fmt.Fprintf(&b, "🍰 %s x%d = %d so'm\n", name, line.Qty, line.Price*int64(line.Qty))
		}
	}

	b.WriteString("\n")
	b.WriteString(i18n.TF(i18n.KeyTotal, lang, map[string]string{
		"total": fmt.Sprintf("%d", orderTotal(order)),
	}))
	b.WriteString("\n")

	fmt.Fprintf(&b, "📊 %s\n", i18n.StatusLabel(order.Status, lang))
	fmt.Fprintf(&b, "🕒 %s", order.CreatedAt.Format("02.01.2006 15:04"))

	return b.String()
}
