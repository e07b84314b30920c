package conversation

import (
	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
)

// onSkipPhoto завершает индивидуальный заказ без фото.
func (e *Engine) onSkipPhoto(t *turn) transitionResult {
	if t.session.CustomText == "" {
		t.session.State = domain.StateAwaitingCustomText
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskCustom, t.lang), nil))
	}

	if _, _, err := e.cart.AddCustom(t.profile.ID, t.session.CustomText, ""); err != nil {
		return fatal(err)
	}

	t.session.ResetScratch()
	return ok(
		e.reply(t.profile.ID, i18n.T(i18n.KeyCustomAdded, t.lang), nil),
		e.reply(t.profile.ID, i18n.T(i18n.KeyMainMenuTitle, t.lang), mainMenuKeyboard(t.lang)),
	)
}

// onPickupBranch фиксирует филиал самовывоза и переходит к оформлению.
func (e *Engine) onPickupBranch(t *turn, branchID string) transitionResult {
	branch, err := e.catalog.Branch(branchID)
	if err != nil {
		return rejected(err, e.reply(t.profile.ID, i18n.T(i18n.KeyNotFound, t.lang), nil))
	}

	t.profile.SelectedBranch = branch.ID
	return e.commitOrder(t)
}

// commitOrder — терминальный шаг оформления: проверка полноты, выдача номера,
// снимок заказа, фиксация, очистка корзины и черновика. Выполняется целиком
// под пользовательской блокировкой; рассылка уходит наружу через result.dispatch.
func (e *Engine) commitOrder(t *turn) transitionResult {
	current, err := e.cart.Get(t.profile.ID)
	if err != nil {
		return fatal(err)
	}
	if current.IsEmpty() {
		t.session.ResetScratch()
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyCartEmpty, t.lang), mainMenuKeyboard(t.lang)))
	}

	flow := t.session.Flow
	if flow == "" {
		flow = domain.DeliveryTypeDelivery
	}

	// Снимок данных клиента: черновик, затем профиль.
	name := fallback(t.session.Name, t.profile.Name)
	phone := fallback(t.session.Phone, t.profile.Phone)

	// Проверка полноты прямо перед материализацией заказа: если черновик
	// пережил своё состояние, возвращаемся к сбору имени, а не оформляем
	// неполный заказ.
	if name == "" || phone == "" {
		if flow == domain.DeliveryTypePickup {
			t.session.State = domain.StateAwaitingPickupName
		} else {
			t.session.State = domain.StateAwaitingName
		}
		return ok(
			e.reply(t.profile.ID, i18n.T(i18n.KeyMissingPickup, t.lang), nil),
			e.reply(t.profile.ID, i18n.T(i18n.KeyAskName, t.lang), nil),
		)
	}

	address := fallback(t.session.Address, t.profile.Address)
	if flow == domain.DeliveryTypeDelivery && address == "" {
		t.session.State = domain.StateAwaitingAddress
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskAddress, t.lang), nil))
	}

	branchID := t.profile.SelectedBranch
	if flow == domain.DeliveryTypePickup && branchID == "" {
		t.session.State = domain.StateAwaitingPickupBranch
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyPickupBranch, t.lang),
			branchListKeyboard(e.catalog.Branches(), t.lang, prefixPickupBranch)))
	}

	counterValue, err := e.counter.Next()
	if err != nil {
		return fatal(err)
	}

	order := domain.Order{
		ID:           domain.FormatOrderID(counterValue),
		UserID:       t.profile.ID,
		UserName:     name,
		Phone:        phone,
		DeliveryType: flow,
		BranchID:     branchID,
		Lines:        current.Clone().Lines,
		Status:       domain.OrderStatusReceived,
		CreatedAt:    e.now().In(e.location),
	}
	if flow == domain.DeliveryTypeDelivery {
		order.Address = address
		order.Location = t.session.Location
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return fatal(errs[0])
	}

	if err := e.orders.Create(order); err != nil {
		return fatal(err)
	}

	t.profile.OrderIDs = append(t.profile.OrderIDs, order.ID)

	if err := e.cart.Clear(t.profile.ID); err != nil {
		// Заказ уже зафиксирован; корзину дочистит следующее обращение.
		e.logger.WithError(err).WithField("order_id", order.ID).Error("failed to clear cart after commit")
	}

	t.session.ResetScratch()

	if e.metrics != nil {
		e.metrics.RecordOrderCreated()
	}
	e.logger.WithFields(log.Fields{
		"order_id":      order.ID,
		"user_id":       order.UserID,
		"delivery_type": order.DeliveryType,
		"lines":         len(order.Lines),
	}).Info("order committed")

	details := e.dispatcher.RenderOrderDetails(order, t.lang)
	result := ok(
		e.reply(t.profile.ID, i18n.T(i18n.KeyOrderSent, t.lang), domain.RemoveKeyboard()),
		e.reply(t.profile.ID, details, mainMenuKeyboard(t.lang)),
	)
	result.dispatch = &order
	return result
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
