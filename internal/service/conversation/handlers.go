package conversation

import (
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
	"github.com/samandarerkinov/torthouse/internal/validate"
)

const startCommand = "/start"

// minNameLen и minAddressLen — нижние границы длины после санитизации.
const (
	minNameLen    = 2
	minAddressLen = 5
)

// onIdleText — свободный текст вне потока. /start открывает выбор языка,
// всё остальное возвращает в главное меню.
func (e *Engine) onIdleText(t *turn) transitionResult {
	if t.ev.text == startCommand {
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyChooseLang, t.lang), langKeyboard()))
	}
	return rejected(nil,
		e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidInput, t.lang), nil),
		e.reply(t.profile.ID, i18n.T(i18n.KeyMainMenuTitle, t.lang), mainMenuKeyboard(t.lang)),
	)
}

// onCustomText принимает описание индивидуального заказа.
func (e *Engine) onCustomText(t *turn) transitionResult {
	text := validate.Sanitize(t.ev.text)
	if text == "" {
		return rejected(domain.ErrTextEmpty,
			e.reply(t.profile.ID, i18n.T(i18n.KeyAskCustom, t.lang), nil))
	}

	t.session.CustomText = text
	t.session.State = domain.StateAwaitingCustomPhoto
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskPhoto, t.lang), skipPhotoKeyboard(t.lang)))
}

// onCustomPhoto фиксирует фото индивидуального заказа и кладёт позицию в корзину.
// Ссылка на фото уже принята транспортом и повторно не проверяется.
func (e *Engine) onCustomPhoto(t *turn) transitionResult {
	if t.session.CustomText == "" {
		// Черновик потерян: возвращаемся к вводу описания.
		t.session.State = domain.StateAwaitingCustomText
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskCustom, t.lang), nil))
	}

	if _, _, err := e.cart.AddCustom(t.profile.ID, t.session.CustomText, t.ev.photoRef); err != nil {
		return fatal(err)
	}

	t.session.ResetScratch()
	return ok(
		e.reply(t.profile.ID, i18n.T(i18n.KeyPhotoAdded, t.lang), nil),
		e.reply(t.profile.ID, i18n.T(i18n.KeyMainMenuTitle, t.lang), mainMenuKeyboard(t.lang)),
	)
}

// onName принимает имя и в доставке, и в самовывозе; следующий шаг зависит
// от текущего состояния.
func (e *Engine) onName(t *turn) transitionResult {
	name := validate.Sanitize(t.ev.text)
	if len([]rune(name)) < minNameLen {
		return rejected(domain.ErrNameTooShort,
			e.reply(t.profile.ID, i18n.T(i18n.KeyAskName, t.lang), nil))
	}

	t.session.Name = name
	t.profile.Name = name

	if t.session.State == domain.StateAwaitingPickupName {
		t.session.State = domain.StateAwaitingPickupPhone
	} else {
		t.session.State = domain.StateAwaitingPhone
	}
	return ok(e.reply(t.profile.ID, e.phonePrompt(t), contactKeyboard(t.lang)))
}

// phonePrompt подсказывает сохранённый номер, если он есть в профиле.
func (e *Engine) phonePrompt(t *turn) string {
	if t.profile.Phone != "" {
		return i18n.TF(i18n.KeySavedPhone, t.lang, map[string]string{"phone": t.profile.Phone})
	}
	return i18n.T(i18n.KeyAskContact, t.lang)
}

// onPhone принимает номер текстом или контактом.
func (e *Engine) onPhone(t *turn) transitionResult {
	phone := validate.Sanitize(t.ev.text)
	if !e.phones.Valid(phone) {
		return rejected(domain.ErrInvalidPhone,
			e.reply(t.profile.ID, i18n.T(i18n.KeyInvalidPhone, t.lang), contactKeyboard(t.lang)))
	}

	t.session.Phone = phone
	t.profile.Phone = phone

	if t.session.State == domain.StateAwaitingPickupPhone {
		t.session.State = domain.StateAwaitingPickupBranch
		return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyPickupBranch, t.lang),
			branchListKeyboard(e.catalog.Branches(), t.lang, prefixPickupBranch)))
	}

	t.session.State = domain.StateAwaitingAddress
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskAddress, t.lang), domain.RemoveKeyboard()))
}

// onAddress принимает адрес доставки.
func (e *Engine) onAddress(t *turn) transitionResult {
	address := validate.Sanitize(t.ev.text)
	if len([]rune(address)) < minAddressLen {
		return rejected(domain.ErrAddressTooShort,
			e.reply(t.profile.ID, i18n.T(i18n.KeyAskAddress, t.lang), nil))
	}

	t.session.Address = address
	t.profile.Address = address
	t.session.State = domain.StateAwaitingLocation
	return ok(e.reply(t.profile.ID, i18n.T(i18n.KeyAskLocation, t.lang), locationKeyboard(t.lang)))
}

// onLocationText принимает только кнопку пропуска; любой другой текст
// возвращает подсказку без продвижения.
func (e *Engine) onLocationText(t *turn) transitionResult {
	if t.ev.text == i18n.T(i18n.KeySkipLocation, domain.LangUz) ||
		t.ev.text == i18n.T(i18n.KeySkipLocation, domain.LangRu) {
		return e.commitOrder(t)
	}
	return rejected(nil,
		e.reply(t.profile.ID, i18n.T(i18n.KeyAskLocation, t.lang), locationKeyboard(t.lang)))
}

// onLocation принимает геопозицию и завершает оформление доставки.
func (e *Engine) onLocation(t *turn) transitionResult {
	loc := domain.Location{Lat: t.ev.lat, Lon: t.ev.lon}
	if !loc.Valid() {
		return rejected(domain.ErrLocationInvalid,
			e.reply(t.profile.ID, i18n.T(i18n.KeyLocationError, t.lang), locationKeyboard(t.lang)))
	}

	t.session.Location = &loc
	return e.commitOrder(t)
}

