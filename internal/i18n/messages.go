// Package i18n содержит таблицы строк интерфейса на узбекском и русском.
// Ядро обращается к строкам только по ключу; раскладка и форматирование —
// забота транспортного слоя.
package i18n

import (
	"strings"

	"github.com/samandarerkinov/torthouse/internal/domain"
)

// Key — ключ строки интерфейса.
type Key string

const (
	KeyChooseLang    Key = "choose_lang"
	KeyMainMenuTitle Key = "main_menu_title"
	KeyMenuProducts  Key = "menu_products"
	KeyMenuBranches  Key = "menu_branches"
	KeyMenuCart      Key = "menu_cart"
	KeyMenuOrders    Key = "menu_orders"
	KeyMenuHelp      Key = "menu_help"
	KeyBack          Key = "back"
	KeyMenu          Key = "menu"
	KeyAskCustom     Key = "ask_custom"
	KeyAskContact    Key = "ask_contact"
	KeyInvalidPhone  Key = "invalid_phone"
	KeyAskAddress    Key = "ask_address"
	KeyAskName       Key = "ask_name"
	KeyOrderSent     Key = "order_sent"
	KeyCartEmpty     Key = "cart_empty"
	KeyNoOrders      Key = "no_orders"
	KeyNotAdmin      Key = "not_admin"
	KeyConfirmAdded  Key = "confirm_added"
	KeyRemoved       Key = "removed"
	KeyChooseDeliv   Key = "choose_delivery"
	KeyInvalidImage  Key = "invalid_image"
	KeyLocationError Key = "location_error"
	KeyCartTooLarge  Key = "cart_too_large"
	KeyInvalidInput  Key = "invalid_input"
	KeyOrderConfirm  Key = "order_confirm"
	KeyMissingPickup Key = "missing_pickup_info"
	KeyChooseBranch  Key = "choose_branch"
	KeyPickupBranch  Key = "pickup_branch"
	KeyAskPhoto      Key = "ask_photo"
	KeySendPhoto     Key = "send_photo"
	KeySkipPhoto     Key = "skip_photo"
	KeyCustomAdded   Key = "custom_added"
	KeyPhotoAdded    Key = "photo_added"
	KeyAskLocation   Key = "ask_location"
	KeySkipLocation  Key = "skip_location"
	KeyLocationOK    Key = "location_ok"
	KeySendContact   Key = "send_contact"
	KeySavedPhone    Key = "saved_phone"
	KeyDelivery      Key = "delivery"
	KeyPickup        Key = "pickup"
	KeyClearCart     Key = "clear_cart"
	KeyCheckout      Key = "checkout"
	KeyAddToCart     Key = "add_to_cart"
	KeyReadySweets   Key = "ready_sweets"
	KeyCustomOrder   Key = "custom_order"
	KeyBranchChosen  Key = "branch_chosen"
	KeyLineNotFound  Key = "line_not_found"
	KeyNotFound      Key = "not_found"
	KeyTryAgain      Key = "try_again"
	KeyStatusChanged Key = "status_changed"
	KeyCustomPhoto   Key = "custom_photo"
	KeyTotal         Key = "total"
	KeyCustomLine    Key = "custom_line"
	KeyHelpText      Key = "help_text"
	KeySelectQty     Key = "select_qty"
	KeyQtySelected   Key = "qty_selected"
)

// messages хранит строки по ключу и языку. Порядок пар: uz, ru.
var messages = map[Key]map[domain.Lang]string{
	KeyChooseLang:    {domain.LangUz: "🌐 Tilni tanlang:", domain.LangRu: "🌐 Выберите язык:"},
	KeyMainMenuTitle: {domain.LangUz: "🏠 Asosiy menyu", domain.LangRu: "🏠 Главное меню"},
	KeyMenuProducts:  {domain.LangUz: "🛍 Mahsulotlar va buyurtma berish", domain.LangRu: "🛍 Товары и заказ"},
	KeyMenuBranches:  {domain.LangUz: "🏬 Filiallarimiz", domain.LangRu: "🏬 Наши филиалы"},
	KeyMenuCart:      {domain.LangUz: "🛒 Savat", domain.LangRu: "🛒 Корзина"},
	KeyMenuOrders:    {domain.LangUz: "📦 Buyurtmalarim", domain.LangRu: "📦 Мои заказы"},
	KeyMenuHelp:      {domain.LangUz: "📞 Yordam (admin bilan bog'lanish)", domain.LangRu: "📞 Помощь (связь с админом)"},
	KeyBack:          {domain.LangUz: "🔙 Orqaga", domain.LangRu: "🔙 Назад"},
	KeyMenu:          {domain.LangUz: "🏠 Asosiy menyuga", domain.LangRu: "🏠 В главное меню"},
	KeyAskCustom:     {domain.LangUz: "📝 Buyurtma tafsilotlarini kiriting (rasm yuborishingiz mumkin):", domain.LangRu: "📝 Введите детали заказа (можно отправить фото):"},
	KeyAskContact:    {domain.LangUz: "📞 Iltimos, telefon raqamingizni yuboring:", domain.LangRu: "📞 Пожалуйста, отправьте ваш номер телефона:"},
	KeyInvalidPhone:  {domain.LangUz: "❌ Noto'g'ri telefon raqami. Iltimos, to'g'ri raqam kiriting (masalan, +998901234567).", domain.LangRu: "❌ Неверный номер телефона. Пожалуйста, введите корректный номер (например, +998901234567)."},
	KeyAskAddress:    {domain.LangUz: "📍 Iltimos, manzilingizni yuboring:", domain.LangRu: "📍 Пожалуйста, отправьте адрес:"},
	KeyAskName:       {domain.LangUz: "👤 Ism va familiyangizni yuboring:", domain.LangRu: "👤 Отправьте имя и фамилию:"},
	KeyOrderSent:     {domain.LangUz: "✅ Buyurtmangiz qabul qilindi! Tez orada adminlar siz bilan bog'lanadi.", domain.LangRu: "✅ Ваш заказ принят! Мы свяжемся с вами в ближайшее время."},
	KeyCartEmpty:     {domain.LangUz: "🛒 Savat bo'sh. Iltimos, mahsulot qo'shing.", domain.LangRu: "🛒 Корзина пуста. Пожалуйста, добавьте товары."},
	KeyNoOrders:      {domain.LangUz: "📋 Buyurtmalar topilmadi", domain.LangRu: "📋 Заказы не найдены"},
	KeyNotAdmin:      {domain.LangUz: "🚫 Siz admin emassiz.", domain.LangRu: "🚫 Вы не администратор."},
	KeyConfirmAdded:  {domain.LangUz: "✅ Mahsulot savatga qo'shildi.", domain.LangRu: "✅ Товар добавлен в корзину."},
	KeyRemoved:       {domain.LangUz: "✅ O'chirildi.", domain.LangRu: "✅ Удалено."},
	KeyChooseDeliv:   {domain.LangUz: "🚚 Yetkazib berish turini tanlang:", domain.LangRu: "🚚 Выберите тип доставки:"},
	KeyInvalidImage:  {domain.LangUz: "❌ Rasm yuborishda xato. Iltimos, boshqa rasm yuboring.", domain.LangRu: "❌ Ошибка при отправке изображения. Пожалуйста, отправьте другое изображение."},
	KeyLocationError: {domain.LangUz: "❌ Lokatsiya qabul qilishda xato. Iltimos, qayta yuboring.", domain.LangRu: "❌ Ошибка при получении локации. Пожалуйста, отправьте заново."},
	KeyCartTooLarge:  {domain.LangUz: "🛒 Savat juda katta. Iltimos, ba'zi mahsulotlarni o'chiring va qaytadan urinib ko'ring.", domain.LangRu: "🛒 Корзина слишком большая. Пожалуйста, удалите некоторые товары и попробуйте снова."},
	KeyInvalidInput:  {domain.LangUz: "❌ Noto'g'ri ma'lumot kiritildi. Iltimos, qayta urinib ko'ring.", domain.LangRu: "❌ Введены неверные данные. Пожалуйста, попробуйте снова."},
	KeyOrderConfirm:  {domain.LangUz: "✅ Buyurtma tasdiqlandi. Batafsil: {details}", domain.LangRu: "✅ Заказ подтвержден. Подробности: {details}"},
	KeyMissingPickup: {domain.LangUz: "❌ Ism yoki telefon raqami kiritilmagan. Iltimos, qayta kiriting.", domain.LangRu: "❌ Имя или номер телефона не указаны. Пожалуйста, введите заново."},
	KeyChooseBranch:  {domain.LangUz: "🏬 Filialni tanlang:", domain.LangRu: "🏬 Выберите филиал:"},
	KeyPickupBranch:  {domain.LangUz: "🏬 Qaysi filialdan olasiz?", domain.LangRu: "🏬 Из какого филиала вы заберете?"},
	KeyAskPhoto:      {domain.LangUz: "📸 Rasm yuboring yoki 'Skip' bosing.", domain.LangRu: "📸 Отправьте фото или нажмите 'Пропустить'."},
	KeySendPhoto:     {domain.LangUz: "📸 Rasm yuborish", domain.LangRu: "📸 Отправить фото"},
	KeySkipPhoto:     {domain.LangUz: "❌ Rasm shart emas / Skip", domain.LangRu: "❌ Пропустить фото"},
	KeyCustomAdded:   {domain.LangUz: "✅ Maxsus buyurtma savatga qo'shildi.", domain.LangRu: "✅ Индивидуальный заказ добавлен в корзину."},
	KeyPhotoAdded:    {domain.LangUz: "✅ Rasm qabul qilindi va buyurtma savatga qo'shildi.", domain.LangRu: "✅ Фото принято и заказ добавлен в корзину."},
	KeyAskLocation:   {domain.LangUz: "📍 Istasangiz lokatsiyani ham yuboring, yoki 'Skip' bosing.", domain.LangRu: "📍 Можете отправить локацию или нажмите 'Пропустить'."},
	KeySkipLocation:  {domain.LangUz: "❌ O'tkazib yuborish", domain.LangRu: "❌ Пропустить"},
	KeyLocationOK:    {domain.LangUz: "✅ Lokatsiya qabul qilindi.", domain.LangRu: "✅ Локация принята."},
	KeySendContact:   {domain.LangUz: "📞 Kontaktni yuborish", domain.LangRu: "📞 Отправить контакт"},
	KeySavedPhone:    {domain.LangUz: "📞 Saqlangan telefon: {phone}\nYoki yangi raqam yuboring:", domain.LangRu: "📞 Сохранённый телефон: {phone}\nИли отправьте новый номер:"},
	KeyDelivery:      {domain.LangUz: "🚚 Yetkazib berish", domain.LangRu: "🚚 Доставка"},
	KeyPickup:        {domain.LangUz: "🏪 Filialdan olib ketish", domain.LangRu: "🏪 Самовывоз"},
	KeyClearCart:     {domain.LangUz: "🗑 Savatni tozalash", domain.LangRu: "🗑 Очистить корзину"},
	KeyCheckout:      {domain.LangUz: "📝 Buyurtma berish", domain.LangRu: "📝 Оформить заказ"},
	KeyAddToCart:     {domain.LangUz: "🛒 Savatga qo'shish", domain.LangRu: "🛒 Добавить в корзину"},
	KeyReadySweets:   {domain.LangUz: "🍰 Tayyor shirinliklar", domain.LangRu: "🍰 Наши сладости"},
	KeyCustomOrder:   {domain.LangUz: "🎂 Maxsus buyurtma", domain.LangRu: "🎂 Индивидуальный заказ"},
	KeyBranchChosen:  {domain.LangUz: "✅ {branch} tanlandi", domain.LangRu: "✅ {branch} выбрана"},
	KeyLineNotFound:  {domain.LangUz: "Element topilmadi", domain.LangRu: "Элемент не найден"},
	KeyNotFound:      {domain.LangUz: "Mahsulot topilmadi", domain.LangRu: "Товар не найден"},
	KeyTryAgain:      {domain.LangUz: "❌ Xato yuz berdi. Iltimos, /start bilan qayta boshlang.", domain.LangRu: "❌ Произошла ошибка. Пожалуйста, начните заново с /start."},
	KeyStatusChanged: {domain.LangUz: "📊 Buyurtma {id} holati yangilandi: {status}", domain.LangRu: "📊 Статус заказа {id} обновлён: {status}"},
	KeyCustomPhoto:   {domain.LangUz: "🎂 Maxsus buyurtma rasmi", domain.LangRu: "🎂 Фото индивидуального заказа"},
	KeyTotal:         {domain.LangUz: "💰 Jami: {total} so'm", domain.LangRu: "💰 Итого: {total}"},
	KeyCustomLine:    {domain.LangUz: "🎂 Maxsus: {desc}... x{qty} (narx admin bilan aniqlanadi)", domain.LangRu: "🎂 Индивидуал: {desc}... x{qty} (цена уточняется админом)"},
	KeyHelpText:      {domain.LangUz: "📞 Savollar uchun admin bilan bog'laning: @samandarerkinov_IT", domain.LangRu: "📞 По вопросам свяжитесь с админом: @samandarerkinov_IT"},
	KeySelectQty:     {domain.LangUz: "🔢 Miqdorni tanlang:", domain.LangRu: "🔢 Выберите количество:"},
	KeyQtySelected:   {domain.LangUz: "✅ Miqdor: {qty}", domain.LangRu: "✅ Количество: {qty}"},
}

// statusLabels — подписи статусов заказа для пользователя.
var statusLabels = map[domain.OrderStatus]map[domain.Lang]string{
	domain.OrderStatusReceived:  {domain.LangUz: "✅ Qabul qilindi", domain.LangRu: "✅ Принят"},
	domain.OrderStatusPreparing: {domain.LangUz: "⏳ Tayyorlanmoqda", domain.LangRu: "⏳ Готовится"},
	domain.OrderStatusDelivered: {domain.LangUz: "🚚 Yetkazib berildi", domain.LangRu: "🚚 Доставлен"},
}

// T возвращает строку по ключу на языке пользователя.
// Неизвестный ключ возвращается как есть, чтобы опечатка была видна в чате.
func T(key Key, lang domain.Lang) string {
	byLang, ok := messages[key]
	if !ok {
		return string(key)
	}
	return byLang[lang.OrDefault()]
}

// TF возвращает строку с подстановками вида {name}.
func TF(key Key, lang domain.Lang, args map[string]string) string {
	text := T(key, lang)
	for name, value := range args {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// StatusLabel возвращает подпись статуса заказа.
func StatusLabel(status domain.OrderStatus, lang domain.Lang) string {
	byLang, ok := statusLabels[status]
	if !ok {
		return "N/A"
	}
	return byLang[lang.OrDefault()]
}
