package conversation

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/samandarerkinov/torthouse/internal/catalog"
	"github.com/samandarerkinov/torthouse/internal/domain"
	"github.com/samandarerkinov/torthouse/internal/i18n"
	"github.com/samandarerkinov/torthouse/internal/metrics"
	"github.com/samandarerkinov/torthouse/internal/service/cart"
)

// OrderDispatcher — исходящая сторона оформленного заказа.
// Рассылка стартует после отпускания пользовательской блокировки.
type OrderDispatcher interface {
	DispatchAsync(order domain.Order)
	RenderOrderDetails(order domain.Order, lang domain.Lang) string
}

// eventKind — вид входящего события транспорта.
type eventKind string

const (
	eventText     eventKind = "text"
	eventPhoto    eventKind = "photo"
	eventLocation eventKind = "location"
	eventContact  eventKind = "contact"
	eventCallback eventKind = "callback"
)

// event — нормализованное входящее событие.
type event struct {
	kind     eventKind
	text     string
	photoRef string
	lat, lon float64
	token    string
}

// resultKind классифицирует исход перехода.
type resultKind int

const (
	// resultOK — переход состоялся, состояние и профиль сохраняются.
	resultOK resultKind = iota
	// resultValidation — ввод отклонён, состояние не продвигается.
	resultValidation
	// resultFatal — переход брошен, пользователю предлагается начать заново.
	resultFatal
)

// transitionResult — типизированный исход одного перехода.
type transitionResult struct {
	kind    resultKind
	replies []domain.Reply
	err     error
	// dispatch — заказ, который нужно разослать после отпускания блокировки.
	dispatch *domain.Order
}

func ok(replies ...domain.Reply) transitionResult {
	return transitionResult{kind: resultOK, replies: replies}
}

func rejected(err error, replies ...domain.Reply) transitionResult {
	return transitionResult{kind: resultValidation, replies: replies, err: err}
}

func fatal(err error) transitionResult {
	return transitionResult{kind: resultFatal, err: err}
}

// turn — контекст одного перехода: загруженные агрегаты и входящее событие.
// Обработчики мутируют session и profile на месте; сохранение происходит
// централизованно после успешного перехода.
type turn struct {
	ctx     context.Context
	profile *domain.UserProfile
	session *domain.Session
	lang    domain.Lang
	ev      event
}

type handlerFunc func(*turn) transitionResult

// Engine — конечный автомат диалога оформления заказа.
// Все зависимости внедряются конструктором; глобального состояния нет.
type Engine struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	cart     *cart.Service
	orders   domain.OrderRepository
	counter  domain.OrderCounter
	catalog  *catalog.Catalog

	phones     domain.PhoneValidator
	images     domain.ImageChecker
	dispatcher OrderDispatcher
	metrics    *metrics.BotMetrics
	logger     *log.Entry

	now      func() time.Time
	location *time.Location

	// transitions — явная таблица состояние × вид события → обработчик.
	// Непокрытая пара даёт единый ответ "неверный ввод" без продвижения.
	transitions map[domain.ConversationState]map[eventKind]handlerFunc

	// userLocks сериализует обработку событий одного пользователя.
	locksMu   sync.Mutex
	userLocks map[string]*sync.Mutex
}

// Config — зависимости диалогового движка.
type Config struct {
	Users    domain.UserRepository
	Sessions domain.SessionRepository
	Cart     *cart.Service
	Orders   domain.OrderRepository
	Counter  domain.OrderCounter
	Catalog  *catalog.Catalog

	Phones     domain.PhoneValidator
	Images     domain.ImageChecker
	Dispatcher OrderDispatcher
	Metrics    *metrics.BotMetrics

	// Now и Location подменяются в тестах; по умолчанию время Ташкента.
	Now      func() time.Time
	Location *time.Location
}

// NewEngine создаёт движок и строит таблицу переходов.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		cart:       cfg.Cart,
		orders:     cfg.Orders,
		counter:    cfg.Counter,
		catalog:    cfg.Catalog,
		phones:     cfg.Phones,
		images:     cfg.Images,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		logger:     log.WithField("component", "conversation-engine"),
		now:        cfg.Now,
		location:   cfg.Location,
		userLocks:  make(map[string]*sync.Mutex),
	}
	if e.location == nil {
		loc, err := time.LoadLocation("Asia/Tashkent")
		if err != nil {
			loc = time.UTC
		}
		e.location = loc
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.transitions = map[domain.ConversationState]map[eventKind]handlerFunc{
		domain.StateIdle: {
			eventText:     e.onIdleText,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingCustomText: {
			eventText:     e.onCustomText,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingCustomPhoto: {
			eventPhoto:    e.onCustomPhoto,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingName: {
			eventText:     e.onName,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingPhone: {
			eventText:     e.onPhone,
			eventContact:  e.onPhone,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingAddress: {
			eventText:     e.onAddress,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingLocation: {
			eventText:     e.onLocationText,
			eventLocation: e.onLocation,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingPickupName: {
			eventText:     e.onName,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingPickupPhone: {
			eventText:     e.onPhone,
			eventContact:  e.onPhone,
			eventCallback: e.onCallback,
		},
		domain.StateAwaitingPickupBranch: {
			eventCallback: e.onCallback,
		},
	}
	return e
}

// OnUserText обрабатывает входящий текст.
func (e *Engine) OnUserText(ctx context.Context, userID, text string) []domain.Reply {
	return e.handle(ctx, userID, event{kind: eventText, text: text})
}

// OnUserPhoto обрабатывает входящее изображение.
func (e *Engine) OnUserPhoto(ctx context.Context, userID, photoRef string) []domain.Reply {
	return e.handle(ctx, userID, event{kind: eventPhoto, photoRef: photoRef})
}

// OnUserLocation обрабатывает входящую геопозицию.
func (e *Engine) OnUserLocation(ctx context.Context, userID string, lat, lon float64) []domain.Reply {
	return e.handle(ctx, userID, event{kind: eventLocation, lat: lat, lon: lon})
}

// OnUserContact обрабатывает присланный контакт.
func (e *Engine) OnUserContact(ctx context.Context, userID, phone string) []domain.Reply {
	return e.handle(ctx, userID, event{kind: eventContact, text: phone})
}

// OnCallback обрабатывает нажатие inline-кнопки.
func (e *Engine) OnCallback(ctx context.Context, userID, token string) []domain.Reply {
	return e.handle(ctx, userID, event{kind: eventCallback, token: token})
}

// handle выполняет полный цикл перехода под пользовательской блокировкой:
// загрузка агрегатов → обработчик → сохранение. Рассылка оформленного заказа
// стартует после отпускания блокировки.
func (e *Engine) handle(ctx context.Context, userID string, ev event) []domain.Reply {
	started := time.Now()
	result := e.handleLocked(ctx, userID, ev)

	if e.metrics != nil {
		e.metrics.RecordTransition(string(ev.kind))
		e.metrics.RecordTransitionDuration(time.Since(started))
		if result.kind == resultValidation {
			e.metrics.RecordValidationFailure()
		}
	}

	if result.dispatch != nil {
		e.dispatcher.DispatchAsync(*result.dispatch)
	}
	return result.replies
}

func (e *Engine) handleLocked(ctx context.Context, userID string, ev event) transitionResult {
	lock := e.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := e.users.Get(userID)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("failed to load user profile")
		return e.fatalReply(userID, domain.LangUz, err)
	}
	session, err := e.sessions.Get(userID)
	if err != nil {
		e.logger.WithError(err).WithField("user_id", userID).Error("failed to load session")
		return e.fatalReply(userID, profile.Lang, err)
	}

	t := &turn{
		ctx:     ctx,
		profile: &profile,
		session: &session,
		lang:    profile.Lang.OrDefault(),
		ev:      ev,
	}

	prevState := session.State

	handler := e.lookup(session.State, ev.kind)
	if handler == nil {
		return rejected(nil, e.reply(userID, i18n.T(i18n.KeyInvalidInput, t.lang), nil))
	}

	result := handler(t)
	switch result.kind {
	case resultOK:
		if err := e.persistTurn(t); err != nil {
			e.logger.WithError(err).WithField("user_id", userID).Error("failed to persist transition")
			return e.fatalReply(userID, t.lang, err)
		}
		e.trackSessionGauge(prevState, t.session.State)
	case resultFatal:
		e.logger.WithError(result.err).WithFields(log.Fields{
			"user_id": userID,
			"state":   prevState,
			"event":   ev.kind,
		}).Error("transition abandoned")
		return e.fatalReply(userID, t.lang, result.err)
	}
	return result
}

// lookup возвращает обработчик пары состояние × событие, либо nil.
// Глобальные callback-токены (меню, отмена, язык) доступны из любого состояния.
func (e *Engine) lookup(state domain.ConversationState, kind eventKind) handlerFunc {
	byKind, ok := e.transitions[state]
	if !ok {
		// Повреждённое состояние: ведём себя как Idle.
		byKind = e.transitions[domain.StateIdle]
	}
	return byKind[kind]
}

// persistTurn сохраняет сессию и профиль после успешного перехода.
// Сессия в Idle с пустым черновиком эквивалентна отсутствующей и удаляется.
func (e *Engine) persistTurn(t *turn) error {
	t.session.UpdatedAt = e.now().In(e.location)
	if t.session.State == domain.StateIdle {
		if err := e.sessions.Delete(t.session.UserID); err != nil {
			return err
		}
	} else {
		if err := e.sessions.Save(*t.session); err != nil {
			return err
		}
	}
	return e.users.Save(*t.profile)
}

func (e *Engine) trackSessionGauge(prev, next domain.ConversationState) {
	if e.metrics == nil {
		return
	}
	if prev == domain.StateIdle && next != domain.StateIdle {
		e.metrics.SessionStarted()
	}
	if prev != domain.StateIdle && next == domain.StateIdle {
		e.metrics.SessionFinished()
	}
}

func (e *Engine) fatalReply(userID string, lang domain.Lang, err error) transitionResult {
	return transitionResult{
		kind:    resultFatal,
		err:     err,
		replies: []domain.Reply{e.reply(userID, i18n.T(i18n.KeyTryAgain, lang.OrDefault()), nil)},
	}
}

func (e *Engine) reply(userID, text string, kb *domain.Keyboard) domain.Reply {
	return domain.Reply{RecipientID: userID, Text: text, Keyboard: kb}
}

func (e *Engine) lockFor(userID string) *sync.Mutex {
	e.locksMu.Lock()
	defer e.locksMu.Unlock()

	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	return lock
}
