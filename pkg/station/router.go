package station

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler обрабатывает один входящий кадр указанного типа.
type Handler func(frame json.RawMessage)

// Subscription - дескриптор подписки, возвращаемый Subscribe.
type Subscription struct {
	eventType string
	handler   Handler
	once      sync.Once
}

// Router разбирает входящие кадры как тегированные JSON-объекты и раздает их
// подписчикам по значению поля "type". Поддерживает как постоянные подписки,
// так и одноразовые ожидания через WaitFor.
type Router struct {
	logger *logrus.Logger

	mu   sync.Mutex
	subs map[string][]*Subscription
}

// NewRouter создает пустой роутер сообщений.
func NewRouter(logger *logrus.Logger) *Router {
	return &Router{
		logger: logger,
		subs:   make(map[string][]*Subscription),
	}
}

// Subscribe регистрирует обработчик для кадров указанного типа.
// Обработчики вызываются в порядке регистрации.
func (r *Router) Subscribe(eventType string, h Handler) *Subscription {
	sub := &Subscription{eventType: eventType, handler: h}
	r.add(sub)
	return sub
}

// Unsubscribe снимает подписку. Повторный вызов безопасен.
func (r *Router) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.subs[sub.eventType]
	for i, s := range list {
		if s == sub {
			r.subs[sub.eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// WaitFor возвращает канал, в который будет доставлен первый кадр указанного
// типа, после чего подписка снимается. Функция отмены снимает подписку, если
// ответ так и не пришел (таймаут или отмена контекста вызывающей стороной).
func (r *Router) WaitFor(eventType string) (<-chan json.RawMessage, func()) {
	ch := make(chan json.RawMessage, 1)
	sub := &Subscription{eventType: eventType}
	sub.handler = func(frame json.RawMessage) {
		sub.once.Do(func() {
			ch <- append(json.RawMessage(nil), frame...)
		})
		r.Unsubscribe(sub)
	}
	r.add(sub)
	cancel := func() { r.Unsubscribe(sub) }
	return ch, cancel
}

// Dispatch разбирает кадр и вызывает всех подписчиков его типа.
// Нечитаемый кадр логируется и отбрасывается - это не фатальная ошибка.
func (r *Router) Dispatch(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		r.logger.WithError(err).Warn("dropping undecodable frame")
		return
	}
	if env.Type == "" {
		r.logger.Warn("dropping frame without type field")
		return
	}

	r.mu.Lock()
	list := r.subs[env.Type]
	targets := make([]*Subscription, len(list))
	copy(targets, list)
	r.mu.Unlock()

	for _, sub := range targets {
		r.invoke(sub, frame)
	}
}

// invoke изолирует обработчики друг от друга: паника одного не мешает
// остальным подписчикам того же события.
func (r *Router) invoke(sub *Subscription, frame json.RawMessage) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("event_type", sub.eventType).
				WithField("panic", rec).
				Error("message handler panicked")
		}
	}()
	sub.handler(frame)
}

func (r *Router) add(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[sub.eventType] = append(r.subs[sub.eventType], sub)
}
