package event

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/orgmode/internal/logging"
)

// SubscriptionID identifies a subscription on a Bus.
type SubscriptionID uint64

type subscription struct {
	id       SubscriptionID
	pattern  Topic
	handler  Handler
	priority int
	once     bool
}

// Bus delivers events to subscribers. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID SubscriptionID
	logger *logging.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used for handler failures.
func WithLogger(l *logging.Logger) BusOption {
	return func(b *Bus) {
		b.logger = l
	}
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscription)

// WithPriority orders delivery; higher priorities run first. Equal
// priorities run in subscription order.
func WithPriority(p int) SubscribeOption {
	return func(s *subscription) {
		s.priority = p
	}
}

// Once removes the subscription after its first delivery.
func Once() SubscribeOption {
	return func(s *subscription) {
		s.once = true
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithComponent("event")
	return b
}

// Subscribe registers h for topics matching pattern.
func (b *Bus) Subscribe(pattern Topic, h Handler, opts ...SubscribeOption) (SubscriptionID, error) {
	if !pattern.IsValidPattern() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if h == nil {
		return 0, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &subscription{id: b.nextID, pattern: pattern, handler: h}
	for _, opt := range opts {
		opt(s)
	}
	b.subs = append(b.subs, s)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority > b.subs[j].priority
	})
	return s.id, nil
}

// Unsubscribe removes a subscription. It returns false if id is unknown.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remove(id)
}

func (b *Bus) remove(id SubscriptionID) bool {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// SubscriberCount returns the number of subscriptions matching topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, s := range b.subs {
		if s.pattern.Matches(topic) {
			n++
		}
	}
	return n
}

// Publish delivers ev to every matching subscriber and returns their
// errors joined. Handlers run without the bus lock held, so they may
// subscribe or unsubscribe.
func (b *Bus) Publish(ev Event) error {
	if !ev.Topic.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Topic)
	}

	b.mu.Lock()
	var targets []*subscription
	for _, s := range b.subs {
		if s.pattern.Matches(ev.Topic) {
			targets = append(targets, s)
		}
	}
	for _, s := range targets {
		if s.once {
			b.remove(s.id)
		}
	}
	b.mu.Unlock()

	var errs []error
	for _, s := range targets {
		if err := deliver(s, ev); err != nil {
			b.logger.Warn("event handler failed", "topic", ev.Topic, "pattern", s.pattern, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver(s *subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return s.handler(ev)
}
