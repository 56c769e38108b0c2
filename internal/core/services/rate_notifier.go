package services

import (
	"sync"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
)

// RateChangeNotifier fans a rate-changed event out to every subscriber.
// The rate store emits exactly one event per successful system-scope
// mutation; subscribers holding cached conversions invalidate on receipt.
// Delivery is synchronous and in-process, so subscribers must not block.
type RateChangeNotifier struct {
	mu          sync.RWMutex
	subscribers []portssvc.RateChangeSubscriber
}

// NewRateChangeNotifier creates an empty notifier.
func NewRateChangeNotifier() *RateChangeNotifier {
	return &RateChangeNotifier{}
}

// Subscribe registers a subscriber for all future rate-changed events.
func (n *RateChangeNotifier) Subscribe(sub portssvc.RateChangeSubscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, sub)
}

// Notify delivers the event to every subscriber.
func (n *RateChangeNotifier) Notify(scope domain.RateScope, set domain.CurrencyRateSet) {
	n.mu.RLock()
	subs := make([]portssvc.RateChangeSubscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.RUnlock()

	for _, sub := range subs {
		sub.OnRateChanged(scope, set)
	}
}
