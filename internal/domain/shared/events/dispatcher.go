package events

import (
	"fmt"
	"sync"

	"helpdesk/internal/shared/logger"
)

// InMemoryBus dispatches events asynchronously inside the process. Handlers
// run on the dispatch goroutine one at a time, so a slow handler delays the
// queue but never races another handler.
type InMemoryBus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	eventCh  chan Event
	wg       sync.WaitGroup
	log      logger.Interface
}

func NewInMemoryBus(bufferSize int, log logger.Interface) *InMemoryBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		stopCh:   make(chan struct{}),
		eventCh:  make(chan Event, bufferSize),
		log:      log.Named("events"),
	}
}

func (b *InMemoryBus) Publish(event Event) error {
	b.mu.RLock()
	running := b.running
	b.mu.RUnlock()
	if !running {
		return fmt.Errorf("event bus is not running")
	}

	select {
	case b.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event buffer is full")
	}
}

func (b *InMemoryBus) PublishAll(events []Event) error {
	for _, event := range events {
		if err := b.Publish(event); err != nil {
			return fmt.Errorf("failed to publish %s: %w", event.EventName(), err)
		}
	}
	return nil
}

func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	if eventName == "" || handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *InMemoryBus) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return fmt.Errorf("event bus is already running")
	}

	b.running = true
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.loop()
	}()

	return nil
}

func (b *InMemoryBus) Stop() error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return fmt.Errorf("event bus is not running")
	}
	b.running = false
	b.mu.Unlock()

	close(b.stopCh)
	b.wg.Wait()
	return nil
}

func (b *InMemoryBus) loop() {
	for {
		select {
		case <-b.stopCh:
			// Drain what is already queued before exiting.
			for {
				select {
				case event := <-b.eventCh:
					b.dispatch(event)
				default:
					return
				}
			}
		case event := <-b.eventCh:
			b.dispatch(event)
		}
	}
}

func (b *InMemoryBus) dispatch(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			b.log.Warnw("event handler failed",
				"event", event.EventName(),
				"error", err,
			)
		}
	}
}
