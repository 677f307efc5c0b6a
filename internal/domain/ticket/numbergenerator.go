package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// DefaultNumberGenerator hands out per-day sequential ticket numbers.
// Numbers are only unique within a single process; the repository enforces
// uniqueness on write.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()
	dateKey := now.Format("20060102")

	counter := g.counters[dateKey]
	counter++
	g.counters[dateKey] = counter

	number := fmt.Sprintf("TKT-%s-%04d", dateKey, counter)
	return number, nil
}
