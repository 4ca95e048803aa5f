package ticket

import (
	"context"
	"fmt"
	"sync"

	"autocrm/internal/shared/biztime"
)

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

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

	dateKey := biztime.NowUTC().Format("20060102")

	counter := g.counters[dateKey]
	counter++
	g.counters[dateKey] = counter

	return fmt.Sprintf("T-%s-%04d", dateKey, counter), nil
}
