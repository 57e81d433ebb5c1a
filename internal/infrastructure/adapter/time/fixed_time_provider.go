package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// FixedTimeProvider is a manually driven clock. Sleep advances it instead of blocking.
type FixedTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedTimeProvider(start time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: start.UTC()}
}

func (p *FixedTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// Set moves the clock to t
func (p *FixedTimeProvider) Set(t time.Time) {
	p.mu.Lock()
	p.now = t.UTC()
	p.mu.Unlock()
}

// Advance moves the clock forward by d
func (p *FixedTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d)
	p.mu.Unlock()
}

func (p *FixedTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(p.Now().Sub(t))
}

func (p *FixedTimeProvider) Until(t time.Time) core.Duration {
	return core.Duration(t.Sub(p.Now()))
}

func (p *FixedTimeProvider) Sleep(d core.Duration) {
	p.Advance(d.Std())
}

func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
