package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// RealTimeProvider implements the TimeProvider interface on the wall clock, always in UTC
type RealTimeProvider struct{}

func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

func (p *RealTimeProvider) Until(t time.Time) core.Duration {
	return core.Duration(time.Until(t))
}

func (p *RealTimeProvider) Sleep(d core.Duration) {
	time.Sleep(d.Std())
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
