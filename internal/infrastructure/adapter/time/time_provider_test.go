package time

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider(t *testing.T) {
	t.Run("should report UTC", func(t *testing.T) {
		p := NewRealTimeProvider()

		assert.Equal(t, time.UTC, p.Now().Location())
	})
}

func TestFixedTimeProvider(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should only move when told to", func(t *testing.T) {
		p := NewFixedTimeProvider(start)

		assert.Equal(t, start, p.Now())
		p.Advance(time.Hour)
		assert.Equal(t, start.Add(time.Hour), p.Now())
		p.Sleep(core.Minute)
		assert.Equal(t, start.Add(61*time.Minute), p.Now())
	})

	t.Run("should compute since and until against its own clock", func(t *testing.T) {
		p := NewFixedTimeProvider(start)

		assert.Equal(t, core.Hour, p.Until(start.Add(time.Hour)))
		p.Set(start.Add(2 * time.Hour))
		assert.Equal(t, 2*core.Hour, p.Since(start))
	})
}
