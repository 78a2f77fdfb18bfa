package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowPermitsUpToBurstThenDenies(t *testing.T) {
	l := New(Config{GlobalRate: 1000, GlobalBurst: 1000, PerIPRate: 1, PerIPBurst: 2})

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestAllowTracksIPsIndependently(t *testing.T) {
	l := New(Config{GlobalRate: 1000, GlobalBurst: 1000, PerIPRate: 1, PerIPBurst: 1})

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))
	assert.False(t, l.Allow("1.1.1.1"))
}

func TestDisabledBucketAlwaysAllows(t *testing.T) {
	l := New(Config{GlobalRate: 0, GlobalBurst: 0, PerIPRate: 0, PerIPBurst: 0})
	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
}

func TestNilLimiterAllowsEverything(t *testing.T) {
	var l *Limiter
	assert.True(t, l.Allow("1.2.3.4"))
}

func TestTokensReplenishOverTime(t *testing.T) {
	b := newTokenBucket(100, 1, time.Minute, 10)
	assert.True(t, b.allow("k"))
	assert.False(t, b.allow("k"))
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.allow("k"))
}
