package nio

import (
	"errors"
	"testing"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/stretchr/testify/assert"
)

func TestRetryOnTimeoutSucceedsEventually(t *testing.T) {
	calls := 0
	err := RetryOnTimeout(2, func() error {
		calls++
		if calls < 3 {
			return diag.New(diag.SocketTimeout, "timed out")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnTimeoutStopsAfterBudget(t *testing.T) {
	calls := 0
	err := RetryOnTimeout(2, func() error {
		calls++
		return diag.New(diag.SocketTimeout, "timed out")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls, "first attempt plus 2 retries")
}

func TestRetryOnTimeoutDoesNotRetryNonTimeout(t *testing.T) {
	calls := 0
	sentinel := errors.New("parse error")
	err := RetryOnTimeout(5, func() error {
		calls++
		return sentinel
	})
	assert.Same(t, sentinel, err)
	assert.Equal(t, 1, calls)
}
