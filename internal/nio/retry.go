package nio

import "github.com/riftline/gamedig/internal/diag"

// RetryOnTimeout executes op; on a SocketTimeout error it retries up to n
// additional times, and on any non-timeout error it returns immediately.
// Retries are per logical operation, not per query: callers invoke this
// around a single send+recv exchange, so a multi-packet query that times
// out on fragment k only retries that one receive.
func RetryOnTimeout(n uint, op func() error) error {
	var lastErr error
	for attempt := uint(0); attempt <= n; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err
		if !diag.Is(err, diag.SocketTimeout) {
			return err
		}
	}
	return lastErr
}
