//go:build failpoints

package failpoint

import (
	"log/slog"
	"time"
)

// sleep blocks for at least d, honoring Sleep's "minimum elapsed wall time"
// contract. There is no cancellation path, per spec.
func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// busySpin burns CPU for approximately d, the Delay action's contract. It
// intentionally does not yield to the scheduler or sleep, so d is honored
// as true elapsed wall time rather than however long a parked goroutine
// takes to be rescheduled.
func busySpin(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

// diagPrint writes a Print action's message to the diagnostic sink.
func diagPrint(logger *slog.Logger, payload *string) {
	msg := "failpoint"
	if payload != nil {
		msg = *payload
	}
	logger.Info(msg)
}

// panicMessage resolves a Panic action's payload to the string passed to
// panic(), falling back to a default when the spec omitted one.
func panicMessage(payload *string) string {
	if payload != nil {
		return *payload
	}
	return "failpoint: panic"
}
