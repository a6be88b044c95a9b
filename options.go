package failpoint

import (
	"log/slog"
	"math/rand"
	"sync"
)

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	logger *slog.Logger
	source rollSource
}

// WithLogger attaches a logger that records Configure/Remove/ConfigureCallback
// calls at debug level, and is used as the default sink for the Print action
// (unless the site itself is reached through a Registry with no logger, in
// which case Print writes to slog.Default()). Passing nil leaves the Registry
// without a logger: no debug records are emitted, and Logger (and so Print)
// falls back to slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// WithRand pins the probability source to a caller-supplied *rand.Rand
// instead of the package-level math/rand/v2 generator. Intended for tests
// that need a reproducible sequence of probability draws; production code
// has no reason to call this.
func WithRand(r *rand.Rand) RegistryOption {
	return func(o *registryOptions) {
		o.source = seededRollSource{r: &lockedRand{r: r}}
	}
}

// lockedRand guards a *rand.Rand (not safe for concurrent use on its own)
// behind a mutex so it can back a Registry's probability draws from
// multiple goroutines.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
