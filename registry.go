package failpoint

import (
	"log/slog"
	"slices"
	"sync"
)

// entry is the registry's unit of state for one name: the parsed task
// chain, the spec it came from (for List's round-trip), and done, which is
// closed exactly once — when this entry is replaced or removed — to wake
// every goroutine blocked on a Pause fired against it.
type entry struct {
	tasks []*Task
	spec  string
	done  chan struct{}
}

// NamedSpec is one (name, spec) pair as returned by List.
type NamedSpec struct {
	Name string
	Spec string
}

// Registry is the process-wide mapping from fail-point name to configured
// task chain. The zero value is not usable; construct with NewRegistry.
// Eval takes the read lock only long enough to copy an *entry pointer —
// user code (callbacks, Pause waits) never runs while the lock is held.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	opts    registryOptions
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{source: defaultRollSource{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		entries: make(map[string]*entry),
		opts:    o,
	}
}

// Configure parses spec and installs it as the entry for name, replacing
// any prior entry and waking every goroutine paused on it. On a parse
// error the registry is left untouched.
func (r *Registry) Configure(name, spec string) error {
	if name == "" {
		return ErrEmptyName
	}
	tasks, err := ParseSpec(spec)
	if err != nil {
		return err
	}
	r.install(name, &entry{tasks: tasks, spec: spec, done: make(chan struct{})})
	if r.opts.logger != nil {
		r.opts.logger.Debug("failpoint configured", "name", name, "spec", spec)
	}
	return nil
}

// ConfigureCallback installs a single unconditional task whose action
// invokes fn, under the same replace-and-wake semantics as Configure.
// Unlike Configure, this action has no textual spec form: List reports it
// as "callback".
func (r *Registry) ConfigureCallback(name string, fn func()) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilCallback
	}
	task := &Task{Frequency: 100, Action: Action{Kind: ActionCallback, Callback: fn}}
	r.install(name, &entry{tasks: []*Task{task}, spec: "callback", done: make(chan struct{})})
	if r.opts.logger != nil {
		r.opts.logger.Debug("failpoint callback configured", "name", name)
	}
	return nil
}

// install swaps in a new entry for name and wakes any waiters on the one it
// replaced. Locking is held only across the map mutation; done is closed
// after release so a goroutine woken by it never blocks trying to reacquire
// the registry lock itself.
func (r *Registry) install(name string, e *entry) {
	r.mu.Lock()
	old := r.entries[name]
	r.entries[name] = e
	r.mu.Unlock()
	if old != nil {
		close(old.done)
	}
}

// Remove deletes the entry for name, waking every goroutine paused on it.
// Removing a name with no entry is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	old, ok := r.entries[name]
	if ok {
		delete(r.entries, name)
	}
	r.mu.Unlock()
	if ok {
		close(old.done)
		if r.opts.logger != nil {
			r.opts.logger.Debug("failpoint removed", "name", name)
		}
	}
}

// List returns a snapshot of every configured (name, spec) pair. Ordering
// is stable within one call (sorted by name) but not otherwise specified.
func (r *Registry) List() []NamedSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]NamedSpec, 0, len(names))
	for _, name := range names {
		out = append(out, NamedSpec{Name: name, Spec: r.entries[name].spec})
	}
	return out
}

// Outcome is what Eval hands back to a fired site: the action to perform,
// plus (for Pause) a handle to the channel that wakes the waiter once the
// entry is reconfigured or removed.
type Outcome struct {
	Action Action
	done   <-chan struct{}
}

// Wait blocks until the entry this Outcome was drawn from is reconfigured
// or removed. Only meaningful when Action.Kind == ActionPause.
func (o Outcome) Wait() { <-o.done }

// Eval is the fast path used by injection sites. It performs one O(1) map
// lookup under the read lock, then evaluates the task chain outside the
// lock; it never runs user code (callbacks, Pause waits) while holding it.
// Absent name is not an error — it reports fall-through.
func (r *Registry) Eval(name string) (Outcome, bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return Outcome{}, false
	}
	action, fired := evaluate(e.tasks, r.opts.source)
	if !fired {
		return Outcome{}, false
	}
	return Outcome{Action: action, done: e.done}, true
}

// Logger returns the Registry's configured logger, or slog.Default() if
// none was set via WithLogger.
func (r *Registry) Logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return slog.Default()
}

// DefaultRegistry is the process-wide singleton backing the package-level
// Configure, ConfigureCallback, Remove and List functions, and the
// one Inject/Touch/InjectGuarded dispatch in mode_enabled.go reads from.
var DefaultRegistry = NewRegistry()

// Configure parses spec and installs it for name in DefaultRegistry.
func Configure(name, spec string) error { return DefaultRegistry.Configure(name, spec) }

// ConfigureCallback installs fn as name's action in DefaultRegistry.
func ConfigureCallback(name string, fn func()) error {
	return DefaultRegistry.ConfigureCallback(name, fn)
}

// Remove deletes name's entry from DefaultRegistry.
func Remove(name string) { DefaultRegistry.Remove(name) }

// List returns a snapshot of DefaultRegistry's configured (name, spec) pairs.
func List() []NamedSpec { return DefaultRegistry.List() }
