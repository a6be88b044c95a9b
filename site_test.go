//go:build failpoints

package failpoint

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOrDefault(def int) func(*string) int {
	return func(p *string) int {
		if p == nil {
			return def
		}
		n, err := strconv.Atoi(*p)
		if err != nil {
			return def
		}
		return n
	}
}

func withConfigured(t *testing.T, name, spec string) {
	t.Helper()
	require.NoError(t, Configure(name, spec))
	t.Cleanup(func() { Remove(name) })
}

func doReturn(name string) int {
	if v, ok := Inject(name, parseOrDefault(2)); ok {
		return v
	}
	return 0
}

func TestEnabled(t *testing.T) {
	assert.True(t, Enabled())
}

// S1/S2: configured return(1000) yields 1000; configured return (no payload)
// yields the adapter's default via parseOrDefault(2).
func TestSite_S1_S2_Return(t *testing.T) {
	withConfigured(t, "r", "return(1000)")
	assert.Equal(t, 1000, doReturn("r"))

	require.NoError(t, Configure("r", "return"))
	assert.Equal(t, 2, doReturn("r"))
}

func TestSite_Off_IsIdenticalToUnconfigured(t *testing.T) {
	withConfigured(t, "off-site", "off")
	assert.Equal(t, 0, doReturn("off-site"))
	assert.Equal(t, 0, doReturn("never-configured"))
}

// S3, scaled down: sleep(50) blocks the calling goroutine for at least 50ms.
func TestSite_S3_Sleep(t *testing.T) {
	withConfigured(t, "s", "sleep(50)")
	start := time.Now()
	Touch("s")
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

// S4: panic(msg) aborts the calling goroutine with msg.
func TestSite_S4_Panic(t *testing.T) {
	withConfigured(t, "p", "panic(msg)")
	assert.PanicsWithValue(t, "msg", func() { Touch("p") })
}

// S5: the frequency/count chain sums to exactly 100 over 5000 invocations.
func TestSite_S5_FreqAndCountSum(t *testing.T) {
	withConfigured(t, "fc", "50%50*return(1)->50%50*return(-1)->50*return")
	sum := 0
	for i := 0; i < 5000; i++ {
		sum += doReturn("fc")
	}
	assert.Equal(t, 100, sum)
}

// S6: a configured callback fires once per site invocation.
func TestSite_S6_Callback(t *testing.T) {
	counter := 0
	require.NoError(t, ConfigureCallback("cb", func() { counter++ }))
	t.Cleanup(func() { Remove("cb") })
	Touch("cb")
	Touch("cb")
	assert.Equal(t, 2, counter)
}

func TestSite_Delay(t *testing.T) {
	withConfigured(t, "delay", "delay(30)")
	start := time.Now()
	Touch("delay")
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSite_Yield(t *testing.T) {
	withConfigured(t, "yield", "yield")
	Touch("yield") // must not block or panic
}

func TestSite_Print(t *testing.T) {
	withConfigured(t, "print", "print(hello)")
	Touch("print") // writes to the default slog logger; no observable return
}

// S7: a background goroutine blocked on pause progresses exactly once per
// reconfiguration or removal.
func TestSite_S7_PauseResumeLiveness(t *testing.T) {
	require.NoError(t, Configure("pz", "pause"))
	t.Cleanup(func() { Remove("pz") })

	progressed := make(chan struct{}, 3)
	go func() {
		Touch("pz")
		progressed <- struct{}{}
		Touch("pz")
		progressed <- struct{}{}
		Touch("pz")
		progressed <- struct{}{}
	}()

	select {
	case <-progressed:
		t.Fatal("goroutine progressed before any reconfiguration")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, Configure("pz", "pause"))
	select {
	case <-progressed:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not progress after reconfiguration")
	}

	select {
	case <-progressed:
		t.Fatal("goroutine progressed a second time before the next reconfiguration")
	case <-time.After(100 * time.Millisecond):
	}

	Remove("pz")
	select {
	case <-progressed:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not progress after removal")
	}

	select {
	case <-progressed:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run to completion after its pause was removed")
	}
}

// Guard gating: guard == false falls through, guard == true yields the
// adapter's value.
func TestSite_GuardGating(t *testing.T) {
	withConfigured(t, "condition", "return")
	guardedCall := func(enabled bool) int {
		if v, ok := InjectGuarded("condition", enabled, parseOrDefault(2)); ok {
			return v
		}
		return 0
	}
	assert.Equal(t, 0, guardedCall(false))
	assert.Equal(t, 2, guardedCall(true))
}

func TestSite_ReturnWithoutAdapterFallsThrough(t *testing.T) {
	withConfigured(t, "noadapter", "return(1)")
	Touch("noadapter") // Touch supplies no adapter; Return must fall through, not panic
}
