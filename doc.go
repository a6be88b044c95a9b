// Package failpoint provides deterministic fault injection for production
// code paths: named sites ("fail points") sprinkled through application
// code, and a runtime registry that attaches actions to names by string
// spec — return a value, panic, sleep, pause, invoke a callback, yield,
// delay.
//
// # Overview
//
// An operator configures a name with a textual action spec; an instrumented
// site evaluates that name on every call and, if something is configured,
// performs the action. With nothing configured the site falls straight
// through at negligible cost.
//
// Pipeline: spec string → ParseSpec (grammar → tasks) → Registry.Configure
// → Eval (first-match, probability + count gated) → site dispatch (Inject /
// Touch / InjectGuarded).
//
// # Key concepts
//
//   - Zero cost when disabled: build without -tags failpoints and every
//     site call compiles to a no-op; the registry is never touched.
//   - First match wins: a spec is an ordered chain of tasks, each gated by
//     an optional probability and an optional remaining-hit budget.
//   - Pause/resume: a paused site blocks until its name is reconfigured or
//     removed, then falls through exactly once per wake.
//
// See Action, Task, Registry for the core types, and Configure / Inject /
// Scenario for the operator- and site-facing surface.
//
// # Example
//
//	func readSomeDir() {
//	    failpoint.Touch("read-dir")
//	    _, _ = os.ReadDir(".")
//	}
//
//	func main() {
//	    scenario, err := failpoint.SetupScenario()
//	    if err != nil { log.Fatal(err) }
//	    defer scenario.Teardown()
//	    readSomeDir()
//	}
package failpoint
