package failpoint

import (
	"os"
	"strings"
)

// Scenario is a scoped handle on the registry's state, meant for test
// setup/teardown. SetupScenario seeds the registry from the FAILPOINTS
// environment variable; Teardown empties it again. Concurrent Scenarios
// are undefined and unsupported — Teardown clears everything currently
// configured, not just what this Scenario itself added.
type Scenario struct{}

// SetupScenario reads FAILPOINTS ("name=spec;name=spec;...") and applies
// each pair to DefaultRegistry via Configure, in left-to-right order. A
// parse error on any pair fails the whole setup and leaves the registry
// exactly as it was before the call. An empty or unset FAILPOINTS is a
// no-op.
func SetupScenario() (*Scenario, error) {
	return setupScenario(os.Getenv("FAILPOINTS"))
}

func setupScenario(env string) (*Scenario, error) {
	pairs, err := parseFailpointsEnv(env)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if p.Name == "" {
			return nil, ErrEmptyName
		}
		if _, err := ParseSpec(p.Spec); err != nil {
			return nil, err
		}
	}
	applied := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if err := Configure(p.Name, p.Spec); err != nil {
			for _, name := range applied {
				Remove(name)
			}
			return nil, err
		}
		applied = append(applied, p.Name)
	}
	return &Scenario{}, nil
}

// Teardown removes every entry currently in the registry, regardless of
// whether this Scenario's Setup call installed it.
func (s *Scenario) Teardown() {
	for _, ns := range List() {
		Remove(ns.Name)
	}
}

func parseFailpointsEnv(env string) ([]NamedSpec, error) {
	var pairs []NamedSpec
	for _, raw := range strings.Split(env, ";") {
		if raw == "" {
			continue
		}
		name, spec, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, &ParseError{Spec: raw, Pos: 0, Msg: "malformed FAILPOINTS pair, expected name=spec"}
		}
		pairs = append(pairs, NamedSpec{Name: name, Spec: spec})
	}
	return pairs, nil
}
