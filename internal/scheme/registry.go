package scheme

import "fmt"

// registry is a small, fixed, compile-time table from scheme name to
// implementation. New schemes are added here, not discovered at runtime:
// the design notes call out reflection-based registries as unnecessary
// complexity for a closed set of candidate-password generators.
var registry = map[string]Scheme{
	"prefix10": PrefixScheme,
}

// Lookup resolves a scheme by name. It returns an error if the name is not
// registered, which the caller should surface as INVALID_INPUT.
func Lookup(name string) (Scheme, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme %q", name)
	}
	return s, nil
}

// DefaultSchemeName is the scheme the orchestrator assigns to every input
// hash: there is a single built-in keyspace scheme.
const DefaultSchemeName = "prefix10"
