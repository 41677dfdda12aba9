// Package registry holds the live time data providers.
//
// A Registry has one slot per capability: leap seconds, ΔT, earth
// orientation, TDB correction, plus the metrics and logging sinks. Each
// slot is a single atomic pointer to an immutable provider.
//
// # Concurrency model
//
// Reads load the slot pointer and use the provider without locking. The
// provider behind the pointer is never mutated, so a reader always sees
// either the fully-old or the fully-new provider.
//
// Writes (SetLeapSeconds, SetDeltaT, ...) build nothing in place: the
// caller constructs a provider, and the setter publishes it with one
// atomic swap and returns the provider it replaced. Concurrent setters
// are individually atomic with last-writer-wins ordering.
//
// # Usage
//
// Most callers use the process-wide registry:
//
//	prev, err := registry.Default().ReloadLeapSecondsFromFile("leap.csv")
//
// Tests swap a provider and restore the previous one afterwards:
//
//	prev, _ := registry.Default().SetDeltaT(deltat.Polynomial{})
//	defer registry.Default().SetDeltaT(prev)
package registry
