// Package memory provides in-memory implementations of the domain
// repositories. They satisfy the same contracts as the postgres
// implementations, including the duplicate-prevention invariants, which are
// serialized by a per-repository mutex. Used by the memory storage driver
// and by tests.
package memory

func cloneSlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}
