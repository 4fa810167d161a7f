package state

import "sort"

// sortedKeys returns the map's keys in ascending order. Query results
// iterate collections in key order so output is stable across calls.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
