package conf

// DefaultConfig is a flat map of config keys to default values.
type DefaultConfig = map[string]any

// MergeDefaults merges several default maps into one, prefixing
// every key with the given namespace if one is provided.
func MergeDefaults[M ~map[string]V, V any](ns string, maps ...M) M {
	fullCap := 0
	for _, m := range maps {
		fullCap += len(m)
	}

	merged := make(M, fullCap)
	for _, m := range maps {
		for key, val := range m {
			if ns != "" {
				key = ns + "." + key
			}
			merged[key] = val
		}
	}

	return merged
}
