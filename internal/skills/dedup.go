package skills

// Dedup removes exact duplicates, keeping the first occurrence of each item
// in order. The input is not modified.
func Dedup(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if _, exists := seen[item]; exists {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}

	return out
}
