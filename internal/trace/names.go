package trace

import "strings"

// nameOf and parseName back the String/Parse pairs of the small enums below.
func nameOf[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return "unknown"
}

func parseName[T ~uint8](names []string, s string) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name != "" && name == s {
			return T(i), true //nolint:gosec // tables are tiny
		}
	}
	return 0, false
}
