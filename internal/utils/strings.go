// Package utils holds small helpers shared by configuration and the pipeline.
package utils

import "strings"

// ParseCSV splits a comma-separated setting into trimmed, non-empty values.
// Repeated values are kept once, in first-seen order. Blank input returns nil.
func ParseCSV(s string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, v := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result
}
