package utils

import (
	"fmt"
	"strings"
)

// ToStringSlice keeps the non-blank strings of a decoded JSON array, trimmed.
// Numbers are formatted; other element types are skipped. limit <= 0 keeps everything.
func ToStringSlice(slice []any, limit int) []string {
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		if limit > 0 && len(stringSlice) == limit {
			break
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = fmt.Sprintf("%g", t)
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// Limit returns at most n leading elements
func Limit[T any](s []T, n int) []T {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
