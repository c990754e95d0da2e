package surrealdb

import "strings"

// isNotFoundError reports whether an SDK error means "record does not exist"
// rather than a storage failure.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}
