package repository

import "strings"

// isUniqueViolation detects postgres unique constraint errors without
// depending on the concrete error type the pool returns
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate key")
}
