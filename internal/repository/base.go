// Package repository provides data access layer implementations for the application.
package repository

import "strings"

// IsUniqueViolation reports whether err comes from a unique-index conflict.
// Matched by message so the check works against both Postgres and the sqlite
// driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
