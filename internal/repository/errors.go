// Package repository contains data access logic separated from HTTP
// handlers. This file holds error helpers shared across repositories.
package repository

import "strings"

// isDuplicate reports whether err is a unique-constraint violation.
// MySQL surfaces these as error 1062; SQLite (used by the test suite)
// reports "UNIQUE constraint failed".
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "1062") || strings.Contains(s, "unique")
}
