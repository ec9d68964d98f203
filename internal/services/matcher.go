// Package services holds the business logic of the relief tracker. Every
// function is stateless and takes the database handle it should work
// against, so callers decide the connection (and tests bring their own).
package services

import "strings"

// TypeMatcher decides whether an NGO capability string (focus area, support
// type, resource type) satisfies a requested need type. It is pluggable so a
// controlled taxonomy can replace the default heuristic without touching the
// allocation flow.
type TypeMatcher func(needType, candidate string) bool

// SubstringMatcher is the default matcher: case-insensitive substring.
func SubstringMatcher(needType, candidate string) bool {
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(needType))
}

// likePattern builds the argument for a LOWER(col) LIKE ? clause, the SQL
// counterpart of SubstringMatcher.
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
