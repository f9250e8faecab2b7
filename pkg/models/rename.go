package models

import "strings"

// RenamePair holds the database and schema names to replace and their replacements.
// Names are free text and are applied as substring replacements.
type RenamePair struct {
	OldDatabase string
	OldSchema   string
	NewDatabase string
	NewSchema   string
}

// Matches reports whether s contains the old database or old schema name.
// Empty old names never match.
func (p RenamePair) Matches(s string) bool {
	return (p.OldDatabase != "" && strings.Contains(s, p.OldDatabase)) ||
		(p.OldSchema != "" && strings.Contains(s, p.OldSchema))
}

// Apply replaces every occurrence of the old database name, then every
// occurrence of the old schema name, in s.
func (p RenamePair) Apply(s string) string {
	if p.OldDatabase != "" {
		s = strings.ReplaceAll(s, p.OldDatabase, p.NewDatabase)
	}
	if p.OldSchema != "" {
		s = strings.ReplaceAll(s, p.OldSchema, p.NewSchema)
	}
	return s
}
