package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenamePair_Apply(t *testing.T) {
	pair := RenamePair{
		OldDatabase: "prod_db",
		OldSchema:   "sales",
		NewDatabase: "dev_db",
		NewSchema:   "sales_v2",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no match", input: "orders", expected: "orders"},
		{name: "database only", input: "uses prod_db", expected: "uses dev_db"},
		{name: "schema only", input: "sales.orders", expected: "sales_v2.orders"},
		{name: "both", input: "prod_db.sales.orders", expected: "dev_db.sales_v2.orders"},
		{name: "all occurrences", input: "prod_db prod_db", expected: "dev_db dev_db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pair.Apply(tt.input))
		})
	}
}

func TestRenamePair_Apply_DatabaseBeforeSchema(t *testing.T) {
	// The schema replacement sees the output of the database replacement.
	pair := RenamePair{OldDatabase: "a", NewDatabase: "b", OldSchema: "b", NewSchema: "c"}
	assert.Equal(t, "c", pair.Apply("a"))
}

func TestRenamePair_EmptyOldNamesNeverMatch(t *testing.T) {
	pair := RenamePair{NewDatabase: "x", NewSchema: "y"}

	assert.False(t, pair.Matches("anything"))
	assert.Equal(t, "anything", pair.Apply("anything"))
}

func TestRenamePair_Matches(t *testing.T) {
	pair := RenamePair{OldDatabase: "prod_db", OldSchema: "sales"}

	assert.True(t, pair.Matches("prod_db"))
	assert.True(t, pair.Matches("the sales schema"))
	assert.False(t, pair.Matches("dev_db"))
}
