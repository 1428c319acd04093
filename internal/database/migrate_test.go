package database

import (
	"strings"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestSchemaStatements(t *testing.T) {
	stmts := statements(schema)
	check.Equal(t, 2, len(stmts))
	check.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE IF NOT EXISTS lelang_items"))
	check.True(t, strings.HasPrefix(stmts[1], "CREATE TABLE IF NOT EXISTS lelang_bids"))
}

func TestStatementsSkipsBlanks(t *testing.T) {
	check.Equal(t, []string{"SELECT 1", "SELECT 2"}, statements("SELECT 1;\n\n;  SELECT 2 ;\n"))
}
