package postgres

import (
	"fmt"
	"strings"
)

// assignment is one "column = $n" pair of an UPDATE. Columns always come from
// constants in this package, never from caller input.
type assignment struct {
	column string
	value  any
}

// buildUpdate renders an UPDATE of the given assignments, touching
// updated_at, for the row whose id is the last argument.
func buildUpdate(table string, sets []assignment, id any, returning string) (string, []any) {
	clauses := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+1)
	for _, s := range sets {
		args = append(args, s.value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", s.column, len(args)))
	}
	clauses = append(clauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(clauses, ", "), len(args))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
