package ledger

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates positional WHERE clauses. Each Add call appends
// one clause and its argument, numbering placeholders from the running
// argument count.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

// Add appends a clause whose single placeholder is written as %d, e.g.
// "created_at >= $%d".
func (b *whereBuilder) Add(clause string, arg interface{}) {
	b.args = append(b.args, arg)
	b.clauses = append(b.clauses, fmt.Sprintf(clause, len(b.args)))
}

// Where renders the accumulated clauses, or an empty string when none were
// added.
func (b *whereBuilder) Where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// Args returns the positional arguments matching the rendered clauses.
func (b *whereBuilder) Args() []interface{} {
	return b.args
}
