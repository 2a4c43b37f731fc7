package store

import (
	"strconv"
	"strings"
)

// Dialect papers over the few SQL differences that matter between the two
// supported drivers.
type Dialect interface {
	Name() string
	// Now is the SQL expression for the current local timestamp.
	Now() string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }
func (sqliteDialect) Now() string  { return "datetime('now','localtime')" }

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }
func (postgresDialect) Now() string  { return "NOW()" }

// Rebind converts ? placeholders to $1, $2, ... for pgx. Question marks
// inside single-quoted literals are left alone.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
