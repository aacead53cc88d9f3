// Package quoting turns identifiers, literals, default values and semantic
// column types into PostgreSQL-safe SQL text.
//
// Generators never concatenate caller-provided identifiers directly; every
// name passes through a Quoter. The default implementation, Postgres, quotes
// identifiers with pgx and literals with lib/pq.
package quoting

import "github.com/pthm/pgddl/pkg/schema"

// Quoter is the quoting service consumed by the generators.
type Quoter interface {
	// QuoteIdentifier returns name as a double-quoted identifier.
	QuoteIdentifier(name string) string
	// QuoteTableName quotes a possibly schema-qualified table name,
	// one segment at a time ("public.users" -> "public"."users").
	QuoteTableName(name string) string
	// QuoteLiteral returns s as a single-quoted string literal.
	QuoteLiteral(s string) string
	// QuoteDefault renders a column default for a column of type t.
	QuoteDefault(v any, t schema.ColumnType) (string, error)
	// TypeToSQL renders the database type name for a semantic type.
	TypeToSQL(t schema.ColumnType, opts schema.TypeOptions) (string, error)
}

// Default is the quoter used when none is configured.
var Default Quoter = Postgres{}
