package sqldsl

import "strings"

// Expr is the interface that all DSL fragments implement.
type Expr interface {
	SQL() string
}

// Raw is an escape hatch for arbitrary SQL.
type Raw string

// SQL renders the raw SQL as-is.
func (r Raw) SQL() string {
	return string(r)
}

// Paren wraps an expression in parentheses.
type Paren struct {
	Expr Expr
}

// SQL renders the parenthesized expression.
func (p Paren) SQL() string {
	return "(" + p.Expr.SQL() + ")"
}

// Tokens is a space-separated run of keywords and names.
// Empty tokens are skipped.
type Tokens []string

// SQL renders the tokens joined by single spaces.
func (t Tokens) SQL() string {
	return joinNonEmpty(t, " ")
}

// List is a comma-separated list, e.g. the column list of a key.
// Empty items are skipped.
type List []string

// SQL renders the items joined by ", ".
func (l List) SQL() string {
	return joinNonEmpty(l, ", ")
}

func joinNonEmpty(parts []string, sep string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(p)
	}
	return sb.String()
}
