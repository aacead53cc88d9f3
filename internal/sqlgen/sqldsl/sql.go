package sqldsl

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Optf returns formatted string if condition is true, empty string otherwise.
// Useful for optional DDL clauses.
func Optf(cond bool, format string, args ...any) string {
	if !cond {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

// Map applies fn to every item, typically a quoting function.
func Map(items []string, fn func(string) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// ParenList renders items as a parenthesized comma-separated list.
func ParenList(items []string) string {
	return Paren{Expr: List(items)}.SQL()
}

// Keyword upper-cases a keyword taken from caller input, such as a
// deferral mode or sort order written in lower case.
func Keyword(s string) string {
	return cases.Upper(language.Und).String(s)
}
