// Package sqldsl provides small building blocks for assembling DDL fragments.
//
// # Overview
//
// DDL statements are sequences of keywords and already-quoted names in a
// fixed order, with many optional clauses. Rather than concatenating strings
// with hand-placed spaces, generators collect the tokens of a clause and let
// the DSL join them. Empty tokens are dropped, so an omitted optional clause
// never leaves a double space behind.
//
// # Core Interface
//
// Every DSL type implements Expr, whose SQL() method renders the fragment.
//
//	Raw("now()")                       // verbatim SQL
//	Paren{Expr: Raw("price > 0")}      // (price > 0)
//	Tokens{"DROP", "CONSTRAINT", q}    // DROP CONSTRAINT "q"
//	List{`"a"`, `"b"`}                 // "a", "b"
//
// Optional clauses are written with Optf, which returns "" when its
// condition is false:
//
//	Tokens{
//	    "CREATE",
//	    Optf(unique, "UNIQUE"),
//	    "INDEX",
//	    name,
//	}.SQL()
//
// Quoting is not this package's concern. Names handed to the DSL must already
// have passed through the quoting service.
package sqldsl
